package client

import (
	"context"
	"fmt"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// BaseImagesClient implements weevils.BaseImagesClient.
type BaseImagesClient struct {
	*session
}

// NewBaseImagesClient creates a new base images client.
func NewBaseImagesClient(s *session) *BaseImagesClient {
	return &BaseImagesClient{session: s}
}

// Get implements weevils.BaseImagesClient.Get. Slugs are resolved through
// the collection's slug filter.
func (c *BaseImagesClient) Get(ctx context.Context, idOrSlug string) (*weevils.BaseImage, error) {
	key, err := weevils.ParseLookupKey(idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("getting base image: %w", err)
	}

	var image *weevils.BaseImage

	if key.IsID() {
		image, err = getOne(ctx, c.session, "/base/"+key.String()+"/", nil, weevils.HydrateBaseImage,
			target{resource: weevils.KindBaseImage, key: key.String()})
	} else {
		image, err = findBySlug(ctx, c.session, "/base/", key.Slug, weevils.HydrateBaseImage, weevils.KindBaseImage)
	}

	if err != nil {
		return nil, fmt.Errorf("getting base image: %w", err)
	}

	return image, nil
}

// List implements weevils.BaseImagesClient.List.
func (c *BaseImagesClient) List(ctx context.Context, page weevils.Page) ([]weevils.BaseImage, error) {
	images, err := getMany(ctx, c.session, "/base/", pageQuery(page), weevils.HydrateBaseImage)
	if err != nil {
		return nil, fmt.Errorf("listing base images: %w", err)
	}

	return images, nil
}
