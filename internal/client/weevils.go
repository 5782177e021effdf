package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// weevilCreateBody is the wire form of weevils.WeevilCreateRequest.
type weevilCreateBody struct {
	Name   string `json:"name"`
	BaseID string `json:"base_id"`
	Script string `json:"script"`
	Slug   string `json:"slug,omitempty"`
}

type weevilUpdateBody struct {
	Script string `json:"script"`
}

// WeevilsClient implements weevils.WeevilsClient.
type WeevilsClient struct {
	*session
}

// NewWeevilsClient creates a new weevils client.
func NewWeevilsClient(s *session) *WeevilsClient {
	return &WeevilsClient{session: s}
}

// Get implements weevils.WeevilsClient.Get.
func (c *WeevilsClient) Get(ctx context.Context, idOrSlug string) (*weevils.Weevil, error) {
	key, err := weevils.ParseLookupKey(idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("getting weevil: %w", err)
	}

	var weevil *weevils.Weevil

	if key.IsID() {
		weevil, err = getOne(ctx, c.session, weevilPath(key.ID), nil, weevils.HydrateWeevil,
			target{resource: weevils.KindWeevil, key: key.String()})
	} else {
		weevil, err = findBySlug(ctx, c.session, "/weevils/", key.Slug, weevils.HydrateWeevil, weevils.KindWeevil)
	}

	if err != nil {
		return nil, fmt.Errorf("getting weevil: %w", err)
	}

	return weevil, nil
}

// List implements weevils.WeevilsClient.List.
func (c *WeevilsClient) List(ctx context.Context, page weevils.Page) ([]weevils.Weevil, error) {
	list, err := getMany(ctx, c.session, "/weevils/", pageQuery(page), weevils.HydrateWeevil)
	if err != nil {
		return nil, fmt.Errorf("listing weevils: %w", err)
	}

	return list, nil
}

// Create implements weevils.WeevilsClient.Create.
func (c *WeevilsClient) Create(ctx context.Context, request *weevils.WeevilCreateRequest) (*weevils.Weevil, error) {
	baseID, err := baseImageID(request.Base)
	if err != nil {
		return nil, fmt.Errorf("creating weevil: %w", err)
	}

	body := &weevilCreateBody{
		Name:   request.Name,
		BaseID: baseID.String(),
		Script: request.Script,
		Slug:   request.Slug,
	}

	weevil, err := create(ctx, c.session, "/weevils/", body, weevils.HydrateWeevil)
	if err != nil {
		return nil, fmt.Errorf("creating weevil: %w", err)
	}

	return weevil, nil
}

// Update implements weevils.WeevilsClient.Update.
func (c *WeevilsClient) Update(ctx context.Context, id uuid.UUID, script string) (*weevils.Weevil, error) {
	err := weevils.RequireID(id)
	if err != nil {
		return nil, fmt.Errorf("updating weevil: %w", err)
	}

	weevil, err := update(ctx, c.session, weevilPath(id), &weevilUpdateBody{Script: script}, weevils.HydrateWeevil,
		target{resource: weevils.KindWeevil, key: id.String()})
	if err != nil {
		return nil, fmt.Errorf("updating weevil: %w", err)
	}

	return weevil, nil
}

// Delete implements weevils.WeevilsClient.Delete.
func (c *WeevilsClient) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	err := weevils.RequireID(id)
	if err != nil {
		return false, fmt.Errorf("deleting weevil: %w", err)
	}

	deleted, err := remove(ctx, c.session, weevilPath(id), target{resource: weevils.KindWeevil, key: id.String()})
	if err != nil {
		return false, fmt.Errorf("deleting weevil: %w", err)
	}

	return deleted, nil
}

// Instance implements weevils.WeevilsClient.Instance.
func (c *WeevilsClient) Instance(ctx context.Context, idOrSlug string) (weevils.WeevilInstance, error) {
	weevil, err := c.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	return newWeevilInstance(c.handle(), *weevil), nil
}

func weevilPath(id uuid.UUID) string {
	return "/weevils/" + id.String() + "/"
}

// baseImageID accepts a BaseImage record or the id of one. Slugs are
// rejected: the base is never looked up by name here.
func baseImageID(base any) (uuid.UUID, error) {
	var id uuid.UUID

	switch value := base.(type) {
	case weevils.BaseImage:
		id = value.ID
	case *weevils.BaseImage:
		if value != nil {
			id = value.ID
		}
	case uuid.UUID:
		id = value
	case string:
		parsed, err := uuid.Parse(strings.TrimSpace(value))
		if err == nil {
			id = parsed
		}
	}

	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w, got %v", weevils.ErrInvalidBaseImage, base)
	}

	return id, nil
}
