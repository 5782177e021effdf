package client

import (
	"context"
	"fmt"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// HostsClient implements weevils.HostsClient.
type HostsClient struct {
	*session
}

// NewHostsClient creates a new hosts client.
func NewHostsClient(s *session) *HostsClient {
	return &HostsClient{session: s}
}

// Get implements weevils.HostsClient.Get.
func (c *HostsClient) Get(ctx context.Context, idOrSlug string) (*weevils.GitHost, error) {
	key, err := weevils.ParseLookupKey(idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("getting host: %w", err)
	}

	host, err := getOne(ctx, c.session, "/hosts/"+key.String()+"/", nil, weevils.HydrateGitHost,
		target{resource: weevils.KindGitHost, key: key.String()})
	if err != nil {
		return nil, fmt.Errorf("getting host: %w", err)
	}

	return host, nil
}

// List implements weevils.HostsClient.List.
func (c *HostsClient) List(ctx context.Context, page weevils.Page) ([]weevils.GitHost, error) {
	hosts, err := getMany(ctx, c.session, "/hosts/", pageQuery(page), weevils.HydrateGitHost)
	if err != nil {
		return nil, fmt.Errorf("listing hosts: %w", err)
	}

	return hosts, nil
}

// Create implements weevils.HostsClient.Create.
func (c *HostsClient) Create(ctx context.Context, request *weevils.HostCreateRequest) (*weevils.GitHost, error) {
	host, err := create(ctx, c.session, "/hosts/", request, weevils.HydrateGitHost)
	if err != nil {
		return nil, fmt.Errorf("creating host: %w", err)
	}

	return host, nil
}

// Instance implements weevils.HostsClient.Instance.
func (c *HostsClient) Instance(ctx context.Context, idOrSlug string) (weevils.GitHostInstance, error) {
	host, err := c.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	return newHostInstance(c.handle(), *host), nil
}
