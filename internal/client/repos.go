package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// ErrEmptyRepositoryName is returned by GetByName when owner or name is blank.
var ErrEmptyRepositoryName = fmt.Errorf("%w: repository owner and name are required", weevils.ErrUsage)

// ReposClient implements weevils.ReposClient.
type ReposClient struct {
	*session
}

// NewReposClient creates a new repositories client.
func NewReposClient(s *session) *ReposClient {
	return &ReposClient{session: s}
}

// Get implements weevils.ReposClient.Get.
func (c *ReposClient) Get(ctx context.Context, id uuid.UUID) (*weevils.Repository, error) {
	return getRepository(ctx, c.session, id, uuid.Nil)
}

// List implements weevils.ReposClient.List.
func (c *ReposClient) List(ctx context.Context, opts weevils.RepositoryListOptions) ([]weevils.Repository, error) {
	query := pageQuery(opts.Page)
	setID(query, "host_id", opts.HostID)
	setID(query, "owner_id", opts.OwnerID)

	repos, err := getMany(ctx, c.session, "/repos/", query, weevils.HydrateRepository)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	return repos, nil
}

// Create implements weevils.ReposClient.Create.
func (c *ReposClient) Create(ctx context.Context, request *weevils.RepositoryCreateRequest) (*weevils.Repository, error) {
	err := weevils.RequireID(request.HostID)
	if err != nil {
		return nil, fmt.Errorf("creating repository: host: %w", err)
	}

	repo, err := create(ctx, c.session, "/repos/", request, weevils.HydrateRepository)
	if err != nil {
		return nil, fmt.Errorf("creating repository: %w", err)
	}

	return repo, nil
}

// Instance implements weevils.ReposClient.Instance.
func (c *ReposClient) Instance(ctx context.Context, id uuid.UUID) (weevils.RepositoryInstance, error) {
	repo, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return newRepositoryInstance(c.handle(), *repo), nil
}

// HostReposClient implements weevils.HostReposClient.
type HostReposClient struct {
	*session
	hostID uuid.UUID
}

// NewHostReposClient creates a repositories client limited to one host.
func NewHostReposClient(s *session, hostID uuid.UUID) *HostReposClient {
	return &HostReposClient{session: s, hostID: hostID}
}

// Get implements weevils.HostReposClient.Get.
func (c *HostReposClient) Get(ctx context.Context, id uuid.UUID) (*weevils.Repository, error) {
	return getRepository(ctx, c.session, id, c.hostID)
}

// GetByName implements weevils.HostReposClient.GetByName.
func (c *HostReposClient) GetByName(ctx context.Context, ownerName, name string) (*weevils.Repository, error) {
	ownerName = strings.TrimSpace(ownerName)
	name = strings.TrimSpace(name)

	if ownerName == "" || name == "" {
		return nil, fmt.Errorf("getting repository: %w", ErrEmptyRepositoryName)
	}

	path := fmt.Sprintf("/hosts/%s/repos/%s/%s/", c.hostID, url.PathEscape(ownerName), url.PathEscape(name))

	repo, err := getOne(ctx, c.session, path, nil, weevils.HydrateRepository,
		target{resource: weevils.KindRepository, key: ownerName + "/" + name})
	if err != nil {
		return nil, fmt.Errorf("getting repository: %w", err)
	}

	return repo, nil
}

// List implements weevils.HostReposClient.List.
func (c *HostReposClient) List(ctx context.Context, page weevils.Page) ([]weevils.Repository, error) {
	repos, err := getMany(ctx, c.session, "/hosts/"+c.hostID.String()+"/repos/", pageQuery(page), weevils.HydrateRepository)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	return repos, nil
}

func getRepository(ctx context.Context, s *session, id, hostID uuid.UUID) (*weevils.Repository, error) {
	err := weevils.RequireID(id)
	if err != nil {
		return nil, fmt.Errorf("getting repository: %w", err)
	}

	repo, err := getOne(ctx, s, "/repos/"+id.String()+"/", idQuery("host_id", hostID),
		weevils.HydrateRepository, target{resource: weevils.KindRepository, key: id.String()})
	if err != nil {
		return nil, fmt.Errorf("getting repository: %w", err)
	}

	return repo, nil
}
