package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// HostAppsClient implements weevils.HostAppsClient.
type HostAppsClient struct {
	*session
	hostID uuid.UUID
}

// NewHostAppsClient creates a new host apps client, limited to hostID unless
// it is nil.
func NewHostAppsClient(s *session, hostID uuid.UUID) *HostAppsClient {
	return &HostAppsClient{session: s, hostID: hostID}
}

// Get implements weevils.HostAppsClient.Get.
func (c *HostAppsClient) Get(ctx context.Context, id uuid.UUID) (*weevils.GitHostApp, error) {
	err := weevils.RequireID(id)
	if err != nil {
		return nil, fmt.Errorf("getting host app: %w", err)
	}

	app, err := getOne(ctx, c.session, "/host_apps/"+id.String()+"/", idQuery("host_id", c.hostID),
		weevils.HydrateGitHostApp, target{resource: weevils.KindGitHostApp, key: id.String()})
	if err != nil {
		return nil, fmt.Errorf("getting host app: %w", err)
	}

	return app, nil
}

// List implements weevils.HostAppsClient.List.
func (c *HostAppsClient) List(ctx context.Context, opts weevils.HostAppListOptions) ([]weevils.GitHostApp, error) {
	query := pageQuery(opts.Page)

	hostID := opts.HostID
	if c.hostID != uuid.Nil {
		hostID = c.hostID
	}

	setID(query, "host_id", hostID)

	apps, err := getMany(ctx, c.session, "/host_apps/", query, weevils.HydrateGitHostApp)
	if err != nil {
		return nil, fmt.Errorf("listing host apps: %w", err)
	}

	return apps, nil
}

// Create implements weevils.HostAppsClient.Create.
func (c *HostAppsClient) Create(ctx context.Context, request *weevils.HostAppCreateRequest) (*weevils.GitHostApp, error) {
	body := *request
	if c.hostID != uuid.Nil {
		body.HostID = c.hostID
	}

	err := weevils.RequireID(body.HostID)
	if err != nil {
		return nil, fmt.Errorf("creating host app: host: %w", err)
	}

	app, err := create(ctx, c.session, "/host_apps/", &body, weevils.HydrateGitHostApp)
	if err != nil {
		return nil, fmt.Errorf("creating host app: %w", err)
	}

	return app, nil
}
