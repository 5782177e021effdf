package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// AccountsClient implements weevils.AccountsClient. When built from a host
// handle every request is limited to that host.
type AccountsClient struct {
	*session
	hostID uuid.UUID
}

// NewAccountsClient creates a new accounts client. A nil hostID leaves
// requests unfiltered.
func NewAccountsClient(s *session, hostID uuid.UUID) *AccountsClient {
	return &AccountsClient{session: s, hostID: hostID}
}

// Get implements weevils.AccountsClient.Get.
func (c *AccountsClient) Get(ctx context.Context, id uuid.UUID) (*weevils.Account, error) {
	err := weevils.RequireID(id)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	account, err := getOne(ctx, c.session, "/accounts/"+id.String()+"/", idQuery("host_id", c.hostID),
		weevils.HydrateAccount, target{resource: weevils.KindAccount, key: id.String()})
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	return account, nil
}

// List implements weevils.AccountsClient.List.
func (c *AccountsClient) List(ctx context.Context, opts weevils.AccountListOptions) ([]weevils.Account, error) {
	query := pageQuery(opts.Page)

	hostID := opts.HostID
	if c.hostID != uuid.Nil {
		hostID = c.hostID
	}

	setID(query, "host_id", hostID)

	accounts, err := getMany(ctx, c.session, "/accounts/", query, weevils.HydrateAccount)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	return accounts, nil
}

// Create implements weevils.AccountsClient.Create.
func (c *AccountsClient) Create(ctx context.Context, request *weevils.AccountCreateRequest) (*weevils.Account, error) {
	body := *request
	if c.hostID != uuid.Nil {
		body.HostID = c.hostID
	}

	err := weevils.RequireID(body.HostID)
	if err != nil {
		return nil, fmt.Errorf("creating account: host: %w", err)
	}

	account, err := create(ctx, c.session, "/accounts/", &body, weevils.HydrateAccount)
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	return account, nil
}
