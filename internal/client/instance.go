package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// Keys of the children memoized on handles and clients.
const (
	keyHosts      = "hosts"
	keyAccounts   = "accounts"
	keyHostApps   = "host_apps"
	keyRepos      = "repos"
	keyBaseImages = "base_images"
	keyWeevils    = "weevils"
	keyJobs       = "jobs"
	keyArtifacts  = "artifacts"
)

// hostInstance implements weevils.GitHostInstance.
type hostInstance struct {
	*session
	record weevils.GitHost
}

func newHostInstance(s *session, record weevils.GitHost) *hostInstance {
	return &hostInstance{session: s, record: record}
}

func (h *hostInstance) ID() uuid.UUID { return h.record.ID }
func (h *hostInstance) Name() string { return h.record.Name }
func (h *hostInstance) Slug() string { return h.record.Slug }
func (h *hostInstance) Private() bool { return h.record.Private }
func (h *hostInstance) Record() weevils.GitHost { return h.record }

// Repos implements weevils.GitHostInstance.Repos.
func (h *hostInstance) Repos() weevils.HostReposClient {
	return memo(h.children, keyRepos, func() *HostReposClient {
		return NewHostReposClient(h.child(), h.record.ID)
	})
}

// Accounts implements weevils.GitHostInstance.Accounts.
func (h *hostInstance) Accounts() weevils.AccountsClient {
	return memo(h.children, keyAccounts, func() *AccountsClient {
		return NewAccountsClient(h.child(), h.record.ID)
	})
}

// Apps implements weevils.GitHostInstance.Apps.
func (h *hostInstance) Apps() weevils.HostAppsClient {
	return memo(h.children, keyHostApps, func() *HostAppsClient {
		return NewHostAppsClient(h.child(), h.record.ID)
	})
}

// weevilInstance implements weevils.WeevilInstance.
type weevilInstance struct {
	*session
	record weevils.Weevil
}

func newWeevilInstance(s *session, record weevils.Weevil) *weevilInstance {
	return &weevilInstance{session: s, record: record}
}

func (w *weevilInstance) ID() uuid.UUID { return w.record.ID }
func (w *weevilInstance) Name() string { return w.record.Name }
func (w *weevilInstance) Slug() string { return w.record.Slug }
func (w *weevilInstance) Script() string { return w.record.Script }
func (w *weevilInstance) BuildStatus() string { return w.record.BuildStatus }
func (w *weevilInstance) Record() weevils.Weevil { return w.record }

// Jobs implements weevils.WeevilInstance.Jobs.
func (w *weevilInstance) Jobs() weevils.WeevilJobsClient {
	return memo(w.children, keyJobs, func() *WeevilJobsClient {
		return NewWeevilJobsClient(w.child(), w.record.ID)
	})
}

// Run implements weevils.WeevilInstance.Run.
func (w *weevilInstance) Run(ctx context.Context, repositoryID uuid.UUID) (*weevils.Job, error) {
	return w.Jobs().Create(ctx, repositoryID)
}

// Update implements weevils.WeevilInstance.Update.
func (w *weevilInstance) Update(ctx context.Context, script string) (*weevils.Weevil, error) {
	return NewWeevilsClient(w.session).Update(ctx, w.record.ID, script)
}

// repositoryInstance implements weevils.RepositoryInstance.
type repositoryInstance struct {
	*session
	record weevils.Repository
}

func newRepositoryInstance(s *session, record weevils.Repository) *repositoryInstance {
	return &repositoryInstance{session: s, record: record}
}

func (r *repositoryInstance) ID() uuid.UUID { return r.record.ID }
func (r *repositoryInstance) Name() string { return r.record.Name }
func (r *repositoryInstance) FullName() string { return r.record.FullName() }
func (r *repositoryInstance) Private() bool { return r.record.Private }
func (r *repositoryInstance) URLOnHost() string { return r.record.URLOnHost }
func (r *repositoryInstance) Owner() weevils.Account { return r.record.Owner }
func (r *repositoryInstance) Host() weevils.GitHost { return r.record.Host }
func (r *repositoryInstance) Record() weevils.Repository { return r.record }

// Jobs implements weevils.RepositoryInstance.Jobs.
func (r *repositoryInstance) Jobs() weevils.RepositoryJobsClient {
	return memo(r.children, keyJobs, func() *RepositoryJobsClient {
		return NewRepositoryJobsClient(r.child(), r.record.ID)
	})
}

// wrap checks that res is of kind and returns it as a T.
func wrap[T weevils.Resource](res weevils.Resource, kind weevils.Kind) (T, error) {
	var zero T

	if res == nil || res.Kind() != kind {
		return zero, fmt.Errorf("%w: want %s, got %s", weevils.ErrWrongResourceKind, kind, kindOf(res))
	}

	switch value := any(res).(type) {
	case T:
		return value, nil
	case *T:
		if value != nil {
			return *value, nil
		}
	}

	return zero, fmt.Errorf("%w: want %s, got %T", weevils.ErrWrongResourceKind, kind, res)
}

func kindOf(res weevils.Resource) string {
	if res == nil {
		return "nothing"
	}

	return string(res.Kind())
}
