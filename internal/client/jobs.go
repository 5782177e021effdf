package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

type jobCreateBody struct {
	WeevilID     uuid.UUID `json:"weevil_id"`
	RepositoryID uuid.UUID `json:"repository_id"`
}

// JobsClient implements weevils.JobsClient and backs the weevil- and
// repository-scoped clients. The scope ids, when set, are added to every
// request.
type JobsClient struct {
	*session
	weevilID     uuid.UUID
	repositoryID uuid.UUID
}

// NewJobsClient creates a new jobs client.
func NewJobsClient(s *session) *JobsClient {
	return &JobsClient{session: s}
}

// WeevilJobsClient is a JobsClient limited to one weevil.
type WeevilJobsClient struct {
	*JobsClient
}

// NewWeevilJobsClient creates a jobs client limited to weevilID.
func NewWeevilJobsClient(s *session, weevilID uuid.UUID) *WeevilJobsClient {
	return &WeevilJobsClient{JobsClient: &JobsClient{session: s, weevilID: weevilID}}
}

// RepositoryJobsClient reads the jobs of one repository. It exposes List
// only; jobs are started from a weevil.
type RepositoryJobsClient struct {
	*session
	jobs *JobsClient
}

// NewRepositoryJobsClient creates a jobs client limited to repositoryID.
func NewRepositoryJobsClient(s *session, repositoryID uuid.UUID) *RepositoryJobsClient {
	return &RepositoryJobsClient{
		session: s,
		jobs:    &JobsClient{session: s, repositoryID: repositoryID},
	}
}

// Get implements weevils.JobsClient.Get.
func (c *JobsClient) Get(ctx context.Context, id uuid.UUID) (*weevils.Job, error) {
	err := weevils.RequireID(id)
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}

	query := idQuery("weevil_id", c.weevilID)
	setID(query, "repository_id", c.repositoryID)

	job, err := getOne(ctx, c.session, "/jobs/"+id.String()+"/", query, weevils.HydrateJob,
		target{resource: weevils.KindJob, key: id.String()})
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}

	return job, nil
}

// List implements weevils.JobsClient.List.
func (c *JobsClient) List(ctx context.Context, opts weevils.JobListOptions) ([]weevils.Job, error) {
	query := pageQuery(opts.Page)

	weevilID := opts.WeevilID
	if c.weevilID != uuid.Nil {
		weevilID = c.weevilID
	}

	repositoryID := opts.RepositoryID
	if c.repositoryID != uuid.Nil {
		repositoryID = c.repositoryID
	}

	setID(query, "weevil_id", weevilID)
	setID(query, "repository_id", repositoryID)

	jobs, err := getMany(ctx, c.session, "/jobs/", query, weevils.HydrateJob)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	return jobs, nil
}

// Create implements weevils.JobsClient.Create.
func (c *JobsClient) Create(ctx context.Context, weevilID, repositoryID uuid.UUID) (*weevils.Job, error) {
	err := weevils.RequireID(weevilID)
	if err != nil {
		return nil, fmt.Errorf("creating job: weevil: %w", err)
	}

	err = weevils.RequireID(repositoryID)
	if err != nil {
		return nil, fmt.Errorf("creating job: repository: %w", err)
	}

	job, err := create(ctx, c.session, "/jobs/", &jobCreateBody{WeevilID: weevilID, RepositoryID: repositoryID}, weevils.HydrateJob)
	if err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	return job, nil
}

// List implements weevils.WeevilJobsClient.List.
func (c *WeevilJobsClient) List(ctx context.Context, page weevils.Page) ([]weevils.Job, error) {
	return c.JobsClient.List(ctx, weevils.JobListOptions{Page: page})
}

// Create implements weevils.WeevilJobsClient.Create.
func (c *WeevilJobsClient) Create(ctx context.Context, repositoryID uuid.UUID) (*weevils.Job, error) {
	return c.JobsClient.Create(ctx, c.weevilID, repositoryID)
}

// List implements weevils.RepositoryJobsClient.List.
func (c *RepositoryJobsClient) List(ctx context.Context, page weevils.Page) ([]weevils.Job, error) {
	return c.jobs.List(ctx, weevils.JobListOptions{Page: page})
}
