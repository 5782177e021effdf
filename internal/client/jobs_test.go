package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

func TestJobsClient_ListFiltersByWeevil(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(t, r)
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"count":   1,
			"results": []weevils.Job{testJob()},
		})
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	jobs, err := client.Jobs().List(context.Background(), weevils.JobListOptions{WeevilID: weevilID})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, jobID, job.ID)
	assert.Equal(t, "finished", job.Status)
	assert.Equal(t, testRepository(), job.Repository)
	assert.Equal(t, githubHost(), job.Repository.Host)
	assert.Equal(t, ownerAccount(), job.Repository.Owner)
	require.Len(t, job.Artifacts, 1)
	assert.Equal(t, artifactID, job.Artifacts[0].ID)

	requests := rec.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "/jobs/", requests[0].Path)
	assert.Equal(t, map[string]string{
		"weevil_id": weevilID.String(),
		"offset":    "0",
		"limit":     "100",
	}, requests[0].Query)
}

func TestJobsClient_NestedRecordWithoutID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		job := testJob()
		job.Repository.Owner.Host.ID = uuid.Nil
		writeJSON(t, w, http.StatusOK, job)
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	job, err := client.Jobs().Get(context.Background(), jobID)
	require.ErrorIs(t, err, weevils.ErrIncompleteRecord)
	require.ErrorIs(t, err, weevils.ErrUnhandledResponse)
	assert.Nil(t, job)
}

func TestJobsClient_Create(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(t, r)
		writeJSON(t, w, http.StatusCreated, testJob())
	}))
	defer server.Close()

	client, transport := NewCountingClient(t, server)
	ctx := context.Background()

	_, err := client.Jobs().Create(ctx, uuid.Nil, repoID)
	require.ErrorIs(t, err, weevils.ErrUsage)
	assert.Equal(t, int32(0), transport.calls.Load())

	job, err := client.Jobs().Create(ctx, weevilID, repoID)
	require.NoError(t, err)
	assert.Equal(t, jobID, job.ID)

	requests := rec.all()
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]interface{}{
		"weevil_id":     weevilID.String(),
		"repository_id": repoID.String(),
	}, requests[0].Body)
}

func TestWeevilJobsClient_Get(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[weevils.Job]{
		{
			Name:          "scoped to weevil",
			Key:           jobID.String(),
			ExpectedPath:  "/jobs/" + jobID.String() + "/",
			ExpectedQuery: map[string]string{"weevil_id": weevilID.String()},
			StatusCode:    http.StatusOK,
			Response:      testJob(),
		},
		{
			Name:       "job of another weevil",
			Key:        jobID.String(),
			StatusCode: http.StatusNotFound,
			WantErr:    weevils.ErrEntityNotFound,
		},
	}

	RunGetTests(t, tests, func(c *Client) func(string) (*weevils.Job, error) {
		return func(key string) (*weevils.Job, error) {
			handle, err := c.WeevilInstance(testWeevil())
			if err != nil {
				return nil, err
			}

			return handle.Jobs().Get(context.Background(), uuid.MustParse(key))
		}
	})
}

func TestRepositoryInstance_Jobs(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := rec.record(t, r)
		if got.Path == "/repos/"+repoID.String()+"/" {
			writeJSON(t, w, http.StatusOK, testRepository())

			return
		}

		writeJSON(t, w, http.StatusOK, []weevils.Job{testJob()})
	}))
	defer server.Close()

	client := NewTestClient(t, server)
	ctx := context.Background()

	repo, err := client.Repos().Instance(ctx, repoID)
	require.NoError(t, err)
	assert.Equal(t, "carlio/django-flows", repo.FullName())
	assert.Equal(t, ownerAccount(), repo.Owner())
	assert.Equal(t, githubHost(), repo.Host())
	assert.Equal(t, "https://github.com/carlio/django-flows", repo.URLOnHost())
	assert.False(t, repo.Private())

	jobs, err := repo.Jobs().List(ctx, weevils.Page{Limit: 5})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	requests := rec.all()
	require.Len(t, requests, 2)
	assert.Equal(t, map[string]string{
		"repository_id": repoID.String(),
		"offset":        "0",
		"limit":         "5",
	}, requests[1].Query)
}

func TestRepositoryJobsClient_ListOnly(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(t, r)
		writeJSON(t, w, http.StatusOK, []weevils.Job{testJob()})
	}))
	defer server.Close()

	client := NewTestClient(t, server)

	repo, err := client.RepositoryInstance(testRepository())
	require.NoError(t, err)

	jobs := repo.Jobs()

	type creator interface {
		Create(ctx context.Context, weevilID, repositoryID uuid.UUID) (*weevils.Job, error)
	}

	_, ok := jobs.(creator)
	assert.False(t, ok, "repository jobs must not start unscoped jobs")

	list, err := jobs.List(context.Background(), weevils.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	requests := rec.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "/jobs/", requests[0].Path)
	assert.Equal(t, repoID.String(), requests[0].Query["repository_id"])
	assert.Empty(t, requests[0].Query["weevil_id"])
}
