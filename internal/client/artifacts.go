package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// ArtifactsClient implements weevils.ArtifactsClient.
type ArtifactsClient struct {
	*session
}

// NewArtifactsClient creates a new artifacts client.
func NewArtifactsClient(s *session) *ArtifactsClient {
	return &ArtifactsClient{session: s}
}

// Get implements weevils.ArtifactsClient.Get.
func (c *ArtifactsClient) Get(ctx context.Context, id uuid.UUID) (*weevils.Artifact, error) {
	err := weevils.RequireID(id)
	if err != nil {
		return nil, fmt.Errorf("getting artifact: %w", err)
	}

	artifact, err := getOne(ctx, c.session, "/artifacts/"+id.String()+"/", nil, weevils.HydrateArtifact,
		target{resource: weevils.KindArtifact, key: id.String()})
	if err != nil {
		return nil, fmt.Errorf("getting artifact: %w", err)
	}

	return artifact, nil
}

// List implements weevils.ArtifactsClient.List.
func (c *ArtifactsClient) List(ctx context.Context, opts weevils.ArtifactListOptions) ([]weevils.Artifact, error) {
	query := pageQuery(opts.Page)
	setID(query, "job_id", opts.JobID)

	artifacts, err := getMany(ctx, c.session, "/artifacts/", query, weevils.HydrateArtifact)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}

	return artifacts, nil
}
