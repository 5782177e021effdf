// Package weevils provides types, interfaces, and helpers for working with the
// Weevils build-automation API.
//
// # Overview
//
// The weevils package defines the resource records (GitHost, Account,
// Repository, BaseImage, Weevil, Job, Artifact, User) and the interfaces of
// the resource-oriented clients (HostsClient, WeevilsClient, JobsClient, ...).
// A concrete implementation is provided by the weevilsclient package, which
// wires configuration, transport and credentials. Most consumers import
// weevilsclient to construct a client and then use the interfaces here.
//
//	cli, err := weevilsclient.New(&weevils.Config{APIToken: token})
//	if err != nil { log.Fatal(err) }
//
//	jobs, err := cli.Jobs().List(ctx, weevils.JobListOptions{WeevilID: id})
//	if err != nil { log.Fatal(err) }
//
// # Sub-clients and handles
//
// Accessors such as Hosts() or Weevils() build their client on first use and
// return the same instance afterwards. Handles (GitHostInstance,
// WeevilInstance, RepositoryInstance) pair a record with the operations
// scoped to it:
//
//	github, err := cli.Github(ctx)
//	repo, err := github.Repos().GetByName(ctx, "carlio", "django-flows")
//
// # Users
//
// Login switches a client, and every sub-client it has built or will build,
// to a user token; requests are then sent with "Authorization: Bearer" and
// see only what that user can see. Logout returns to the API token.
//
// # Errors
//
// Statuses the API answers with are mapped to a *ResponseError whose Kind is
// one of a closed set; errors.Is matches the sentinels (ErrWriteConflict,
// ErrEntityNotFound, ...). Invalid arguments fail with an error wrapping
// ErrUsage before any request is sent, and failures to reach the API at all
// are reported as *ConnectionError.
package weevils
