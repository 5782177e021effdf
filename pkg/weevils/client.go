package weevils

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
)

// Version is the client library version reported in the User-Agent header.
const Version = "0.4.0"

// API base URLs.
const (
	DefaultAPIURL = "https://api.weevils.io"
	SandboxAPIURL = "https://api.sandbox.weevils.io"
)

// DefaultUserAgent identifies this library and the Go runtime.
var DefaultUserAgent = fmt.Sprintf("Weevils Client v%s (%s)", Version, runtime.Version())

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
type Config struct {
	// APIToken is the account-level API token. Required, even when a user
	// token is also given.
	APIToken string
	// APIURL is the root API URL. Defaults to DefaultAPIURL.
	APIURL string
	// UserToken, when set, logs the client in as that user from the start.
	UserToken string
	// UserAgent overrides DefaultUserAgent.
	UserAgent string
	// HTTPClient is the transport requests are sent through. It is shared by
	// every sub-client and instance handle. Defaults to a pooled client.
	HTTPClient *http.Client
	// Timeout applies to the default HTTPClient only.
	Timeout time.Duration
	// Logger receives transport logs. Nothing is logged when nil.
	Logger Logger
	// Debug logs every request and response at debug level.
	Debug bool
}

// Page selects a window of a collection. A zero Limit means the default of 100.
type Page struct {
	Offset int
	Limit  int
}

// Session controls which credential requests are sent with.
type Session interface {
	// Login makes every request, from this client and its sub-clients, act
	// as the user owning token.
	Login(token string)
	// Logout returns to the account-level API token.
	Logout()
	// LoggedIn reports whether a user token is active.
	LoggedIn() bool
}

// Client is the root of the Weevils client tree. Sub-client accessors return
// the same instance on every call.
type Client interface {
	Session

	Hosts() HostsClient
	Accounts() AccountsClient
	HostApps() HostAppsClient
	Repos() ReposClient
	BaseImages() BaseImagesClient
	Weevils() WeevilsClient
	Jobs() JobsClient
	Artifacts() ArtifactsClient

	// Me returns the user the client is acting as.
	Me(ctx context.Context) (*User, error)
	// Github returns the handle of the "github" host, looked up once.
	Github(ctx context.Context) (GitHostInstance, error)
	// Become returns a new client acting as the user owning token. The
	// receiver is left unchanged.
	Become(token string) Client

	// HostInstance wraps a GitHost record in a handle.
	HostInstance(res Resource) (GitHostInstance, error)
	// WeevilInstance wraps a Weevil record in a handle.
	WeevilInstance(res Resource) (WeevilInstance, error)
	// RepositoryInstance wraps a Repository record in a handle.
	RepositoryInstance(res Resource) (RepositoryInstance, error)
}

// HostCreateRequest represents a request to register a git host.
type HostCreateRequest struct {
	Name     string `json:"name"      yaml:"name"`
	APIURL   string `json:"api_url"   yaml:"api_url"`
	CloneURL string `json:"clone_url" yaml:"clone_url"`
}

// HostsClient manages git hosts.
type HostsClient interface {
	Get(ctx context.Context, idOrSlug string) (*GitHost, error)
	List(ctx context.Context, page Page) ([]GitHost, error)
	Create(ctx context.Context, request *HostCreateRequest) (*GitHost, error)
	// Instance looks a host up and wraps it in a handle.
	Instance(ctx context.Context, idOrSlug string) (GitHostInstance, error)
}

// AccountListOptions filters account listings.
type AccountListOptions struct {
	Page
	HostID uuid.UUID
}

// AccountCreateRequest represents a request to add an account on a host.
type AccountCreateRequest struct {
	HostID uuid.UUID `json:"host_id" yaml:"host_id"`
	Name   string    `json:"name"    yaml:"name"`
}

// AccountsClient manages git host accounts.
type AccountsClient interface {
	Get(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context, opts AccountListOptions) ([]Account, error)
	Create(ctx context.Context, request *AccountCreateRequest) (*Account, error)
}

// HostAppListOptions filters host app listings.
type HostAppListOptions struct {
	Page
	HostID uuid.UUID
}

// HostAppCreateRequest represents a request to register an OAuth app on a host.
type HostAppCreateRequest struct {
	HostID       uuid.UUID `json:"host_id"       yaml:"host_id"`
	Name         string    `json:"name"          yaml:"name"`
	ClientID     string    `json:"client_id"     yaml:"client_id"`
	ClientSecret string    `json:"client_secret" yaml:"-"`
}

// HostAppsClient manages git host apps.
type HostAppsClient interface {
	Get(ctx context.Context, id uuid.UUID) (*GitHostApp, error)
	List(ctx context.Context, opts HostAppListOptions) ([]GitHostApp, error)
	Create(ctx context.Context, request *HostAppCreateRequest) (*GitHostApp, error)
}

// RepositoryListOptions filters repository listings.
type RepositoryListOptions struct {
	Page
	HostID  uuid.UUID
	OwnerID uuid.UUID
}

// RepositoryCreateRequest represents a request to track a repository.
type RepositoryCreateRequest struct {
	HostID    uuid.UUID `json:"host_id"    yaml:"host_id"`
	OwnerName string    `json:"owner_name" yaml:"owner_name"`
	Name      string    `json:"name"       yaml:"name"`
}

// ReposClient manages repositories across hosts.
type ReposClient interface {
	Get(ctx context.Context, id uuid.UUID) (*Repository, error)
	List(ctx context.Context, opts RepositoryListOptions) ([]Repository, error)
	Create(ctx context.Context, request *RepositoryCreateRequest) (*Repository, error)
	// Instance looks a repository up and wraps it in a handle.
	Instance(ctx context.Context, id uuid.UUID) (RepositoryInstance, error)
}

// HostReposClient reads the repositories of a single host.
type HostReposClient interface {
	Get(ctx context.Context, id uuid.UUID) (*Repository, error)
	GetByName(ctx context.Context, ownerName, name string) (*Repository, error)
	List(ctx context.Context, page Page) ([]Repository, error)
}

// BaseImagesClient reads base images.
type BaseImagesClient interface {
	Get(ctx context.Context, idOrSlug string) (*BaseImage, error)
	List(ctx context.Context, page Page) ([]BaseImage, error)
}

// WeevilCreateRequest represents a request to create a weevil. Base is a
// BaseImage record or the id of one, as a string or uuid.UUID.
type WeevilCreateRequest struct {
	Base   any
	Name   string
	Script string
	// Slug overrides the slug the service derives from Name.
	Slug string
}

// WeevilsClient manages weevils.
type WeevilsClient interface {
	Get(ctx context.Context, idOrSlug string) (*Weevil, error)
	List(ctx context.Context, page Page) ([]Weevil, error)
	Create(ctx context.Context, request *WeevilCreateRequest) (*Weevil, error)
	Update(ctx context.Context, id uuid.UUID, script string) (*Weevil, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// Instance looks a weevil up and wraps it in a handle.
	Instance(ctx context.Context, idOrSlug string) (WeevilInstance, error)
}

// JobListOptions filters job listings.
type JobListOptions struct {
	Page
	WeevilID     uuid.UUID
	RepositoryID uuid.UUID
}

// JobsClient manages jobs.
type JobsClient interface {
	Get(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context, opts JobListOptions) ([]Job, error)
	Create(ctx context.Context, weevilID, repositoryID uuid.UUID) (*Job, error)
}

// WeevilJobsClient manages the jobs of a single weevil.
type WeevilJobsClient interface {
	Get(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context, page Page) ([]Job, error)
	Create(ctx context.Context, repositoryID uuid.UUID) (*Job, error)
}

// RepositoryJobsClient reads the jobs run against a single repository.
type RepositoryJobsClient interface {
	List(ctx context.Context, page Page) ([]Job, error)
}

// ArtifactListOptions filters artifact listings.
type ArtifactListOptions struct {
	Page
	JobID uuid.UUID
}

// ArtifactsClient reads job artifacts.
type ArtifactsClient interface {
	Get(ctx context.Context, id uuid.UUID) (*Artifact, error)
	List(ctx context.Context, opts ArtifactListOptions) ([]Artifact, error)
}

// GitHostInstance is a git host together with the operations scoped to it.
type GitHostInstance interface {
	Session

	ID() uuid.UUID
	Name() string
	Slug() string
	Private() bool
	// Record returns a copy of the wrapped record.
	Record() GitHost

	Repos() HostReposClient
	Accounts() AccountsClient
	Apps() HostAppsClient
}

// WeevilInstance is a weevil together with the operations scoped to it.
type WeevilInstance interface {
	Session

	ID() uuid.UUID
	Name() string
	Slug() string
	Script() string
	BuildStatus() string
	Record() Weevil

	Jobs() WeevilJobsClient
	// Run starts a job of this weevil against a repository.
	Run(ctx context.Context, repositoryID uuid.UUID) (*Job, error)
	// Update replaces the script and returns the updated record. The handle
	// keeps wrapping the record it was built with.
	Update(ctx context.Context, script string) (*Weevil, error)
}

// RepositoryInstance is a repository together with the operations scoped to it.
type RepositoryInstance interface {
	Session

	ID() uuid.UUID
	Name() string
	FullName() string
	Private() bool
	URLOnHost() string
	Owner() Account
	Host() GitHost
	Record() Repository

	Jobs() RepositoryJobsClient
}
