package client

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/weevils-io/weevils-go/internal/auth"
	"github.com/weevils-io/weevils-go/internal/constants"
	"github.com/weevils-io/weevils-go/internal/http"
	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// Static errors for err113 compliance.
var (
	ErrAPIURLRequired = errors.New("API URL is required")
)

const keyGithub = "github"

// Client implements the weevils.Client interface.
type Client struct {
	*session

	baseURL string
	logger  weevils.Logger

	githubMutex sync.Mutex
	github      weevils.GitHostInstance
}

var (
	_ weevils.Client               = (*Client)(nil)
	_ weevils.HostsClient          = (*HostsClient)(nil)
	_ weevils.AccountsClient       = (*AccountsClient)(nil)
	_ weevils.HostAppsClient       = (*HostAppsClient)(nil)
	_ weevils.ReposClient          = (*ReposClient)(nil)
	_ weevils.HostReposClient      = (*HostReposClient)(nil)
	_ weevils.BaseImagesClient     = (*BaseImagesClient)(nil)
	_ weevils.WeevilsClient        = (*WeevilsClient)(nil)
	_ weevils.JobsClient           = (*JobsClient)(nil)
	_ weevils.WeevilJobsClient     = (*WeevilJobsClient)(nil)
	_ weevils.RepositoryJobsClient = (*RepositoryJobsClient)(nil)
	_ weevils.ArtifactsClient      = (*ArtifactsClient)(nil)
	_ weevils.GitHostInstance      = (*hostInstance)(nil)
	_ weevils.WeevilInstance       = (*weevilInstance)(nil)
	_ weevils.RepositoryInstance   = (*repositoryInstance)(nil)
)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *weevils.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	switch {
	case config.HTTPClient != nil:
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	case config.Timeout > 0:
		httpOpts = append(httpOpts, http.WithHTTPClient(&nethttp.Client{Timeout: config.Timeout}))
	}

	return httpOpts
}

// New creates a new Weevils API client. config.APIURL must already be
// normalized.
func New(config *weevils.Config) (*Client, error) {
	if config.APIToken == "" {
		return nil, weevils.ErrMissingAPIToken
	}

	if config.APIURL == "" {
		return nil, ErrAPIURLRequired
	}

	transport := http.NewClient(config.APIURL, createHTTPClientOptions(config)...)

	credentials := auth.NewCredentials(config.APIToken)
	if config.UserToken != "" {
		credentials.Login(config.UserToken)
	}

	return &Client{
		session: newSession(transport, credentials),
		baseURL: transport.BaseURL(),
		logger:  config.Logger,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Become implements weevils.Client.Become.
func (c *Client) Become(token string) weevils.Client {
	return &Client{
		session: newSession(c.transport, c.credentials.As(token)),
		baseURL: c.baseURL,
		logger:  c.logger,
	}
}

// Me implements weevils.Client.Me.
func (c *Client) Me(ctx context.Context) (*weevils.User, error) {
	user, err := getOne(ctx, c.session, "/accounts/me/", nil, weevils.HydrateUser,
		target{resource: weevils.KindUser, key: "me"})
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return user, nil
}

// Github implements weevils.Client.Github. Failed lookups are not cached.
func (c *Client) Github(ctx context.Context) (weevils.GitHostInstance, error) {
	c.githubMutex.Lock()
	defer c.githubMutex.Unlock()

	if c.github != nil {
		return c.github, nil
	}

	host, err := c.Hosts().Get(ctx, constants.GithubSlug)
	if err != nil {
		return nil, fmt.Errorf("getting github host: %w", err)
	}

	c.github = memo(c.children, keyGithub, func() *hostInstance {
		return newHostInstance(c.child(), *host)
	})

	return c.github, nil
}

// HostInstance implements weevils.Client.HostInstance.
func (c *Client) HostInstance(res weevils.Resource) (weevils.GitHostInstance, error) {
	host, err := wrap[weevils.GitHost](res, weevils.KindGitHost)
	if err != nil {
		return nil, err
	}

	return newHostInstance(c.handle(), host), nil
}

// WeevilInstance implements weevils.Client.WeevilInstance.
func (c *Client) WeevilInstance(res weevils.Resource) (weevils.WeevilInstance, error) {
	weevil, err := wrap[weevils.Weevil](res, weevils.KindWeevil)
	if err != nil {
		return nil, err
	}

	return newWeevilInstance(c.handle(), weevil), nil
}

// RepositoryInstance implements weevils.Client.RepositoryInstance.
func (c *Client) RepositoryInstance(res weevils.Resource) (weevils.RepositoryInstance, error) {
	repo, err := wrap[weevils.Repository](res, weevils.KindRepository)
	if err != nil {
		return nil, err
	}

	return newRepositoryInstance(c.handle(), repo), nil
}

// Resource client accessors

// Hosts implements weevils.Client.Hosts.
func (c *Client) Hosts() weevils.HostsClient {
	return memo(c.children, keyHosts, func() *HostsClient {
		return NewHostsClient(c.child())
	})
}

// Accounts implements weevils.Client.Accounts.
func (c *Client) Accounts() weevils.AccountsClient {
	return memo(c.children, keyAccounts, func() *AccountsClient {
		return NewAccountsClient(c.child(), uuid.Nil)
	})
}

// HostApps implements weevils.Client.HostApps.
func (c *Client) HostApps() weevils.HostAppsClient {
	return memo(c.children, keyHostApps, func() *HostAppsClient {
		return NewHostAppsClient(c.child(), uuid.Nil)
	})
}

// Repos implements weevils.Client.Repos.
func (c *Client) Repos() weevils.ReposClient {
	return memo(c.children, keyRepos, func() *ReposClient {
		return NewReposClient(c.child())
	})
}

// BaseImages implements weevils.Client.BaseImages.
func (c *Client) BaseImages() weevils.BaseImagesClient {
	return memo(c.children, keyBaseImages, func() *BaseImagesClient {
		return NewBaseImagesClient(c.child())
	})
}

// Weevils implements weevils.Client.Weevils.
func (c *Client) Weevils() weevils.WeevilsClient {
	return memo(c.children, keyWeevils, func() *WeevilsClient {
		return NewWeevilsClient(c.child())
	})
}

// Jobs implements weevils.Client.Jobs.
func (c *Client) Jobs() weevils.JobsClient {
	return memo(c.children, keyJobs, func() *JobsClient {
		return NewJobsClient(c.child())
	})
}

// Artifacts implements weevils.Client.Artifacts.
func (c *Client) Artifacts() weevils.ArtifactsClient {
	return memo(c.children, keyArtifacts, func() *ArtifactsClient {
		return NewArtifactsClient(c.child())
	})
}

// loggerAdapter adapts weevils.Logger to http.Logger.
type loggerAdapter struct {
	logger weevils.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
