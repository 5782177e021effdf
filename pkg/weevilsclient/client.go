package weevilsclient

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/weevils-io/weevils-go/internal/client"
	"github.com/weevils-io/weevils-go/internal/constants"
	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")
)

// New creates a new Weevils API client. An empty APIURL selects
// weevils.DefaultAPIURL.
func New(config *weevils.Config) (weevils.Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	if config.APIToken == "" {
		return nil, weevils.ErrMissingAPIToken
	}

	apiURL, err := NormalizeURL(config.APIURL)
	if err != nil {
		return nil, err
	}

	normalized := *config
	normalized.APIURL = apiURL

	cli, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithToken creates a client for apiURL authenticated with apiToken.
func NewWithToken(apiURL, apiToken string) (weevils.Client, error) {
	return New(&weevils.Config{APIURL: apiURL, APIToken: apiToken})
}

// NewSandbox creates a client for the sandbox API.
func NewSandbox(apiToken string) (weevils.Client, error) {
	return NewWithToken(weevils.SandboxAPIURL, apiToken)
}

// FromEnv creates a client from WEEVILS_API_TOKEN and, when set,
// WEEVILS_API_URL.
func FromEnv() (weevils.Client, error) {
	token := strings.TrimSpace(os.Getenv(constants.EnvAPIToken))
	if token == "" {
		return nil, fmt.Errorf("%w: %s is not set", weevils.ErrMissingAPIToken, constants.EnvAPIToken)
	}

	return NewWithToken(os.Getenv(constants.EnvAPIURL), token)
}

// NormalizeURL trims trailing slashes and adds https:// when no scheme is
// given. An empty value yields weevils.DefaultAPIURL.
func NormalizeURL(apiURL string) (string, error) {
	apiURL = strings.TrimSpace(apiURL)
	if apiURL == "" {
		return weevils.DefaultAPIURL, nil
	}

	apiURL = strings.TrimRight(apiURL, "/")
	if !strings.HasPrefix(apiURL, "http://") && !strings.HasPrefix(apiURL, "https://") {
		apiURL = "https://" + apiURL
	}

	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Host == "" || parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", fmt.Errorf("%w: %q", weevils.ErrInvalidURL, apiURL)
	}

	return apiURL, nil
}
