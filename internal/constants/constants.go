package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Pagination defaults.
const (
	// DefaultOffset is the offset sent when the caller gives none.
	DefaultOffset = 0

	// DefaultLimit is the page size sent when the caller gives none.
	DefaultLimit = 100
)

// HTTP headers and media types.
const (
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"

	MediaTypeJSON = "application/json"

	// AuthSchemeToken prefixes the account-level API token.
	AuthSchemeToken = "Token"

	// AuthSchemeBearer prefixes a user-session token.
	AuthSchemeBearer = "Bearer"
)

// Environment variables.
const (
	// EnvAPIToken holds the account-level API token.
	EnvAPIToken = "WEEVILS_API_TOKEN"

	// EnvAPIURL overrides the API base URL.
	EnvAPIURL = "WEEVILS_API_URL"

	// EnvPrefix is the viper prefix used by the CLI.
	EnvPrefix = "WEEVILS"
)

// CLI configuration.
const (
	// ConfigDirName is created under the user's home directory.
	ConfigDirName = ".weevils"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the config file format.
	ConfigFileType = "yml"
)

// Host slugs with special handling.
const (
	// GithubSlug is the slug of the public GitHub host.
	GithubSlug = "github"
)

// Format constants.
const (
	// FormatJSON represents JSON format.
	FormatJSON = "json"

	// FormatYAML represents YAML format.
	FormatYAML = "yaml"

	// FormatTable represents table format.
	FormatTable = "table"
)
