package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// ClickFunnels hosts and paths.
const (
	// DefaultDomain is the public ClickFunnels 2.0 domain.
	DefaultDomain = "myclickfunnels.com"

	// AccountsSubdomain serves the account-level API (teams, workspaces, /me).
	AccountsSubdomain = "accounts"

	// APIPath is the versioned API prefix shared by both hosts.
	APIPath = "/api/v2"

	// WorkspacesPath prefixes every workspace-scoped endpoint.
	WorkspacesPath = "/workspaces"

	// MePath is the credential test endpoint on the accounts host.
	MePath = "/me"
)

// Pagination.
const (
	// HeaderPaginationNext carries the cursor for the next page.
	HeaderPaginationNext = "Pagination-Next"

	// HeaderLink carries the RFC 8288 link header, passed through untouched.
	HeaderLink = "Link"

	// QueryAfter is the query parameter the cursor is sent back in.
	QueryAfter = "after"

	// QueryPerPage limits the size of a single page.
	QueryPerPage = "per_page"

	// MaxPaginatedItems stops cursor pagination once exceeded.
	MaxPaginatedItems = 10000

	// MinPageLimit is the smallest accepted limit for a non-returnAll list.
	MinPageLimit = 1

	// MaxPageLimit is the largest accepted limit for a non-returnAll list.
	MaxPageLimit = 100

	// DefaultPageLimit is used when no limit is supplied.
	DefaultPageLimit = 50
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations like the credential test.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Requests are not retried unless a caller opts in.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// HTTP status codes commonly used.
const (
	// HTTPStatusBadRequest is the first client error status.
	HTTPStatusBadRequest = 400

	// HTTPStatusInternalServerError is the first server error status.
	HTTPStatusInternalServerError = 500
)

// Cache sizes and lifetimes.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute

	// CacheMinTTL is the minimum cache time-to-live.
	CacheMinTTL = 30 * time.Second

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024

	// OptionsCacheTTL is the TTL for dropdown option lists.
	OptionsCacheTTL = 2 * time.Minute

	// DefaultNATSBucket is the KV bucket used when none is configured.
	DefaultNATSBucket = "clickfunnels-cache"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// StringTruncationLength is the default length for truncating table cells.
	StringTruncationLength = 80
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// KeyValueSplitParts is the number of parts when splitting key=value strings.
	KeyValueSplitParts = 2

	// TokenVisiblePrefix is how many characters of a token are shown unmasked.
	TokenVisiblePrefix = 4

	// FingerprintLength is how many hex characters of the token hash go into cache keys.
	FingerprintLength = 8
)

// Rate limiting.
const (
	// DefaultRequestsPerSecond is used when rate limiting is enabled without a value.
	DefaultRequestsPerSecond = 5
)

// CLI configuration.
const (
	// ConfigDirName is the configuration directory under the user's home.
	ConfigDirName = ".clickfunnels"

	// ConfigFileName is the configuration file inside ConfigDirName.
	ConfigFileName = "config.yml"

	// EnvPrefix prefixes every environment variable read by the CLI.
	EnvPrefix = "CLICKFUNNELS"

	// MinimumArgumentCount is the argument count of "config set KEY VALUE".
	MinimumArgumentCount = 2

	// BooleanTrue string representation.
	BooleanTrue = "true"
)
