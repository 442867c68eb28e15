package clickfunnels

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrAPITokenRequired = errors.New("API token is required")
	ErrInvalidDomain    = errors.New("invalid domain")
)

// ResponseHeaders holds the response headers the pagination driver cares about.
type ResponseHeaders struct {
	PaginationNext string `json:"pagination_next,omitempty" yaml:"pagination_next,omitempty"`
	Link           string `json:"link,omitempty"            yaml:"link,omitempty"`
}

// Envelope is a decoded response body together with its pagination headers.
type Envelope struct {
	Body    json.RawMessage `json:"body"    yaml:"body"`
	Headers ResponseHeaders `json:"headers" yaml:"headers"`
}

// AccountsClient issues requests against the accounts host.
type AccountsClient interface {
	RequestAccounts(ctx context.Context, method, path string, body interface{}, query url.Values) (json.RawMessage, error)
	RequestAccountsWithHeaders(ctx context.Context, method, path string, body interface{}, query url.Values) (*Envelope, error)
	RequestAllAccounts(ctx context.Context, method, path string, body interface{}, query url.Values) ([]json.RawMessage, error)
	AccountsPages(ctx context.Context, method, path string, body interface{}, query url.Values) *PaginationIterator
	Me(ctx context.Context) (json.RawMessage, error)
}

// TenantClient issues requests against the tenant host of a workspace.
type TenantClient interface {
	RequestTenant(ctx context.Context, method, path string, body interface{}, query url.Values, subdomain string) (json.RawMessage, error)
	RequestTenantWithHeaders(ctx context.Context, method, path string, body interface{}, query url.Values, subdomain string) (*Envelope, error)
	RequestAllTenant(ctx context.Context, method, path string, body interface{}, query url.Values, subdomain string) ([]json.RawMessage, error)
	TenantPages(ctx context.Context, method, path string, body interface{}, query url.Values, subdomain string) *PaginationIterator
}

// Client is the authenticated request executor used by the workflow node.
type Client interface {
	AccountsClient
	TenantClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a clickfunnels.Client.
//
// # Authentication
//
// ClickFunnels uses a single workspace API token sent as a Bearer token on
// every request. cfclient.New rejects a Config without one.
//
// # Timeouts, retries, and rate limiting
//
// Per-request timeouts should generally be controlled via context passed to
// client methods; HTTPTimeout is a backstop on the underlying http.Client.
// Requests are not retried unless RetryMax is raised above zero, in which case
// 5xx, 429 and connection errors are retried with backoff between
// RetryWaitMin and RetryWaitMax. RateLimit, when positive, caps the number of
// requests per second issued by the client.
type Config struct {
	// APIToken is the ClickFunnels API token.
	APIToken string

	// Domain overrides the API domain (default "myclickfunnels.com"). Hosts are
	// built as "accounts.<domain>" and "<subdomain>.<domain>".
	Domain string

	// AccountsURL and TenantURLTemplate override the full base URLs. The
	// template must contain "{subdomain}". Mostly useful for tests.
	AccountsURL       string
	TenantURLTemplate string

	HTTPTimeout  time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// RateLimit is the maximum number of requests per second; 0 disables it.
	RateLimit int

	// Debug enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer and the node.
	Logger Logger
	// UserAgent overrides the default User-Agent header sent by the client.
	UserAgent string
	// Headers are extra headers added to every request.
	Headers map[string]string
	// Metrics, when set, receives per-endpoint request statistics.
	Metrics *MetricsCollector
}
