// Package cfclient provides the main entry point for creating ClickFunnels API clients
package cfclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/clickfunnels-node/internal/auth"
	"github.com/fivetwenty-io/clickfunnels-node/internal/client"
	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	cfhttp "github.com/fivetwenty-io/clickfunnels-node/internal/http"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
)

// New creates a new ClickFunnels API client.
func New(ctx context.Context, config *clickfunnels.Config) (clickfunnels.Client, error) {
	if config == nil {
		return nil, clickfunnels.ErrConfigRequired
	}

	token := auth.NormalizeToken(config.APIToken)
	if token == "" {
		return nil, clickfunnels.ErrAPITokenRequired
	}

	domain, err := NormalizeDomain(config.Domain)
	if err != nil {
		return nil, err
	}

	config.Domain = domain

	transport := cfhttp.NewClient("", auth.NewStaticTokenManager(token), httpOptions(config)...)

	return client.New(transport,
		client.WithDomain(domain),
		client.WithAccountsURL(config.AccountsURL),
		client.WithTenantURLTemplate(config.TenantURLTemplate),
	), nil
}

// NewWithToken creates a new client for the default domain with an API token.
func NewWithToken(ctx context.Context, token string) (clickfunnels.Client, error) {
	return New(ctx, &clickfunnels.Config{
		APIToken: token,
	})
}

// NewWithDomain creates a new client for a custom domain with an API token.
func NewWithDomain(ctx context.Context, domain, token string) (clickfunnels.Client, error) {
	return New(ctx, &clickfunnels.Config{
		APIToken: token,
		Domain:   domain,
	})
}

// NormalizeDomain strips a scheme and trailing slashes from domain and
// checks that what remains is a bare host name. Empty means the default.
func NormalizeDomain(domain string) (string, error) {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimRight(domain, "/")

	if domain == "" {
		return constants.DefaultDomain, nil
	}

	for _, label := range strings.Split(domain, ".") {
		if clickfunnels.ValidateSubdomain(label) != nil {
			return "", fmt.Errorf("%w: %s", clickfunnels.ErrInvalidDomain, domain)
		}
	}

	return strings.ToLower(domain), nil
}

// httpOptions maps the public configuration onto transport options,
// assembling the interceptor chain in a fixed order: headers, rate limit,
// metrics, logging.
func httpOptions(config *clickfunnels.Config) []cfhttp.Option {
	opts := []cfhttp.Option{
		cfhttp.WithDebug(config.Debug),
		cfhttp.WithUserAgent(config.UserAgent),
		cfhttp.WithTimeout(config.HTTPTimeout),
	}

	if config.Logger != nil {
		opts = append(opts, cfhttp.WithLogger(config.Logger))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		if waitMin <= 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax <= 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, cfhttp.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	chain := clickfunnels.NewInterceptorChain()

	if len(config.Headers) > 0 {
		chain.AddRequestInterceptor(clickfunnels.HeaderInterceptor(config.Headers))
	}

	if config.RateLimit > 0 {
		chain.AddRequestInterceptor(clickfunnels.RateLimitInterceptor(config.RateLimit))
	}

	if config.Metrics != nil {
		chain.AddRequestInterceptor(clickfunnels.MetricsRequestInterceptor(config.Metrics))
		chain.AddResponseInterceptor(clickfunnels.MetricsResponseInterceptor(config.Metrics))
	}

	if config.Logger != nil && config.Debug {
		chain.AddRequestInterceptor(clickfunnels.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(clickfunnels.LoggingResponseInterceptor(config.Logger))
	}

	if chain.Len() > 0 {
		opts = append(opts, cfhttp.WithInterceptors(chain))
	}

	return opts
}
