// Package client builds ClickFunnels API requests against the accounts and
// tenant hosts and drives cursor pagination over them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	cfhttp "github.com/fivetwenty-io/clickfunnels-node/internal/http"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
)

const subdomainPlaceholder = "{subdomain}"

// Requester executes a prepared request. *http.Client from internal/http
// satisfies it; tests substitute a fake.
type Requester interface {
	Do(ctx context.Context, req *cfhttp.Request) (*cfhttp.Response, error)
}

// Client implements the clickfunnels.Client interface.
type Client struct {
	requester      Requester
	accountsURL    string
	tenantTemplate string
	pagination     *clickfunnels.PaginationOptions
}

// Option configures a Client.
type Option func(*Client)

// WithDomain derives both base URLs from domain.
func WithDomain(domain string) Option {
	return func(c *Client) {
		if domain == "" {
			return
		}

		c.accountsURL = AccountsBaseURL(domain)
		c.tenantTemplate = TenantURLTemplate(domain)
	}
}

// WithAccountsURL overrides the accounts base URL.
func WithAccountsURL(accountsURL string) Option {
	return func(c *Client) {
		if accountsURL != "" {
			c.accountsURL = strings.TrimSuffix(accountsURL, "/")
		}
	}
}

// WithTenantURLTemplate overrides the tenant base URL. The template must
// contain "{subdomain}".
func WithTenantURLTemplate(template string) Option {
	return func(c *Client) {
		if template != "" {
			c.tenantTemplate = strings.TrimSuffix(template, "/")
		}
	}
}

// WithPaginationOptions overrides the pagination cap.
func WithPaginationOptions(options *clickfunnels.PaginationOptions) Option {
	return func(c *Client) {
		if options != nil {
			c.pagination = options
		}
	}
}

// AccountsBaseURL returns the accounts API base URL for domain.
func AccountsBaseURL(domain string) string {
	return "https://" + constants.AccountsSubdomain + "." + domain + constants.APIPath
}

// TenantURLTemplate returns the tenant API base URL template for domain.
func TenantURLTemplate(domain string) string {
	return "https://" + subdomainPlaceholder + "." + domain + constants.APIPath
}

// New creates a request builder on top of requester.
func New(requester Requester, opts ...Option) *Client {
	client := &Client{
		requester:      requester,
		accountsURL:    AccountsBaseURL(constants.DefaultDomain),
		tenantTemplate: TenantURLTemplate(constants.DefaultDomain),
		pagination:     clickfunnels.DefaultPaginationOptions(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// AccountsURL returns the accounts base URL in use.
func (c *Client) AccountsURL() string {
	return c.accountsURL
}

// TenantURL returns the base URL of the workspace served at subdomain.
func (c *Client) TenantURL(subdomain string) (string, error) {
	if subdomain == "" {
		return "", &clickfunnels.ConfigurationError{Reason: "workspace subdomain is required for this API call"}
	}

	err := clickfunnels.ValidateSubdomain(subdomain)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(c.tenantTemplate, subdomainPlaceholder, subdomain), nil
}

// RequestTenant sends a request to the tenant host and returns the decoded body.
func (c *Client) RequestTenant(ctx context.Context, method, path string, body interface{}, query url.Values, subdomain string) (json.RawMessage, error) {
	envelope, err := c.RequestTenantWithHeaders(ctx, method, path, body, query, subdomain)
	if err != nil {
		return nil, err
	}

	return envelope.Body, nil
}

// RequestTenantWithHeaders is RequestTenant that also returns pagination headers.
func (c *Client) RequestTenantWithHeaders(ctx context.Context, method, path string, body interface{}, query url.Values, subdomain string) (*clickfunnels.Envelope, error) {
	base, err := c.TenantURL(subdomain)
	if err != nil {
		return nil, err
	}

	return c.request(ctx, base, method, path, body, query)
}

// RequestAccounts sends a request to the accounts host and returns the decoded body.
func (c *Client) RequestAccounts(ctx context.Context, method, path string, body interface{}, query url.Values) (json.RawMessage, error) {
	envelope, err := c.RequestAccountsWithHeaders(ctx, method, path, body, query)
	if err != nil {
		return nil, err
	}

	return envelope.Body, nil
}

// RequestAccountsWithHeaders is RequestAccounts that also returns pagination headers.
func (c *Client) RequestAccountsWithHeaders(ctx context.Context, method, path string, body interface{}, query url.Values) (*clickfunnels.Envelope, error) {
	return c.request(ctx, c.accountsURL, method, path, body, query)
}

// Me returns the user owning the API token. It doubles as the credential test.
func (c *Client) Me(ctx context.Context) (json.RawMessage, error) {
	return c.RequestAccounts(ctx, http.MethodGet, constants.MePath, nil, nil)
}

func (c *Client) request(ctx context.Context, base, method, path string, body interface{}, query url.Values) (*clickfunnels.Envelope, error) {
	req := &cfhttp.Request{
		Method: method,
		Path:   base + path,
	}

	if !isEmptyBody(body) {
		req.Body = body
	}

	if len(query) > 0 {
		req.Query = query
	}

	resp, err := c.requester.Do(ctx, req)
	if err != nil {
		return nil, asAPIError(err, method, req.Path, resp)
	}

	if resp == nil {
		return &clickfunnels.Envelope{}, nil
	}

	envelope := &clickfunnels.Envelope{
		Headers: clickfunnels.ResponseHeaders{
			PaginationNext: resp.Headers.Get(constants.HeaderPaginationNext),
			Link:           resp.Headers.Get(constants.HeaderLink),
		},
	}

	trimmed := bytes.TrimSpace(resp.Body)
	if len(trimmed) > 0 {
		if !json.Valid(trimmed) {
			return nil, &clickfunnels.APIError{
				StatusCode: resp.StatusCode,
				Method:     method,
				URL:        req.Path,
				Message:    "response body is not valid JSON",
			}
		}

		envelope.Body = json.RawMessage(trimmed)
	}

	return envelope, nil
}

// asAPIError makes sure every transport failure surfaces as *APIError.
func asAPIError(err error, method, target string, resp *cfhttp.Response) error {
	apiErr := &clickfunnels.APIError{}
	if errors.As(err, &apiErr) {
		return err
	}

	wrapped := &clickfunnels.APIError{Method: method, URL: target, Err: err}

	if resp != nil {
		wrapped.StatusCode = resp.StatusCode
		if json.Valid(resp.Body) {
			wrapped.Payload = json.RawMessage(resp.Body)
		}
	}

	return wrapped
}

// isEmptyBody reports whether body should be left off the request: nil,
// empty maps and slices, and empty or "{}" raw JSON.
func isEmptyBody(body interface{}) bool {
	switch typed := body.(type) {
	case nil:
		return true
	case json.RawMessage:
		trimmed := string(bytes.TrimSpace(typed))

		return trimmed == "" || trimmed == "{}" || trimmed == "null"
	case []byte:
		return len(bytes.TrimSpace(typed)) == 0
	case string:
		return strings.TrimSpace(typed) == ""
	}

	value := reflect.ValueOf(body)

	switch value.Kind() {
	case reflect.Map, reflect.Slice:
		return value.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return value.IsNil()
	default:
		return false
	}
}

var _ clickfunnels.Client = (*Client)(nil)
