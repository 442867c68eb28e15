package client

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
)

// RequestAllTenant follows the cursor of a tenant list endpoint and returns
// every item, up to the pagination cap.
func (c *Client) RequestAllTenant(ctx context.Context, method, path string, body interface{}, query url.Values, subdomain string) ([]json.RawMessage, error) {
	_, err := c.TenantURL(subdomain)
	if err != nil {
		return nil, err
	}

	return c.TenantPages(ctx, method, path, body, query, subdomain).All()
}

// RequestAllAccounts follows the cursor of an accounts list endpoint and
// returns every item, up to the pagination cap.
func (c *Client) RequestAllAccounts(ctx context.Context, method, path string, body interface{}, query url.Values) ([]json.RawMessage, error) {
	return c.AccountsPages(ctx, method, path, body, query).All()
}

// TenantPages returns a lazy page iterator over a tenant list endpoint.
func (c *Client) TenantPages(ctx context.Context, method, path string, body interface{}, query url.Values, subdomain string) *clickfunnels.PaginationIterator {
	return clickfunnels.NewPaginationIterator(ctx, clickfunnels.PageFetcherFunc(
		func(ctx context.Context, cursor string) (*clickfunnels.Page, error) {
			envelope, err := c.RequestTenantWithHeaders(ctx, method, path, body, pageQuery(query, cursor), subdomain)
			if err != nil {
				return nil, err
			}

			return toPage(envelope), nil
		},
	), c.pagination)
}

// AccountsPages returns a lazy page iterator over an accounts list endpoint.
func (c *Client) AccountsPages(ctx context.Context, method, path string, body interface{}, query url.Values) *clickfunnels.PaginationIterator {
	return clickfunnels.NewPaginationIterator(ctx, clickfunnels.PageFetcherFunc(
		func(ctx context.Context, cursor string) (*clickfunnels.Page, error) {
			envelope, err := c.RequestAccountsWithHeaders(ctx, method, path, body, pageQuery(query, cursor))
			if err != nil {
				return nil, err
			}

			return toPage(envelope), nil
		},
	), c.pagination)
}

// pageQuery copies query and adds the cursor. The caller's values are never mutated.
func pageQuery(query url.Values, cursor string) url.Values {
	copied := make(url.Values, len(query)+1)

	for key, values := range query {
		copied[key] = append([]string(nil), values...)
	}

	if cursor != "" {
		copied.Set(constants.QueryAfter, cursor)
	}

	return copied
}

func toPage(envelope *clickfunnels.Envelope) *clickfunnels.Page {
	return &clickfunnels.Page{
		Items: clickfunnels.NormalizeItems(envelope.Body),
		Next:  envelope.Headers.PaginationNext,
		Link:  envelope.Headers.Link,
	}
}
