package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/fivetwenty-io/clickfunnels-node/internal/auth"
	"github.com/fivetwenty-io/clickfunnels-node/internal/client"
	cfhttp "github.com/fivetwenty-io/clickfunnels-node/internal/http"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequester records requests and answers them with handler.
type fakeRequester struct {
	mutex    sync.Mutex
	requests []*cfhttp.Request
	handler  func(req *cfhttp.Request) (*cfhttp.Response, error)
}

func (f *fakeRequester) Do(ctx context.Context, req *cfhttp.Request) (*cfhttp.Response, error) {
	f.mutex.Lock()
	f.requests = append(f.requests, req)
	f.mutex.Unlock()

	return f.handler(req)
}

func (f *fakeRequester) count() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return len(f.requests)
}

func jsonResponse(body string, next string) *cfhttp.Response {
	headers := make(http.Header)
	if next != "" {
		headers.Set("Pagination-Next", next)
	}

	return &cfhttp.Response{StatusCode: http.StatusOK, Headers: headers, Body: []byte(body)}
}

func itemsJSON(start, count int) string {
	items := make([]string, 0, count)
	for i := range count {
		items = append(items, fmt.Sprintf(`{"id":%d}`, start+i))
	}

	return "[" + strings.Join(items, ",") + "]"
}

var errConnectionReset = errors.New("connection reset by peer")

func TestRequestTenant_BuildsURLAndOmitsEmptyParts(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		return jsonResponse(`{"id":1}`, ""), nil
	}}
	builder := client.New(requester)

	body, err := builder.RequestTenant(context.Background(), "GET", "/workspaces/42/contacts",
		map[string]interface{}{}, url.Values{}, "myshop")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(body))

	require.Len(t, requester.requests, 1)
	sent := requester.requests[0]
	assert.Equal(t, "GET", sent.Method)
	assert.Equal(t, "https://myshop.myclickfunnels.com/api/v2/workspaces/42/contacts", sent.Path)
	assert.Nil(t, sent.Body)
	assert.Nil(t, sent.Query)
}

func TestRequestTenant_SendsBodyAndQuery(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		return jsonResponse(`{"id":7}`, ""), nil
	}}
	builder := client.New(requester)

	payload := map[string]interface{}{"contact": map[string]interface{}{"email_address": "ada@example.com"}}
	query := url.Values{"per_page": []string{"10"}}

	_, err := builder.RequestTenant(context.Background(), "POST", "/workspaces/42/contacts", payload, query, "myshop")
	require.NoError(t, err)

	sent := requester.requests[0]
	assert.Equal(t, payload, sent.Body)
	assert.Equal(t, query, sent.Query)
}

func TestRequestTenant_SubdomainErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		subdomain string
		check     func(t *testing.T, err error)
	}{
		{
			name:      "missing subdomain",
			subdomain: "",
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, clickfunnels.IsConfigurationError(err))
				assert.Contains(t, err.Error(), "workspace subdomain is required")
			},
		},
		{
			name:      "invalid subdomain",
			subdomain: "evil.com/x",
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, clickfunnels.IsValidationError(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
				t.Error("no request should be sent")

				return nil, nil
			}}
			builder := client.New(requester)

			_, err := builder.RequestTenant(context.Background(), "GET", "/contacts/1", nil, nil, tt.subdomain)
			require.Error(t, err)
			tt.check(t, err)

			_, err = builder.RequestAllTenant(context.Background(), "GET", "/workspaces/1/contacts", nil, nil, tt.subdomain)
			require.Error(t, err)
			assert.Zero(t, requester.count())
		})
	}
}

func TestRequestAccounts_DomainOverride(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		return jsonResponse(`{"id":3,"email":"me@example.com"}`, ""), nil
	}}
	builder := client.New(requester, client.WithDomain("staging.example.com"))

	me, err := builder.Me(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(me), "me@example.com")
	assert.Equal(t, "https://accounts.staging.example.com/api/v2/me", requester.requests[0].Path)

	tenantURL, err := builder.TenantURL("shop-1")
	require.NoError(t, err)
	assert.Equal(t, "https://shop-1.staging.example.com/api/v2", tenantURL)
}

func TestRequest_EmptyResponseBody(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		return &cfhttp.Response{StatusCode: http.StatusNoContent}, nil
	}}
	builder := client.New(requester)

	body, err := builder.RequestTenant(context.Background(), "DELETE", "/tags/9", nil, nil, "myshop")
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestRequest_WrapsTransportErrors(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		return nil, errConnectionReset
	}}
	builder := client.New(requester)

	_, err := builder.RequestAccounts(context.Background(), "GET", "/teams", nil, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, errConnectionReset)

	apiErr := &clickfunnels.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "GET", apiErr.Method)
	assert.Equal(t, "https://accounts.myclickfunnels.com/api/v2/teams", apiErr.URL)
}

func TestRequestAllTenant_FollowsCursor(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		switch req.Query.Get("after") {
		case "":
			return jsonResponse(itemsJSON(0, 100), "c2"), nil
		case "c2":
			return jsonResponse(itemsJSON(100, 100), "c3"), nil
		case "c3":
			return jsonResponse(itemsJSON(200, 100), ""), nil
		default:
			return nil, errConnectionReset
		}
	}}
	builder := client.New(requester)

	query := url.Values{"filter[tag_id]": []string{"5"}}

	items, err := builder.RequestAllTenant(context.Background(), "GET", "/workspaces/42/contacts", nil, query, "myshop")
	require.NoError(t, err)
	assert.Len(t, items, 300)
	assert.JSONEq(t, `{"id":0}`, string(items[0]))
	assert.JSONEq(t, `{"id":299}`, string(items[299]))
	assert.Equal(t, 3, requester.count())

	for _, sent := range requester.requests {
		assert.Equal(t, "5", sent.Query.Get("filter[tag_id]"))
	}

	assert.Equal(t, url.Values{"filter[tag_id]": []string{"5"}}, query)
}

func TestRequestAllTenant_StopsAfterItemCap(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		return jsonResponse(`[{"id":1}]`, "again"), nil
	}}
	builder := client.New(requester)

	items, err := builder.RequestAllTenant(context.Background(), "GET", "/workspaces/42/contacts", nil, nil, "myshop")
	require.NoError(t, err)
	assert.Len(t, items, clickfunnels.DefaultMaxItems+1)
	assert.Equal(t, clickfunnels.DefaultMaxItems+1, requester.count())
}

func TestAccountsPages_ReportsTruncation(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		return jsonResponse(`[{"id":1},{"id":2}]`, "more"), nil
	}}
	builder := client.New(requester, client.WithPaginationOptions(&clickfunnels.PaginationOptions{MaxItems: 3}))

	pages := builder.AccountsPages(context.Background(), "GET", "/teams", nil, nil)

	items, err := pages.All()
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.True(t, pages.Truncated())
	assert.Equal(t, 2, pages.Pages())
}

func TestRequestAllAccounts_SingleObject(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		return jsonResponse(`{"id":12,"name":"Main team"}`, ""), nil
	}}
	builder := client.New(requester)

	items, err := builder.RequestAllAccounts(context.Background(), "GET", "/teams/12", nil, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.JSONEq(t, `{"id":12,"name":"Main team"}`, string(items[0]))
}

func TestRequestAllAccounts_ErrorDiscardsPartialResults(t *testing.T) {
	t.Parallel()

	requester := &fakeRequester{handler: func(req *cfhttp.Request) (*cfhttp.Response, error) {
		if req.Query.Get("after") == "" {
			return jsonResponse(itemsJSON(0, 50), "c2"), nil
		}

		return &cfhttp.Response{StatusCode: http.StatusInternalServerError},
			clickfunnels.NewAPIError(http.StatusInternalServerError, req.Method, req.Path, nil)
	}}
	builder := client.New(requester)

	items, err := builder.RequestAllAccounts(context.Background(), "GET", "/teams", nil, nil)
	require.Error(t, err)
	assert.Nil(t, items)
	assert.Equal(t, http.StatusInternalServerError, clickfunnels.StatusCode(err))
}

func TestClient_EndToEnd(t *testing.T) {
	t.Parallel()

	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls++

		assert.Equal(t, "Bearer secret", request.Header.Get("Authorization"))
		assert.Equal(t, "/t/myshop/api/v2/workspaces/42/tags", request.URL.Path)

		if request.URL.Query().Get("after") == "" {
			writer.Header().Set("Pagination-Next", "t2")
			writer.Header().Set("Link", `<https://example.com?after=t2>; rel="next"`)
			_ = json.NewEncoder(writer).Encode([]map[string]interface{}{{"id": 1, "name": "vip"}})

			return
		}

		_ = json.NewEncoder(writer).Encode([]map[string]interface{}{{"id": 2, "name": "lead"}})
	}))
	defer server.Close()

	transport := cfhttp.NewClient("", auth.NewStaticTokenManager("secret"))
	builder := client.New(transport,
		client.WithAccountsURL(server.URL+"/accounts/api/v2"),
		client.WithTenantURLTemplate(server.URL+"/t/{subdomain}/api/v2"),
	)

	envelope, err := builder.RequestTenantWithHeaders(context.Background(), "GET", "/workspaces/42/tags", nil, nil, "myshop")
	require.NoError(t, err)
	assert.Equal(t, "t2", envelope.Headers.PaginationNext)
	assert.Contains(t, envelope.Headers.Link, "rel=\"next\"")

	tags, err := builder.RequestAllTenant(context.Background(), "GET", "/workspaces/42/tags", nil, nil, "myshop")
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, 3, calls)
}
