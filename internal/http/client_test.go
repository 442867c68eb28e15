package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	cfhttp "github.com/fivetwenty-io/clickfunnels-node/internal/http"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

func (m *MockTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v2/contacts", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]string{"id": "17", "email_address": "ada@example.com"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "test-token"}
		client := cfhttp.NewClient(server.URL, tokenManager)

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/api/v2/contacts",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "17", result["id"])
		assert.Equal(t, "ada@example.com", result["email_address"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v2/contacts", request.URL.Path)
			assert.Equal(t, "page=2", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil)

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/api/v2/contacts",
			Query:  url.Values{"page": []string{"2"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "ada@example.com", body["email_address"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil)

		req := &cfhttp.Request{
			Method: "POST",
			Path:   "/api/v2/contacts",
			Body:   map[string]string{"email_address": "ada@example.com"},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)

			_ = json.NewEncoder(writer).Encode(map[string]string{"error": "Contact not found"})
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil)

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/contacts/999",
		}

		resp, err := client.Do(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		apiErr := &clickfunnels.APIError{}
		ok := errors.As(err, &apiErr)
		require.True(t, ok)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, "Contact not found", apiErr.Message)
		assert.JSONEq(t, `{"error":"Contact not found"}`, string(apiErr.Payload))
		assert.True(t, clickfunnels.IsNotFound(err))
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil)

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/api/v2/contacts",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := cfhttp.NewClient(server.URL, nil, cfhttp.WithLogger(logger), cfhttp.WithDebug(true))

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/api/v2/contacts",
		}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*cfhttp.Client, context.Context) (*cfhttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Do(ctx, &cfhttp.Request{Method: http.MethodGet, Path: "/test"})
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Do(ctx, &cfhttp.Request{Method: http.MethodPost, Path: "/test", Body: map[string]string{"key": "value"}})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Do(ctx, &cfhttp.Request{Method: http.MethodPut, Path: "/test", Body: map[string]string{"key": "value"}})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Do(ctx, &cfhttp.Request{Method: http.MethodPatch, Path: "/test", Body: map[string]string{"key": "value"}})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Do(ctx, &cfhttp.Request{Method: http.MethodDelete, Path: "/test"})
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := cfhttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil, cfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Do(context.Background(), &cfhttp.Request{Method: http.MethodGet, Path: "/test"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, attempts)
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil, cfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Do(context.Background(), &cfhttp.Request{Method: http.MethodGet, Path: "/test"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 2, attempts)
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil, cfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Do(context.Background(), &cfhttp.Request{Method: http.MethodGet, Path: "/test"})
		require.Error(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, 1, attempts) // Should not retry
	})
}

func TestClient_AbsoluteURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v2/teams", request.URL.Path)
		assert.Equal(t, "per_page=5", request.URL.RawQuery)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := cfhttp.NewClient("", &MockTokenManager{token: "test-token"})

	resp, err := client.Do(context.Background(), &cfhttp.Request{
		Method: "GET",
		Path:   server.URL + "/api/v2/teams",
		Query:  url.Values{"per_page": []string{"5"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_Headers(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "clickfunnels-test/2.0", request.Header.Get("User-Agent"))
		assert.Empty(t, request.Header.Get("Content-Type"))
		writer.Header().Set("Pagination-Next", "cursor-2")
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := cfhttp.NewClient(server.URL, nil, cfhttp.WithUserAgent("clickfunnels-test/2.0"))

	resp, err := client.Do(context.Background(), &cfhttp.Request{Method: http.MethodGet, Path: "/contacts"})
	require.NoError(t, err)
	assert.Equal(t, "cursor-2", resp.Headers.Get("pagination-next"))
}

var errTokenUnavailable = errors.New("token unavailable")

func TestClient_TokenError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Error("request should not be sent")
	}))
	defer server.Close()

	client := cfhttp.NewClient(server.URL, &MockTokenManager{err: errTokenUnavailable})

	_, err := client.Do(context.Background(), &cfhttp.Request{Method: http.MethodGet, Path: "/me"})
	require.ErrorIs(t, err, errTokenUnavailable)

	apiErr := &clickfunnels.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := cfhttp.NewClient(serverURL, nil)

	resp, err := client.Do(context.Background(), &cfhttp.Request{Method: http.MethodGet, Path: "/me"})
	require.Error(t, err)
	assert.Nil(t, resp)

	apiErr := &clickfunnels.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "GET", apiErr.Method)
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "abc", request.Header.Get("X-Trace"))
		writer.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	collector := clickfunnels.NewMetricsCollector()
	chain := clickfunnels.NewInterceptorChain()
	chain.AddRequestInterceptor(clickfunnels.HeaderInterceptor(map[string]string{"X-Trace": "abc"}))
	chain.AddRequestInterceptor(clickfunnels.MetricsRequestInterceptor(collector))
	chain.AddResponseInterceptor(clickfunnels.MetricsResponseInterceptor(collector))

	client := cfhttp.NewClient(server.URL, nil, cfhttp.WithInterceptors(chain))

	resp, err := client.Do(context.Background(), &cfhttp.Request{Method: http.MethodPost, Path: "/contacts", Body: map[string]string{"email_address": "x"}})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	endpoints := collector.Endpoints()
	require.Len(t, endpoints, 1)

	metrics := collector.GetMetrics(endpoints[0])
	require.NotNil(t, metrics)
	assert.Equal(t, int64(1), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
}

func TestClient_InterceptedHeadersReplaceDefaults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, []string{"workflow-engine/1.0"}, request.Header.Values("User-Agent"))
		assert.Equal(t, []string{"application/vnd.api+json"}, request.Header.Values("Accept"))
		assert.Equal(t, []string{"abc"}, request.Header.Values("X-Trace"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	chain := clickfunnels.NewInterceptorChain()
	chain.AddRequestInterceptor(clickfunnels.HeaderInterceptor(map[string]string{
		"User-Agent": "workflow-engine/1.0",
		"Accept":     "application/vnd.api+json",
		"X-Trace":    "abc",
	}))

	client := cfhttp.NewClient(server.URL, nil, cfhttp.WithInterceptors(chain))

	resp, err := client.Do(context.Background(), &cfhttp.Request{Method: http.MethodGet, Path: "/me"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
