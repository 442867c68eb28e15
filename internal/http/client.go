// Package http is the authenticated JSON transport used by the request builder.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/clickfunnels-node/internal/auth"
	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/hashicorp/go-retryablehttp"
)

const defaultUserAgent = "clickfunnels-node/1.0"

// Request describes one API call. Path is joined to the client's base URL
// unless it is already an absolute URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends JSON requests with bearer authentication.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	logger       clickfunnels.Logger
	debug        bool
	userAgent    string
	interceptors *clickfunnels.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger clickfunnels.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response debug logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig enables retries of 5xx, 429 and connection errors.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-attempt timeout of the underlying http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *clickfunnels.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a client. baseURL may be empty when every request uses
// an absolute URL. A nil tokenManager sends unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// Do executes req. For HTTP error statuses both the response and an
// *clickfunnels.APIError are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, &clickfunnels.APIError{Method: req.Method, URL: req.Path, Err: err}
	}

	bodyBytes, err := encodeBody(req.Body)
	if err != nil {
		return nil, &clickfunnels.APIError{Method: req.Method, URL: target.String(), Err: err}
	}

	intercepted := &clickfunnels.Request{
		Method:  req.Method,
		Host:    target.Host,
		Path:    target.Path,
		Headers: make(http.Header),
		Body:    bodyBytes,
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, &clickfunnels.APIError{Method: req.Method, URL: target.String(), Err: err}
		}
	}

	httpReq, err := c.newHTTPRequest(ctx, req.Method, target.String(), intercepted.Body)
	if err != nil {
		return nil, &clickfunnels.APIError{Method: req.Method, URL: target.String(), Err: err}
	}

	// Intercepted headers replace the defaults set by newHTTPRequest.
	for key, values := range intercepted.Headers {
		httpReq.Header.Del(key)

		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    target.String(),
			"bytes":  len(intercepted.Body),
		})
	}

	response, err := c.execute(ctx, httpReq, intercepted)
	if err != nil {
		return response, err
	}

	if response.StatusCode >= constants.HTTPStatusBadRequest {
		return response, clickfunnels.NewAPIError(response.StatusCode, req.Method, target.String(), response.Body)
	}

	return response, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, method, target string, body []byte) (*retryablehttp.Request, error) {
	var (
		httpReq *retryablehttp.Request
		err     error
	)

	if body != nil {
		httpReq, err = retryablehttp.NewRequestWithContext(ctx, method, target, body)
	} else {
		httpReq, err = retryablehttp.NewRequestWithContext(ctx, method, target, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting API token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}

func (c *Client) execute(ctx context.Context, httpReq *retryablehttp.Request, intercepted *clickfunnels.Request) (*Response, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		c.afterResponse(ctx, intercepted, &clickfunnels.Response{Error: err})

		return nil, &clickfunnels.APIError{Method: httpReq.Method, URL: httpReq.URL.String(), Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.afterResponse(ctx, intercepted, &clickfunnels.Response{StatusCode: resp.StatusCode, Headers: resp.Header, Error: err})

		return nil, &clickfunnels.APIError{
			StatusCode: resp.StatusCode,
			Method:     httpReq.Method,
			URL:        httpReq.URL.String(),
			Err:        fmt.Errorf("reading response body: %w", err),
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    httpReq.URL.String(),
			"bytes":  len(body),
		})
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	c.afterResponse(ctx, intercepted, &clickfunnels.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	})

	return response, nil
}

// afterResponse runs the response interceptors. Their failures are logged,
// never returned, so that observers cannot mask the API result.
func (c *Client) afterResponse(ctx context.Context, req *clickfunnels.Request, resp *clickfunnels.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{"error": err.Error()})
	}
}

func (c *Client) buildURL(path string, query url.Values) (*url.URL, error) {
	raw := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		raw = c.baseURL + path
	}

	target, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	if len(query) > 0 {
		merged := target.Query()

		for key, values := range query {
			for _, value := range values {
				merged.Add(key, value)
			}
		}

		target.RawQuery = merged.Encode()
	}

	return target, nil
}

func encodeBody(body interface{}) ([]byte, error) {
	switch typed := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return typed, nil
	case json.RawMessage:
		return typed, nil
	case string:
		return []byte(typed), nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		return data, nil
	}
}

// leveledLogger forwards retryablehttp warnings and errors. Its per-attempt
// debug chatter is dropped; WithDebug covers that.
type leveledLogger struct {
	logger clickfunnels.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, pairsToFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, pairsToFields(keysAndValues))
}

func pairsToFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)
