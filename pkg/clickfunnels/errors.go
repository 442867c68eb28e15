package clickfunnels

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports a parameter that failed local validation. It is
// raised before any request is sent and is never retried.
type ValidationError struct {
	Field  string `json:"field"  yaml:"field"`
	Value  string `json:"value"  yaml:"value"`
	Reason string `json:"reason" yaml:"reason"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ConfigurationError reports missing or unusable configuration, such as a
// tenant call made without a workspace subdomain.
type ConfigurationError struct {
	Reason string `json:"reason" yaml:"reason"`
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// APIError represents a transport or HTTP failure from the ClickFunnels API.
// StatusCode is zero when no response was received.
type APIError struct {
	StatusCode int             `json:"status_code"       yaml:"status_code"`
	Method     string          `json:"method"            yaml:"method"`
	URL        string          `json:"url"               yaml:"url"`
	Message    string          `json:"message"           yaml:"message"`
	Payload    json.RawMessage `json:"payload,omitempty" yaml:"-"`
	Err        error           `json:"-"                 yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var builder strings.Builder

	builder.WriteString("clickfunnels API error")

	if e.Method != "" || e.URL != "" {
		builder.WriteString(": ")
		builder.WriteString(strings.TrimSpace(e.Method + " " + e.URL))
	}

	if e.StatusCode != 0 {
		fmt.Fprintf(&builder, " returned %d", e.StatusCode)
	}

	switch {
	case e.Message != "":
		builder.WriteString(": ")
		builder.WriteString(e.Message)
	case e.Err != nil:
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}

	return builder.String()
}

// Unwrap returns the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError builds an APIError from an HTTP response, extracting a message
// from the payload when it carries one.
func NewAPIError(statusCode int, method, url string, payload []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Method:     method,
		URL:        url,
		Message:    extractErrorMessage(payload),
	}

	if json.Valid(payload) {
		apiErr.Payload = json.RawMessage(payload)
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}

	return apiErr
}

// extractErrorMessage looks for the usual error fields in a response body.
func extractErrorMessage(payload []byte) string {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return ""
	}

	var body map[string]json.RawMessage

	err := json.Unmarshal([]byte(trimmed), &body)
	if err != nil {
		return trimmed
	}

	for _, key := range []string{"message", "error", "error_description"} {
		raw, ok := body[key]
		if !ok {
			continue
		}

		var text string

		err = json.Unmarshal(raw, &text)
		if err == nil && text != "" {
			return text
		}
	}

	if raw, ok := body["errors"]; ok {
		return string(raw)
	}

	return ""
}

// Common static errors that can be wrapped with context.
var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrMissingParameter     = errors.New("missing required parameter")
	ErrNoMoreItems          = errors.New("no more items")
)

// IsValidationError checks if the error is a local validation failure.
func IsValidationError(err error) bool {
	validationErr := &ValidationError{}

	return errors.As(err, &validationErr)
}

// IsConfigurationError checks if the error is a configuration failure.
func IsConfigurationError(err error) bool {
	configErr := &ConfigurationError{}

	return errors.As(err, &configErr)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsRateLimited checks if the error is a rate limiting error.
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}
