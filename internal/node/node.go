// Package node implements the ClickFunnels workflow node: a declarative
// dispatch table of (resource, operation) pairs executed item by item against
// the accounts and tenant hosts.
package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/google/uuid"
)

var successPayload = json.RawMessage(`{"success":true}`)

// Node executes ClickFunnels operations for a batch of items.
type Node struct {
	client         clickfunnels.Client
	logger         clickfunnels.Logger
	cache          *clickfunnels.CacheManager
	continueOnFail bool
	optionsTTL     time.Duration
	credential     string
}

// Option configures a Node.
type Option func(*Node)

// WithLogger sets the logger.
func WithLogger(logger clickfunnels.Logger) Option {
	return func(n *Node) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithCache sets the cache used by option loaders.
func WithCache(cache *clickfunnels.CacheManager) Option {
	return func(n *Node) {
		if cache != nil {
			n.cache = cache
		}
	}
}

// WithCredential scopes cached dropdown options to one API token and domain.
// Nodes sharing a cache must set it so accounts never see each other's options.
func WithCredential(token, domain string) Option {
	return func(n *Node) {
		n.credential = clickfunnels.CredentialFingerprint(token, domain)
	}
}

// WithContinueOnFail turns item failures into error results instead of
// aborting the batch.
func WithContinueOnFail(continueOnFail bool) Option {
	return func(n *Node) {
		n.continueOnFail = continueOnFail
	}
}

// WithOptionsTTL sets how long loaded dropdown options are cached.
func WithOptionsTTL(ttl time.Duration) Option {
	return func(n *Node) {
		if ttl > 0 {
			n.optionsTTL = ttl
		}
	}
}

// New creates a node over client.
func New(client clickfunnels.Client, opts ...Option) *Node {
	n := &Node{
		client:     client,
		logger:     clickfunnels.NopLogger{},
		cache:      clickfunnels.NewCacheManager(nil, nil),
		optionsTTL: constants.OptionsCacheTTL,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Result is one output item. Exactly one of JSON and Error is set.
type Result struct {
	Item  int             `json:"item"            yaml:"item"`
	JSON  json.RawMessage `json:"json,omitempty"  yaml:"json,omitempty"`
	Error string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Payload returns the output object of the result; failures render as
// {"error": message}.
func (r Result) Payload() json.RawMessage {
	if r.Error == "" {
		return r.JSON
	}

	data, _ := json.Marshal(map[string]string{"error": r.Error})

	return data
}

// Execute runs the configured operation once per item. The resource,
// operation, team and workspace are read from item 0 and shared by the batch.
func (n *Node) Execute(ctx context.Context, params Parameters, itemCount int) ([]Result, error) {
	if itemCount < 1 {
		itemCount = 1
	}

	head := newItemParams(params, 0, commonFields())
	key := Key{Resource: head.String("resource"), Operation: head.String("operation")}

	descriptor, ok := Lookup(key.Resource, key.Operation)
	if !ok {
		return nil, &clickfunnels.ValidationError{
			Field:  "operation",
			Value:  key.String(),
			Reason: "unsupported resource and operation",
		}
	}

	scope, err := batchScope(head)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	fields := append(commonFields(), descriptor.Fields...)

	n.logger.Debug("executing operation", map[string]interface{}{
		"run_id":    runID,
		"resource":  key.Resource,
		"operation": key.Operation,
		"items":     itemCount,
	})

	var results []Result

	for i := 0; i < itemCount; i++ {
		payloads, err := n.executeItem(ctx, descriptor, scope, newItemParams(params, i, fields))
		if err != nil {
			if !n.continueOnFail {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}

			n.logger.Warn("item failed", map[string]interface{}{
				"run_id": runID,
				"item":   i,
				"error":  err.Error(),
			})

			results = append(results, Result{Item: i, Error: err.Error()})

			continue
		}

		for _, payload := range payloads {
			results = append(results, Result{Item: i, JSON: payload})
		}
	}

	n.logger.Debug("operation finished", map[string]interface{}{
		"run_id":  runID,
		"results": len(results),
	})

	return results, nil
}

// batchScope decodes the team and workspace selection of item 0.
func batchScope(head *itemParams) (*Scope, error) {
	teamID, _ := head.value("teamId")

	raw, _ := head.value("workspaceId")

	selector, err := clickfunnels.DecodeWorkspaceSelector(selectorText(raw))
	if err != nil {
		return nil, err
	}

	return &Scope{TeamID: teamID, Workspace: selector}, nil
}

// selectorText accepts the selector as its JSON text or as an already
// decoded object.
func selectorText(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.RawMessage:
		return string(typed)
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return textOf(value)
		}

		return string(data)
	}
}

func (n *Node) executeItem(ctx context.Context, d *Descriptor, scope *Scope, p *itemParams) ([]json.RawMessage, error) {
	for _, field := range d.Fields {
		if field.Required && !p.present(field.Name) {
			return nil, &clickfunnels.ValidationError{Field: field.Name, Reason: "parameter is required"}
		}
	}

	path, err := d.buildPath(scope, p)
	if err != nil {
		return nil, err
	}

	var body interface{}

	if d.Body != nil {
		body, err = d.Body(p)
		if err != nil {
			return nil, err
		}
	}

	query := url.Values{}

	if d.Query != nil {
		query, err = d.Query(p)
		if err != nil {
			return nil, err
		}
	}

	if d.List {
		returnAll, err := p.Bool("returnAll")
		if err != nil {
			return nil, err
		}

		if returnAll {
			return n.requestAll(ctx, d, scope, path, body, query)
		}

		limit, err := p.Int("limit")
		if err != nil {
			return nil, err
		}

		if limit < constants.MinPageLimit || limit > constants.MaxPageLimit {
			return nil, &clickfunnels.ValidationError{
				Field:  "limit",
				Value:  strconv.Itoa(limit),
				Reason: fmt.Sprintf("must be between %d and %d", constants.MinPageLimit, constants.MaxPageLimit),
			}
		}

		query.Set(constants.QueryPerPage, strconv.Itoa(limit))
	}

	raw, err := n.request(ctx, d, scope, path, body, query)
	if err != nil {
		return nil, err
	}

	return splitResponse(raw), nil
}

func (n *Node) request(ctx context.Context, d *Descriptor, scope *Scope, path string, body interface{}, query url.Values) (json.RawMessage, error) {
	if d.Host == HostAccounts {
		return n.client.RequestAccounts(ctx, d.Method, path, body, query)
	}

	subdomain, err := tenantSubdomain(scope)
	if err != nil {
		return nil, err
	}

	return n.client.RequestTenant(ctx, d.Method, path, body, query, subdomain)
}

func (n *Node) requestAll(ctx context.Context, d *Descriptor, scope *Scope, path string, body interface{}, query url.Values) ([]json.RawMessage, error) {
	if d.Host == HostAccounts {
		return n.client.RequestAllAccounts(ctx, d.Method, path, body, query)
	}

	subdomain, err := tenantSubdomain(scope)
	if err != nil {
		return nil, err
	}

	return n.client.RequestAllTenant(ctx, d.Method, path, body, query, subdomain)
}

func tenantSubdomain(scope *Scope) (string, error) {
	if scope == nil || scope.Workspace == nil {
		return "", &clickfunnels.ValidationError{Field: "workspace selection", Reason: "please select a workspace from the dropdown"}
	}

	return scope.Workspace.Subdomain, nil
}

// splitResponse turns a response body into output payloads. Arrays yield
// one payload per element, an empty body yields {"success":true} and a
// scalar is wrapped as {"value": ...}.
func splitResponse(raw json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []json.RawMessage{successPayload}
	}

	switch trimmed[0] {
	case '[', '{':
		return clickfunnels.NormalizeItems(trimmed)
	default:
		data, _ := json.Marshal(map[string]json.RawMessage{"value": json.RawMessage(trimmed)})

		return []json.RawMessage{data}
	}
}
