package node

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
)

// Host selects which API base URL an operation is sent to.
type Host string

// API hosts.
const (
	HostTenant   Host = "tenant"
	HostAccounts Host = "accounts"
)

// Key identifies a (resource, operation) pair.
type Key struct {
	Resource  string
	Operation string
}

// String returns "resource.operation".
func (k Key) String() string {
	return k.Resource + "." + k.Operation
}

// BodyFunc builds the request body of one item.
type BodyFunc func(p *itemParams) (interface{}, error)

// QueryFunc builds the query string of one item.
type QueryFunc func(p *itemParams) (url.Values, error)

// Descriptor maps a (resource, operation) pair onto one API call.
type Descriptor struct {
	DisplayName string
	Host        Host
	Method      string
	// Path is a template: "{workspaceId}" and "{teamId}" come from the batch
	// scope, any other placeholder names a numeric ID parameter.
	Path string
	// Fallbacks maps an optional placeholder to the one used when it is empty.
	Fallbacks map[string]string
	Body      BodyFunc
	Query     QueryFunc
	// List marks getAll operations, which honor returnAll and limit.
	List   bool
	Fields []Field
}

// Scope is the batch-wide context decoded once from item 0.
type Scope struct {
	TeamID    interface{}
	Workspace *clickfunnels.WorkspaceSelector
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z]+)\}`)

// buildPath expands the descriptor path for one item.
func (d *Descriptor) buildPath(scope *Scope, p *itemParams) (string, error) {
	var firstErr error

	path := placeholderPattern.ReplaceAllStringFunc(d.Path, func(match string) string {
		if firstErr != nil {
			return match
		}

		value, err := d.resolve(match[1:len(match)-1], scope, p)
		if err != nil {
			firstErr = err

			return match
		}

		return value
	})

	if firstErr != nil {
		return "", firstErr
	}

	return path, nil
}

func (d *Descriptor) resolve(name string, scope *Scope, p *itemParams) (string, error) {
	if fallback, ok := d.Fallbacks[name]; ok && !p.present(name) {
		return d.resolve(fallback, scope, p)
	}

	switch name {
	case "workspaceId":
		if scope.Workspace == nil {
			return "", &clickfunnels.ValidationError{Field: "workspace selection", Reason: "please select a workspace from the dropdown"}
		}

		return scope.Workspace.IDString(), nil
	case "teamId":
		return clickfunnels.ValidateNumericID(scope.TeamID, "team ID")
	default:
		return p.ID(name)
	}
}

// resourceEntry keeps the declaration order of resources and operations.
type resourceEntry struct {
	name        string
	displayName string
	operations  []string
}

type dispatchTable struct {
	descriptors map[Key]*Descriptor
	resources   []*resourceEntry
}

func (t *dispatchTable) resource(name, displayName string) *resourceBuilder {
	entry := &resourceEntry{name: name, displayName: displayName}
	t.resources = append(t.resources, entry)

	return &resourceBuilder{table: t, entry: entry}
}

type resourceBuilder struct {
	table *dispatchTable
	entry *resourceEntry
}

func (b *resourceBuilder) op(operation string, descriptor *Descriptor) *resourceBuilder {
	if descriptor.Host == "" {
		descriptor.Host = HostTenant
	}

	b.entry.operations = append(b.entry.operations, operation)
	b.table.descriptors[Key{Resource: b.entry.name, Operation: operation}] = descriptor

	return b
}

var registry = buildTable()

// Lookup returns the descriptor of a (resource, operation) pair.
func Lookup(resource, operation string) (*Descriptor, bool) {
	descriptor, ok := registry.descriptors[Key{Resource: resource, Operation: operation}]

	return descriptor, ok
}

// Keys returns every registered pair in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, len(registry.descriptors))

	for _, resource := range registry.resources {
		for _, operation := range resource.operations {
			keys = append(keys, Key{Resource: resource.name, Operation: operation})
		}
	}

	return keys
}

// Body and query builders.

// binding copies one parameter into a body field.
type binding struct {
	param string
	key   string
	kind  bindKind
}

type bindKind int

const (
	bindString bindKind = iota
	bindID
	bindNumber
	bindList
)

func strParam(param, key string) binding  { return binding{param: param, key: key, kind: bindString} }
func idParam(param, key string) binding   { return binding{param: param, key: key, kind: bindID} }
func numParam(param, key string) binding  { return binding{param: param, key: key, kind: bindNumber} }
func listParam(param, key string) binding { return binding{param: param, key: key, kind: bindList} }

// envelope builds {key: {bindings..., ...collection}}. Collection entries
// win over bindings with the same key.
func envelope(key string, collection string, bindings ...binding) BodyFunc {
	return func(p *itemParams) (interface{}, error) {
		fields := make(map[string]interface{}, len(bindings))

		for _, bind := range bindings {
			value, err := bind.read(p)
			if err != nil {
				return nil, err
			}

			fields[bind.key] = value
		}

		if collection != "" {
			extra, err := p.Collection(collection)
			if err != nil {
				return nil, err
			}

			for name, value := range extra {
				fields[name] = value
			}
		}

		return map[string]interface{}{key: fields}, nil
	}
}

func (b binding) read(p *itemParams) (interface{}, error) {
	switch b.kind {
	case bindID:
		return p.ID(b.param)
	case bindNumber:
		return p.Float(b.param)
	case bindList:
		return p.Strings(b.param), nil
	default:
		return p.String(b.param), nil
	}
}

// filters maps entries of the "filters" collection onto query parameters.
// Empty strings and false booleans are skipped.
func filters(mapping map[string]string) QueryFunc {
	return func(p *itemParams) (url.Values, error) {
		collection, err := p.Collection("filters")
		if err != nil {
			return nil, err
		}

		query := url.Values{}

		for name, queryKey := range mapping {
			value, ok := collection[name]
			if !ok || value == nil {
				continue
			}

			switch typed := value.(type) {
			case bool:
				if typed {
					query.Set(queryKey, "true")
				}
			case string:
				if strings.TrimSpace(typed) != "" {
					query.Set(queryKey, typed)
				}
			default:
				query.Set(queryKey, textOf(value))
			}
		}

		return query, nil
	}
}
