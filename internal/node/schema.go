package node

import (
	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
)

// FieldType is the editor type of a node parameter.
type FieldType string

// Field types understood by the host editor.
const (
	FieldString       FieldType = "string"
	FieldNumber       FieldType = "number"
	FieldBoolean      FieldType = "boolean"
	FieldOptions      FieldType = "options"
	FieldMultiOptions FieldType = "multiOptions"
	FieldCollection   FieldType = "collection"
)

// Field describes one node parameter.
type Field struct {
	Name        string      `json:"name"                   yaml:"name"`
	DisplayName string      `json:"display_name"           yaml:"display_name"`
	Type        FieldType   `json:"type"                   yaml:"type"`
	Required    bool        `json:"required,omitempty"     yaml:"required,omitempty"`
	Default     interface{} `json:"default,omitempty"      yaml:"default,omitempty"`
	MinValue    *int        `json:"min_value,omitempty"    yaml:"min_value,omitempty"`
	MaxValue    *int        `json:"max_value,omitempty"    yaml:"max_value,omitempty"`
	LoadOptions string      `json:"load_options,omitempty" yaml:"load_options,omitempty"`
	Options     []string    `json:"options,omitempty"      yaml:"options,omitempty"`
	Fields      []Field     `json:"fields,omitempty"       yaml:"fields,omitempty"`
	Description string      `json:"description,omitempty"  yaml:"description,omitempty"`
}

// OperationSchema describes one (resource, operation) pair.
type OperationSchema struct {
	Name        string  `json:"name"         yaml:"name"`
	DisplayName string  `json:"display_name" yaml:"display_name"`
	Host        Host    `json:"host"         yaml:"host"`
	Method      string  `json:"method"       yaml:"method"`
	Path        string  `json:"path"         yaml:"path"`
	Fields      []Field `json:"fields"       yaml:"fields"`
}

// ResourceSchema describes a resource and its operations.
type ResourceSchema struct {
	Name        string            `json:"name"         yaml:"name"`
	DisplayName string            `json:"display_name" yaml:"display_name"`
	Operations  []OperationSchema `json:"operations"   yaml:"operations"`
}

// Schema is the declarative description of the node.
type Schema struct {
	Name        string           `json:"name"         yaml:"name"`
	DisplayName string           `json:"display_name" yaml:"display_name"`
	Credential  string           `json:"credential"   yaml:"credential"`
	Version     int              `json:"version"      yaml:"version"`
	Fields      []Field          `json:"fields"       yaml:"fields"`
	Resources   []ResourceSchema `json:"resources"    yaml:"resources"`
}

// Resource returns the schema of the named resource.
func (s *Schema) Resource(name string) (*ResourceSchema, bool) {
	for i := range s.Resources {
		if s.Resources[i].Name == name {
			return &s.Resources[i], true
		}
	}

	return nil, false
}

// Operation returns the schema of one operation of a resource.
func (r *ResourceSchema) Operation(name string) (*OperationSchema, bool) {
	for i := range r.Operations {
		if r.Operations[i].Name == name {
			return &r.Operations[i], true
		}
	}

	return nil, false
}

// Describe returns the node schema derived from the dispatch table.
func Describe() *Schema {
	schema := &Schema{
		Name:        "clickFunnels",
		DisplayName: "ClickFunnels",
		Credential:  "clickFunnelsApi",
		Version:     1,
		Fields:      commonFields(),
	}

	for _, resource := range registry.resources {
		resourceSchema := ResourceSchema{Name: resource.name, DisplayName: resource.displayName}

		for _, operation := range resource.operations {
			descriptor := registry.descriptors[Key{Resource: resource.name, Operation: operation}]

			resourceSchema.Operations = append(resourceSchema.Operations, OperationSchema{
				Name:        operation,
				DisplayName: descriptor.DisplayName,
				Host:        descriptor.Host,
				Method:      descriptor.Method,
				Path:        descriptor.Path,
				Fields:      descriptor.Fields,
			})
		}

		schema.Resources = append(schema.Resources, resourceSchema)
	}

	return schema
}

// commonFields are the parameters shared by every operation.
func commonFields() []Field {
	return []Field{
		{
			Name:        "teamId",
			DisplayName: "Team Name or ID",
			Type:        FieldOptions,
			Required:    true,
			LoadOptions: LoaderTeams,
		},
		{
			Name:        "workspaceId",
			DisplayName: "Workspace Name or ID",
			Type:        FieldOptions,
			Required:    true,
			LoadOptions: LoaderWorkspaces,
			Description: "Encoded workspace selector: {\"id\": <id>, \"subdomain\": \"<subdomain>\"}",
		},
		{Name: "resource", DisplayName: "Resource", Type: FieldOptions, Required: true, Default: "contact"},
		{Name: "operation", DisplayName: "Operation", Type: FieldOptions, Required: true},
	}
}

func intPtr(value int) *int {
	return &value
}

// Field constructors shared by the dispatch table.

func idField(name, displayName string) Field {
	return Field{Name: name, DisplayName: displayName, Type: FieldString, Required: true, Default: ""}
}

func stringField(name, displayName string, required bool) Field {
	return Field{Name: name, DisplayName: displayName, Type: FieldString, Required: required, Default: ""}
}

func collectionField(name, displayName string, options ...string) Field {
	field := Field{Name: name, DisplayName: displayName, Type: FieldCollection, Default: map[string]interface{}{}}

	for _, option := range options {
		field.Fields = append(field.Fields, Field{Name: option, DisplayName: option, Type: FieldString, Default: ""})
	}

	return field
}

// listFields returns leading followed by the returnAll and limit fields of
// every getAll operation.
func listFields(leading ...Field) []Field {
	fields := append([]Field{}, leading...)

	return append(fields,
		Field{Name: "returnAll", DisplayName: "Return All", Type: FieldBoolean, Default: false},
		Field{
			Name:        "limit",
			DisplayName: "Limit",
			Type:        FieldNumber,
			Default:     constants.DefaultPageLimit,
			MinValue:    intPtr(constants.MinPageLimit),
			MaxValue:    intPtr(constants.MaxPageLimit),
		},
	)
}
