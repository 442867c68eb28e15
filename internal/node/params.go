package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
)

// Parameters gives the node per-item access to its configured parameters.
// The host evaluates expressions, so a value may differ between items.
type Parameters interface {
	// Get returns the value of name for the given item and whether it is set.
	Get(name string, item int) (interface{}, bool)
}

// MapParameters is a Parameters backed by plain maps. Item values take
// precedence over shared ones.
type MapParameters struct {
	Shared map[string]interface{}
	Items  []map[string]interface{}
}

// NewMapParameters creates parameters with shared values and optional
// per-item overrides.
func NewMapParameters(shared map[string]interface{}, items ...map[string]interface{}) *MapParameters {
	if shared == nil {
		shared = make(map[string]interface{})
	}

	return &MapParameters{Shared: shared, Items: items}
}

// Get implements Parameters.
func (p *MapParameters) Get(name string, item int) (interface{}, bool) {
	if item >= 0 && item < len(p.Items) {
		if value, ok := p.Items[item][name]; ok {
			return value, true
		}
	}

	value, ok := p.Shared[name]

	return value, ok
}

// ItemCount returns the number of items, at least one.
func (p *MapParameters) ItemCount() int {
	if len(p.Items) == 0 {
		return 1
	}

	return len(p.Items)
}

// itemParams reads the parameters of one item, falling back to the field
// defaults of the operation being run.
type itemParams struct {
	params Parameters
	index  int
	fields map[string]Field
}

func newItemParams(params Parameters, index int, fields []Field) *itemParams {
	byName := make(map[string]Field, len(fields))
	for _, field := range fields {
		byName[field.Name] = field
	}

	return &itemParams{params: params, index: index, fields: byName}
}

func (p *itemParams) value(name string) (interface{}, bool) {
	value, ok := p.params.Get(name, p.index)
	if ok && value != nil {
		return value, true
	}

	field, known := p.fields[name]
	if known && field.Default != nil {
		return field.Default, true
	}

	return nil, false
}

// present reports whether name carries a non-empty value.
func (p *itemParams) present(name string) bool {
	value, ok := p.params.Get(name, p.index)
	if !ok || value == nil {
		return false
	}

	if text, isString := value.(string); isString {
		return strings.TrimSpace(text) != ""
	}

	return true
}

// String returns the value of name as text; absent values are empty.
func (p *itemParams) String(name string) string {
	value, ok := p.value(name)
	if !ok {
		return ""
	}

	return textOf(value)
}

// ID validates name as a numeric identifier.
func (p *itemParams) ID(name string) (string, error) {
	value, _ := p.value(name)

	return clickfunnels.ValidateNumericID(value, idLabel(name))
}

// Bool returns the value of name as a boolean.
func (p *itemParams) Bool(name string) (bool, error) {
	value, ok := p.value(name)
	if !ok {
		return false, nil
	}

	switch typed := value.(type) {
	case bool:
		return typed, nil
	case string:
		if strings.TrimSpace(typed) == "" {
			return false, nil
		}

		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return false, &clickfunnels.ValidationError{Field: name, Value: typed, Reason: "expected true or false"}
		}

		return parsed, nil
	default:
		return false, &clickfunnels.ValidationError{Field: name, Value: textOf(value), Reason: "expected true or false"}
	}
}

// Int returns the value of name as an integer.
func (p *itemParams) Int(name string) (int, error) {
	number, err := p.Float(name)
	if err != nil {
		return 0, err
	}

	if number != math.Trunc(number) {
		return 0, &clickfunnels.ValidationError{Field: name, Value: textOf(number), Reason: "expected a whole number"}
	}

	return int(number), nil
}

// Float returns the value of name as a number.
func (p *itemParams) Float(name string) (float64, error) {
	value, ok := p.value(name)
	if !ok {
		return 0, nil
	}

	switch typed := value.(type) {
	case float64:
		return typed, nil
	case float32:
		return float64(typed), nil
	case int:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, &clickfunnels.ValidationError{Field: name, Value: typed.String(), Reason: "expected a number"}
		}

		return parsed, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, &clickfunnels.ValidationError{Field: name, Value: typed, Reason: "expected a number"}
		}

		return parsed, nil
	default:
		return 0, &clickfunnels.ValidationError{Field: name, Value: textOf(value), Reason: "expected a number"}
	}
}

// Collection returns the value of name as a set of named fields. A JSON
// object string is decoded; absent values yield an empty map.
func (p *itemParams) Collection(name string) (map[string]interface{}, error) {
	value, ok := p.value(name)
	if !ok {
		return map[string]interface{}{}, nil
	}

	switch typed := value.(type) {
	case map[string]interface{}:
		copied := make(map[string]interface{}, len(typed))
		for key, entry := range typed {
			copied[key] = entry
		}

		return copied, nil
	case string:
		if strings.TrimSpace(typed) == "" {
			return map[string]interface{}{}, nil
		}

		decoded := map[string]interface{}{}

		decoder := json.NewDecoder(bytes.NewReader([]byte(typed)))
		decoder.UseNumber()

		err := decoder.Decode(&decoded)
		if err != nil {
			return nil, &clickfunnels.ValidationError{Field: name, Value: typed, Reason: "expected a JSON object"}
		}

		return decoded, nil
	default:
		return nil, &clickfunnels.ValidationError{Field: name, Value: textOf(value), Reason: "expected a JSON object"}
	}
}

// Strings returns the value of name as a list. A comma-separated string is split.
func (p *itemParams) Strings(name string) []string {
	value, ok := p.value(name)
	if !ok {
		return []string{}
	}

	switch typed := value.(type) {
	case []string:
		return typed
	case []interface{}:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			out = append(out, textOf(entry))
		}

		return out
	default:
		return splitList(textOf(value))
	}
}

func splitList(text string) []string {
	out := make([]string, 0)

	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

// textOf renders a parameter value as text. Integral floats render without
// a fraction so that IDs decoded from JSON keep their form.
func textOf(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		if typed == math.Trunc(typed) && math.Abs(typed) < 1<<53 {
			return strconv.FormatInt(int64(typed), 10)
		}

		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	default:
		return fmt.Sprint(value)
	}
}

// idLabel turns a parameter name such as "shippingProfileId" into the label
// "shipping profile ID" used in validation errors.
func idLabel(name string) string {
	base := strings.TrimSuffix(name, "Id")
	base = strings.TrimPrefix(base, "specific")

	var builder strings.Builder

	for i, r := range base {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				builder.WriteByte(' ')
			}

			r += 'a' - 'A'
		}

		builder.WriteRune(r)
	}

	label := strings.TrimSpace(builder.String())
	if label == "" {
		return "ID"
	}

	return label + " ID"
}
