package clickfunnels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var (
	numericIDPattern = regexp.MustCompile(`^\d+$`)
	subdomainPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
)

const (
	reasonNumericID         = "ID must be a numeric value"
	reasonSubdomain         = "subdomain may only contain letters, digits and inner hyphens"
	reasonSelectorMissing   = "please select a workspace from the dropdown"
	reasonSelectorMalformed = "please re-select a workspace from the dropdown"
)

// WorkspaceSelector identifies a workspace by numeric id and host subdomain.
// Its JSON form is the value of the workspace dropdown.
type WorkspaceSelector struct {
	ID        int64  `json:"id"        yaml:"id"`
	Subdomain string `json:"subdomain" yaml:"subdomain"`
}

// Encode returns the JSON form of the selector.
func (w WorkspaceSelector) Encode() string {
	data, _ := json.Marshal(w)

	return string(data)
}

// IDString returns the workspace id as a path segment.
func (w WorkspaceSelector) IDString() string {
	return strconv.FormatInt(w.ID, 10)
}

// ValidateNumericID checks that value renders as a run of ASCII digits and
// returns that rendering. label names the identifier in the error message.
func ValidateNumericID(value interface{}, label string) (string, error) {
	text, ok := idText(value)
	if !ok || !numericIDPattern.MatchString(text) {
		return "", &ValidationError{Field: label, Value: text, Reason: reasonNumericID}
	}

	return text, nil
}

// idText renders the id forms a host may hand over: strings, Go numbers and
// json.Number. Floats are accepted only when integral.
func idText(value interface{}) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case json.Number:
		return typed.String(), true
	case int:
		return strconv.FormatInt(int64(typed), 10), true
	case int32:
		return strconv.FormatInt(int64(typed), 10), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case uint:
		return strconv.FormatUint(uint64(typed), 10), true
	case uint32:
		return strconv.FormatUint(uint64(typed), 10), true
	case uint64:
		return strconv.FormatUint(typed, 10), true
	case float32:
		return formatFloatID(float64(typed))
	case float64:
		return formatFloatID(typed)
	default:
		return fmt.Sprint(value), true
	}
}

func formatFloatID(value float64) (string, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'g', -1, 64), true
	}

	if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
		return strconv.FormatInt(int64(value), 10), true
	}

	return strconv.FormatFloat(value, 'f', -1, 64), true
}

// ValidateSubdomain checks that value is a single DNS label.
func ValidateSubdomain(value string) error {
	if !subdomainPattern.MatchString(value) {
		return &ValidationError{Field: "subdomain", Value: value, Reason: reasonSubdomain}
	}

	return nil
}

// DecodeWorkspaceSelector parses the JSON form of a workspace selector.
func DecodeWorkspaceSelector(raw string) (*WorkspaceSelector, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return nil, &ValidationError{Field: "workspace selection", Reason: reasonSelectorMissing}
	}

	var fields map[string]json.RawMessage

	err := json.Unmarshal(trimmed, &fields)
	if err != nil {
		return nil, &ValidationError{Field: "workspace selection", Value: raw, Reason: reasonSelectorMissing}
	}

	var id json.Number

	err = decodeStrict(fields["id"], &id)
	if err != nil {
		return nil, &ValidationError{Field: "workspace data", Value: raw, Reason: reasonSelectorMalformed}
	}

	workspaceID, err := id.Int64()
	if err != nil || workspaceID < 0 {
		return nil, &ValidationError{Field: "workspace data", Value: raw, Reason: reasonSelectorMalformed}
	}

	var subdomain string

	err = decodeStrict(fields["subdomain"], &subdomain)
	if err != nil {
		return nil, &ValidationError{Field: "workspace data", Value: raw, Reason: reasonSelectorMalformed}
	}

	err = ValidateSubdomain(subdomain)
	if err != nil {
		return nil, err
	}

	return &WorkspaceSelector{ID: workspaceID, Subdomain: subdomain}, nil
}

// decodeStrict unmarshals raw into target, treating an absent field as an error.
// json.Number rejects quoted numbers, and string targets reject numbers.
func decodeStrict(raw json.RawMessage, target interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return ErrMissingParameter
	}

	if _, isNumber := target.(*json.Number); isNumber && raw[0] == '"' {
		return ErrMissingParameter
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	err := decoder.Decode(target)
	if err != nil {
		return fmt.Errorf("decoding selector field: %w", err)
	}

	return nil
}

// ScopedPath validates workspaceID and returns "/workspaces/{id}{suffix}".
func ScopedPath(workspaceID interface{}, suffix string) (string, error) {
	id, err := ValidateNumericID(workspaceID, "workspace ID")
	if err != nil {
		return "", err
	}

	return "/workspaces/" + id + suffix, nil
}
