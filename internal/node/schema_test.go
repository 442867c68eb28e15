package node_test

import (
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/clickfunnels-node/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDescribe_CoversDispatchTable(t *testing.T) {
	t.Parallel()

	schema := node.Describe()
	assert.Equal(t, "clickFunnels", schema.Name)
	assert.Equal(t, "clickFunnelsApi", schema.Credential)

	keys := node.Keys()
	require.NotEmpty(t, keys)

	described := 0

	for _, resource := range schema.Resources {
		for _, operation := range resource.Operations {
			described++

			descriptor, ok := node.Lookup(resource.Name, operation.Name)
			require.True(t, ok, "%s.%s", resource.Name, operation.Name)
			assert.Equal(t, descriptor.Path, operation.Path)
			assert.NotEmpty(t, operation.Method)
		}
	}

	assert.Equal(t, len(keys), described)
}

func TestDescribe_Resources(t *testing.T) {
	t.Parallel()

	expected := map[string][]string{
		"contact":         {"create", "get", "getAll", "update", "delete", "upsert", "applyTag", "removeTag"},
		"tag":             {"create", "delete", "getAll"},
		"order":           {"get", "getAll"},
		"product":         {"create", "get", "getAll", "update", "delete"},
		"course":          {"get", "getAll"},
		"courseSection":   {"create", "get", "getAll", "update"},
		"courseLesson":    {"create", "get", "getAll", "update"},
		"enrollment":      {"create", "get", "getAll"},
		"funnel":          {"get", "getAll"},
		"page":            {"get", "getAll"},
		"webhook":         {"create", "get", "getAll", "update", "delete"},
		"form":            {"get", "getAll"},
		"formSubmission":  {"get", "getAll"},
		"image":           {"create", "get", "getAll", "update", "delete"},
		"segment":         {"get", "getAll"},
		"shippingProfile": {"create", "get", "getAll", "update", "delete"},
		"shippingRate":    {"create", "get", "getAll", "update", "delete"},
		"shippingZone":    {"create", "get", "getAll", "update", "delete"},
		"shippingPackage": {"create", "get", "getAll", "update", "delete"},
		"team":            {"get", "getAll"},
		"workspace":       {"get", "getAll"},
	}

	schema := node.Describe()
	require.Len(t, schema.Resources, len(expected))

	for name, operations := range expected {
		resource, ok := schema.Resource(name)
		require.True(t, ok, name)

		var names []string
		for _, operation := range resource.Operations {
			names = append(names, operation.Name)
		}

		assert.Equal(t, operations, names, name)
	}
}

func TestDescribe_ListFieldsAndHosts(t *testing.T) {
	t.Parallel()

	schema := node.Describe()

	for _, resource := range schema.Resources {
		for _, operation := range resource.Operations {
			descriptor, _ := node.Lookup(resource.Name, operation.Name)

			if descriptor.List {
				var limit *node.Field

				for i := range operation.Fields {
					if operation.Fields[i].Name == "limit" {
						limit = &operation.Fields[i]
					}
				}

				require.NotNil(t, limit, "%s.%s", resource.Name, operation.Name)
				assert.Equal(t, 1, *limit.MinValue)
				assert.Equal(t, 100, *limit.MaxValue)
				assert.Equal(t, 50, limit.Default)
			}

			expectedHost := node.HostTenant
			if resource.Name == "team" || resource.Name == "workspace" {
				expectedHost = node.HostAccounts
			}

			assert.Equal(t, expectedHost, operation.Host, "%s.%s", resource.Name, operation.Name)
		}
	}
}

func TestDescribe_Serializes(t *testing.T) {
	t.Parallel()

	schema := node.Describe()

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"load_options":"getTags"`)

	out, err := yaml.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: clickFunnels")

	contact, ok := schema.Resource("contact")
	require.True(t, ok)

	upsert, ok := contact.Operation("upsert")
	require.True(t, ok)
	assert.Equal(t, "/workspaces/{workspaceId}/contacts/upsert", upsert.Path)

	_, ok = contact.Operation("explode")
	assert.False(t, ok)
}

func TestKey_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "contact.upsert", node.Key{Resource: "contact", Operation: "upsert"}.String())
}
