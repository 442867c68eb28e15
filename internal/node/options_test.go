package node_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/internal/node"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionsClient() *fakeClient {
	return newFakeClient(func(c call) (json.RawMessage, error) {
		switch c.Path {
		case "/teams":
			return json.RawMessage(`[{"id":7,"name":"Alpha"},{"id":8,"name":"Beta"}]`), nil
		case "/teams/7/workspaces":
			return json.RawMessage(`[{"id":42,"name":"Shop","subdomain":"myshop"}]`), nil
		case "/workspaces/42/tags":
			return json.RawMessage(`[{"id":5,"name":"VIP","color":"#000000"}]`), nil
		case "/workspaces/42/courses":
			return json.RawMessage(`[{"id":3,"name":"Basics"},{"id":4,"title":"Advanced"}]`), nil
		case "/workspaces/42/forms":
			return json.RawMessage(`{"id":9,"name":"Signup"}`), nil
		case "/workspaces/42/shipping/profiles":
			return json.RawMessage(`[]`), nil
		default:
			return nil, &clickfunnels.APIError{StatusCode: 404, Message: "Not Found"}
		}
	})
}

func TestLoadOptions(t *testing.T) {
	t.Parallel()

	workspace := map[string]interface{}{"workspaceId": selector}

	tests := []struct {
		name     string
		loader   string
		params   map[string]interface{}
		expected []node.OptionValue
		host     string
	}{
		{
			name:   "teams",
			loader: node.LoaderTeams,
			expected: []node.OptionValue{
				{Name: "Alpha", Value: "7"},
				{Name: "Beta", Value: "8"},
			},
			host: "accounts",
		},
		{
			name:     "workspaces",
			loader:   node.LoaderWorkspaces,
			params:   map[string]interface{}{"teamId": 7.0},
			expected: []node.OptionValue{{Name: "Shop (myshop)", Value: `{"id":42,"subdomain":"myshop"}`}},
			host:     "accounts",
		},
		{
			name:     "tags",
			loader:   node.LoaderTags,
			params:   workspace,
			expected: []node.OptionValue{{Name: "VIP", Value: "5"}},
			host:     "tenant",
		},
		{
			name:   "courses fall back to title",
			loader: node.LoaderCourses,
			params: workspace,
			expected: []node.OptionValue{
				{Name: "Basics", Value: "3"},
				{Name: "Advanced", Value: "4"},
			},
			host: "tenant",
		},
		{
			name:     "forms single object",
			loader:   node.LoaderForms,
			params:   workspace,
			expected: []node.OptionValue{{Name: "Signup", Value: "9"}},
			host:     "tenant",
		},
		{
			name:     "shipping profiles empty",
			loader:   node.LoaderShippingProfiles,
			params:   workspace,
			expected: []node.OptionValue{},
			host:     "tenant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := optionsClient()
			n := node.New(fake)

			options, err := n.LoadOptions(context.Background(), tt.loader, node.NewMapParameters(tt.params))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, options)

			calls := fake.recorded()
			require.Len(t, calls, 1)
			assert.True(t, calls[0].All)
			assert.Equal(t, tt.host, calls[0].Host)

			if tt.host == "tenant" {
				assert.Equal(t, "myshop", calls[0].Subdomain)
			}
		})
	}
}

func TestLoadOptions_MissingScope(t *testing.T) {
	t.Parallel()

	for _, loader := range []string{node.LoaderWorkspaces, node.LoaderTags, node.LoaderCourses, node.LoaderForms, node.LoaderShippingProfiles} {
		fake := optionsClient()
		n := node.New(fake)

		options, err := n.LoadOptions(context.Background(), loader, node.NewMapParameters(map[string]interface{}{"teamId": "", "workspaceId": ""}))
		require.NoError(t, err, loader)
		assert.Empty(t, options, loader)
		assert.Empty(t, fake.recorded(), loader)
	}
}

func TestLoadOptions_Errors(t *testing.T) {
	t.Parallel()

	n := node.New(optionsClient())

	_, err := n.LoadOptions(context.Background(), "getPotatoes", node.NewMapParameters(nil))
	require.ErrorIs(t, err, constants.ErrUnknownLoader)

	_, err = n.LoadOptions(context.Background(), node.LoaderWorkspaces, node.NewMapParameters(map[string]interface{}{"teamId": "x1"}))
	require.Error(t, err)
	assert.True(t, clickfunnels.IsValidationError(err))

	_, err = n.LoadOptions(context.Background(), node.LoaderTags, node.NewMapParameters(map[string]interface{}{"workspaceId": "not json"}))
	require.Error(t, err)
	assert.True(t, clickfunnels.IsValidationError(err))

	_, err = n.LoadOptions(context.Background(), node.LoaderTags, node.NewMapParameters(map[string]interface{}{
		"workspaceId": `{"id":43,"subdomain":"myshop"}`,
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading getTags options")
	assert.True(t, clickfunnels.IsNotFound(err))
}

func TestLoadOptions_Cached(t *testing.T) {
	t.Parallel()

	fake := optionsClient()
	cache := clickfunnels.NewCacheManager(clickfunnels.NewMemoryCache(10), nil)
	n := node.New(fake, node.WithCache(cache))

	params := node.NewMapParameters(map[string]interface{}{"workspaceId": selector})

	first, err := n.LoadOptions(context.Background(), node.LoaderTags, params)
	require.NoError(t, err)

	second, err := n.LoadOptions(context.Background(), node.LoaderTags, params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, fake.recorded(), 1)

	stats := cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)

	other := node.NewMapParameters(map[string]interface{}{"workspaceId": `{"id":42,"subdomain":"othershop"}`})

	_, err = n.LoadOptions(context.Background(), node.LoaderTags, other)
	require.NoError(t, err)
	assert.Len(t, fake.recorded(), 2)
}

func TestLoadOptions_CacheSeparatesCredentials(t *testing.T) {
	t.Parallel()

	teamsOf := func(body string) *fakeClient {
		return newFakeClient(func(call) (json.RawMessage, error) {
			return json.RawMessage(body), nil
		})
	}

	alpha := teamsOf(`[{"id":1,"name":"Alpha"}]`)
	beta := teamsOf(`[{"id":2,"name":"Beta"}]`)
	staging := teamsOf(`[{"id":3,"name":"Staging"}]`)

	shared := clickfunnels.NewCacheManager(clickfunnels.NewMemoryCache(10), nil)
	ctx := context.Background()
	params := node.NewMapParameters(nil)

	alphaOptions, err := node.New(alpha, node.WithCache(shared), node.WithCredential("token-a", "")).
		LoadOptions(ctx, node.LoaderTeams, params)
	require.NoError(t, err)
	assert.Equal(t, []node.OptionValue{{Name: "Alpha", Value: "1"}}, alphaOptions)

	betaOptions, err := node.New(beta, node.WithCache(shared), node.WithCredential("token-b", "")).
		LoadOptions(ctx, node.LoaderTeams, params)
	require.NoError(t, err)
	assert.Equal(t, []node.OptionValue{{Name: "Beta", Value: "2"}}, betaOptions)
	assert.Len(t, beta.recorded(), 1)

	stagingOptions, err := node.New(staging, node.WithCache(shared), node.WithCredential("token-a", "staging.example.com")).
		LoadOptions(ctx, node.LoaderTeams, params)
	require.NoError(t, err)
	assert.Equal(t, []node.OptionValue{{Name: "Staging", Value: "3"}}, stagingOptions)
	assert.Len(t, staging.recorded(), 1)

	again, err := node.New(alpha, node.WithCache(shared), node.WithCredential("token-a", "myclickfunnels.com")).
		LoadOptions(ctx, node.LoaderTeams, params)
	require.NoError(t, err)
	assert.Equal(t, alphaOptions, again)
	assert.Len(t, alpha.recorded(), 1)

	stats := shared.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(3), stats.Sets)
}

func TestLoaders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"getTeams", "getWorkspaces", "getTags", "getCourses", "getForms", "getShippingProfiles",
	}, node.Loaders())
}
