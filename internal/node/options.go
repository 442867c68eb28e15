package node

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
)

// Dropdown loaders.
const (
	LoaderTeams            = "getTeams"
	LoaderWorkspaces       = "getWorkspaces"
	LoaderTags             = "getTags"
	LoaderCourses          = "getCourses"
	LoaderForms            = "getForms"
	LoaderShippingProfiles = "getShippingProfiles"
)

// OptionValue is one dropdown entry.
type OptionValue struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type tenantLoader struct {
	suffix string
	decode func(items []json.RawMessage) ([]OptionValue, error)
}

var tenantLoaders = map[string]tenantLoader{
	LoaderTags:             {suffix: "/tags", decode: decodeNamed[clickfunnels.Tag]},
	LoaderCourses:          {suffix: "/courses", decode: decodeNamed[clickfunnels.Course]},
	LoaderForms:            {suffix: "/forms", decode: decodeNamed[clickfunnels.Form]},
	LoaderShippingProfiles: {suffix: "/shipping/profiles", decode: decodeNamed[clickfunnels.ShippingProfile]},
}

// Loaders returns the names of every dropdown loader.
func Loaders() []string {
	return []string{LoaderTeams, LoaderWorkspaces, LoaderTags, LoaderCourses, LoaderForms, LoaderShippingProfiles}
}

// LoadOptions runs a dropdown loader. Loaders whose team or workspace is not
// selected yet return no options.
func (n *Node) LoadOptions(ctx context.Context, loader string, params Parameters) ([]OptionValue, error) {
	head := newItemParams(params, 0, nil)

	switch loader {
	case LoaderTeams:
		return n.cached(ctx, loader, nil, func() ([]OptionValue, error) {
			items, err := n.client.RequestAllAccounts(ctx, http.MethodGet, "/teams", nil, nil)
			if err != nil {
				return nil, err
			}

			return decodeNamed[clickfunnels.Team](items)
		})
	case LoaderWorkspaces:
		if !head.present("teamId") {
			return []OptionValue{}, nil
		}

		teamID, err := head.ID("teamId")
		if err != nil {
			return nil, err
		}

		return n.cached(ctx, loader, map[string]string{"team": teamID}, func() ([]OptionValue, error) {
			items, err := n.client.RequestAllAccounts(ctx, http.MethodGet, "/teams/"+teamID+"/workspaces", nil, nil)
			if err != nil {
				return nil, err
			}

			return decodeWorkspaces(items)
		})
	}

	tenant, ok := tenantLoaders[loader]
	if !ok {
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownLoader, loader)
	}

	if !head.present("workspaceId") {
		return []OptionValue{}, nil
	}

	raw, _ := head.value("workspaceId")

	selector, err := clickfunnels.DecodeWorkspaceSelector(selectorText(raw))
	if err != nil {
		return nil, err
	}

	path, err := clickfunnels.ScopedPath(selector.ID, tenant.suffix)
	if err != nil {
		return nil, err
	}

	scope := map[string]string{"subdomain": selector.Subdomain, "workspace": selector.IDString()}

	return n.cached(ctx, loader, scope, func() ([]OptionValue, error) {
		items, err := n.client.RequestAllTenant(ctx, http.MethodGet, path, nil, nil, selector.Subdomain)
		if err != nil {
			return nil, err
		}

		return tenant.decode(items)
	})
}

// cached serves load from the options cache. Cache failures never fail the
// loader.
func (n *Node) cached(ctx context.Context, loader string, scope map[string]string, load func() ([]OptionValue, error)) ([]OptionValue, error) {
	key := n.cache.GetCacheKey("options", loader, n.cacheScope(scope))

	data, err := n.cache.Get(ctx, key)
	if err == nil {
		var options []OptionValue

		if json.Unmarshal(data, &options) == nil {
			return options, nil
		}
	}

	options, err := load()
	if err != nil {
		return nil, fmt.Errorf("loading %s options: %w", loader, err)
	}

	data, err = json.Marshal(options)
	if err == nil {
		err = n.cache.Set(ctx, key, data, n.optionsTTL)
	}

	if err != nil {
		n.logger.Debug("options not cached", map[string]interface{}{"loader": loader, "error": err.Error()})
	}

	return options, nil
}

// cacheScope adds the credential fingerprint to a loader scope.
func (n *Node) cacheScope(scope map[string]string) map[string]string {
	if n.credential == "" {
		return scope
	}

	scoped := make(map[string]string, len(scope)+1)
	for key, value := range scope {
		scoped[key] = value
	}

	scoped["account"] = n.credential

	return scoped
}

func decodeNamed[T clickfunnels.Named](items []json.RawMessage) ([]OptionValue, error) {
	options := make([]OptionValue, 0, len(items))

	for _, item := range items {
		var record T

		err := json.Unmarshal(item, &record)
		if err != nil {
			return nil, fmt.Errorf("decoding option: %w", err)
		}

		options = append(options, OptionValue{
			Name:  record.Label(),
			Value: strconv.FormatInt(record.Identifier(), 10),
		})
	}

	return options, nil
}

// decodeWorkspaces labels workspaces "<name> (<subdomain>)" and uses the
// encoded selector as the value.
func decodeWorkspaces(items []json.RawMessage) ([]OptionValue, error) {
	options := make([]OptionValue, 0, len(items))

	for _, item := range items {
		var workspace clickfunnels.Workspace

		err := json.Unmarshal(item, &workspace)
		if err != nil {
			return nil, fmt.Errorf("decoding workspace: %w", err)
		}

		options = append(options, OptionValue{
			Name:  workspace.Name + " (" + workspace.Subdomain + ")",
			Value: workspace.Selector().Encode(),
		})
	}

	return options, nil
}
