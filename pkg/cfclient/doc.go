// Package cfclient provides the primary entry point for constructing a
// ClickFunnels 2.0 API client that implements the clickfunnels.Client interface.
//
// It layers configuration, HTTP transport and bearer authentication on top of
// the request builder and pagination driver. Most applications import
// cfclient to build a client and then hand it to the workflow node, or call
// the tenant and accounts request methods directly.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/clickfunnels-node/pkg/cfclient"
//	  "github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := cfclient.New(ctx, &clickfunnels.Config{
//	    APIToken:  "cf-token",
//	    RateLimit: 5,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Accounts host: teams and workspaces.
//	  teams, err := cli.RequestAllAccounts(ctx, "GET", "/teams", nil, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = teams
//
//	  // Tenant host: everything scoped to one workspace.
//	  contacts, err := cli.RequestAllTenant(ctx, "GET", "/workspaces/42/contacts", nil, nil, "myshop")
//	  if err != nil { log.Fatal(err) }
//	  _ = contacts
//	}
//
// # Domains
//
// Config.Domain defaults to "myclickfunnels.com". A scheme or trailing slash
// is stripped. AccountsURL and TenantURLTemplate replace the derived base URLs
// entirely, which is how tests point the client at an httptest server.
//
// # Helpers
//
// NewWithToken and NewWithDomain wrap New with the matching configuration.
package cfclient
