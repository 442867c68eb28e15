// Package clickfunnels provides types, interfaces, and helpers for working with
// the ClickFunnels 2.0 REST API (v2).
//
// # Overview
//
// The API is served from two hosts. Account-level resources (teams, the
// workspaces of a team, the current user) live on the accounts host:
//
//	https://accounts.myclickfunnels.com/api/v2
//
// Everything else (contacts, products, courses, shipping, ...) lives on the
// tenant host of a workspace, addressed by the workspace subdomain:
//
//	https://{subdomain}.myclickfunnels.com/api/v2
//
// A concrete Client is built by the cfclient package, which wires
// configuration, transport and authentication:
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
//	  cli, err := cfclient.New(ctx, &clickfunnels.Config{APIToken: "..."})
//	  if err != nil { log.Fatal(err) }
//
//	  path, _ := clickfunnels.ScopedPath(42, "/contacts")
//	  contacts, err := cli.RequestAllTenant(ctx, "GET", path, nil, nil, "myshop")
//	  if err != nil { log.Fatal(err) }
//	  _ = contacts
//	}
//
// # Workspaces and identifiers
//
// Workspaces are selected with a WorkspaceSelector ({"id":42,"subdomain":"myshop"})
// which is decoded and validated by DecodeWorkspaceSelector. Every identifier
// interpolated into a path is checked with ValidateNumericID first.
//
// # Pagination
//
// List endpoints paginate with an opaque cursor returned in the
// Pagination-Next response header. PaginationIterator walks the pages lazily;
// its All method collects everything up to MaxItems.
//
// # Errors
//
// Failures are reported as *ValidationError (bad input, never retried),
// *ConfigurationError (missing subdomain or token) and *APIError (transport
// or HTTP failure). Helpers such as IsNotFound and IsUnauthorized branch on
// common API error cases.
//
// # Interceptors and caching
//
// The package also includes request/response interceptors (logging, headers,
// metrics, rate limiting) used by the transport, and a pluggable Cache
// abstraction with memory, NATS KV and no-op backends.
package clickfunnels
