// Package server wires the catalog into the dashboard HTTP API and the MCP
// server.
//
// ServerContext holds the loader, the selector bound to the configured
// category table, the view session tracker and the instrumentation provider.
// Dependencies are injected with functional options:
//
//	sc, err := server.NewServerContext(ctx,
//		server.WithLoader(loader),
//		server.WithLogger(logger),
//		server.WithInstrumentationProvider(provider),
//	)
//	if err != nil {
//		return err
//	}
//	defer sc.Shutdown()
//
//	mux := http.NewServeMux()
//	server.NewAPI(sc).Register(mux)
//	server.NewHealthChecker(sc).RegisterHealthEndpoints(mux)
//
// View sessions:
//
// Every dashboard tab identifies itself with a session id. Selections of one
// session are ordered: when a newer request of the same session starts
// before an older one is answered, the older one fails with
// ErrViewSuperseded and the API answers 409 Conflict.
//
// Responses computed from the catalog carry its revision in the
// X-Catalog-Revision header and as ETag, so clients can revalidate with
// If-None-Match.
package server
