// Package cli provides the interactive storyshare command-line client.
//
// It wires configuration, the local record store, the caching transport, the
// API services and an interactive REPL that keeps working offline: list and
// detail reads fall back to cached records, and story submissions made while
// offline are queued and replayed when connectivity returns.
//
// Navigation mirrors the web client: "open <route>" runs the route guard and
// either renders the matching page or follows its redirect. Pages are also
// reachable directly through commands (list, show, add, bookmarks).
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and the route guard in internal/client/router for details.
package cli
