// Package lsp serves callout completion over the Language Server Protocol.
//
// Any LSP-capable editor can use the server to get the callout-type popup
// while writing Markdown. The server speaks JSON-RPC 2.0 over stdio with
// Content-Length framing and implements a small slice of the protocol:
//
//   - initialize, initialized, shutdown, exit
//   - textDocument/didOpen, didChange (full and incremental), didClose
//   - textDocument/completion and completionItem/resolve
//   - workspace/didChangeConfiguration
//
// # Settings
//
// The catalog is populated when the client sends initialized. Settings
// come from, in order of preference, the callouts section of the most
// recent workspace/didChangeConfiguration payload or initializationOptions,
// then the source given with WithSource (normally the callout-manager data
// file). Payloads are accepted either as {"callouts": ...} or wrapped as
// {"settings": {"callouts": ...}}.
//
// # Completion
//
// A completion request runs the trigger on the cursor line. Each matching
// callout type becomes an item whose textEdit replaces the typed query;
// items have kind Color, the rgb() color as detail and the hex color as
// documentation.
//
//	conn := lsp.NewConn(os.Stdin, os.Stdout, os.Stdin)
//	srv := lsp.NewServer(conn, catalog, lsp.WithSource(load))
//	err := srv.Serve(ctx)
//
// Positions on the wire count UTF-16 code units; they are converted to
// rune columns before reaching the trigger.
package lsp
