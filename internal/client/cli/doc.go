// Package cli provides the interactive docflow command-line client.
//
// It wires configuration, the gRPC client and an interactive REPL. Typical
// flow: log in, start a background connectivity watcher, then execute
// commands against documents the user can see.
//
// Key features:
//   - Register / Login / Logout, and user deletion for managers
//   - Upload PDF documents, list and show them
//   - Sign, reject or move documents to another status
//   - Download documents after the server verified their signed digest
//   - Read and acknowledge status change notifications
//
// Commands accept their arguments inline (e.g. "sign <id>") and prompt for
// anything missing. The REPL is started via App.Root(ctx), which blocks until
// the user exits.
package cli
