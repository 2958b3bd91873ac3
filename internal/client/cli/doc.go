// Package cli provides the interactive fintrack command-line client.
//
// It wires configuration, the local token store, the API client, the session
// and the dashboard behind a REPL. Every command maps to a route, and the
// route guard decides whether the command may run: protected commands ask
// for a login first, guest-only ones are refused once logged in.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
