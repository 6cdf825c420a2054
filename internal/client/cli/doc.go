// Package cli provides the interactive worklog command-line client.
//
// It wires configuration, the HTTP API client and the client services into a
// REPL. Typical flow: login, record sessions against job functions, then
// browse monthly reports and export them as spreadsheets or PDFs. Admins also
// manage users.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command set.
package cli
