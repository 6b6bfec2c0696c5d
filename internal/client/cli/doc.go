// Package cli provides the interactive IT events command-line client.
//
// It wires configuration, local session storage, the REST client, the
// shared state store and the notification channel, then runs a REPL.
// On start the stored session is restored before any command is accepted.
//
// Key features:
//   - Register / Login / Logout, profile editing
//   - Browse the catalog: search, type filter, pages of 12 events
//   - Show, book, create, edit and delete events
//   - Dashboard of registered and created events, booking ledger
//   - Admin: moderation of pending events and company verification
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
