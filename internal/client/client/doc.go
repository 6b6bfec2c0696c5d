// Package client contains the client's building blocks for talking to the
// events backend.
//
// # Overview
//
// The package provides:
//  1. The Client interface: collection-style CRUD over users, events and
//     bookings, plus a liveness check.
//  2. RESTClient, a JSON-over-HTTP implementation that injects the session
//     token as a bearer Authorization header on every request.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring a
//     sqlite file with embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are returned as *StatusError and match the sentinels of
// package common: 404 is common.ErrNotFound, 401/403 is
// common.ErrUnauthorized, anything else (and every network failure or
// timeout) is common.ErrTransport. Nothing is retried.
package client
