// Package store holds the client's state and the transitions over it.
//
// State is split into three slices: the session, the event catalog and
// the booking ledger. Each slice changes only through Reduce, a pure
// function of (state, action) that returns a new value and never mutates
// its input. Store serializes Dispatch calls and notifies subscribers.
//
// The catalog's focused event (EventsState.Current) is a copy of one
// collection entry. Every action that touches an entry also updates Current
// when the ids match, and deleting the focused event clears it. Fetches of
// the focused event carry a generation number; responses for an older
// generation are dropped.
//
// Derived views such as the visible event list and pagination live in
// selectors.go and are computed on read.
package store
