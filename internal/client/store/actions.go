package store

import (
	"encoding/json"

	"github.com/Zhanerrke588595/it-events/internal/client/models"
)

// Action is a state transition request. The set of actions is closed.
type Action interface {
	isAction()
}

// Session actions.
type (
	// SessionLoading marks an auth operation as in flight.
	SessionLoading struct{}
	// SessionEstablished stores the authenticated user.
	SessionEstablished struct{ User models.User }
	// SessionFailed records a failed auth operation; the current user is kept.
	SessionFailed struct{ Err error }
	// SessionCleared drops the user, e.g. on logout or failed restore.
	SessionCleared struct{}
	// UserUpdated replaces the session user after a profile change.
	UserUpdated struct{ User models.User }
)

// Catalog actions.
type (
	EventsLoading struct{}
	EventsLoaded  struct{ Events []models.Event }
	EventsFailed  struct{ Err error }

	// CurrentEventRequested starts a new focused-event generation and
	// clears the focused event.
	CurrentEventRequested struct{}
	// CurrentEventLoaded is applied only when Gen is the latest generation.
	CurrentEventLoaded struct {
		Gen   uint64
		Event models.Event
	}
	CurrentEventFailed struct {
		Gen uint64
		Err error
	}
	// CurrentEventCleared drops the focused event and invalidates in-flight fetches.
	CurrentEventCleared struct{}

	EventCreated  struct{ Event models.Event }
	EventReplaced struct{ Event models.Event }
	// EventPatched merges a partial server response into the entry with ID.
	EventPatched struct {
		ID    string
		Patch json.RawMessage
	}
	EventDeleted struct{ ID string }

	// EventOperationFailed records an error from create/update/delete/book.
	EventOperationFailed struct{ Err error }

	FilterChanged struct{ Patch models.FilterPatch }
)

// Ledger actions.
type (
	BookingLoading  struct{}
	BookingRecorded struct{ Booking models.Booking }
	BookingFailed   struct{ Err error }
)

func (SessionLoading) isAction()     {}
func (SessionEstablished) isAction() {}
func (SessionFailed) isAction()      {}
func (SessionCleared) isAction()     {}
func (UserUpdated) isAction()        {}

func (EventsLoading) isAction()         {}
func (EventsLoaded) isAction()          {}
func (EventsFailed) isAction()          {}
func (CurrentEventRequested) isAction() {}
func (CurrentEventLoaded) isAction()    {}
func (CurrentEventFailed) isAction()    {}
func (CurrentEventCleared) isAction()   {}
func (EventCreated) isAction()          {}
func (EventReplaced) isAction()         {}
func (EventPatched) isAction()          {}
func (EventDeleted) isAction()          {}
func (EventOperationFailed) isAction()  {}
func (FilterChanged) isAction()         {}

func (BookingLoading) isAction()  {}
func (BookingRecorded) isAction() {}
func (BookingFailed) isAction()   {}
