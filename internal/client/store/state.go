package store

import "github.com/Zhanerrke588595/it-events/internal/client/models"

// SessionState keeps IsAuthenticated == (User != nil).
type SessionState struct {
	User            *models.User
	IsAuthenticated bool
	Loading         bool
	Error           error
}

type EventsState struct {
	Events  []models.Event
	Current *models.Event

	// CurrentGen is the latest focused-event request generation.
	CurrentGen uint64

	Filter  models.Filter
	Loading bool
	Error   error
}

type BookingsState struct {
	Bookings []models.Booking
	Loading  bool
	Error    error
}

type State struct {
	Session  SessionState
	Events   EventsState
	Bookings BookingsState
}

// InitialState is the state before the session is restored: loading, with
// the default filter.
func InitialState() State {
	return State{
		Session: SessionState{Loading: true},
		Events:  EventsState{Filter: models.DefaultFilter()},
	}
}
