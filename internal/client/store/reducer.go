package store

import (
	"fmt"
	"slices"

	"github.com/Zhanerrke588595/it-events/internal/client/models"
)

// Reduce returns the state that results from applying a to s.
// s is left untouched.
func Reduce(s State, a Action) State {
	s.Session = reduceSession(s.Session, a)
	s.Events = reduceEvents(s.Events, a)
	s.Bookings = reduceBookings(s.Bookings, a)
	return s
}

func reduceSession(s SessionState, a Action) SessionState {
	switch a := a.(type) {
	case SessionLoading:
		s.Loading = true
		s.Error = nil
	case SessionEstablished:
		u := a.User
		s.User = &u
		s.IsAuthenticated = true
		s.Loading = false
		s.Error = nil
	case SessionFailed:
		s.Loading = false
		s.Error = a.Err
	case SessionCleared:
		s = SessionState{}
	case UserUpdated:
		if s.User != nil {
			u := a.User
			s.User = &u
		}
	}
	return s
}

func reduceEvents(s EventsState, a Action) EventsState {
	switch a := a.(type) {
	case EventsLoading:
		s.Loading = true
		s.Error = nil
	case EventsLoaded:
		s.Events = cloneEvents(a.Events)
		s.Loading = false
	case EventsFailed:
		s.Loading = false
		s.Error = a.Err

	case CurrentEventRequested:
		s.CurrentGen++
		s.Current = nil
		s.Loading = true
		s.Error = nil
	case CurrentEventLoaded:
		if a.Gen != s.CurrentGen {
			return s
		}
		e := a.Event.Clone()
		s.Current = &e
		s.Loading = false
	case CurrentEventFailed:
		if a.Gen != s.CurrentGen {
			return s
		}
		s.Current = nil
		s.Loading = false
		s.Error = a.Err
	case CurrentEventCleared:
		s.CurrentGen++
		s.Current = nil
		s.Loading = false

	case EventCreated:
		s.Events = append(cloneEvents(s.Events), a.Event.Clone())
		s.Error = nil
	case EventReplaced:
		s.Events = replaceEvent(s.Events, a.Event)
		if s.Current != nil && s.Current.ID == a.Event.ID {
			e := a.Event.Clone()
			s.Current = &e
		}
		s.Error = nil
	case EventPatched:
		s = patchEvent(s, a)
	case EventDeleted:
		s.Events = slices.DeleteFunc(cloneEvents(s.Events), func(e models.Event) bool { return e.ID == a.ID })
		if s.Current != nil && s.Current.ID == a.ID {
			s.Current = nil
		}
		s.Error = nil
	case EventOperationFailed:
		s.Error = a.Err

	case FilterChanged:
		s.Filter = a.Patch.Apply(s.Filter)
	}
	return s
}

func patchEvent(s EventsState, a EventPatched) EventsState {
	events := cloneEvents(s.Events)
	for i := range events {
		if events[i].ID != a.ID {
			continue
		}
		merged, err := models.MergeEvent(events[i], a.Patch)
		if err != nil {
			s.Error = fmt.Errorf("merge event %s: %w", a.ID, err)
			return s
		}
		events[i] = merged
	}
	s.Events = events

	if s.Current != nil && s.Current.ID == a.ID {
		merged, err := models.MergeEvent(*s.Current, a.Patch)
		if err != nil {
			s.Error = fmt.Errorf("merge event %s: %w", a.ID, err)
			return s
		}
		s.Current = &merged
	}
	s.Error = nil
	return s
}

func reduceBookings(s BookingsState, a Action) BookingsState {
	switch a := a.(type) {
	case BookingLoading:
		s.Loading = true
		s.Error = nil
	case BookingRecorded:
		s.Bookings = append(slices.Clone(s.Bookings), a.Booking)
		s.Loading = false
	case BookingFailed:
		s.Loading = false
		s.Error = a.Err
	}
	return s
}

func replaceEvent(events []models.Event, e models.Event) []models.Event {
	out := cloneEvents(events)
	for i := range out {
		if out[i].ID == e.ID {
			out[i] = e.Clone()
		}
	}
	return out
}

func cloneEvents(events []models.Event) []models.Event {
	if events == nil {
		return nil
	}
	out := make([]models.Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}
