package models

import (
	"encoding/json"
	"slices"
	"time"
)

type EventType string

const (
	EventTypeMeetup    EventType = "meetup"
	EventTypeHackathon EventType = "hackathon"
	EventTypeWebinar   EventType = "webinar"
)

// EventTypes lists the known event types in display order.
var EventTypes = []EventType{EventTypeMeetup, EventTypeHackathon, EventTypeWebinar}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Event is a document from the "events" collection.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Type        EventType `json:"type"`

	// Date is a calendar date such as "2025-03-14"; Time is optional "18:30".
	Date string `json:"date" validate:"required"`
	Time string `json:"time,omitempty"`

	Location string `json:"location" validate:"required"`

	// MaxAttendees is the capacity; zero means unlimited.
	MaxAttendees int    `json:"maxAttendees,omitempty"`
	Img          string `json:"img,omitempty"`

	CreatorID   string    `json:"creatorId"`
	CreatorName string    `json:"creatorName"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`

	// Attendees holds user ids; membership is unique.
	Attendees []string `json:"attendees"`
}

// HasAttendee reports whether userID is registered for e.
func (e Event) HasAttendee(userID string) bool {
	return slices.Contains(e.Attendees, userID)
}

// IsFull reports whether a capacity is set and reached.
func (e Event) IsFull() bool {
	return e.MaxAttendees > 0 && len(e.Attendees) >= e.MaxAttendees
}

// CanModify reports whether u may edit or delete e.
func (e Event) CanModify(u *User) bool {
	if u == nil {
		return false
	}
	return u.ID == e.CreatorID || u.Role == RoleAdmin
}

// Clone returns a copy of e that shares no slices with it.
func (e Event) Clone() Event {
	e.Attendees = slices.Clone(e.Attendees)
	return e
}

// MergeEvent overlays the fields present in patch onto a copy of base.
// Fields absent from patch keep their base values.
func MergeEvent(base Event, patch json.RawMessage) (Event, error) {
	merged := base.Clone()
	if len(patch) == 0 {
		return merged, nil
	}
	if err := json.Unmarshal(patch, &merged); err != nil {
		return base, err
	}
	return merged, nil
}
