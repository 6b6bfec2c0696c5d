package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/client/client"
	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/client/store"
	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/Zhanerrke588595/it-events/internal/logging"
)

// EventInput is the create/edit event form.
type EventInput struct {
	Title        string           `json:"title" validate:"required"`
	Description  string           `json:"description" validate:"required"`
	Type         models.EventType `json:"type" validate:"omitempty,oneof=meetup hackathon webinar"`
	Date         string           `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string           `json:"time" validate:"omitempty,datetime=15:04"`
	Location     string           `json:"location" validate:"required"`
	MaxAttendees int              `json:"maxAttendees" validate:"gte=0"`
	Img          string           `json:"img"`
}

func (in EventInput) normalized() EventInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if in.Type == "" {
		in.Type = models.EventTypeMeetup
	}
	return in
}

// EventService manages the event catalog.
type EventService interface {
	FetchAll(ctx context.Context) ([]models.Event, error)
	FetchOne(ctx context.Context, id string) (*models.Event, error)
	ClearCurrent()

	Create(ctx context.Context, in EventInput) (*models.Event, error)
	Update(ctx context.Context, id string, in EventInput) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	Book(ctx context.Context, eventID, userID string) (*models.Event, error)

	SetFilter(p models.FilterPatch)

	Approve(ctx context.Context, id string) (*models.Event, error)
	Reject(ctx context.Context, id string) error
}

type eventService struct {
	client client.Client
	store  *store.Store
	log    logging.Logger
	now    func() time.Time
}

func NewEventService(c client.Client, st *store.Store, log logging.Logger) EventService {
	return &eventService{client: c, store: st, log: log, now: time.Now}
}

func (s *eventService) fail(err error) error {
	s.store.Dispatch(store.EventOperationFailed{Err: err})
	return err
}

// FetchAll replaces the collection with the server's. On failure the
// collection is left as it was.
func (s *eventService) FetchAll(ctx context.Context) ([]models.Event, error) {
	s.store.Dispatch(store.EventsLoading{})

	events, err := s.client.ListEvents(ctx)
	if err != nil {
		err = fmt.Errorf("list events: %w", err)
		s.store.Dispatch(store.EventsFailed{Err: err})
		return nil, err
	}

	s.store.Dispatch(store.EventsLoaded{Events: events})
	return events, nil
}

// FetchOne focuses the event with id. A response that arrives after a
// newer FetchOne or ClearCurrent is dropped.
func (s *eventService) FetchOne(ctx context.Context, id string) (*models.Event, error) {
	gen := s.store.Dispatch(store.CurrentEventRequested{}).Events.CurrentGen

	e, err := s.client.GetEvent(ctx, id)
	if err != nil {
		err = fmt.Errorf("get event %s: %w", id, err)
		s.store.Dispatch(store.CurrentEventFailed{Gen: gen, Err: err})
		return nil, err
	}

	st := s.store.Dispatch(store.CurrentEventLoaded{Gen: gen, Event: *e})
	if st.Events.CurrentGen != gen {
		s.log.Debug(ctx, "dropped stale event response", "event_id", id)
	}
	return e, nil
}

func (s *eventService) ClearCurrent() {
	s.store.Dispatch(store.CurrentEventCleared{})
}

// Create submits a new event. Admins and verified users publish directly;
// other events wait for moderation.
func (s *eventService) Create(ctx context.Context, in EventInput) (*models.Event, error) {
	in = in.normalized()
	if err := validateInput(in); err != nil {
		return nil, s.fail(err)
	}
	u, err := currentUser(s.store)
	if err != nil {
		return nil, s.fail(err)
	}

	status := models.StatusPending
	if u.PublishesDirectly() {
		status = models.StatusApproved
	}

	e := models.Event{
		Title:        in.Title,
		Description:  in.Description,
		Type:         in.Type,
		Date:         in.Date,
		Time:         in.Time,
		Location:     in.Location,
		MaxAttendees: in.MaxAttendees,
		Img:          in.Img,
		CreatorID:    u.ID,
		CreatorName:  u.Name,
		Status:       status,
		CreatedAt:    s.now().UTC(),
		Attendees:    []string{},
	}

	created, err := s.client.CreateEvent(ctx, e)
	if err != nil {
		return nil, s.fail(fmt.Errorf("create event: %w", err))
	}
	s.store.Dispatch(store.EventCreated{Event: *created})
	s.log.Info(ctx, "event created", "event_id", created.ID, "status", created.Status)
	return created, nil
}

// modifiable returns the latest server copy of id if the session user may
// change it.
func (s *eventService) modifiable(ctx context.Context, id string) (*models.Event, error) {
	u, err := currentUser(s.store)
	if err != nil {
		return nil, err
	}
	e, err := s.client.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	if !e.CanModify(u) {
		return nil, common.ErrForbidden
	}
	return e, nil
}

// Update replaces the editable fields of an event. Creator, status,
// attendees and createdAt are carried over from the server copy.
func (s *eventService) Update(ctx context.Context, id string, in EventInput) (*models.Event, error) {
	in = in.normalized()
	if err := validateInput(in); err != nil {
		return nil, s.fail(err)
	}
	cur, err := s.modifiable(ctx, id)
	if err != nil {
		return nil, s.fail(err)
	}

	next := cur.Clone()
	next.Title = in.Title
	next.Description = in.Description
	next.Type = in.Type
	next.Date = in.Date
	next.Time = in.Time
	next.Location = in.Location
	next.MaxAttendees = in.MaxAttendees
	next.Img = in.Img

	return s.replace(ctx, next)
}

func (s *eventService) replace(ctx context.Context, e models.Event) (*models.Event, error) {
	saved, err := s.client.UpdateEvent(ctx, e.ID, e)
	if err != nil {
		return nil, s.fail(fmt.Errorf("update event %s: %w", e.ID, err))
	}
	s.store.Dispatch(store.EventReplaced{Event: *saved})
	return saved, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.modifiable(ctx, id); err != nil {
		return s.fail(err)
	}
	return s.remove(ctx, id)
}

func (s *eventService) remove(ctx context.Context, id string) error {
	if err := s.client.DeleteEvent(ctx, id); err != nil {
		return s.fail(fmt.Errorf("delete event %s: %w", id, err))
	}
	s.store.Dispatch(store.EventDeleted{ID: id})
	s.log.Info(ctx, "event deleted", "event_id", id)
	return nil
}

// Book adds userID to the attendees of eventID. The event is re-read
// first so the check and the new attendee set use the latest copy.
func (s *eventService) Book(ctx context.Context, eventID, userID string) (*models.Event, error) {
	if userID == "" {
		return nil, s.fail(common.ErrUnauthorized)
	}

	e, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, s.fail(fmt.Errorf("get event %s: %w", eventID, err))
	}
	if e.HasAttendee(userID) {
		return nil, s.fail(common.ErrAlreadyRegistered)
	}
	if e.IsFull() {
		return nil, s.fail(common.ErrEventFull)
	}

	attendees := append(slices.Clone(e.Attendees), userID)
	raw, err := s.client.PatchEvent(ctx, eventID, map[string]any{"attendees": attendees})
	if err != nil {
		return nil, s.fail(fmt.Errorf("book event %s: %w", eventID, err))
	}

	st := s.store.Dispatch(store.EventPatched{ID: eventID, Patch: raw})
	if st.Events.Error != nil {
		return nil, st.Events.Error
	}

	booked, err := models.MergeEvent(*e, raw)
	if err != nil {
		return nil, fmt.Errorf("decode booked event: %w", err)
	}
	return &booked, nil
}

func (s *eventService) SetFilter(p models.FilterPatch) {
	s.store.Dispatch(store.FilterChanged{Patch: p})
}

// Approve publishes a pending event.
func (s *eventService) Approve(ctx context.Context, id string) (*models.Event, error) {
	if _, err := requireAdmin(s.store); err != nil {
		return nil, s.fail(err)
	}
	e, err := s.client.GetEvent(ctx, id)
	if err != nil {
		return nil, s.fail(fmt.Errorf("get event %s: %w", id, err))
	}
	next := e.Clone()
	next.Status = models.StatusApproved
	return s.replace(ctx, next)
}

// Reject removes a pending event.
func (s *eventService) Reject(ctx context.Context, id string) error {
	if _, err := requireAdmin(s.store); err != nil {
		return s.fail(err)
	}
	return s.remove(ctx, id)
}

