package store

import (
	"strings"

	"github.com/Zhanerrke588595/it-events/internal/client/models"
)

const (
	// PageSize is the number of events on one catalog page.
	PageSize = 12
	// PreviewSize is how many events of the next page are previewed.
	PreviewSize = 3
)

// VisibleEvents returns approved events matching f, in collection order.
// Search is a case-insensitive substring of the title or description.
func VisibleEvents(events []models.Event, f models.Filter) []models.Event {
	search := strings.ToLower(f.Search)
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.Status != models.StatusApproved {
			continue
		}
		if f.Type != models.TypeAll && string(e.Type) != f.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.Description), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Page is one page of a list.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	Total      int

	// Preview holds up to PreviewSize items from the following page.
	Preview []T
}

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Paginate returns page number page of items, clamping page into
// [1, TotalPages].
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = PageSize
	}
	total := TotalPages(len(items), size)
	page = min(max(page, 1), total)

	start := (page - 1) * size
	end := min(start+size, len(items))

	p := Page[T]{
		Items:      items[start:end],
		Number:     page,
		TotalPages: total,
		Total:      len(items),
	}
	if end < len(items) {
		p.Preview = items[end:min(end+PreviewSize, len(items))]
	}
	return p
}

// ReconcilePage returns the page to show after the list changed: the same
// page if it is still in range, otherwise 1.
func ReconcilePage(page, totalPages int) int {
	if page < 1 || page > totalPages {
		return 1
	}
	return page
}

// RegisteredEvents are approved events userID is an attendee of.
func RegisteredEvents(events []models.Event, userID string) []models.Event {
	var out []models.Event
	for _, e := range events {
		if e.Status == models.StatusApproved && e.HasAttendee(userID) {
			out = append(out, e)
		}
	}
	return out
}

// CreatedEvents are events created by userID, whatever their status.
func CreatedEvents(events []models.Event, userID string) []models.Event {
	var out []models.Event
	for _, e := range events {
		if e.CreatorID == userID {
			out = append(out, e)
		}
	}
	return out
}

// EventsWithStatus filters events by moderation status.
func EventsWithStatus(events []models.Event, status models.Status) []models.Event {
	var out []models.Event
	for _, e := range events {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

// UnverifiedCompanies are company accounts waiting for admin verification.
func UnverifiedCompanies(users []models.User) []models.User {
	var out []models.User
	for _, u := range users {
		if u.Role == models.RoleCompany && !u.IsVerified {
			out = append(out, u)
		}
	}
	return out
}

// FindEvent returns the collection entry with id.
func FindEvent(events []models.Event, id string) (models.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}

// PendingEvents are events waiting for moderation.
func PendingEvents(events []models.Event) []models.Event {
	return EventsWithStatus(events, models.StatusPending)
}

// IsRegistered reports whether userID attends e. The booking ledger is not
// consulted.
func IsRegistered(e models.Event, userID string) bool {
	return e.HasAttendee(userID)
}
