package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/client/services"
	"github.com/Zhanerrke588595/it-events/internal/client/store"
	"github.com/Zhanerrke588595/it-events/internal/common"
)

// List refreshes the catalog and prints the current page.
func (a *App) List(ctx context.Context, _ []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.events.FetchAll(ctx); err != nil {
		return err
	}
	a.printPage()
	return nil
}

// printPage prints the current page of visible events. The page falls
// back to 1 when the list shrank below it.
func (a *App) printPage() {
	ev := a.store.State().Events
	visible := store.VisibleEvents(ev.Events, ev.Filter)
	a.page = store.ReconcilePage(a.page, store.TotalPages(len(visible), store.PageSize))
	p := store.Paginate(visible, a.page, store.PageSize)

	a.printf("Events: %d found (type: %s, search: %q), page %d of %d\n",
		p.Total, ev.Filter.Type, ev.Filter.Search, p.Number, p.TotalPages)
	if p.Total == 0 {
		a.println("No events found")
		return
	}
	printEvents(a.out, p.Items, false)

	if len(p.Preview) > 0 {
		titles := make([]string, len(p.Preview))
		for i, e := range p.Preview {
			titles[i] = e.Title
		}
		a.printf("Next page: %s ...\n", strings.Join(titles, ", "))
	}
}

// Search sets the text filter; no argument clears it.
func (a *App) Search(_ context.Context, args []string) error {
	text := strings.Join(args, " ")
	a.events.SetFilter(models.FilterPatch{Search: &text})
	a.printPage()
	return nil
}

func (a *App) Type(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("type <all|meetup|hackathon|webinar>")
	}
	t := strings.ToLower(args[0])
	a.events.SetFilter(models.FilterPatch{Type: &t})
	a.printPage()
	return nil
}

func (a *App) Page(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return errUsage("page <n>")
	}
	a.goToPage(n)
	return nil
}

func (a *App) Next(_ context.Context, _ []string) error {
	a.goToPage(a.page + 1)
	return nil
}

func (a *App) Prev(_ context.Context, _ []string) error {
	a.goToPage(a.page - 1)
	return nil
}

// goToPage clamps n into range and prints that page.
func (a *App) goToPage(n int) {
	ev := a.store.State().Events
	visible := store.VisibleEvents(ev.Events, ev.Filter)
	a.page = store.Paginate(visible, n, store.PageSize).Number
	a.printPage()
}

// Show fetches and prints one event.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := argID(args, "show <id>")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	e, err := a.events.FetchOne(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return common.WithMessage(err, "Event not found")
	}
	if err != nil {
		return err
	}

	registered := false
	if u := a.store.State().Session.User; u != nil {
		registered = store.IsRegistered(*e, u.ID)
	}
	printEvent(a.out, *e, registered)
	return nil
}

// Book registers the session user for an event and records the booking in
// the ledger.
func (a *App) Book(ctx context.Context, args []string) error {
	id, err := argID(args, "book <id>")
	if err != nil {
		return err
	}
	u := a.store.State().Session.User
	if u == nil {
		return common.WithMessage(common.ErrUnauthorized, "Please login to register for events")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	e, err := a.events.Book(ctx, id, u.ID)
	if err != nil {
		return err
	}
	if _, err := a.bookings.Record(ctx, services.BookingFor(*e, *u)); err != nil {
		a.log.Warn(ctx, "booking not recorded", "event_id", id, "error", err)
	}

	a.notes.Success("Successfully registered for event!")
	return nil
}

// Create prompts for a new event. Events from unverified users wait for
// moderation.
func (a *App) Create(ctx context.Context, _ []string) error {
	in, err := a.inputEvent(ctx, nil)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	e, err := a.events.Create(ctx, in)
	if err != nil {
		return err
	}
	if e.Status == models.StatusApproved {
		a.notes.Success("Event created successfully!")
	} else {
		a.notes.Success("Event submitted for moderation")
	}
	return nil
}

// Edit prompts for new values of an event the session user may modify.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := argID(args, "edit <id>")
	if err != nil {
		return err
	}

	fctx, cancel := a.withTimeout(ctx)
	cur, err := a.events.FetchOne(fctx, id)
	cancel()
	if err != nil {
		return err
	}
	if !cur.CanModify(a.store.State().Session.User) {
		return common.ErrForbidden
	}

	in, err := a.inputEvent(ctx, cur)
	if err != nil {
		return err
	}

	ctx, cancel = a.withTimeout(ctx)
	defer cancel()

	if _, err := a.events.Update(ctx, id, in); err != nil {
		return err
	}
	a.notes.Success("Event updated successfully!")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := argID(args, "delete <id>")
	if err != nil {
		return err
	}
	label := id
	if e, found := store.FindEvent(a.store.State().Events.Events, id); found {
		label = fmt.Sprintf("%q (%s)", e.Title, id)
	}
	ok, err := confirm(a.reader, "Delete event "+label+"?", a.out)
	if err != nil || !ok {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.events.Delete(ctx, id); err != nil {
		return err
	}
	a.notes.Success("Event deleted successfully")
	return nil
}

// inputEvent prompts for the event form. With cur set, empty answers keep
// its values.
func (a *App) inputEvent(ctx context.Context, cur *models.Event) (services.EventInput, error) {
	var in services.EventInput
	def := models.Event{Type: models.EventTypeMeetup}
	if cur != nil {
		def = *cur
	}

	var err error
	if in.Title, err = getDefault(a.reader, "Title", def.Title, a.out); err != nil {
		return in, err
	}
	if cur == nil {
		in.Description, err = GetMultiline(a.reader, "Description", a.out)
	} else {
		in.Description, err = getDefault(a.reader, "Description", def.Description, a.out)
	}
	if err != nil {
		return in, err
	}
	typ, err := getDefault(a.reader, "Type (meetup, hackathon, webinar)", string(def.Type), a.out)
	if err != nil {
		return in, err
	}
	in.Type = models.EventType(strings.ToLower(typ))
	if in.Date, err = getDefault(a.reader, "Date (YYYY-MM-DD)", def.Date, a.out); err != nil {
		return in, err
	}
	if in.Time, err = getDefault(a.reader, "Time (HH:MM, optional)", def.Time, a.out); err != nil {
		return in, err
	}
	if in.Location, err = getDefault(a.reader, "Location", def.Location, a.out); err != nil {
		return in, err
	}

	capacity, err := getDefault(a.reader, "Max attendees (0 for unlimited)", strconv.Itoa(def.MaxAttendees), a.out)
	if err != nil {
		return in, err
	}
	if in.MaxAttendees, err = strconv.Atoi(capacity); err != nil {
		return in, common.NewValidationError("Invalid value", "maxAttendees")
	}

	in.Img = def.Img
	path, err := getSimpleText(a.reader, "Image file (optional, up to 2 MB)", a.out)
	if err != nil {
		return in, err
	}
	if path != "" {
		pctx, cancel := a.withTimeout(ctx)
		defer cancel()
		img, err := a.media.Prepare(pctx, path)
		if errors.Is(err, common.ErrValidation) {
			return in, err
		}
		if err != nil {
			return in, common.WithMessage(err, "Failed to read image file")
		}
		in.Img = img
	}
	return in, nil
}
