package cli

import (
	"context"

	"github.com/Zhanerrke588595/it-events/internal/client/store"
	"github.com/Zhanerrke588595/it-events/internal/common"
)

// Dashboard prints the events the user registered for and the events they
// created, whatever their moderation status.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	u := a.store.State().Session.User
	if u == nil {
		return common.ErrUnauthorized
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.events.FetchAll(ctx); err != nil {
		return err
	}
	events := a.store.State().Events.Events

	a.printf("Hello, %s\n\n", u.Name)

	registered := store.RegisteredEvents(events, u.ID)
	a.printf("Registered events (%d)\n", len(registered))
	if len(registered) > 0 {
		printEvents(a.out, registered, false)
	}

	created := store.CreatedEvents(events, u.ID)
	a.printf("\nMy events (%d)\n", len(created))
	if len(created) > 0 {
		printEvents(a.out, created, true)
	}
	return nil
}

// Bookings prints the ledger of bookings made by this client run.
func (a *App) Bookings(_ context.Context, _ []string) error {
	bs := a.store.State().Bookings.Bookings
	if len(bs) == 0 {
		a.println("No bookings yet")
		return nil
	}
	printBookings(a.out, bs)
	return nil
}
