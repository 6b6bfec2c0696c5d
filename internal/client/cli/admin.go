package cli

import (
	"context"

	"github.com/Zhanerrke588595/it-events/internal/client/store"
)

// AdminOverview prints events waiting for moderation and companies waiting
// for verification.
func (a *App) AdminOverview(ctx context.Context, _ []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.events.FetchAll(ctx); err != nil {
		return err
	}
	users, err := a.admin.ListUsers(ctx)
	if err != nil {
		return err
	}

	pending := store.PendingEvents(a.store.State().Events.Events)
	a.printf("Pending events (%d)\n", len(pending))
	if len(pending) > 0 {
		printEvents(a.out, pending, true)
	}

	companies := store.UnverifiedCompanies(users)
	a.printf("\nUnverified companies (%d)\n", len(companies))
	if len(companies) > 0 {
		printUsers(a.out, companies)
	}
	return nil
}

func (a *App) Approve(ctx context.Context, args []string) error {
	id, err := argID(args, "approve <id>")
	if err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.events.Approve(ctx, id); err != nil {
		return err
	}
	a.notes.Success("Event approved successfully!")
	return nil
}

func (a *App) Reject(ctx context.Context, args []string) error {
	id, err := argID(args, "reject <id>")
	if err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.events.Reject(ctx, id); err != nil {
		return err
	}
	a.notes.Success("Event rejected and deleted")
	return nil
}

func (a *App) Users(ctx context.Context, _ []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	users, err := a.admin.ListUsers(ctx)
	if err != nil {
		return err
	}
	printUsers(a.out, users)
	return nil
}

func (a *App) Verify(ctx context.Context, args []string) error {
	id, err := argID(args, "verify <id>")
	if err != nil {
		return err
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.admin.VerifyUser(ctx, id); err != nil {
		return err
	}
	a.notes.Success("User verified successfully!")
	return nil
}
