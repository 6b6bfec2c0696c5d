package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Zhanerrke588595/it-events/internal/common"
)

// access is who may run a command.
type access int

const (
	anyone access = iota
	member
	adminOnly
)

type command struct {
	usage  string
	help   string
	access access
	run    func(ctx context.Context, args []string) error
}

// errUsage is reported for missing or malformed command arguments.
type errUsage string

func (e errUsage) Error() string { return "Usage: " + string(e) }

func (a *App) commands() map[string]command {
	return map[string]command{
		"register": {usage: "register", help: "create an account", run: a.Register},
		"login":    {usage: "login", help: "sign in", run: a.Login},
		"logout":   {usage: "logout", help: "sign out", access: member, run: a.Logout},

		"events": {usage: "events", help: "list events on the current page", run: a.List},
		"search": {usage: "search <text>", help: "filter by title or description", run: a.Search},
		"type":   {usage: "type <all|meetup|hackathon|webinar>", help: "filter by event type", run: a.Type},
		"page":   {usage: "page <n>", help: "go to page n", run: a.Page},
		"next":   {usage: "next", help: "next page", run: a.Next},
		"prev":   {usage: "prev", help: "previous page", run: a.Prev},
		"show":   {usage: "show <id>", help: "event details", run: a.Show},

		"book":   {usage: "book <id>", help: "register for an event", access: member, run: a.Book},
		"create": {usage: "create", help: "create an event", access: member, run: a.Create},
		"edit":   {usage: "edit <id>", help: "edit your event", access: member, run: a.Edit},
		"delete": {usage: "delete <id>", help: "delete your event", access: member, run: a.Delete},

		"dashboard":   {usage: "dashboard", help: "your registered and created events", access: member, run: a.Dashboard},
		"bookings":    {usage: "bookings", help: "bookings made in this session", access: member, run: a.Bookings},
		"profile":     {usage: "profile", help: "show your profile", access: member, run: a.Profile},
		"editprofile": {usage: "editprofile", help: "change name, email or company", access: member, run: a.EditProfile},

		"admin":   {usage: "admin", help: "moderation overview", access: adminOnly, run: a.AdminOverview},
		"approve": {usage: "approve <id>", help: "publish a pending event", access: adminOnly, run: a.Approve},
		"reject":  {usage: "reject <id>", help: "delete a pending event", access: adminOnly, run: a.Reject},
		"users":   {usage: "users", help: "list all users", access: adminOnly, run: a.Users},
		"verify":  {usage: "verify <id>", help: "verify a company account", access: adminOnly, run: a.Verify},
	}
}

func (a *App) allowed(c command) error {
	switch c.access {
	case member:
		if !a.isLoggedIn() {
			return common.ErrUnauthorized
		}
	case adminOnly:
		if !a.isLoggedIn() {
			return common.ErrUnauthorized
		}
		if !a.isAdmin() {
			return common.ErrForbidden
		}
	}
	return nil
}

func (a *App) dispatch(ctx context.Context, name string, args []string) (bool, error) {
	c, ok := a.cmds[name]
	if !ok {
		return false, nil
	}
	if err := a.allowed(c); err != nil {
		return true, err
	}
	return true, c.run(ctx, args)
}

// helpText lists the commands the current session may run.
func (a *App) helpText() string {
	names := make([]string, 0, len(a.cmds))
	for name, c := range a.cmds {
		if a.allowed(c) == nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range names {
		c := a.cmds[name]
		fmt.Fprintf(&b, "  %-38s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(&b, "  %-38s %s", "exit | quit", "leave the program")
	return b.String()
}

// report shows err to the user through the notification channel.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	var usage errUsage
	if errors.As(err, &usage) {
		a.notes.Info(usage.Error())
		return
	}
	a.log.Debug(context.Background(), "command failed", "error", err)
	a.notes.Error(common.UserMessage(err))
}

// argID returns the single id argument of a command.
func argID(args []string, usage string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", errUsage(usage)
	}
	return args[0], nil
}
