package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/client/client"
	"github.com/Zhanerrke588595/it-events/internal/client/config"
	"github.com/Zhanerrke588595/it-events/internal/client/media"
	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/client/notify"
	"github.com/Zhanerrke588595/it-events/internal/client/repositories/credentials"
	"github.com/Zhanerrke588595/it-events/internal/client/services"
	"github.com/Zhanerrke588595/it-events/internal/client/store"
	"github.com/Zhanerrke588595/it-events/internal/logging"
)

const onlineCheckInterval = 5 * time.Second

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	log    logging.Logger

	store    *store.Store
	notes    *notify.Channel
	auth     services.AuthService
	events   services.EventService
	bookings services.BookingService
	admin    services.AdminService
	media    media.Preparer

	cmds    map[string]command
	closeFn func() error

	reader *bufio.Reader
	out    io.Writer

	// page is the 1-based catalog page shown by "events". It returns to 1
	// whenever the filter changes.
	page   int
	filter models.Filter

	unsubscribe func()

	modeMu sync.Mutex
	Mode   Mode
}

// NewApp opens local storage, connects the REST client and builds the
// services that share one store.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	creds := credentials.NewSQLiteRepository(db)
	api, err := client.NewRESTClient(c.ServerBaseURL, creds, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	st := store.New(store.InitialState())
	preparer := media.New(media.S3Options{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	}, log)

	a := newApp(c, log, st,
		services.NewAuthService(api, creds, st, log),
		services.NewEventService(api, st, log),
		services.NewBookingService(api, st),
		services.NewAdminService(api, st, log),
		preparer,
		bufio.NewReader(os.Stdin), os.Stdout,
	)
	a.closeFn = db.Close
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, st *store.Store,
	auth services.AuthService, events services.EventService,
	bookings services.BookingService, admin services.AdminService,
	preparer media.Preparer, reader *bufio.Reader, out io.Writer,
) *App {
	a := &App{
		config:   c,
		log:      log,
		store:    st,
		auth:     auth,
		events:   events,
		bookings: bookings,
		admin:    admin,
		media:    preparer,
		reader:   reader,
		out:      out,
		page:     1,
	}
	a.notes = notify.NewChannel(notify.WithObserver(a.renderNotification))
	a.cmds = a.commands()
	a.filter = st.State().Events.Filter
	a.unsubscribe = st.Subscribe(a.onStateChange)
	return a
}

// onStateChange runs on the dispatching goroutine after every store update.
func (a *App) onStateChange(st store.State) {
	if st.Events.Filter != a.filter {
		a.filter = st.Events.Filter
		a.page = 1
	}
}

// Run restores the session, loads the catalog and blocks in the REPL until
// the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	a.println("Welcome to IT events (type 'help' for commands)")
	a.restore(ctx)

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	a.unsubscribe()
	a.notes.Hide()
	if a.closeFn == nil {
		return
	}
	if err := a.closeFn(); err != nil {
		a.log.Warn(ctx, "close storage", "error", err)
	}
}

// restore re-establishes the stored session. Commands are not read until
// it returns.
func (a *App) restore(ctx context.Context) {
	a.println("Loading...")

	cctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.auth.RestoreSession(cctx)
	switch {
	case err != nil:
		a.log.Warn(ctx, "session not restored", "error", err)
		a.notes.Info("Session expired, please login")
	case u != nil:
		a.notes.Success(fmt.Sprintf("Welcome back, %s!", u.Name))
	}

	if _, err := a.events.FetchAll(cctx); err != nil {
		a.report(err)
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) isLoggedIn() bool {
	return a.store.State().Session.IsAuthenticated
}

func (a *App) isAdmin() bool {
	return a.store.State().Session.User.IsAdmin()
}

func (a *App) getStatus() string {
	s := ""
	if u := a.store.State().Session.User; u != nil {
		s = u.Email + " "
	}
	a.modeMu.Lock()
	s += string(a.Mode)
	a.modeMu.Unlock()
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "switched mode", "mode", mode)
	}
}

// StartOnlineStatusWatcher pings the backend every interval and tracks
// whether it is reachable.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) renderNotification(n notify.Notification) {
	if !n.Visible {
		return
	}
	fmt.Fprintf(a.out, "[%s] %s\n", n.Severity, n.Message)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
