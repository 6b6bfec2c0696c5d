// Package server assembles and runs the events backend: the document store,
// the read cache, the collection service and the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/logging"
	"github.com/Zhanerrke588595/it-events/internal/server/cache"
	"github.com/Zhanerrke588595/it-events/internal/server/config"
	"github.com/Zhanerrke588595/it-events/internal/server/httpapi"
	"github.com/Zhanerrke588595/it-events/internal/server/repositories/repomanager"
	"github.com/Zhanerrke588595/it-events/internal/server/resources"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	resources resources.Service
	closeFn   func() error
}

// openRepository is a seam for tests.
var openRepository = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, "info"))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	repo, closeDB, err := openRepository(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, documents are kept in memory")
	}

	rc := cache.New(c.RedisAddr, "", 0)
	rs := resources.NewService(repo, rc, c.CacheTTL, logger.With("module", "resources"))

	created, err := resources.SeedAdmin(ctx, rs, c.AdminEmail, c.AdminPassword, time.Now())
	if err != nil {
		_ = closeDB()
		_ = rc.Close()
		return nil, err
	}
	if created {
		logger.Info(ctx, "admin account created", "email", c.AdminEmail)
	}

	closeFn := func() error {
		return errors.Join(closeDB(), rc.Close())
	}

	return &App{config: c, logger: logger, resources: rs, closeFn: closeFn}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until ctx is cancelled or a termination signal
// arrives, then releases storage.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.resources)
	runErr := s.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, runErr.Error())
	}

	if err := app.closeFn(); err != nil {
		app.logger.Error(ctx, "close storage", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
