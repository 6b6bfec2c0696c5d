package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zhanerrke588595/it-events/internal/buildinfo"
	"github.com/Zhanerrke588595/it-events/internal/client/cli"
	"github.com/Zhanerrke588595/it-events/internal/client/config"
	"github.com/Zhanerrke588595/it-events/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
