package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/batiknft/internal/buildinfo"
	"github.com/dmitrijs2005/batiknft/internal/logging"
	"github.com/dmitrijs2005/batiknft/internal/server"
	"github.com/dmitrijs2005/batiknft/internal/server/config"
)

func main() {

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.IssueFor != "" {
		if err := server.IssueToken(cfg, os.Stdout); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	buildinfo.PrintBuildData(os.Stdout)

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
