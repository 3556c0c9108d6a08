// Package server wires the sequence issuer: configuration, the Postgres
// store with its migrations and the gRPC endpoint.
package server

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/batiknft/internal/logging"
	"github.com/dmitrijs2005/batiknft/internal/server/auth"
	"github.com/dmitrijs2005/batiknft/internal/server/config"
	"github.com/dmitrijs2005/batiknft/internal/server/repositories/repomanager"

	gs "github.com/dmitrijs2005/batiknft/internal/server/grpc"
)

const startupTimeout = 30 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return newApp(c, logger, repos), nil
}

func newApp(c *config.Config, logger logging.Logger, repos repomanager.RepositoryManager) *App {
	return &App{config: c, logger: logger.With("app", "sequence_issuer"), repos: repos}
}

func (app *App) prepare(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	if err := app.repos.Ping(ctx); err != nil {
		return err
	}
	return app.repos.RunMigrations(ctx)
}

// Run checks the database, applies migrations and serves gRPC until ctx is
// done. The database is closed on return.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Warn(ctx, "closing database", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	if err := app.prepare(ctx); err != nil {
		app.logger.Error(ctx, "startup failed", "error", err)
		return err
	}

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.repos.Sequences(), app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

// IssueToken writes an access token for c.IssueFor to w.
func IssueToken(c *config.Config, w io.Writer) error {
	tok, err := auth.GenerateToken(c.IssueFor, []byte(c.SecretKey), c.TokenValidity)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	_, err = fmt.Fprintln(w, tok)
	return err
}
