// Package server initializes and runs the Krishi Mitre API server.
// It opens the database, runs migrations, wires services to the HTTP
// handlers, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/krishimitre/krishimitre/internal/logging"
	"github.com/krishimitre/krishimitre/internal/server/config"
	"github.com/krishimitre/krishimitre/internal/server/httpapi"
	"github.com/krishimitre/krishimitre/internal/server/repositories/repomanager"
	"github.com/krishimitre/krishimitre/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler *httpapi.Handler
}

func NewApp(c *config.Config) (*App, error) {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	fs := services.NewFarmerService(db, m, c)
	fbs := services.NewFeedbackService(db, m)
	mls := services.NewMLService(c, logger)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		handler: httpapi.NewHandler(fs, fbs, mls, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "error closing db", "error", err)
		}
	}()

	router := httpapi.NewRouter(app.handler, []byte(app.config.SecretKey))
	srv := httpapi.NewServer(app.config.EndpointAddr, router, app.logger)

	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, "server error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
