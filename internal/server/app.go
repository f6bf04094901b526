// Package server initializes and runs the recipe API application.
// It opens the database, waits for it to become ready, applies schema
// migrations and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/a-mean-h/recepie-api-app/internal/logging"
	"github.com/a-mean-h/recepie-api-app/internal/server/config"
	"github.com/a-mean-h/recepie-api-app/internal/server/dbwait"
	"github.com/a-mean-h/recepie-api-app/internal/server/httpapi"
	"github.com/a-mean-h/recepie-api-app/internal/server/repositories/repomanager"
	"github.com/a-mean-h/recepie-api-app/internal/server/services"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	tokenService  *services.TokenService
	recipeService *services.RecipeService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := dbwait.Wait(ctx, db, c.DBWaitInterval, c.DBWaitTimeout); err != nil {
		return nil, err
	}

	rm := &repomanager.PostgresRepositoryManager{}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm)
	ts := services.NewTokenService(db, rm)
	rs := services.NewRecipeService(db, rm)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		userService:   us,
		tokenService:  ts,
		recipeService: rs,
	}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.tokenService, app.recipeService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
