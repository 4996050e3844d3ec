package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hellenika/hellenika-api/internal/api/middleware"
	"github.com/hellenika/hellenika-api/internal/config"
	"github.com/hellenika/hellenika-api/internal/domain/mastery"
	"github.com/hellenika/hellenika-api/internal/platform/postgres"
	"github.com/hellenika/hellenika-api/internal/progress"
	"github.com/hellenika/hellenika-api/internal/service/account"
	"github.com/hellenika/hellenika-api/internal/service/auth"
	"github.com/hellenika/hellenika-api/internal/store"
	"github.com/hellenika/hellenika-api/internal/study"
	"github.com/hellenika/hellenika-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	profileStore  store.ProfileStore
	wordStore     store.WordStore
	groupStore    store.GroupStore
	sessionStore  store.SessionStore
	progressStore store.ProgressStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	accountService   *account.Service
	tracker          *progress.Tracker
	studyEngine      *study.Engine
	loginLimiter     *middleware.LoginRateLimiter

	// Background task handling
	taskRunner *task.Runner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies that must be established before
// application wiring: configuration, logger, and database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	verifier := auth.NewBcryptVerifier(cfg.Auth.BcryptCost)
	app.passwordVerifier = verifier

	// Stores. The user store hashes passwords with the same bcrypt
	// settings the login path verifies against.
	app.userStore = postgres.NewPostgresUserStore(db, verifier, logger)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.groupStore = postgres.NewPostgresGroupStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)

	app.accountService = account.NewService(db, app.userStore, app.profileStore)

	app.tracker = progress.NewTracker(
		app.progressStore,
		app.wordStore,
		app.sessionStore,
		mastery.DefaultParams(),
	)

	// Task runner processes progress writes off the answer path.
	app.taskRunner = task.NewRunner(task.RunnerConfig{
		QueueSize:   cfg.Task.QueueSize,
		WorkerCount: cfg.Task.WorkerCount,
	}, logger)
	app.taskRunner.Start()

	recorder := task.NewAsyncRecorder(app.taskRunner, app.tracker)

	app.studyEngine = study.NewEngine(
		app.wordStore,
		app.groupStore,
		app.sessionStore,
		recorder,
		cfg.Study.SessionSize,
		nil,
	)

	app.loginLimiter = middleware.NewLoginRateLimiter(
		cfg.Auth.LoginRateLimit,
		time.Duration(cfg.Auth.LoginRateWindowSeconds)*time.Second,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop drains queued progress writes before returning.
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
