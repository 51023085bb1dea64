package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Evgen-Mutagen/online-banking/internal/controller"
	"github.com/Evgen-Mutagen/online-banking/internal/middlewareinternal"
	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/Evgen-Mutagen/online-banking/internal/repository"
	"github.com/Evgen-Mutagen/online-banking/internal/service"
	"github.com/Evgen-Mutagen/online-banking/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type App struct {
	cfg      *Config
	Router   *chi.Mux
	db       *repository.Database
	Logger   *zap.Logger
	Server   *http.Server
	Sessions *session.Manager

	clock        session.Clock
	accounts     repository.AccountRepository
	transactions repository.TransactionRepository
}

type Option func(*App)

// WithClock replaces the time source of the session timers.
func WithClock(clock session.Clock) Option {
	return func(a *App) { a.clock = clock }
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *App) { a.Logger = logger }
}

func New(ctx context.Context, cfg *Config, opts ...Option) (*App, error) {
	app := &App{
		cfg:    cfg,
		Router: chi.NewRouter(),
		Logger: zap.L(),
		clock:  session.SystemClock(),
	}
	for _, opt := range opts {
		opt(app)
	}

	if err := app.initStorage(ctx); err != nil {
		return nil, err
	}

	app.Sessions = session.NewManager(session.Options{
		Timeout: cfg.SessionTimeout,
		Clock:   app.clock,
		Logger:  app.Logger.Named("session"),
		OnExpire: func(s model.Session) {
			app.Logger.Debug("Session returned to login screen", zap.String("session_id", s.ID))
		},
	})

	if err := app.initRouter(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// initStorage picks Postgres when a DSN is configured and the built-in
// demo data otherwise.
func (a *App) initStorage(ctx context.Context) error {
	if a.cfg.DatabaseURI == "" {
		store := repository.NewSeededStore()
		a.accounts, a.transactions = store, store
		a.Logger.Info("Serving built-in demo data")
		return nil
	}

	db, err := repository.NewDatabase(ctx, repository.DatabaseConfig{
		DSN:            a.cfg.DatabaseURI,
		MigrationsPath: a.cfg.MigrationsPath,
	})
	if err != nil {
		a.Logger.Error("Database initialization failed",
			zap.String("dsn", a.cfg.MaskDBPassword()),
			zap.Error(err))
		return fmt.Errorf("database initialization failed: %w", err)
	}

	a.db = db
	a.accounts = repository.NewAccountRepository(db)
	a.transactions = repository.NewTransactionRepository(db)
	a.Logger.Info("Database initialized successfully",
		zap.String("migrations_path", a.cfg.MigrationsPath))
	return nil
}

func (a *App) initRouter() error {
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.RealIP)
	a.Router.Use(middleware.Logger)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.Compress(5))

	// Services
	authService, err := service.NewAuthService(a.Sessions, a.cfg.JWTSecretKey, a.cfg.LoginDelay, a.Logger.Named("auth"))
	if err != nil {
		return err
	}
	ledgerService := service.NewLedgerService(a.accounts, a.transactions)
	dashboardService := service.NewDashboardService(a.Sessions, ledgerService, a.Logger.Named("dashboard"))

	logger := a.Logger
	// Controllers
	authController := controller.NewAuthController(authService, logger)
	dashboardController := controller.NewDashboardController(dashboardService, a.Sessions, logger)
	pageController := controller.NewPageController(dashboardService, a.Sessions, controller.PageOptions{
		Title:   a.cfg.Title,
		Hint:    "Demo: " + service.DemoEmail + " / " + service.DemoPassword,
		Timeout: a.cfg.SessionTimeout,
	}, logger)

	a.Router.Group(func(r chi.Router) {
		r.Use(middlewareinternal.SessionMiddleware(authService, a.Sessions))

		// Reads that must not hold the session open
		r.Get("/", pageController.Index)
		r.Get("/api/session", dashboardController.Session)

		r.Group(func(r chi.Router) {
			r.Use(middlewareinternal.Activity(a.Sessions))

			r.Post("/api/login", authController.Login)
			r.Post("/api/logout", authController.Logout)
			r.Post("/api/activity", dashboardController.Activity)
			r.Post("/api/navigate/{view}", dashboardController.Navigate)
			r.Post("/api/sidebar/toggle", dashboardController.ToggleSidebar)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(middlewareinternal.RequireAuth(a.Sessions))

				r.Get("/api/dashboard", dashboardController.Overview)
				r.Get("/api/accounts", dashboardController.Accounts)
				r.Post("/api/accounts", dashboardController.AddAccount)
				r.Post("/api/accounts/select", dashboardController.SelectAccount)
				r.Post("/api/actions/{action}", dashboardController.QuickAction)
			})
		})
	})
	return nil
}

// Close disarms session timers and releases the database.
func (a *App) Close() error {
	if a.Sessions != nil {
		a.Sessions.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// StartSessionSweeper drops idle guest sessions every interval until ctx
// is done.
func StartSessionSweeper(ctx context.Context, sessions *session.Manager, interval, idle time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			if n := sessions.Sweep(idle); n > 0 {
				logger.Debug("Swept idle guest sessions", zap.Int("removed", n))
			}
		}
	}
}
