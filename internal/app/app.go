package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"mindpulse/internal/analysis"
	"mindpulse/internal/config"
	"mindpulse/internal/dataset"
	apierrors "mindpulse/internal/errors"
	"mindpulse/internal/infrastructure"
	customMiddleware "mindpulse/internal/middleware"
	"mindpulse/internal/services"
	handlers "mindpulse/internal/transport/http"
	ws "mindpulse/internal/websocket"
)

const AppName = "MindPulse - Mental Health in Tech Dashboard"

// Version and BuildTime are overridden at link time
var (
	Version   = "dev"
	BuildTime = ""
)

// Application wires the configuration, services, and HTTP server together
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	Metrics         *infrastructure.Metrics
	WebSocketHub    *ws.Hub
	AnalysisService *services.AnalysisService
	HealthService   *services.HealthService
}

// NewApplication creates the application container
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
	)

	metrics, err := infrastructure.InitializeMetrics(Version, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	}
	app.initializeServices()
	app.setupRouter()
	app.createServer()
	return app, nil
}

// initializeServices builds the websocket hub and the service layer
func (a *Application) initializeServices() {
	hub := ws.NewHub(a.Logger)
	hub.Start()
	a.WebSocketHub = hub

	loader := dataset.NewLoader(a.Config.Data.Dir, a.Config.Data.Sources, a.Logger)
	analyzer := analysis.New(a.Logger)
	a.AnalysisService = services.NewAnalysisService(
		loader,
		analyzer,
		a.Config.Data,
		hub,
		a.Metrics,
		a.Logger,
	)
	a.HealthService = services.NewHealthService(Version, BuildTime, a.AnalysisService, hub)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)

	// Websocket upgrade must not pass through the response-wrapping
	// middlewares below.
	upgrader := ws.NewUpgrader(a.WebSocketHub, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.Logger)
	r.Get("/ws", upgrader.ServeHTTP)

	// Prometheus scrape endpoint, outside the middleware group
	r.Handle("/metrics", a.Metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recovery(a.Logger))
		r.Use(customMiddleware.Metrics(a.Metrics))
		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.Config.Security.AllowedOrigins))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures the /api endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)
	analysisHandler := handlers.NewAnalysisHandler(a.AnalysisService, a.Logger, errorHandler)
	dataHandler := handlers.NewDataHandler(a.AnalysisService, a.Logger, errorHandler)
	exportHandler := handlers.NewExportHandler(a.AnalysisService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		r.Mount("/analysis", analysisHandler.Routes())
		r.Get("/insights", analysisHandler.Insights)
		r.Mount("/data", dataHandler.Routes())
		r.Mount("/export", exportHandler.Routes())
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start loads the datasets and starts serving
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	// Survey loading is fail-soft; an unreadable file yields empty tables
	// and the fallback analysis paths.
	if err := a.AnalysisService.Reload(ctx); err != nil {
		return fmt.Errorf("initial dataset load: %w", err)
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)),
	)
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.WebSocketHub.Stop()

	if err := a.Metrics.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "error shutting down metrics", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	// Detach shutdown from the cancelled run context
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer stopCancel()
	return a.Stop(stopCtx)
}
