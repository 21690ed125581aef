// Package app assembles the HTTP server from configuration: storage, the
// module registry, the change feed and the gin engine.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"avenstudio/internal/config"
	"avenstudio/internal/contract"
	"avenstudio/internal/database"
	"avenstudio/internal/events"
	"avenstudio/internal/middleware"
	"avenstudio/internal/modules/automation"
	"avenstudio/internal/modules/budget"
	"avenstudio/internal/modules/categories"
	"avenstudio/internal/modules/contacts"
	"avenstudio/internal/modules/documents"
	"avenstudio/internal/modules/materials"
	"avenstudio/internal/modules/milestones"
	"avenstudio/internal/modules/projects"
	"avenstudio/internal/modules/reference"
	"avenstudio/internal/modules/shared"
	"avenstudio/internal/modules/stats"
	"avenstudio/internal/modules/tasks"
	"avenstudio/internal/pkg/response"
	"avenstudio/internal/router"
	"avenstudio/internal/store"
)

const Version = "1.0.0"

// NewLogger builds the process logger: JSON in production, text otherwise.
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// Modules returns every domain module wired to records.
func Modules(records shared.Records, now shared.Clock) []contract.Module {
	return []contract.Module{
		projects.NewService(records, now),
		tasks.NewService(records, now),
		budget.NewService(records, now),
		documents.NewService(records, now),
		contacts.NewService(records, now),
		milestones.NewService(records, now),
		materials.NewService(records, now),
		categories.NewService(records, now),
		automation.NewService(records, now),
		stats.NewService(records, now),
		reference.NewService(),
	}
}

// Open connects to the configured database and brings the schema up to date.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg.DSN(), database.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx, db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

type routeRegistrar interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// Server is the assembled application.
type Server struct {
	Engine   *gin.Engine
	Router   *router.Router
	Hub      *events.Hub
	Registry *prometheus.Registry
}

// NewServer wires modules over db into a gin engine.
func NewServer(cfg *config.Config, log *slog.Logger, db *gorm.DB) *Server {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	hub := events.NewHub(cfg.AllowedOrigins...)
	records := store.New(db)
	rt := router.New(Modules(records, time.Now),
		router.WithPublisher(hub),
		router.WithRegisterer(reg),
		router.WithLogger(log),
	)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(log), middleware.CORS(cfg.AllowedOrigins))
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics(reg))
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": Version,
			"message": "AvenStudio self-build API",
			"modules": rt.Modules(),
		})
	})

	api := r.Group("/api")
	api.GET("/ws", hub.HandleWS)
	api.POST("/dispatch", dispatchHandler(rt))
	for _, h := range []routeRegistrar{
		projects.NewHandler(rt),
		tasks.NewHandler(rt),
		budget.NewHandler(rt),
		documents.NewHandler(rt),
		contacts.NewHandler(rt),
		milestones.NewHandler(rt),
		materials.NewHandler(rt),
		categories.NewHandler(rt),
		automation.NewHandler(rt),
		stats.NewHandler(rt),
		reference.NewHandler(rt),
	} {
		h.RegisterRoutes(api)
	}

	return &Server{Engine: r, Router: rt, Hub: hub, Registry: reg}
}

// dispatchHandler accepts a raw {module, action, id, data, filters} request.
func dispatchHandler(rt *router.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw contract.RawRequest
		if err := c.ShouldBindJSON(&raw); err != nil {
			response.InvalidRequest(c, "Invalid request body")
			return
		}
		response.Envelope(c, http.StatusOK, rt.HandleRequest(c.Request.Context(), raw))
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down within the
// configured timeout.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, err := Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	srv := NewServer(cfg, log, db)
	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.Addr(), "env", cfg.AppEnv, "postgres", database.IsPostgres(cfg.DSN()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
