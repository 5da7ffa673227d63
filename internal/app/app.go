package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-log-viewer/internal/auth"
	"go-log-viewer/internal/config"
	"go-log-viewer/internal/ginadapter"
	"go-log-viewer/internal/handler"
	"go-log-viewer/internal/logentry"
	"go-log-viewer/internal/logger"
	"go-log-viewer/internal/middleware"
	"go-log-viewer/internal/router"
	"go-log-viewer/internal/service"
	"go-log-viewer/internal/storage"
	"go-log-viewer/internal/ui"
)

type App struct {
	server *http.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(cfg)
}

func NewWithConfig(cfg *config.Config) (*App, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.LogFormat, level))

	appHandler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appHandler,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server}, nil
}

// NewHandler wires storage, the log service and the configured HTTP framework.
func NewHandler(cfg *config.Config) (http.Handler, error) {
	store, err := storage.New(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	matcher, err := logentry.NewMatcher(cfg.EntryFormat, cfg.EntryStartPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to build entry matcher: %w", err)
	}

	auditService, err := service.NewConfinedAuditService(cfg.AuditLogFile, store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audit log: %w", err)
	}

	logService := service.NewLogService(store, matcher, service.TailWindow{
		AverageLineBytes: cfg.TailAverageLineBytes,
		FloorBytes:       cfg.TailFloorBytes,
	}, auditService)

	page, err := ui.New(ui.Options{
		BaseURL:      cfg.URLPrefix,
		AutoRefresh:  cfg.UIAutoRefresh,
		RefreshTimer: cfg.UIRefreshTimer,
		AutoScroll:   cfg.UIAutoScroll,
		Colorize:     cfg.UIColorize,
		DefaultLines: cfg.DefaultLines,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load viewer page: %w", err)
	}

	authenticator := auth.New(auth.Options{
		Username:            cfg.Username,
		Password:            cfg.Password,
		PasswordHash:        cfg.PasswordHash,
		PrivilegedAccess:    cfg.PrivilegedAccess,
		PrivilegedJWTSecret: cfg.PrivilegedJWTSecret,
	})
	if !authenticator.Enabled() {
		slog.Warn("basic auth disabled; set LOGVIEWER_USERNAME and LOGVIEWER_PASSWORD to protect the viewer")
	}

	slog.Info("log viewer configured",
		"log_dir", store.RootAbs(),
		"prefix", cfg.URLPrefix,
		"framework", cfg.HTTPFramework,
		"entry_format", cfg.EntryFormat,
	)

	if cfg.HTTPFramework == config.FrameworkGin {
		limiter := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.MutationRateLimitRPM)
		return ginadapter.NewEngine(cfg.URLPrefix, cfg.CORSOrigins, limiter, cfg.RequestTimeout, func(r gin.IRouter) {
			ginadapter.Register(r, logService, ginadapter.Options{
				Authenticator: authenticator,
				Page:          page,
				DefaultLines:  cfg.DefaultLines,
			})
		}), nil
	}

	return router.New(cfg, authenticator, router.Handlers{
		Log:  handler.NewLogHandler(logService, cfg.DefaultLines),
		UI:   handler.NewUIHandler(page),
		Docs: handler.NewDocsHandler(cfg.URLPrefix + "/openapi.yaml"),
	}), nil
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
