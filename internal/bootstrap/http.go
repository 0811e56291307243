package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/target/schoolsite-ui/config"
	httpx "github.com/target/schoolsite-ui/internal/http"
	"github.com/target/schoolsite-ui/internal/http/richtext"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RouterServices maps the service container and config onto the router's dependencies.
func RouterServices(cfg *HTTPServerConfig) httpx.RouterServices {
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}
	svc := cfg.Services

	rs := httpx.RouterServices{
		Pages:      svc.Pages,
		News:       svc.News,
		Gallery:    svc.Gallery,
		Messages:   svc.Messages,
		SchoolInfo: svc.SchoolInfo,
		Dashboard:  svc.Dashboard,
		Account:    svc.Auth,
		Sessions:   svc.Sessions,
		Public:     svc.Public,
		Site: httpx.SiteDefaults{
			Name:        appCfg.Content.SiteName,
			Description: appCfg.Content.SiteDescription,
			Keywords:    appCfg.Content.SiteKeywords,
		},
		RichText:      richtext.New(richtext.Policy(appCfg.Content.RichContent)),
		ExcerptLength: appCfg.Content.ExcerptLength,
		CookieDomain:  appCfg.HTTP.CookieDomain,
		IsDev:         appCfg.IsDev,
		Logger:        cfg.Logger,
	}
	if svc.Store != nil {
		rs.Health = svc.Store
	}
	return rs
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig, errCh chan<- error) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
		cfg.Logger = logger
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Services: RouterServices(cfg),
		HTTP:     appCfg.HTTP,
	})

	return startServer(logger, handler, appCfg.HTTP.Addr, errCh)
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
}

func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	router := httpx.NewRouter(cfg.Services)

	// Apply compression middleware first (innermost) so logging captures compressed sizes
	// Order: Recover -> Logging -> Compression -> Router
	h := router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel, Logger: cfg.Logger})(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h
}

func startServer(logger *slog.Logger, handler http.Handler, addr string, errCh chan<- error) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				errCh <- err
			}
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server within the shutdown timeout.
func ShutdownHTTPServer(server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}

// RunWithShutdown starts the HTTP server and blocks until SIGINT/SIGTERM or a
// server failure, then shuts down gracefully.
func RunWithShutdown(cfg *HTTPServerConfig) error {
	errCh := make(chan error, 1)
	server := StartHTTPServer(cfg, errCh)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		return ShutdownHTTPServer(server, cfg.Logger)
	case err := <-errCh:
		if stopErr := ShutdownHTTPServer(server, cfg.Logger); stopErr != nil {
			cfg.Logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}
