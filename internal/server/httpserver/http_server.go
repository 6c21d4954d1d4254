// Package httpserver wires the Inkwell HTTP surfaces: the public API server
// and the admin server carrying health and metrics.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/inkwell-sites/inkwell/internal/blog"
	"github.com/inkwell-sites/inkwell/internal/cache"
	"github.com/inkwell-sites/inkwell/internal/config"
	ierrors "github.com/inkwell-sites/inkwell/internal/errors"
	"github.com/inkwell-sites/inkwell/internal/events"
	"github.com/inkwell-sites/inkwell/internal/eventstore"
	"github.com/inkwell-sites/inkwell/internal/mailer"
	"github.com/inkwell-sites/inkwell/internal/metrics"
	"github.com/inkwell-sites/inkwell/internal/server/handlers"
	smw "github.com/inkwell-sites/inkwell/internal/server/middleware"
)

// Options carries the collaborators the servers dispatch to.
type Options struct {
	Service   *blog.Service
	Cache     *cache.Cache
	Store     *eventstore.Store
	Publisher *events.Publisher
	Mailer    mailer.Sender
	Recorder  metrics.Recorder
	// MetricsHandler serves GET /metrics on the admin port. Nil disables the
	// route.
	MetricsHandler http.Handler
}

// Server manages the API and admin HTTP servers.
type Server struct {
	apiServer   *http.Server
	adminServer *http.Server
	cfg         *config.Config
	logger      *slog.Logger

	monitoringHandlers *handlers.MonitoringHandlers
	postHandlers       *handlers.PostHandlers
	cacheHandlers      *handlers.CacheHandlers
	webhookHandlers    *handlers.WebhookHandlers
	contactHandlers    *handlers.ContactHandlers

	mchain func(http.Handler) http.Handler
}

// New constructs the HTTP server wiring.
func New(cfg *config.Config, logger *slog.Logger, opts Options) *Server {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	invalidate := func() { opts.Cache.Clear() }

	s.monitoringHandlers = handlers.NewMonitoringHandlers()
	s.postHandlers = handlers.NewPostHandlers(opts.Service, opts.Cache, cfg.Cache, logger, opts.Recorder)
	s.cacheHandlers = handlers.NewCacheHandlers(opts.Cache, cfg.Cache, logger)
	s.webhookHandlers = handlers.NewWebhookHandlers(opts.Store, opts.Publisher, invalidate,
		cfg.Webhook.VerificationToken, logger, opts.Recorder)
	s.contactHandlers = handlers.NewContactHandlers(opts.Mailer, logger)

	adapter := ierrors.NewHTTPErrorAdapter(logger)
	s.mchain = smw.Chain(logger, adapter, opts.Recorder, cfg.Server.CORSOrigins)

	s.apiServer = &http.Server{
		Handler:      s.mchain(s.apiRoutes()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.adminServer = &http.Server{
		Handler:      s.mchain(s.adminRoutes(opts.MetricsHandler)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) apiRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.monitoringHandlers.HandleRoot)
	mux.HandleFunc("GET /posts", s.postHandlers.HandleList)
	mux.HandleFunc("GET /posts/{slug}", s.postHandlers.HandleDetail)
	mux.HandleFunc("GET /cache/stats", s.cacheHandlers.HandleStats)
	mux.HandleFunc("POST /cache/clear", s.cacheHandlers.HandleClear)
	mux.HandleFunc("POST /webhooks/notion", s.webhookHandlers.HandleNotionWebhook)
	mux.HandleFunc("POST /contact", s.contactHandlers.HandleContact)
	return mux
}

func (s *Server) adminRoutes(metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealth)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	return mux
}

// Start binds both ports before serving so port conflicts surface as one
// aggregate startup error instead of partial initialization.
func (s *Server) Start(ctx context.Context) error {
	type preBind struct {
		name string
		port int
		ln   net.Listener
	}
	binds := []preBind{
		{name: "api", port: s.cfg.Server.APIPort},
		{name: "admin", port: s.cfg.Server.AdminPort},
	}

	var bindErrs []error
	lc := net.ListenConfig{}
	for i := range binds {
		addr := fmt.Sprintf(":%d", binds[i].port)
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s port %d: %w", binds[i].name, binds[i].port, err))
			continue
		}
		binds[i].ln = ln
	}
	if len(bindErrs) > 0 {
		for _, b := range binds {
			if b.ln != nil {
				_ = b.ln.Close()
			}
		}
		return fmt.Errorf("http startup failed: %w", errors.Join(bindErrs...))
	}

	s.serveOn("api", s.apiServer, binds[0].ln)
	s.serveOn("admin", s.adminServer, binds[1].ln)

	s.logger.Info("HTTP servers started",
		slog.Int("api_port", s.cfg.Server.APIPort),
		slog.Int("admin_port", s.cfg.Server.AdminPort))
	return nil
}

// Stop gracefully shuts down both servers.
func (s *Server) Stop(ctx context.Context) error {
	var errs []error

	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}
	if s.apiServer != nil {
		if err := s.apiServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("api server shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	s.logger.Info("HTTP servers stopped")
	return nil
}

func (s *Server) serveOn(kind string, srv *http.Server, ln net.Listener) {
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error(fmt.Sprintf("%s server error", kind), "error", err)
		}
	}()
}
