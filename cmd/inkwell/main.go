package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/inkwell-sites/inkwell/internal/blog"
	"github.com/inkwell-sites/inkwell/internal/cache"
	"github.com/inkwell-sites/inkwell/internal/config"
	ierrors "github.com/inkwell-sites/inkwell/internal/errors"
	"github.com/inkwell-sites/inkwell/internal/events"
	"github.com/inkwell-sites/inkwell/internal/eventstore"
	"github.com/inkwell-sites/inkwell/internal/mailer"
	"github.com/inkwell-sites/inkwell/internal/metrics"
	"github.com/inkwell-sites/inkwell/internal/notion"
	"github.com/inkwell-sites/inkwell/internal/scheduler"
	"github.com/inkwell-sites/inkwell/internal/server/httpserver"
	"github.com/inkwell-sites/inkwell/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct {
		NoMetrics bool `help:"Disable the Prometheus metrics endpoint"`
	} `cmd:"" help:"Start the blog API server"`

	Check struct{} `cmd:"" help:"Validate the configuration and ping the content source"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	switch ctx.Command() {
	case "serve":
		if err := runServe(); err != nil {
			adapter := ierrors.NewCLIErrorAdapter(CLI.Verbose, slog.Default())
			adapter.HandleError(err)
		}
	case "check":
		if err := runCheck(); err != nil {
			adapter := ierrors.NewCLIErrorAdapter(CLI.Verbose, slog.Default())
			adapter.HandleError(err)
		}
	case "version":
		fmt.Printf("inkwell %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
	}
}

func newLogger(cfg config.LoggingConfig, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case config.LogLevelDebug:
		level = slog.LevelDebug
	case config.LogLevelWarn:
		level = slog.LevelWarn
	case config.LogLevelError:
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// app owns the running service's mutable pieces so a config reload can reach
// them.
type app struct {
	cache  *cache.Cache
	logger *slog.Logger
}

// ReloadConfig is called by the config watcher after a validated reload. The
// cache is flushed so new TTLs take effect on the next fill; listener and
// credential changes require a restart.
func (a *app) ReloadConfig(ctx context.Context, cfg *config.Config) error {
	a.cache.Clear()
	a.logger.Info("configuration reloaded, cache flushed",
		slog.Int("list_ttl_seconds", cfg.Cache.ListTTLSec),
		slog.Int("post_ttl_seconds", cfg.Cache.PostTTLSec))
	return nil
}

func runServe() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging, CLI.Verbose)
	slog.SetDefault(logger)
	logger.Info("starting inkwell", slog.String("version", version.Version))

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var metricsHandler http.Handler
	if !CLI.Serve.NoMetrics {
		promRecorder := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		recorder = promRecorder
		metricsHandler = promRecorder.Handler()
	}

	c := cache.New()
	client := notion.NewClient(cfg.Notion, recorder)
	service := blog.NewService(client, logger, recorder)

	store, err := eventstore.NewStore(cfg.Storage.DeliveryLogPath)
	if err != nil {
		return ierrors.Wrap(err, ierrors.CategoryRuntime, ierrors.SeverityFatal, "open webhook delivery log")
	}
	defer func() { _ = store.Close() }()

	publisher, err := events.NewPublisher(cfg.Events, logger)
	if err != nil {
		return ierrors.Wrap(err, ierrors.CategoryRuntime, ierrors.SeverityFatal, "connect event publisher")
	}
	defer publisher.Close()

	sched, err := scheduler.New(logger)
	if err != nil {
		return ierrors.Wrap(err, ierrors.CategoryRuntime, ierrors.SeverityFatal, "create scheduler")
	}
	if err := sched.ScheduleCacheCleanup(c, cfg.Cache.CleanupInterval()); err != nil {
		return ierrors.Wrap(err, ierrors.CategoryRuntime, ierrors.SeverityFatal, "schedule cache cleanup")
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			logger.Warn("scheduler stop", "error", err)
		}
	}()

	srv := httpserver.New(cfg, logger, httpserver.Options{
		Service:        service,
		Cache:          c,
		Store:          store,
		Publisher:      publisher,
		Mailer:         mailer.NewSMTPSender(cfg.Mail),
		Recorder:       recorder,
		MetricsHandler: metricsHandler,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		return ierrors.Wrap(err, ierrors.CategoryRuntime, ierrors.SeverityFatal, "start HTTP servers")
	}

	watcher, err := config.NewWatcher(CLI.Config, &app{cache: c, logger: logger})
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
	} else {
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("config watcher start failed", "error", err)
		} else {
			defer func() { _ = watcher.Stop(context.Background()) }()
		}
	}

	logger.Info("inkwell running, waiting for shutdown signal")
	<-ctx.Done()
	logger.Info("shutdown signal received")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := srv.Stop(stopCtx); err != nil {
		return ierrors.Wrap(err, ierrors.CategoryRuntime, ierrors.SeverityError, "stop HTTP servers")
	}

	logger.Info("inkwell stopped")
	return nil
}

func runCheck() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging, CLI.Verbose)
	slog.SetDefault(logger)

	client := notion.NewClient(cfg.Notion, metrics.NoopRecorder{})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Notion.Timeout())
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		return err
	}

	logger.Info("configuration valid, content source reachable",
		slog.String("base_url", cfg.Notion.BaseURL))
	return nil
}
