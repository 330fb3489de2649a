package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/okian/agora/internal/adapters/http/api"
	app "github.com/okian/agora/internal/app"
	"github.com/okian/agora/internal/config"
	"github.com/okian/agora/internal/domain/matching"
	"github.com/okian/agora/internal/domain/scoring"
	"github.com/okian/agora/pkg/logger"
	"github.com/okian/agora/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logs: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithCacheTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
		app.WithPageSizes(cfg.DefaultPageSize, cfg.MaxPageSize),
		app.WithContributionWeights(contributionWeights(cfg)),
		app.WithMatchWeights(matchWeights(cfg)),
		app.WithMatchMinScore(cfg.MatchMinScore),
		app.WithMatchMaxReasons(cfg.MatchMaxReasons),
		app.WithSuggestionGroupCap(cfg.SuggestionGroupCap),
		app.WithDecayBatchSize(cfg.DecayBatchSize),
		app.WithDecayBatchDelay(time.Duration(cfg.DecayBatchDelayMS)*time.Millisecond),
		app.WithDecayMinAge(time.Duration(cfg.DecayMinAgeHours)*time.Hour),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start periodic hotness decay runs
	go startDecayScheduler(ctx, svc, cfg)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.MaxPageSize)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

func contributionWeights(cfg *config.Config) scoring.ContributionWeights {
	return scoring.ContributionWeights{
		TopicQuality: cfg.ContributionWeights["topic_quality"],
		Interaction:  cfg.ContributionWeights["interaction"],
		HelpOthers:   cfg.ContributionWeights["help_others"],
	}
}

func matchWeights(cfg *config.Config) matching.Weights {
	return matching.Weights{
		Profile:       cfg.MatchWeights["profile"],
		Behavior:      cfg.MatchWeights["behavior"],
		Comprehensive: cfg.MatchWeights["comprehensive"],
	}
}

// startDecayScheduler runs hotness decay on a fixed interval. Disabled when
// the interval is zero or negative.
func startDecayScheduler(ctx context.Context, svc *app.Service, cfg *config.Config) {
	if cfg.DecayIntervalMinutes <= 0 {
		return
	}
	ticker := time.NewTicker(time.Duration(cfg.DecayIntervalMinutes) * time.Minute)
	defer ticker.Stop()

	log := logger.Named("decay-scheduler")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.RunDecay(ctx); err != nil {
				log.Error(ctx, "scheduled decay run failed", logger.Error(err))
			}
		}
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
