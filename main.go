package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shelf/internal/catalog"
	"shelf/internal/config"
	"shelf/internal/eventbus"
	"shelf/internal/metrics"
	"shelf/internal/ui"
)

var version = "dev"

type options struct {
	apiURL      string
	pageSize    int
	debounce    string
	configPath  string
	logPath     string
	metricsAddr string
	showVersion bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.apiURL, "api", "", "Base URL of the product listing API")
	flag.IntVar(&opts.pageSize, "page-size", 0, "Products per page")
	flag.StringVar(&opts.debounce, "debounce", "", "Search debounce delay, e.g. 1s or 250ms")
	flag.StringVar(&opts.configPath, "config", "", "Path to the config file")
	flag.StringVar(&opts.logPath, "log", "shelf.log", "Log file path")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flag.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()
	if opts.showVersion {
		fmt.Printf("shelf %s\n", version)
		return
	}

	// .env is read before logging so SHELF_LOG_LEVEL can come from it
	config.LoadDotEnv()

	// Set up logging
	logFile, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	var logOut io.Writer = io.Discard
	if err == nil {
		defer logFile.Close()
		logOut = logFile
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel()})))

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()
	subscribeLogging(bus)

	cfg, err := loadConfig(opts, bus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	stopMetrics := metrics.Observe(bus)
	defer stopMetrics()

	if opts.metricsAddr != "" {
		srv := newMetricsServer(opts.metricsAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", "addr", opts.metricsAddr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = "shelf/" + version
	}
	client, err := catalog.NewClient(cfg.API.BaseURL,
		catalog.WithTimeout(cfg.APITimeout()),
		catalog.WithUserAgent(userAgent),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Create UI model
	uiModel := ui.NewModel(ctx, bus, cfg, client)
	defer uiModel.Close()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UISettings.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(uiModel, programOpts...)
	uiModel.SetProgram(p)

	slog.Info("Starting UI", "version", version, "api", cfg.API.BaseURL, "page_size", cfg.Browse.PageSize)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		slog.Error("Error running program", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	slog.Info("UI exited normally")
}

// loadConfig layers the config file, environment and flags, in that order
func loadConfig(opts options, bus eventbus.EventBus) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	configSvc := config.NewConfigServiceWithBus(path, bus)

	cfg, err := configSvc.Load()
	if err != nil {
		slog.Warn("Error loading config, using defaults", "path", path, "error", err)
		cfg = config.DefaultConfig()
	}

	config.ApplyEnv(cfg)

	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.pageSize != 0 {
		cfg.Browse.PageSize = opts.pageSize
	}
	if opts.debounce != "" {
		cfg.Browse.Debounce = opts.debounce
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// subscribeLogging writes fetch outcomes to the log
func subscribeLogging(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventFetchStarted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchStartedEvent); ok {
			slog.Debug("Fetching products",
				"generation", event.Generation,
				"query", event.Query,
				"page", event.Page,
				"offset", event.Offset)
		}
	})
	bus.Subscribe(eventbus.EventPageLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PageLoadedEvent); ok {
			slog.Info("Products loaded",
				"query", event.Query,
				"page", event.Page,
				"total_pages", event.TotalPages,
				"items", event.Items)
		}
	})
	bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchFailedEvent); ok {
			slog.Warn("Fetch rejected",
				"query", event.Query,
				"page", event.Page,
				"kind", event.Kind,
				"error", event.Err)
		}
	})
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			slog.Info("Config loaded", "path", event.Path)
		}
	})
}

func newMetricsServer(addr string) *http.Server {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func logLevel() slog.Level {
	var level slog.Level
	if v := strings.TrimSpace(os.Getenv(config.EnvLogLevel)); v != "" {
		if err := level.UnmarshalText([]byte(v)); err == nil {
			return level
		}
	}
	return slog.LevelInfo
}
