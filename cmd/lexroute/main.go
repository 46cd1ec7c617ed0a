package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexroute/lexroute/config"
	"github.com/lexroute/lexroute/pkg/api"
	"github.com/lexroute/lexroute/pkg/api/handlers"
	"github.com/lexroute/lexroute/pkg/classifier"
	"github.com/lexroute/lexroute/pkg/engine"
	"github.com/lexroute/lexroute/pkg/eventbus"
	"github.com/lexroute/lexroute/pkg/feedback"
	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/metrics"
	"github.com/lexroute/lexroute/pkg/policy"
	"github.com/lexroute/lexroute/pkg/routes"
	"github.com/lexroute/lexroute/pkg/store"
	storebadger "github.com/lexroute/lexroute/pkg/store/badger"
	storememory "github.com/lexroute/lexroute/pkg/store/memory"
	storeredis "github.com/lexroute/lexroute/pkg/store/redis"
	"github.com/lexroute/lexroute/pkg/telemetry/tracing"
	"github.com/lexroute/lexroute/pkg/version"
)

var (
	configPath  = flag.String("config", "", "Path to configuration file")
	versionFlag = flag.Bool("version", false, "Print version information")
	helpFlag    = flag.Bool("help", false, "Print help information")

	// CLI overrides
	serverPort = flag.Int("port", 0, "Override server port")
	logLevel   = flag.String("log-level", "", "Override log level")
	debugMode  = flag.Bool("debug", false, "Enable debug mode")
)

func main() {
	flag.Parse()

	if *helpFlag {
		printHelp()
		os.Exit(0)
	}
	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(*configPath, buildOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration:\n%s\n", err)
		os.Exit(1)
	}

	logCfg := &logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	if cfg.App.Debug || *debugMode {
		logCfg.Level = logger.DebugLevel
	}
	log := logger.New(logCfg)
	logger.SetGlobal(log)

	log.Info("Starting Lexroute",
		"version", version.Version,
		"buildTime", version.BuildTime,
		"gitCommit", version.GitCommit,
		"app", cfg.App.Name,
		"environment", cfg.App.Environment,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Tracing
	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, cfg.App.Name, version.Version)
	if err != nil {
		log.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	// Storage backend
	st := buildStore(cfg, log)
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Error closing store", "error", err)
		}
	}()

	// Metrics
	metricsCfg := metrics.DefaultConfig()
	metricsCfg.Enabled = cfg.Metrics.Enabled
	metricsCfg.Port = cfg.Metrics.Port
	metricsCfg.Path = cfg.Metrics.Path
	metricsManager := metrics.NewManager(metricsCfg)

	if metricsManager.Enabled() {
		go func() {
			log.Info("Starting metrics server", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
			if err := metricsManager.StartServer(ctx, cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
				log.Error("Metrics server error", "error", err)
			}
		}()
	}

	// Event bus
	bus := eventbus.NewMemoryBus()
	publisher := eventbus.NewPublisher(bus, log)

	// Classifier: train the initial snapshot from the seed corpus. A
	// persisted snapshot, if any, replaces it during engine start.
	trainerCfg := classifier.TrainerConfig{
		Smoothing:        cfg.Classifier.Smoothing,
		HoldoutFraction:  cfg.Classifier.HoldoutFraction,
		AccuracyFloor:    cfg.Classifier.AccuracyFloor,
		RegressionMargin: cfg.Classifier.RegressionMargin,
	}
	trainer := classifier.NewTrainer(classifier.SeedExamples(), trainerCfg, log)
	snap, err := trainer.Train(ctx, nil, nil)
	if err != nil {
		log.Error("Failed to train initial model", "error", err)
		os.Exit(1)
	}
	cls := classifier.New(snap, classifier.Config{
		ConfidenceThreshold: cfg.Classifier.ConfidenceThreshold,
		PosteriorWeight:     cfg.Classifier.PosteriorWeight,
	}, log)

	// Policy
	pol := policy.New(policy.Config{
		LearningRate:       cfg.Policy.LearningRate,
		InitialEpsilon:     cfg.Policy.InitialEpsilon,
		MinEpsilon:         cfg.Policy.MinEpsilon,
		EpsilonDecayVisits: cfg.Policy.EpsilonDecayVisits,
	}, log)

	// Route catalog
	selector := routes.NewSelector(nil, log)

	// Engine
	engCfg := engine.Config{
		CheckpointInterval: cfg.Engine.CheckpointInterval,
		RetrainMinExamples: cfg.Engine.RetrainMinExamples,
		Feedback: feedback.Config{
			DwellCapSeconds: cfg.Feedback.DwellCapSeconds,
			DwellBonusMax:   cfg.Feedback.DwellBonusMax,
			RewardMin:       cfg.Feedback.RewardMin,
			RewardMax:       cfg.Feedback.RewardMax,
		},
	}
	eng := engine.New(engCfg, st, cls, trainer, selector, pol,
		engine.WithMetrics(metricsManager),
		engine.WithPublisher(publisher),
		engine.WithLogger(log),
	)
	if err := eng.Start(ctx); err != nil {
		log.Error("Failed to start engine", "error", err)
		os.Exit(1)
	}

	// Websocket event stream
	wsHandler := handlers.NewWebSocketHandler(log, handlers.WebSocketConfig{
		AllowedOrigins: cfg.Server.CORS.AllowedOrigins,
	})
	go func() {
		if err := wsHandler.RunEventBridge(ctx, bus); err != nil {
			log.Error("Event bridge error", "error", err)
		}
	}()

	// HTTP server
	apiHandlers := &api.Handlers{
		Query:     handlers.NewQueryHandler(eng, log),
		Feedback:  handlers.NewFeedbackHandler(eng, log),
		Session:   handlers.NewSessionHandler(eng, st, log),
		Routes:    handlers.NewRoutesHandler(selector, log),
		Admin:     handlers.NewAdminHandler(eng, log),
		Health:    handlers.NewHealthHandler(eng),
		WebSocket: wsHandler,
		Metrics:   metricsManager,
	}
	httpServer := api.NewHTTPServer(cfg, log, apiHandlers)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Config hot reload
	stopWatcher := startConfigWatcher(ctx, *configPath, loader, log, cls, pol)
	defer stopWatcher()

	log.Info("Lexroute is running",
		"http_port", cfg.Server.Port,
		"metrics_port", cfg.Metrics.Port,
		"storage", cfg.Storage.Type,
	)

	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal", "signal", sig)
	case err := <-serverErrChan:
		log.Error("HTTP server error", "error", err)
	case <-ctx.Done():
		log.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Info("Shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", "error", err)
	}

	log.Info("Stopping engine")
	if err := eng.Stop(shutdownCtx); err != nil {
		log.Error("Error during engine shutdown", "error", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Error shutting down tracing", "error", err)
	}

	log.Info("Lexroute stopped gracefully")
}

// buildStore selects the persistence backend and wraps it with the
// Redis aggregate cache when enabled.
func buildStore(cfg *config.Config, log logger.Logger) store.Store {
	var st store.Store
	switch cfg.Storage.Type {
	case "badger":
		badgerStore, err := storebadger.NewBadgerStore(&storebadger.Config{
			Path:              cfg.Storage.Badger.Path,
			SyncWrites:        cfg.Storage.Badger.SyncWrites,
			ValueLogFileSize:  cfg.Storage.Badger.ValueLogFileSize,
			NumVersionsToKeep: cfg.Storage.Badger.NumVersionsToKeep,
		})
		if err != nil {
			log.Error("Failed to open Badger store", "error", err)
			os.Exit(1)
		}
		st = badgerStore
		log.Info("Initialized Badger store", "path", cfg.Storage.Badger.Path)
	case "memory":
		st = storememory.NewMemoryStore()
		log.Info("Initialized memory store")
	default:
		st = storememory.NewMemoryStore()
		log.Warn("Unknown storage type, using memory store", "type", cfg.Storage.Type)
	}

	if cfg.Storage.Redis.Enabled {
		client := storeredis.NewClient(&storeredis.Config{
			Address:  cfg.Storage.Redis.Address,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			TTL:      cfg.Storage.Redis.TTL,
		})
		st = storeredis.NewCachedStore(st, client, cfg.Storage.Redis.TTL, log)
		log.Info("Enabled Redis aggregate cache", "address", cfg.Storage.Redis.Address)
	}

	return st
}

// startConfigWatcher applies hot-reloadable tunables when the config
// file changes. Returns a stop function; a no-op when no config file
// is in use.
func startConfigWatcher(ctx context.Context, path string, loader *config.Loader, log logger.Logger, cls *classifier.Classifier, pol *policy.Policy) func() {
	if path == "" {
		return func() {}
	}

	watcher, err := config.NewWatcher(path, loader)
	if err != nil {
		log.Warn("Config watcher unavailable", "error", err)
		return func() {}
	}

	watcher.OnChange(func(updated *config.Config) {
		reload := config.ExtractHotReloadable(updated)
		log.Info("Applying hot-reloaded configuration",
			"log_level", reload.LogLevel,
			"confidence_threshold", reload.ConfidenceThreshold,
		)
		logger.SetLevel(logger.ParseLevel(reload.LogLevel))
		cls.UpdateConfig(classifier.Config{
			ConfidenceThreshold: reload.ConfidenceThreshold,
			PosteriorWeight:     reload.PosteriorWeight,
		})
		pol.UpdateConfig(reload.LearningRate, reload.MinEpsilon)
	})

	go func() {
		if err := watcher.Watch(ctx); err != nil {
			log.Warn("Config watcher stopped", "error", err)
		}
	}()

	return func() {
		_ = watcher.Stop()
	}
}

func buildOverrides() map[string]interface{} {
	overrides := make(map[string]interface{})

	if *serverPort != 0 {
		overrides["server.port"] = *serverPort
	}
	if *logLevel != "" {
		overrides["log.level"] = *logLevel
	}
	if *debugMode {
		overrides["app.debug"] = true
	}

	return overrides
}

func printVersion() {
	fmt.Printf("Lexroute - Adaptive Legal Query Routing Engine\n")
	fmt.Printf("Version:    %s\n", version.Version)
	fmt.Printf("Build Time: %s\n", version.BuildTime)
	fmt.Printf("Git Commit: %s\n", version.GitCommit)
	fmt.Printf("Go Version: %s\n", version.GoVersion)
}

func printHelp() {
	fmt.Printf("Lexroute - Adaptive query-routing engine for legal assistance\n\n")
	fmt.Printf("Usage: lexroute [options]\n\n")
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
	fmt.Printf("\nExamples:\n")
	fmt.Printf("  lexroute                                  # Run with default config\n")
	fmt.Printf("  lexroute -config config.yaml              # Use specific config file\n")
	fmt.Printf("  lexroute -port 9090 -log-level debug      # Override specific options\n")
	fmt.Printf("  lexroute -version                         # Print version info\n")
}
