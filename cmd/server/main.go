package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/journal-relay/backend/internal/cargo"
	"github.com/journal-relay/backend/internal/config"
	"github.com/journal-relay/backend/internal/dispatch"
	"github.com/journal-relay/backend/internal/journal"
	"github.com/journal-relay/backend/internal/logging"
	"github.com/journal-relay/backend/internal/material"
	"github.com/journal-relay/backend/internal/profile"
	"github.com/journal-relay/backend/internal/session"
	"github.com/journal-relay/backend/internal/supervise"
	"github.com/journal-relay/backend/internal/ws"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	replay := flag.Bool("replay", false, "Read the current journal from the start")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *replay {
		cfg.Journal.Replay = true
	}

	logger := logging.Init("journal-relay", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Fatal().Err(err).Msg("Server error")
	}
}

func run(ctx context.Context, logger zerolog.Logger, cfg *config.Config) error {
	repo := session.NewMemoryRepository()
	atlas := session.NewAtlasStore(cfg.StateDir)
	if saved, err := atlas.Load(); err != nil {
		logger.Warn().Err(err).Str("path", atlas.Path()).Msg("Starting with an empty atlas")
	} else {
		logger.Info().Int("systems", repo.Import(saved)).Msg("Atlas loaded")
	}

	ctrl := session.NewController(logger, repo)
	if cfg.Home.System != "" {
		if err := ctrl.SetHome(ctx, cfg.Home.System, cfg.Home.Station); err != nil {
			return err
		}
	}

	conv := profile.NewConverger(logger, profile.Unavailable{}, ctrl, profile.Options{
		Attempts:      cfg.Profile.Attempts,
		Interval:      cfg.Profile.Interval,
		FallbackDelay: cfg.Profile.FallbackDelay,
	})
	ctrl.SetRefresher(conv)

	registry := dispatch.NewRegistry()
	exec := dispatch.NewExecutor(logger, cfg.Dispatch.MaxConcurrency)
	engine := dispatch.NewEngine(logger, ctrl, registry, exec)
	conv.SetDispatcher(engine)

	scheduler := dispatch.NewScheduler(logger, ctrl, engine)
	decoder := journal.NewDecoder(logger, ctrl, scheduler)
	watcher := journal.NewWatcher(logger, cfg.Journal.Dir, cfg.Journal.PollInterval, cfg.Journal.Replay, decoder, engine)

	broadcaster := ws.NewBroadcaster(logger, ctrl, cfg.Privacy.NewPrivacyFilter(), cfg.Server.SnapshotInterval, cfg.Server.MaxConnections)
	cargoMonitor := cargo.NewMonitor(logger)
	if err := registry.RegisterMonitor(cargoMonitor); err != nil {
		return err
	}
	materialMonitor := material.NewMonitor(logger, cfg.Materials)
	materialMonitor.SetDispatcher(engine)
	if err := registry.RegisterMonitor(materialMonitor); err != nil {
		return err
	}
	if err := registry.RegisterResponder(broadcaster); err != nil {
		return err
	}
	for _, o := range registry.Observers() {
		if !cfg.ObserverEnabled(o.Name) {
			_ = registry.SetEnabled(o.Name, false)
			logger.Info().Str("observer", o.Name).Msg("Observer disabled by config")
		}
	}
	known := observerNames(registry)
	for name := range cfg.Observers {
		if _, ok := known[name]; !ok {
			logger.Warn().Str("observer", name).Msg("Config names an unknown observer")
		}
	}

	sup := supervise.New(logger, cfg.Supervisor.MaxStarts, cfg.Supervisor.Grace)
	sup.Supervise("journal", watcher.Run)
	for _, r := range registry.Runners() {
		sup.Supervise(r.Name, r.Run)
	}

	server := ws.NewServer(logger, broadcaster, registry, cfg.Server.AllowedOrigins, cfg.Server.AuthToken)
	server.SetSupervisor(sup)
	server.SetCargo(cargoMonitor)
	server.SetMaterials(materialMonitor)
	server.SetGameProbe(cfg.Journal.GameProcess, journal.GameRunning)

	logger.Info().Str("journal", cfg.Journal.Dir).Bool("replay", cfg.Journal.Replay).Msg("Starting journal relay")
	serveErr := ws.ListenAndServe(ctx, logger, cfg.Addr(), server.Handler())
	logger.Info().Msg("Shutting down...")

	scheduler.Stop()
	conv.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Supervisor.Grace+5*time.Second)
	defer cancel()
	if err := sup.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Supervisor shutdown incomplete")
	}
	if err := engine.Wait(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Observer tasks still running at exit")
	}
	exec.Close()
	broadcaster.Stop()

	if err := atlas.Save(repo.Export()); err != nil {
		logger.Error().Err(err).Str("path", atlas.Path()).Msg("Failed to save atlas")
	}

	return serveErr
}

func observerNames(r *dispatch.Registry) map[string]struct{} {
	names := make(map[string]struct{})
	for _, o := range r.Observers() {
		names[o.Name] = struct{}{}
	}
	return names
}
