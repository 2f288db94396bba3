package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/datastore"
	"github.com/aleister1102/pagewatch/internal/detector"
	"github.com/aleister1102/pagewatch/internal/differ"
	"github.com/aleister1102/pagewatch/internal/logger"
	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/aleister1102/pagewatch/internal/monitor"
	"github.com/aleister1102/pagewatch/internal/notifier"
	"github.com/aleister1102/pagewatch/internal/renderer"
)

func main() {
	flags := parseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.configFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config from %q: %v", flags.configFile, err)
	}

	// Flag overrides take precedence over the config file.
	if flags.dataFile != "" {
		gCfg.StorageConfig.SQLiteDBPath = flags.dataFile
	}
	if flags.browserURL != "" {
		gCfg.RendererConfig.BrowserURL = flags.browserURL
	}
	if flags.once {
		gCfg.PatrolConfig.Once = true
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	targets, err := config.BuildTargets(gCfg)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Invalid target configuration")
	}
	zLogger.Info().
		Int("targets", len(targets)).
		Str("db_path", gCfg.StorageConfig.SQLiteDBPath).
		Bool("once", gCfg.PatrolConfig.Once).
		Msg("Configuration loaded")

	store, err := datastore.NewSQLiteFingerprintStore(&gCfg.StorageConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to open fingerprint store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			zLogger.Warn().Err(err).Msg("Failed to close fingerprint store")
		}
	}()

	pageRenderer, browserRenderer := buildRenderer(gCfg, targets, zLogger)
	if browserRenderer != nil {
		defer browserRenderer.Close()
	}
	eventNotifier := buildNotifier(gCfg, zLogger)

	engine := monitor.NewPatrolEngine(
		pageRenderer,
		store,
		eventNotifier,
		detector.NewChangeDetector(nil),
		differ.NewContentDiffer(zLogger),
		zLogger,
	)
	service := monitor.NewPatrolService(gCfg.PatrolConfig, targets, engine, zLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, shutting down")
		cancel()
	}()

	service.Run(ctx)
	zLogger.Info().Msg("Patrol finished")
}

// buildRenderer assembles the render port. The browser renderer is only
// created when at least one target needs full-mode rendering.
func buildRenderer(gCfg *config.GlobalConfig, targets []models.Target, zLogger zerolog.Logger) (models.PageRenderer, *renderer.BrowserRenderer) {
	simple := renderer.NewSimpleRenderer(&gCfg.RendererConfig, zLogger)

	needsBrowser := false
	for _, target := range targets {
		if target.Mode == models.RenderModeFull {
			needsBrowser = true
			break
		}
	}
	if !needsBrowser {
		return simple, nil
	}

	full := renderer.NewBrowserRenderer(&gCfg.RendererConfig, zLogger)
	return renderer.NewSelectiveRenderer(simple, full), full
}

// buildNotifier assembles the notification port: always the log notifier,
// plus the webhook when one is configured.
func buildNotifier(gCfg *config.GlobalConfig, zLogger zerolog.Logger) models.Notifier {
	logNotifier := notifier.NewLogNotifier(zLogger)
	if gCfg.NotificationConfig.WebhookURL == "" {
		return logNotifier
	}

	webhook, err := notifier.NewWebhookNotifier(gCfg.NotificationConfig, zLogger, &http.Client{Timeout: 20 * time.Second})
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize webhook notifier")
	}
	return notifier.NewMultiNotifier(logNotifier, webhook)
}
