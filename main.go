package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/screenway/vidcaps/cmd"
	"github.com/screenway/vidcaps/internal/api"
	"github.com/screenway/vidcaps/internal/codec"
	"github.com/screenway/vidcaps/internal/config"
	"github.com/screenway/vidcaps/internal/events"
	"github.com/screenway/vidcaps/internal/logging"
	_ "github.com/screenway/vidcaps/internal/modules"
	"github.com/screenway/vidcaps/internal/obs"
	"github.com/screenway/vidcaps/internal/registry"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8091" toml:"server.port" env:"SERVER_PORT"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Observability settings
	MetricsEnabled bool `help:"Enable Prometheus metrics endpoint" default:"true" toml:"obs.metrics_enabled" env:"OBS_METRICS_ENABLED"`

	// Module selection reload
	ModulesWatch bool `help:"Reload module selection when the config file changes" default:"true" toml:"modules.watch" env:"MODULES_WATCH"`

	// Logging settings
	LoggingLevel    string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat   string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingCodec    string `help:"Codec loader logging level" default:"info" toml:"logging.codec" env:"LOGGING_CODEC"`
	LoggingRegistry string `help:"Registry logging level" default:"info" toml:"logging.registry" env:"LOGGING_REGISTRY"`
	LoggingAPI      string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP     string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"codec":    opts.LoggingCodec,
				"registry": opts.LoggingRegistry,
				"api":      opts.LoggingAPI,
				"http":     opts.LoggingHTTP,
			},
		})

		logger := logging.GetLogger("main")

		eventBus := events.New()

		reg := registry.New(codec.SystemCatalog(), codec.Default(),
			registry.WithLogger(logging.GetLogger("registry")),
			registry.WithEventBus(eventBus),
		)

		selection, selErr := config.LoadSelection(opts.Config)
		if selErr != nil {
			logger.Warn("Failed to load module selection, using defaults", "error", selErr)
			selection = config.DefaultSelection()
		}
		if err := reg.SelectModules(selection.Encoders, selection.CSC, selection.Decoders); err != nil {
			logger.Error("Failed to select modules", "error", err)
			os.Exit(1)
		}

		apiOpts := &api.Options{
			Registry:     reg,
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
		}
		if opts.MetricsEnabled {
			apiOpts.PrometheusHandler = obs.Handler()
		}
		server := api.NewServer(apiOpts)

		// React to module selection changes without a restart
		var watcher *config.Watcher[config.Selection]
		if opts.ModulesWatch {
			watcher = config.NewConfigWatcher(opts.Config, config.LoadSelection, logger)
			watcher.OnReload(func(sel config.Selection) {
				logger.Info("Module selection changed, reloading registry",
					"encoders", sel.Encoders, "csc", sel.CSC, "decoders", sel.Decoders)
				reg.Cleanup()
				if err := reg.SelectModules(sel.Encoders, sel.CSC, sel.Decoders); err != nil {
					logger.Error("Failed to apply new module selection", "error", err)
					return
				}
				reg.Init()
				eventBus.Publish(events.ModulesReloadedEvent{
					Encoders:  sel.Encoders,
					CSC:       sel.CSC,
					Decoders:  sel.Decoders,
					Timestamp: time.Now().UTC().Format(time.RFC3339),
				})
			})
		}

		hooks.OnStart(func() {
			reg.Init()

			if watcher != nil {
				if watchErr := watcher.Start(); watchErr != nil {
					logger.Warn("Failed to start config watcher", "error", watchErr)
				}
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if watcher != nil {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Error("Error stopping config watcher", "error", stopErr)
				}
			}
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			reg.Cleanup()
		})
	})

	cli.Root().AddCommand(cmd.CreateProbeCmd())
	cli.Root().AddCommand(cmd.CreateSummaryCmd())

	cli.Run()
}
