// Package cli implements the convivio command tree.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/convivio/internal/adapters/driven/config/file"
	"github.com/custodia-labs/convivio/internal/adapters/driven/nws"
	"github.com/custodia-labs/convivio/internal/adapters/driven/storage"
	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
	"github.com/custodia-labs/convivio/internal/core/ports/driving"
	"github.com/custodia-labs/convivio/internal/core/services"
	"github.com/custodia-labs/convivio/internal/logger"
	"github.com/custodia-labs/convivio/internal/observability"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services shared by all commands. Wired in PersistentPreRunE unless
// already set.
var (
	appSettings     *domain.AppSettings
	settingsService driving.SettingsService
	eventService    driving.EventService
	weatherService  driving.WeatherService
	eventStore      driven.EventStore
	metrics         *observability.Metrics
)

// wiringAnnotation limits how much a command needs wired.
const wiringAnnotation = "convivio.wiring"

// Wiring levels for wiringAnnotation.
const (
	wireNone     = "none"
	wireSettings = "settings"
)

var rootCmd = &cobra.Command{
	Use:   "convivio",
	Short: "Event planning and weather tools for AI assistants",
	Long: `Convivio serves two MCP tool sets:

  events   organise dinners among friends: participants, dietary
           preferences, restaurant suggestions and bill splitting
  weather  active alerts and point forecasts from the US National
           Weather Service

Tools can also be called directly from the command line, and both
services are available as a JSON REST API.`,
	SilenceUsage:       true,
	PersistentPreRunE:  wireServices,
	PersistentPostRunE: releaseServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.convivio)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// wireServices builds the settings, store and services a command needs.
func wireServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	level := cmd.Annotations[wiringAnnotation]
	if level == wireNone {
		return nil
	}

	if settingsService == nil {
		configStore, err := file.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		logger.Debug("using config file %s", configStore.Path())
		settingsService = services.NewSettingsService(configStore)
	}
	if appSettings == nil {
		s, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		appSettings = s
	}
	if level == wireSettings {
		return nil
	}

	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	if eventService == nil {
		store, err := storage.Open(cmd.Context(), appSettings.Storage.DatabaseURL)
		if err != nil {
			return fmt.Errorf("opening event store: %w", err)
		}
		eventStore = store
		eventService = services.NewEventService(store, appSettings.Events)
	}
	if weatherService == nil {
		client := nws.NewClient(appSettings.Weather, metrics)
		weatherService = services.NewWeatherService(client, appSettings.Weather)
	}
	return nil
}

// releaseServices closes the event store if it holds resources.
func releaseServices(_ *cobra.Command, _ []string) error {
	if closer, ok := eventStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("closing event store: %v", err)
		}
	}
	return nil
}
