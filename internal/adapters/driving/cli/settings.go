package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/convivio/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:         "settings",
	Short:       "Manage application settings",
	Annotations: map[string]string{wiringAnnotation: wireSettings},
	Long: `View and configure currency, suggestion limits, the event store,
the weather API and the server transport.

Settings are resolved from built-in defaults, then the config file, then
environment variables. Use subcommands to change the config file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show effective settings",
	Annotations: map[string]string{wiringAnnotation: wireSettings},
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Persist a setting to the config file",
	Annotations: map[string]string{wiringAnnotation: wireSettings},
	Long: `Persist a setting to the config file.

Keys:
  events.default_currency   events.suggestion_limit   events.db_url
  weather.api_base          weather.user_agent        weather.http_timeout
  weather.forecast_periods  server.transport          server.http_addr

Environment variables still take precedence over the file.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:         "wizard",
	Short:       "Interactive setup wizard",
	Long:        `Run an interactive wizard to configure all settings step by step.`,
	Annotations: map[string]string{wiringAnnotation: wireSettings},
	RunE:        runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Events]")
	cmd.Printf("  Default currency: %s\n", settings.Events.DefaultCurrency)
	cmd.Printf("  Suggestion limit: %d\n", settings.Events.SuggestionLimit)
	cmd.Printf("  Store: %s\n", describeStore(settings.Storage.DatabaseURL))
	cmd.Println()

	cmd.Println("[Weather]")
	cmd.Printf("  API base: %s\n", settings.Weather.APIBase)
	cmd.Printf("  User agent: %s\n", settings.Weather.UserAgent)
	cmd.Printf("  HTTP timeout: %s\n", settings.Weather.Timeout)
	cmd.Printf("  Forecast periods: %d\n", settings.Weather.ForecastPeriods)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Transport: %s\n", settings.Server.Transport.Description())
	cmd.Printf("  HTTP address: %s\n", settings.Server.HTTPAddr)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	current := settingValues(settings)

	cmd.Println("Convivio Settings Wizard")
	cmd.Println("========================")
	cmd.Println("Press Enter to keep the current value.")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Transport
	cmd.Println("Step 1: Select MCP Transport")
	cmd.Println("----------------------------")
	transports := []domain.Transport{domain.TransportStdio, domain.TransportHTTP}
	defaultChoice := 1
	for i, t := range transports {
		cmd.Printf("  %d. %s\n", i+1, t.Description())
		if t == settings.Server.Transport {
			defaultChoice = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultChoice)
	choice := parseChoice(readLine(reader), len(transports), defaultChoice)
	selected := transports[choice-1]
	if err := settingsService.Set("server.transport", selected.String()); err != nil {
		return fmt.Errorf("failed to set transport: %w", err)
	}
	cmd.Printf("Set transport to: %s\n\n", selected.Description())

	// Step 2: Everything else
	cmd.Println("Step 2: Other Settings")
	cmd.Println("----------------------")
	for _, key := range settingsService.Keys() {
		if key == "server.transport" {
			continue
		}
		cmd.Printf("%s [%s]: ", key, current[key])
		input := readLine(reader)
		if input == "" {
			continue
		}
		if err := settingsService.Set(key, input); err != nil {
			cmd.Printf("Skipped %s: %v\n", key, err)
		}
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

// settingValues renders settings keyed by their config key.
func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"events.default_currency":  s.Events.DefaultCurrency,
		"events.suggestion_limit":  strconv.Itoa(s.Events.SuggestionLimit),
		"events.db_url":            s.Storage.DatabaseURL,
		"weather.api_base":         s.Weather.APIBase,
		"weather.user_agent":       s.Weather.UserAgent,
		"weather.http_timeout":     strconv.FormatFloat(s.Weather.Timeout.Seconds(), 'f', -1, 64),
		"weather.forecast_periods": strconv.Itoa(s.Weather.ForecastPeriods),
		"server.transport":         s.Server.Transport.String(),
		"server.http_addr":         s.Server.HTTPAddr,
	}
}

// describeStore hides credentials in database URLs.
func describeStore(dsn string) string {
	if dsn == "" {
		return "in-memory (not persisted)"
	}
	if at := strings.LastIndex(dsn, "@"); at >= 0 {
		if scheme := strings.Index(dsn, "://"); scheme >= 0 && scheme < at {
			return dsn[:scheme+3] + "***" + dsn[at:]
		}
	}
	return dsn
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
