package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/convivio/internal/core/services"
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Query the National Weather Service",
}

var weatherAlertsCmd = &cobra.Command{
	Use:   "alerts <STATE>",
	Short: "List active alerts for a US state",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeatherAlerts,
}

var weatherForecastCmd = &cobra.Command{
	Use:   "forecast <latitude> <longitude>",
	Short: "Show the forecast for a coordinate pair",
	Long: `Show the first forecast periods for a coordinate pair.

Negative coordinates must follow "--" so they are not read as flags:

  convivio weather forecast --periods 3 -- 37.7749 -122.4194`,
	Args: cobra.ExactArgs(2),
	RunE: runWeatherForecast,
}

func init() {
	weatherForecastCmd.Flags().IntP("periods", "p", 0, "Number of periods (default from settings)")
	weatherCmd.AddCommand(weatherAlertsCmd)
	weatherCmd.AddCommand(weatherForecastCmd)
	rootCmd.AddCommand(weatherCmd)
}

func runWeatherAlerts(cmd *cobra.Command, args []string) error {
	if weatherService == nil {
		return errors.New("weather service not configured")
	}

	alerts, err := weatherService.AlertsForState(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching alerts: %w", err)
	}
	cmd.Println(services.FormatAlerts(alerts))
	return nil
}

func runWeatherForecast(cmd *cobra.Command, args []string) error {
	if weatherService == nil {
		return errors.New("weather service not configured")
	}

	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid latitude %q", args[0])
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid longitude %q", args[1])
	}

	var periods *int
	if cmd.Flags().Changed("periods") {
		n, _ := cmd.Flags().GetInt("periods")
		periods = &n
	}

	bundle, err := weatherService.ForecastForCoordinates(cmd.Context(), lat, lon, periods)
	if err != nil {
		return fmt.Errorf("fetching forecast: %w", err)
	}
	cmd.Println(services.FormatForecast(bundle))
	return nil
}
