package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/convivio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/services"
)

// mockWeatherService is a mock implementation of driving.WeatherService.
type mockWeatherService struct {
	alerts []domain.Alert
	bundle *domain.ForecastBundle
	err    error

	lastState        string
	lastLat, lastLon float64
	lastPeriods      *int
}

func (m *mockWeatherService) AlertsForState(_ context.Context, state string) ([]domain.Alert, error) {
	m.lastState = state
	return m.alerts, m.err
}

func (m *mockWeatherService) ForecastForCoordinates(
	_ context.Context,
	latitude, longitude float64,
	periods *int,
) (*domain.ForecastBundle, error) {
	m.lastLat, m.lastLon, m.lastPeriods = latitude, longitude, periods
	return m.bundle, m.err
}

// testServices exposes the doubles installed by setupTestServices.
type testServices struct {
	weather *mockWeatherService
	config  *memory.ConfigStore
}

// setupTestServices installs in-memory services and returns a cleanup
// function restoring the previous globals.
func setupTestServices() (*testServices, func()) {
	oldSettings := appSettings
	oldSettingsService := settingsService
	oldEventService := eventService
	oldWeatherService := weatherService
	oldStore := eventStore
	oldMetrics := metrics

	ts := &testServices{
		weather: &mockWeatherService{},
		config:  memory.NewConfigStore(),
	}
	defaults := domain.DefaultAppSettings()
	store := memory.NewEventStore()

	appSettings = &defaults
	settingsService = services.NewSettingsService(ts.config)
	eventStore = store
	eventService = services.NewEventService(store, defaults.Events)
	weatherService = ts.weather
	metrics = nil

	return ts, func() {
		appSettings = oldSettings
		settingsService = oldSettingsService
		eventService = oldEventService
		weatherService = oldWeatherService
		eventStore = oldStore
		metrics = oldMetrics
	}
}

// execute runs the root command with args and returns its output.
// Flag values of every command are reset afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// executeWithInput is execute with stdin content.
func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// createEvent creates an event through the command line and returns its id.
func createEvent(t *testing.T, location string) string {
	t.Helper()
	out, err := execute(t, "event", "create",
		"--name", "Cena", "--date", "2025-03-10 20:00", "--location", location)
	require.NoError(t, err)

	events, err := eventService.ListEvents(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, events)
	id := events[len(events)-1].ID
	require.Contains(t, out, "id="+id)
	return id
}
