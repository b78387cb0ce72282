package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/convivio/internal/core/domain"
)

func TestWeatherCmd_Use(t *testing.T) {
	assert.Equal(t, "weather", weatherCmd.Use)
	assert.Equal(t, "alerts <STATE>", weatherAlertsCmd.Use)
	assert.Equal(t, "forecast <latitude> <longitude>", weatherForecastCmd.Use)
}

func TestWeatherForecastCmd_HasPeriodsFlag(t *testing.T) {
	flag := weatherForecastCmd.Flags().Lookup("periods")
	require.NotNil(t, flag, "periods flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestWeatherAlertsCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	t.Run("prints alerts", func(t *testing.T) {
		ts.weather.alerts = []domain.Alert{{
			Event:       "Wind Advisory",
			Area:        "Bay Area",
			Severity:    "Minor",
			Description: "Gusty winds.",
			Instruction: "Secure objects.",
		}}
		out, err := execute(t, "weather", "alerts", "ca")
		require.NoError(t, err)
		assert.Equal(t, "ca", ts.weather.lastState)
		assert.Contains(t, out, "Wind Advisory")
		assert.Contains(t, out, "Bay Area")
	})

	t.Run("no alerts", func(t *testing.T) {
		ts.weather.alerts = nil
		out, err := execute(t, "weather", "alerts", "NY")
		require.NoError(t, err)
		assert.Contains(t, out, "Nessuna allerta attiva per questo stato.")
	})

	t.Run("requires one argument", func(t *testing.T) {
		_, err := execute(t, "weather", "alerts")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 1 arg(s)")
	})

	t.Run("upstream failure", func(t *testing.T) {
		ts.weather.err = domain.UpstreamError(nil, "Impossibile recuperare le allerte meteo.")
		defer func() { ts.weather.err = nil }()

		_, err := execute(t, "weather", "alerts", "TX")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUpstream)
	})
}

func TestWeatherForecastCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.weather.bundle = &domain.ForecastBundle{
		Office:  "MTR",
		Periods: []domain.ForecastPeriod{{Name: "Tonight", Temperature: "52°F"}},
	}

	t.Run("negative coordinates after separator", func(t *testing.T) {
		out, err := execute(t, "weather", "forecast", "--", "37.7749", "-122.4194")
		require.NoError(t, err)
		assert.InDelta(t, 37.7749, ts.weather.lastLat, 1e-9)
		assert.InDelta(t, -122.4194, ts.weather.lastLon, 1e-9)
		assert.Nil(t, ts.weather.lastPeriods)
		assert.Contains(t, out, "Tonight")
	})

	t.Run("periods flag", func(t *testing.T) {
		_, err := execute(t, "weather", "forecast", "--periods", "2", "--", "40", "-74")
		require.NoError(t, err)
		require.NotNil(t, ts.weather.lastPeriods)
		assert.Equal(t, 2, *ts.weather.lastPeriods)
		assert.InDelta(t, -74.0, ts.weather.lastLon, 1e-9)
	})

	t.Run("invalid latitude", func(t *testing.T) {
		_, err := execute(t, "weather", "forecast", "north", "12")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid latitude")
	})
}
