package nws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/observability"
)

const testUserAgent = "convivio-test/1.0"

func testClient(baseURL string, metrics *observability.Metrics) *Client {
	return NewClient(domain.WeatherSettings{
		APIBase:   baseURL + "/",
		UserAgent: testUserAgent,
		Timeout:   5 * time.Second,
	}, metrics)
}

func jsonHandler(t *testing.T, wantPath, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantPath, r.URL.Path)
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/geo+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(body))
	}
}

func TestClient_FetchAlerts(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/alerts/active/area/CA", `{
		"features": [
			{"properties": {
				"event": "Flood Warning",
				"areaDesc": "Sonoma",
				"severity": "Severe",
				"description": "River rising.",
				"instruction": "Move to higher ground."
			}},
			{"properties": {"event": "Heat Advisory", "instruction": null}}
		]
	}`))
	defer srv.Close()

	alerts, err := testClient(srv.URL, nil).FetchAlerts(context.Background(), "CA")
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, domain.Alert{
		Event:       "Flood Warning",
		Area:        "Sonoma",
		Severity:    "Severe",
		Description: "River rising.",
		Instruction: "Move to higher ground.",
	}, alerts[0])
	assert.Equal(t, domain.Alert{
		Event:       "Heat Advisory",
		Area:        "Unknown",
		Severity:    "Unknown",
		Description: "No description available",
		Instruction: "No specific instructions provided",
	}, alerts[1])
}

func TestClient_FetchAlerts_Empty(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/alerts/active/area/NY", `{"features": []}`))
	defer srv.Close()

	alerts, err := testClient(srv.URL, nil).FetchAlerts(context.Background(), "NY")
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestClient_ResolveGridpoint(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/points/40.7128,-74.006", `{
		"properties": {
			"forecast": "https://api.weather.gov/gridpoints/OKX/33,35/forecast",
			"gridId": "OKX",
			"gridX": 33,
			"gridY": 35
		}
	}`))
	defer srv.Close()

	gp, err := testClient(srv.URL, nil).ResolveGridpoint(context.Background(), 40.7128, -74.006)
	require.NoError(t, err)

	assert.Equal(t, "https://api.weather.gov/gridpoints/OKX/33,35/forecast", gp.ForecastURL)
	assert.Equal(t, "OKX", gp.Office)
	assert.Equal(t, "OKX", gp.GridID)
	require.NotNil(t, gp.GridX)
	require.NotNil(t, gp.GridY)
	assert.Equal(t, 33, *gp.GridX)
	assert.Equal(t, 35, *gp.GridY)
}

func TestClient_ResolveGridpoint_NoForecastURL(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/points/10,20", `{"properties": {"gridId": "XXX"}}`))
	defer srv.Close()

	_, err := testClient(srv.URL, nil).ResolveGridpoint(context.Background(), 10, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
	assert.Equal(t, "Coordinate valide ma nessun endpoint di forecast restituito.", domain.Message(err))
}

func TestClient_FetchForecast(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/gridpoints/OKX/33,35/forecast", `{
		"properties": {"periods": [
			{
				"name": "Tonight",
				"temperature": 58,
				"temperatureUnit": "F",
				"windSpeed": "5 mph",
				"windDirection": "SW",
				"detailedForecast": "Clear."
			},
			{"temperatureUnit": "F"}
		]}
	}`))
	defer srv.Close()

	// Absolute forecast URLs are requested as-is.
	periods, err := testClient(srv.URL, nil).FetchForecast(context.Background(), srv.URL+"/gridpoints/OKX/33,35/forecast")
	require.NoError(t, err)
	require.Len(t, periods, 2)

	assert.Equal(t, domain.ForecastPeriod{
		Name:             "Tonight",
		Temperature:      "58°F",
		Wind:             "5 mph SW",
		DetailedForecast: "Clear.",
	}, periods[0])
	assert.Equal(t, domain.ForecastPeriod{
		Name:             "Unknown period",
		Temperature:      "?°F",
		Wind:             "?",
		DetailedForecast: "Nessuna descrizione disponibile.",
	}, periods[1])
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    error
		message string
	}{
		{"not found", http.StatusNotFound, `{}`, domain.ErrInvalidLocation, "Risorsa non trovata su NWS"},
		{"server error", http.StatusInternalServerError, `{}`, domain.ErrUpstream, "Errore HTTP 500 per"},
		{"bad request", http.StatusBadRequest, `{}`, domain.ErrUpstream, "Errore HTTP 400 per"},
		{"malformed json", http.StatusOK, `{not json`, domain.ErrUpstream, "Risposta NWS non valida su"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL, nil).FetchAlerts(context.Background(), "TX")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, domain.Message(err), tt.message)
			assert.Contains(t, domain.Message(err), srv.URL+"/alerts/active/area/TX")
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := testClient(url, nil).FetchAlerts(context.Background(), "TX")
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, domain.Message(err), "Errore di rete verso NWS")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer srv.Close()

	c := NewClient(domain.WeatherSettings{APIBase: srv.URL, Timeout: 20 * time.Millisecond}, nil)
	_, err := c.FetchAlerts(context.Background(), "TX")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_RecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/alerts/active/area/TX" {
			_, _ = w.Write([]byte(`{"features": []}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	metrics := observability.NewMetrics()
	c := testClient(srv.URL, metrics)

	_, err := c.FetchAlerts(context.Background(), "TX")
	require.NoError(t, err)
	_, err = c.ResolveGridpoint(context.Background(), 1, 2)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues(endpointAlerts, observability.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues(endpointPoints, observability.OutcomeError)))
}

func TestResolveURL(t *testing.T) {
	c := testClient("https://api.weather.gov", nil)

	assert.Equal(t, "https://api.weather.gov/points/1,2", c.resolveURL("/points/1,2"))
	assert.Equal(t, "https://example.org/forecast", c.resolveURL("https://example.org/forecast"))
}
