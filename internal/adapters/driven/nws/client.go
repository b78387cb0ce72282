// Package nws implements driven.WeatherClient against the National Weather Service API.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
	"github.com/custodia-labs/convivio/internal/logger"
	"github.com/custodia-labs/convivio/internal/observability"
)

// Endpoint labels used for metrics.
const (
	endpointAlerts   = "alerts"
	endpointPoints   = "points"
	endpointForecast = "forecast"
)

// Ensure Client implements the interface.
var _ driven.WeatherClient = (*Client)(nil)

// Client talks to api.weather.gov. Every call is a single GET.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewClient creates an NWS client from weather settings. metrics may be nil.
func NewClient(settings domain.WeatherSettings, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL:   strings.TrimRight(settings.APIBase, "/"),
		userAgent: settings.UserAgent,
		httpClient: &http.Client{
			Timeout: settings.Timeout,
		},
		metrics: metrics,
	}
}

// FetchAlerts returns active alerts for a two-letter US state code.
func (c *Client) FetchAlerts(ctx context.Context, state string) ([]domain.Alert, error) {
	var data alertsResponse
	if err := c.getJSON(ctx, "/alerts/active/area/"+state, endpointAlerts, &data); err != nil {
		return nil, err
	}

	alerts := make([]domain.Alert, 0, len(data.Features))
	for _, f := range data.Features {
		p := f.Properties
		alerts = append(alerts, domain.Alert{
			Event:       orDefault(p.Event, "Unknown"),
			Area:        orDefault(p.AreaDesc, "Unknown"),
			Severity:    orDefault(p.Severity, "Unknown"),
			Description: orDefault(p.Description, "No description available"),
			Instruction: orDefault(p.Instruction, "No specific instructions provided"),
		})
	}
	return alerts, nil
}

// ResolveGridpoint maps coordinates to the gridpoint that owns their forecast.
func (c *Client) ResolveGridpoint(ctx context.Context, latitude, longitude float64) (*domain.Gridpoint, error) {
	path := fmt.Sprintf("/points/%s,%s",
		strconv.FormatFloat(latitude, 'f', -1, 64),
		strconv.FormatFloat(longitude, 'f', -1, 64))

	var data pointsResponse
	if err := c.getJSON(ctx, path, endpointPoints, &data); err != nil {
		return nil, err
	}

	p := data.Properties
	if p.Forecast == "" {
		return nil, domain.InvalidLocationError(nil, "Coordinate valide ma nessun endpoint di forecast restituito.")
	}
	return &domain.Gridpoint{
		ForecastURL: p.Forecast,
		Office:      p.GridID,
		GridID:      p.GridID,
		GridX:       p.GridX,
		GridY:       p.GridY,
	}, nil
}

// FetchForecast downloads the forecast at forecastURL and normalises its periods.
func (c *Client) FetchForecast(ctx context.Context, forecastURL string) ([]domain.ForecastPeriod, error) {
	var data forecastResponse
	if err := c.getJSON(ctx, forecastURL, endpointForecast, &data); err != nil {
		return nil, err
	}

	periods := make([]domain.ForecastPeriod, 0, len(data.Properties.Periods))
	for _, p := range data.Properties.Periods {
		temperature := "?"
		if p.Temperature != nil {
			temperature = p.Temperature.String()
		}
		periods = append(periods, domain.ForecastPeriod{
			Name:             orDefault(p.Name, "Unknown period"),
			Temperature:      temperature + "°" + p.TemperatureUnit,
			Wind:             strings.TrimSpace(orDefault(p.WindSpeed, "?") + " " + p.WindDirection),
			DetailedForecast: orDefault(p.DetailedForecast, "Nessuna descrizione disponibile."),
		})
	}
	return periods, nil
}

// resolveURL joins relative paths to the base URL; absolute URLs pass through.
func (c *Client) resolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}
	return c.baseURL + pathOrURL
}

// getJSON performs a GET and decodes the body into out, mapping failures to domain errors.
func (c *Client) getJSON(ctx context.Context, pathOrURL, endpoint string, out any) (err error) {
	url := c.resolveURL(pathOrURL)
	start := time.Now()
	defer func() {
		c.metrics.ObserveUpstream(endpoint, err != nil, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.UpstreamError(err, "Errore di rete verso NWS: %v.", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	logger.Debug("GET %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.UpstreamError(err, "Errore di rete verso NWS: %v.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.InvalidLocationError(nil, "Risorsa non trovata su NWS (%s).", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.UpstreamError(nil, "Errore HTTP %d per %s.", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.UpstreamError(err, "Errore di rete verso NWS: %v.", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		logger.Warn("invalid JSON from %s: %v", url, err)
		return domain.UpstreamError(err, "Risposta NWS non valida su %s.", url)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// NWS response types.

type alertsResponse struct {
	Features []struct {
		Properties struct {
			Event       string `json:"event"`
			AreaDesc    string `json:"areaDesc"`
			Severity    string `json:"severity"`
			Description string `json:"description"`
			Instruction string `json:"instruction"`
		} `json:"properties"`
	} `json:"features"`
}

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
		GridID   string `json:"gridId"`
		GridX    *int   `json:"gridX"`
		GridY    *int   `json:"gridY"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []period `json:"periods"`
	} `json:"properties"`
}

type period struct {
	Name             string       `json:"name"`
	Temperature      *json.Number `json:"temperature"`
	TemperatureUnit  string       `json:"temperatureUnit"`
	WindSpeed        string       `json:"windSpeed"`
	WindDirection    string       `json:"windDirection"`
	DetailedForecast string       `json:"detailedForecast"`
}
