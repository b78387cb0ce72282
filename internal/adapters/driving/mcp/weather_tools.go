package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/convivio/internal/core/services"
)

// GetAlertsInput is the input schema for get_alerts.
type GetAlertsInput struct {
	State string `json:"state" jsonschema:"Codice di due lettere dello stato USA (es. CA o NY)"`
}

// GetForecastInput is the input schema for get_forecast.
type GetForecastInput struct {
	Latitude  float64 `json:"latitude" jsonschema:"Latitudine in decimali (es. 37.7749)"`
	Longitude float64 `json:"longitude" jsonschema:"Longitudine in decimali (es. -122.4194)"`
	Periods   *int    `json:"periods,omitempty" jsonschema:"Numero di periodi di forecast da restituire (default da config)"`
}

// registerWeatherTools registers the weather tool handlers with the MCP server.
func (s *Server) registerWeatherTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_alerts",
		Description: "Elenca le allerte meteo attive per uno stato USA.",
	}, s.handleGetAlerts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_forecast",
		Description: "Restituisce le previsioni puntuali per coordinate fornite.",
	}, s.handleGetForecast)
}

func (s *Server) handleGetAlerts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetAlertsInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	alerts, err := s.ports.Weather.AlertsForState(ctx, input.State)
	if err != nil {
		return s.reply("get_alerts", start, "", err)
	}
	return s.reply("get_alerts", start, services.FormatAlerts(alerts), nil)
}

func (s *Server) handleGetForecast(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetForecastInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	bundle, err := s.ports.Weather.ForecastForCoordinates(ctx, input.Latitude, input.Longitude, input.Periods)
	if err != nil {
		return s.reply("get_forecast", start, "", err)
	}
	return s.reply("get_forecast", start, services.FormatForecast(bundle), nil)
}
