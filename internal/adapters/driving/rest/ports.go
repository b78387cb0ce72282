package rest

import (
	"context"
	"net/http"

	"github.com/custodia-labs/convivio/internal/core/ports/driving"
	"github.com/custodia-labs/convivio/internal/observability"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Ports aggregates everything the router calls into.
type Ports struct {
	// Events is required.
	Events driving.EventService

	// Weather is required.
	Weather driving.WeatherService

	// Store backs /ready. Optional: without it /ready always succeeds.
	Store HealthChecker

	// Metrics backs /metrics and request counting. Optional.
	Metrics *observability.Metrics

	// MCP maps mount paths (e.g. "/mcp/events") to MCP HTTP handlers. Optional.
	MCP map[string]http.Handler
}

// Validate ensures required ports are set.
func (p *Ports) Validate() error {
	if p.Events == nil {
		return ErrMissingEventService
	}
	if p.Weather == nil {
		return ErrMissingWeatherService
	}
	return nil
}
