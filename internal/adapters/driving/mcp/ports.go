package mcp

import (
	"github.com/custodia-labs/convivio/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP servers call into.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Events backs the events server.
	Events driving.EventService

	// Weather backs the weather server.
	Weather driving.WeatherService
}

// Validate ensures the ports needed by kind are set.
func (p *Ports) Validate(kind Kind) error {
	switch kind {
	case KindEvents:
		if p.Events == nil {
			return ErrMissingEventService
		}
	case KindWeather:
		if p.Weather == nil {
			return ErrMissingWeatherService
		}
	default:
		return ErrUnknownKind
	}
	return nil
}
