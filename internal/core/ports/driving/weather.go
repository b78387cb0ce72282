package driving

import (
	"context"

	"github.com/custodia-labs/convivio/internal/core/domain"
)

// WeatherService provides validated weather lookups.
type WeatherService interface {
	// AlertsForState returns active alerts for a two-letter state code.
	AlertsForState(ctx context.Context, state string) ([]domain.Alert, error)

	// ForecastForCoordinates returns the first periods of the forecast at a point.
	// A nil periods selects the configured default; a non-positive value is rejected.
	ForecastForCoordinates(ctx context.Context, latitude, longitude float64, periods *int) (*domain.ForecastBundle, error)
}
