package domain

// Alert is an active weather alert.
type Alert struct {
	Event       string `json:"event"`
	Area        string `json:"area"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
}

// Gridpoint is the forecast handle resolved from coordinates.
type Gridpoint struct {
	ForecastURL string `json:"forecast_url"`
	Office      string `json:"office,omitempty"`
	GridID      string `json:"grid_id,omitempty"`
	GridX       *int   `json:"grid_x,omitempty"`
	GridY       *int   `json:"grid_y,omitempty"`
}

// ForecastPeriod is a single normalised forecast entry.
type ForecastPeriod struct {
	Name             string `json:"name"`
	Temperature      string `json:"temperature"`
	Wind             string `json:"wind"`
	DetailedForecast string `json:"detailed_forecast"`
}

// ForecastBundle aggregates forecast periods with their grid metadata.
type ForecastBundle struct {
	Office  string           `json:"office,omitempty"`
	GridID  string           `json:"grid_id,omitempty"`
	GridX   *int             `json:"grid_x,omitempty"`
	GridY   *int             `json:"grid_y,omitempty"`
	Periods []ForecastPeriod `json:"periods"`
}
