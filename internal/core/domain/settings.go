package domain

import "time"

const unknownDescription = "Unknown"

// Transport defines how an MCP server talks to its host.
type Transport string

// Available transports.
const (
	// TransportStdio exchanges JSON-RPC over stdin/stdout.
	TransportStdio Transport = "stdio"

	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP Transport = "http"
)

// ParseTransport maps user input to a Transport.
// "streamable-http" is accepted as an alias of "http".
func ParseTransport(s string) (Transport, bool) {
	switch s {
	case "stdio":
		return TransportStdio, true
	case "http", "streamable-http":
		return TransportHTTP, true
	default:
		return "", false
	}
}

// IsValid returns true if the transport is recognised.
func (t Transport) IsValid() bool {
	return t == TransportStdio || t == TransportHTTP
}

// String returns the string representation.
func (t Transport) String() string {
	return string(t)
}

// Description returns a human-readable description of the transport.
func (t Transport) Description() string {
	switch t {
	case TransportStdio:
		return "stdio (JSON-RPC over stdin/stdout)"
	case TransportHTTP:
		return "streamable HTTP"
	default:
		return unknownDescription
	}
}

// EventSettings configures the events service.
type EventSettings struct {
	// DefaultCurrency is assigned to every new event.
	DefaultCurrency string

	// SuggestionLimit caps restaurant suggestions when the caller gives no limit.
	SuggestionLimit int
}

// WeatherSettings configures the weather client and service.
type WeatherSettings struct {
	// APIBase is the weather API root URL.
	APIBase string

	// UserAgent is sent with every upstream request.
	UserAgent string

	// Timeout bounds each upstream request.
	Timeout time.Duration

	// ForecastPeriods is the default number of forecast periods returned.
	ForecastPeriods int
}

// StorageSettings selects the event store.
type StorageSettings struct {
	// DatabaseURL is the store connection string. Empty selects the in-memory store.
	DatabaseURL string
}

// ServerSettings configures the tool-serving runtime.
type ServerSettings struct {
	// Transport is the MCP transport.
	Transport Transport

	// HTTPAddr is the listen address for HTTP transports and the REST API.
	HTTPAddr string
}

// AppSettings holds the complete application configuration.
type AppSettings struct {
	Events  EventSettings
	Weather WeatherSettings
	Storage StorageSettings
	Server  ServerSettings
}

// DefaultAppSettings returns the built-in defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Events: EventSettings{
			DefaultCurrency: "EUR",
			SuggestionLimit: 5,
		},
		Weather: WeatherSettings{
			APIBase:         "https://api.weather.gov",
			UserAgent:       "convivio-weather/1.0",
			Timeout:         30 * time.Second,
			ForecastPeriods: 5,
		},
		Server: ServerSettings{
			Transport: TransportStdio,
			HTTPAddr:  ":8080",
		},
	}
}
