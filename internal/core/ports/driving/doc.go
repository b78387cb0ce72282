// Package driving defines the interfaces that infrastructure calls INTO core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The MCP tool servers, the REST API and the CLI depend on these
// interfaces; core services implement them.
//
// # Interfaces
//
//   - EventService: Events among friends, restaurants and bill splitting
//   - WeatherService: Weather alerts and forecasts
//   - SettingsService: Effective application settings
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or services package
package driving
