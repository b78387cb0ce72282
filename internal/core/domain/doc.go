// Package domain defines the core business entities for Convivio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Event: A gathering among friends with its participants
//   - Participant: A guest with dietary tags and a bill-splitting weight
//   - RestaurantSuggestion: Static reference data keyed by location
//   - Alert, Gridpoint, ForecastBundle: Normalised weather data
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
