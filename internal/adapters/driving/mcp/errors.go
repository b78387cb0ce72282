// Package mcp exposes the events and weather services as MCP (Model Context
// Protocol) tool servers. Every tool answers with plain text; failures are
// flattened to an "Errore: ..." message instead of a protocol error.
package mcp

import "errors"

// ErrMissingEventService is returned when an events server has no event service.
var ErrMissingEventService = errors.New("mcp: event service is required")

// ErrMissingWeatherService is returned when a weather server has no weather service.
var ErrMissingWeatherService = errors.New("mcp: weather service is required")

// ErrUnknownKind is returned for a server kind other than events or weather.
var ErrUnknownKind = errors.New("mcp: unknown server kind")
