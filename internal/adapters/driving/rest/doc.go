// Package rest serves the events and weather services as a JSON API.
//
// Routes:
//
//	GET   /health
//	GET   /ready
//	GET   /metrics
//	GET   /api/weather/alerts/:state
//	GET   /api/weather/forecast?lat=&lon=&periods=
//	POST  /api/events
//	GET   /api/events
//	GET   /api/events/:id
//	POST  /api/events/:id/participants
//	PATCH /api/events/:id/participants/:pid
//	GET   /api/events/:id/restaurants?limit=
//	POST  /api/events/:id/split
//
// Failures are answered with {"error": message}.
package rest
