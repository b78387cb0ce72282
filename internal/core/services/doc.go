// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never branch on which adapter they were given; the
// event store and weather client are chosen at construction time.
package services
