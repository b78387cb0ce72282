// Package postgres provides a PostgreSQL-backed implementation of driven.EventStore
// for deployments that share one database between server instances.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
)

// schemaSQL is embedded so the store can bootstrap its own tables.
//
//go:embed schema.sql
var schemaSQL string

// Ensure Store implements the interface.
var _ driven.EventStore = (*Store)(nil)

// Store persists events in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a connection pool and fails fast if the database is unreachable.
func NewStore(ctx context.Context, dbURL string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// SaveEvent stores a new event.
func (s *Store) SaveEvent(ctx context.Context, event domain.Event) error {
	var notes *string
	if event.Notes != "" {
		notes = &event.Notes
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO events (id, name, date, location, budget, currency, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ID, event.Name, event.Date, event.Location, event.Budget, event.Currency, notes)
	if err != nil {
		return fmt.Errorf("saving event: %w", err)
	}
	return nil
}

// GetEvent retrieves an event with its participants.
func (s *Store) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, date, location, budget, currency, notes
		FROM events WHERE id = $1
	`, id)

	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	event.Participants, err = s.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns all events in creation order.
func (s *Store) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, date, location, budget, currency, notes
		FROM events ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	events := []domain.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		events = append(events, *event)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	for i := range events {
		events[i].Participants, err = s.ListParticipants(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

// AddParticipant appends a participant at the end of the event's list.
// The event row is locked so concurrent appends get distinct positions.
func (s *Store) AddParticipant(ctx context.Context, eventID string, participant domain.Participant) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var locked string
	err = tx.QueryRow(ctx, "SELECT id FROM events WHERE id = $1 FOR UPDATE", eventID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("locking event: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO participants (id, event_id, position, name, intolerances, preferences, weight)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), -1) + 1 FROM participants WHERE event_id = $2), $3, $4, $5, $6)
	`, participant.ID, eventID, participant.Name,
		tags(participant.Intolerances), tags(participant.Preferences), participant.Weight)
	if err != nil {
		return fmt.Errorf("adding participant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing participant: %w", err)
	}
	return nil
}

// UpdateParticipant applies a partial update inside a transaction.
func (s *Store) UpdateParticipant(
	ctx context.Context,
	eventID, participantID string,
	update domain.ParticipantUpdate,
) (*domain.Participant, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	row := tx.QueryRow(ctx, `
		SELECT id, name, intolerances, preferences, weight
		FROM participants WHERE event_id = $1 AND id = $2
		FOR UPDATE
	`, eventID, participantID)
	participant, err := scanParticipant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	participant.Apply(update)

	_, err = tx.Exec(ctx, `
		UPDATE participants SET intolerances = $1, preferences = $2, weight = $3
		WHERE event_id = $4 AND id = $5
	`, tags(participant.Intolerances), tags(participant.Preferences), participant.Weight,
		eventID, participantID)
	if err != nil {
		return nil, fmt.Errorf("updating participant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing participant: %w", err)
	}
	return participant, nil
}

// ListParticipants returns the participants of an event in insertion order.
func (s *Store) ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, intolerances, preferences, weight
		FROM participants WHERE event_id = $1 ORDER BY position
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating participants: %w", err)
	}
	return participants, nil
}

// Ping is used by the readiness endpoint to validate connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	var notes *string

	if err := row.Scan(&event.ID, &event.Name, &event.Date, &event.Location,
		&event.Budget, &event.Currency, &notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	if notes != nil {
		event.Notes = *notes
	}
	event.Participants = []domain.Participant{}
	return &event, nil
}

func scanParticipant(row pgx.Row) (*domain.Participant, error) {
	var p domain.Participant

	if err := row.Scan(&p.ID, &p.Name, &p.Intolerances, &p.Preferences, &p.Weight); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning participant: %w", err)
	}

	p.Intolerances = tags(p.Intolerances)
	p.Preferences = tags(p.Preferences)
	return &p, nil
}

// tags maps nil to an empty slice so text[] columns never receive NULL.
func tags(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
