package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/convivio/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
)

// Store is a SQLite database holding events and participants.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at dbPath and applies pending migrations.
// If dbPath is empty, defaults to ~/.convivio/data/events.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".convivio", "data", "events.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite",
		dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EventStore returns an EventStore interface backed by this store.
// Closing it closes the store.
func (s *Store) EventStore() driven.EventStore {
	return &eventStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Event Store ====================

// eventStore implements driven.EventStore.
type eventStore struct {
	store *Store
}

var _ driven.EventStore = (*eventStore)(nil)

// SaveEvent stores a new event.
func (s *eventStore) SaveEvent(ctx context.Context, event domain.Event) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO events (id, name, date, location, budget, currency, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.Name, event.Date, event.Location,
		nullFloat(event.Budget), event.Currency, nullString(event.Notes))
	if err != nil {
		return fmt.Errorf("saving event: %w", err)
	}
	return nil
}

// GetEvent retrieves an event with its participants.
func (s *eventStore) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, date, location, budget, currency, notes
		FROM events WHERE id = ?
	`, id)

	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
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
func (s *eventStore) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, date, location, budget, currency, notes
		FROM events ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	// Close before issuing nested queries on the same pool.
	rows.Close()

	for i := range events {
		events[i].Participants, err = s.ListParticipants(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

// AddParticipant appends a participant at the end of the event's list.
func (s *eventStore) AddParticipant(ctx context.Context, eventID string, participant domain.Participant) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM events WHERE id = ?", eventID).Scan(&exists); err != nil {
		return fmt.Errorf("checking event: %w", err)
	}
	if exists == 0 {
		return domain.ErrEventNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO participants (id, event_id, position, name, intolerances, preferences, weight)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM participants WHERE event_id = ?), ?, ?, ?, ?)
	`, participant.ID, eventID, eventID, participant.Name,
		encodeTags(participant.Intolerances), encodeTags(participant.Preferences), participant.Weight)
	if err != nil {
		return fmt.Errorf("adding participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing participant: %w", err)
	}
	return nil
}

// UpdateParticipant applies a partial update inside a transaction.
func (s *eventStore) UpdateParticipant(
	ctx context.Context,
	eventID, participantID string,
	update domain.ParticipantUpdate,
) (*domain.Participant, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	row := tx.QueryRowContext(ctx, `
		SELECT id, name, intolerances, preferences, weight
		FROM participants WHERE event_id = ? AND id = ?
	`, eventID, participantID)
	participant, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	participant.Apply(update)

	_, err = tx.ExecContext(ctx, `
		UPDATE participants SET intolerances = ?, preferences = ?, weight = ?
		WHERE event_id = ? AND id = ?
	`, encodeTags(participant.Intolerances), encodeTags(participant.Preferences), participant.Weight,
		eventID, participantID)
	if err != nil {
		return nil, fmt.Errorf("updating participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing participant: %w", err)
	}
	return participant, nil
}

// ListParticipants returns the participants of an event in insertion order.
func (s *eventStore) ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, intolerances, preferences, weight
		FROM participants WHERE event_id = ? ORDER BY position
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

// Ping checks the database connection.
func (s *eventStore) Ping(ctx context.Context) error {
	return s.store.db.PingContext(ctx)
}

// Close closes the underlying store.
func (s *eventStore) Close() error {
	return s.store.Close()
}

// ==================== Helpers ====================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*domain.Event, error) {
	var event domain.Event
	var budget sql.NullFloat64
	var notes sql.NullString

	if err := row.Scan(&event.ID, &event.Name, &event.Date, &event.Location,
		&budget, &event.Currency, &notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	if budget.Valid {
		b := budget.Float64
		event.Budget = &b
	}
	event.Notes = notes.String
	event.Participants = []domain.Participant{}
	return &event, nil
}

func scanParticipant(row scanner) (*domain.Participant, error) {
	var p domain.Participant
	var intolerances, preferences string

	if err := row.Scan(&p.ID, &p.Name, &intolerances, &preferences, &p.Weight); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning participant: %w", err)
	}

	var err error
	if p.Intolerances, err = decodeTags(intolerances); err != nil {
		return nil, err
	}
	if p.Preferences, err = decodeTags(preferences); err != nil {
		return nil, err
	}
	return &p, nil
}

// encodeTags stores tags as a JSON array so commas inside a tag survive.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	// Marshalling a string slice cannot fail.
	b, _ := json.Marshal(tags)
	return string(b)
}

// decodeTags reads a JSON array written by encodeTags.
func decodeTags(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	return domain.NormalizeTags(tags), nil
}

// nullString converts empty strings to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullFloat converts a nil pointer to NULL.
func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
