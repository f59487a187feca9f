package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultListLimit caps List when no positive limit is given.
const DefaultListLimit = 100

// Event is a recognized gesture as persisted in the events table.
type Event struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Thumb     string    `json:"thumb"`
	Index     bool      `json:"index"`
	Middle    bool      `json:"middle"`
	Ring      bool      `json:"ring"`
	Pinky     bool      `json:"pinky"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRepository provides access to recorded gesture events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts an event. A missing ID is filled with a new UUID and a zero
// CreatedAt with the current time.
func (r *EventRepository) Create(e *Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO events (id, label, thumb, index_ext, middle_ext, ring_ext, pinky_ext, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Label, e.Thumb, boolInt(e.Index), boolInt(e.Middle), boolInt(e.Ring), boolInt(e.Pinky),
		e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first.
func (r *EventRepository) List(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.Query(
		`SELECT id, label, thumb, index_ext, middle_ext, ring_ext, pinky_ext, created_at
		 FROM events ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var index, middle, ring, pinky int
		var created int64

		if err := rows.Scan(&e.ID, &e.Label, &e.Thumb, &index, &middle, &ring, &pinky, &created); err != nil {
			return nil, err
		}

		e.Index, e.Middle, e.Ring, e.Pinky = index != 0, middle != 0, ring != 0, pinky != 0
		e.CreatedAt = time.UnixMilli(created)
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountByLabel returns how many events were recorded per label.
func (r *EventRepository) CountByLabel() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT label, COUNT(*) FROM events GROUP BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}

	return counts, rows.Err()
}

// DeleteBefore removes events older than t and returns how many were deleted.
func (r *EventRepository) DeleteBefore(t time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE created_at < ?`, t.UnixMilli())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
