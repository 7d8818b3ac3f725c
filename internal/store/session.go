package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Session source values.
const (
	// SourceLive marks sessions fed by the live camera pipeline.
	SourceLive = "live"
	// SourceUpload marks sessions created from an uploaded video.
	SourceUpload = "upload"
)

// Session represents one coaching session for a single exercise.
type Session struct {
	ID        string
	Exercise  string
	Source    string
	CreatedAt time.Time
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session. A missing ID is generated; a missing
// source defaults to live.
func (r *SessionRepository) Create(s *Session) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Source == "" {
		s.Source = SourceLive
	}
	s.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, exercise, source, created_at)
		 VALUES (?, ?, ?, ?)`,
		s.ID, s.Exercise, s.Source, s.CreatedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	s := &Session{}

	err := r.db.QueryRow(
		`SELECT id, exercise, source, created_at FROM sessions WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.Exercise, &s.Source, &s.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, exercise, source, created_at FROM sessions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s := &Session{}
		if err := rows.Scan(&s.ID, &s.Exercise, &s.Source, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// Delete removes a session and, via cascade, its analyses.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
