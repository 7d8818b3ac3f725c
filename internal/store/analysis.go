package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Analysis represents one scored frame within a session.
type Analysis struct {
	ID            int64
	SessionID     string
	FrameIndex    int
	Timestamp     float64
	FormScore     float64
	Confidence    float64
	IsCorrectForm bool
	Corrections   []string
	CreatedAt     time.Time
}

// SessionStats aggregates the analyses of one session.
type SessionStats struct {
	Frames         int
	AvgFormScore   float64
	AvgConfidence  float64
	CorrectPercent float64
}

// AnalysisRepository provides persistence for per-frame analysis results.
type AnalysisRepository struct {
	db *sql.DB
}

// Analyses returns the analysis repository for this store.
func (s *Store) Analyses() *AnalysisRepository {
	return &AnalysisRepository{db: s.db}
}

// Create inserts a new analysis row. Corrections are stored as a JSON
// array.
func (r *AnalysisRepository) Create(a *Analysis) error {
	a.CreatedAt = time.Now()

	corrections := a.Corrections
	if corrections == nil {
		corrections = []string{}
	}
	encoded, err := json.Marshal(corrections)
	if err != nil {
		return fmt.Errorf("encode corrections: %w", err)
	}

	result, err := r.db.Exec(
		`INSERT INTO analyses (session_id, frame_index, timestamp, form_score, confidence, is_correct_form, corrections, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.SessionID, a.FrameIndex, a.Timestamp, a.FormScore, a.Confidence,
		boolToInt(a.IsCorrectForm), string(encoded), a.CreatedAt,
	)
	if err != nil {
		return err
	}

	a.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves all analyses for a session in frame order.
func (r *AnalysisRepository) ListBySession(sessionID string) ([]*Analysis, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, frame_index, timestamp, form_score, confidence, is_correct_form, corrections, created_at
		 FROM analyses WHERE session_id = ? ORDER BY frame_index ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*Analysis
	for rows.Next() {
		a := &Analysis{}
		var correct int
		var corrections string

		if err := rows.Scan(&a.ID, &a.SessionID, &a.FrameIndex, &a.Timestamp,
			&a.FormScore, &a.Confidence, &correct, &corrections, &a.CreatedAt); err != nil {
			return nil, err
		}

		a.IsCorrectForm = correct != 0
		if err := json.Unmarshal([]byte(corrections), &a.Corrections); err != nil {
			return nil, fmt.Errorf("decode corrections for analysis %d: %w", a.ID, err)
		}

		analyses = append(analyses, a)
	}

	return analyses, rows.Err()
}

// Stats aggregates the stored analyses of one session.
func (r *AnalysisRepository) Stats(sessionID string) (*SessionStats, error) {
	stats := &SessionStats{}
	var avgScore, avgConfidence, correctPercent sql.NullFloat64

	err := r.db.QueryRow(
		`SELECT COUNT(*), AVG(form_score), AVG(confidence), AVG(is_correct_form) * 100.0
		 FROM analyses WHERE session_id = ?`,
		sessionID,
	).Scan(&stats.Frames, &avgScore, &avgConfidence, &correctPercent)
	if err != nil {
		return nil, err
	}

	stats.AvgFormScore = avgScore.Float64
	stats.AvgConfidence = avgConfidence.Float64
	stats.CorrectPercent = correctPercent.Float64

	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
