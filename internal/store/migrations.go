package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per coaching session
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			exercise TEXT NOT NULL CHECK(exercise IN ('squat', 'pushup', 'plank', 'lunge', 'deadlift')),
			source TEXT NOT NULL DEFAULT 'live',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Analyses table - one row per scored frame within a session
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			frame_index INTEGER NOT NULL,
			timestamp REAL NOT NULL,
			form_score REAL NOT NULL,
			confidence REAL NOT NULL,
			is_correct_form INTEGER NOT NULL DEFAULT 0,
			corrections TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_analyses_session_id ON analyses(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
