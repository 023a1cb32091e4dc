package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			athlete_id INTEGER NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Activities (summary data from the provider API)
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			start_date TEXT NOT NULL,
			distance REAL NOT NULL,
			moving_time INTEGER NOT NULL,
			elapsed_time INTEGER NOT NULL,
			average_speed REAL,
			workout_type INTEGER,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_start_date ON activities(start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_athlete ON activities(athlete_id)`,

		// Goals (user-declared training targets)
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			target_value REAL NOT NULL,
			unit TEXT NOT NULL,
			target_date TEXT NOT NULL,
			created_at TEXT NOT NULL,
			race_distance REAL,
			race_type TEXT,
			current_value REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active',
			analyzed_version INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_goals_status ON goals(status)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_athlete ON goals(athlete_id)`,

		// Cached analysis snapshots, keyed by goal and activity-store version
		`CREATE TABLE IF NOT EXISTS goal_analyses (
			goal_id TEXT NOT NULL,
			activity_version INTEGER NOT NULL,
			payload BLOB NOT NULL,
			computed_at TEXT NOT NULL,
			PRIMARY KEY (goal_id, activity_version),
			FOREIGN KEY (goal_id) REFERENCES goals(id) ON DELETE CASCADE
		)`,

		// Sync State (key-value store for sync tracking)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
