package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Imports (one row per ingested file)
		`CREATE TABLE IF NOT EXISTS imports (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			format TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			imported_at TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_imports_imported_at ON imports(imported_at)`,

		// Activity records as ingested, nullable numerics
		`CREATE TABLE IF NOT EXISTS activity_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			import_id TEXT NOT NULL,
			row_index INTEGER NOT NULL,
			modality TEXT NOT NULL,
			speed_mph REAL,
			grade_pct REAL,
			spm REAL,
			step_height_m REAL,
			mass_kg REAL,
			measured_efficiency REAL,
			theoretical_efficiency REAL,
			measured_kcal_per_min REAL,
			theory_net_kcal_per_min REAL,
			FOREIGN KEY (import_id) REFERENCES imports(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activity_records_import ON activity_records(import_id, row_index)`,

		// Treadmill summary per (speed, grade)
		`CREATE TABLE IF NOT EXISTS treadmill_summaries (
			import_id TEXT NOT NULL,
			speed_mph REAL NOT NULL,
			grade_pct REAL NOT NULL,
			n INTEGER NOT NULL,
			eff_meas REAL,
			eff_theory REAL,
			PRIMARY KEY (import_id, speed_mph, grade_pct),
			FOREIGN KEY (import_id) REFERENCES imports(id) ON DELETE CASCADE
		)`,

		// Stair summary per steps-per-minute
		`CREATE TABLE IF NOT EXISTS stair_summaries (
			import_id TEXT NOT NULL,
			spm REAL NOT NULL,
			n INTEGER NOT NULL,
			aw REAL,
			net REAL,
			efficiency_theory REAL,
			efficiency_is_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (import_id, spm),
			FOREIGN KEY (import_id) REFERENCES imports(id) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
