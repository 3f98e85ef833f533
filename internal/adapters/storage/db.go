package storage

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; schema_version records the last applied
// index. Fresh databases run all of them inside one transaction each.
var migrations = []string{
	// 1: initial schema
	`
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending_verification',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS verification_token (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		expires_at TEXT NOT NULL,
		used INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS profile (
		user_id TEXT PRIMARY KEY,
		role TEXT NOT NULL DEFAULT '',
		comp_cohort TEXT NOT NULL DEFAULT 'inclusive',
		FOREIGN KEY (user_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS wall (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS colour (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		hex_code TEXT,
		usage TEXT NOT NULL DEFAULT '',
		sort_order INTEGER
	);

	CREATE TABLE IF NOT EXISTS climb (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		wall_id INTEGER NOT NULL,
		hold_colour_id INTEGER NOT NULL,
		tag_colour_id INTEGER NOT NULL,
		sector_tag_id TEXT,
		photo TEXT,
		notes TEXT,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (wall_id) REFERENCES wall(id),
		FOREIGN KEY (hold_colour_id) REFERENCES colour(id),
		FOREIGN KEY (tag_colour_id) REFERENCES colour(id)
	);

	CREATE TABLE IF NOT EXISTS ascent (
		id TEXT PRIMARY KEY,
		climb_id INTEGER NOT NULL,
		user_id TEXT NOT NULL,
		sent INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		UNIQUE (climb_id, user_id),
		FOREIGN KEY (climb_id) REFERENCES climb(id),
		FOREIGN KEY (user_id) REFERENCES account(id)
	);
	`,
	// 2: index for the leaderboard join and the per-viewer ascent fetch
	`
	CREATE INDEX IF NOT EXISTS idx_ascent_user ON ascent(user_id);
	CREATE INDEX IF NOT EXISTS idx_ascent_sent ON ascent(sent);
	CREATE INDEX IF NOT EXISTS idx_climb_wall ON climb(wall_id);
	`,
}

// LatestSchemaVersion returns the version a fully migrated database reports.
func LatestSchemaVersion() int {
	return len(migrations)
}

// MigrateDB brings the database schema up to the latest version.
// PRE: db is a valid database connection
// POST: schema_version equals LatestSchemaVersion(); idempotent on re-run
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	version, err := currentVersion(db)
	if err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed to clear version: %w", i+1, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed to record version: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d failed to commit: %w", i+1, err)
		}
	}
	return nil
}

// SchemaVersion returns the currently recorded schema version.
// PRE: MigrateDB has created the schema_version table
// POST: returns version >= 0
func SchemaVersion(db *sql.DB) (int, error) {
	return currentVersion(db)
}

func currentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
