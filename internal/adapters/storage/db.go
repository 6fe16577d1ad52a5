package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Dates are stored as TEXT in YYYY-MM-DD and times as HH:MM — the civil
	// wire formats. Scanning goes through the ingest parser, never through a
	// timezone-aware parse.
	schema := `
	CREATE TABLE IF NOT EXISTS organization (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		contact_email TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		organization_id TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT,
		FOREIGN KEY (organization_id) REFERENCES organization(id)
	);

	CREATE TABLE IF NOT EXISTS camp (
		id TEXT PRIMARY KEY,
		organization_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		capacity INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		FOREIGN KEY (organization_id) REFERENCES organization(id)
	);

	CREATE TABLE IF NOT EXISTS schedule_rule (
		id TEXT PRIMARY KEY,
		camp_id TEXT NOT NULL,
		weekday INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (camp_id) REFERENCES camp(id)
	);

	CREATE TABLE IF NOT EXISTS schedule_exception (
		id TEXT PRIMARY KEY,
		camp_id TEXT NOT NULL,
		exception_date TEXT NOT NULL,
		status TEXT NOT NULL,
		start_time TEXT,
		end_time TEXT,
		reason TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (camp_id) REFERENCES camp(id)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_exception_camp_date
		ON schedule_exception(camp_id, exception_date);

	CREATE TABLE IF NOT EXISTS registration (
		id TEXT PRIMARY KEY,
		camp_id TEXT NOT NULL,
		camper_name TEXT NOT NULL,
		camper_birth_date TEXT NOT NULL,
		parent_name TEXT NOT NULL,
		parent_email TEXT NOT NULL,
		status TEXT NOT NULL,
		registered_at TEXT NOT NULL,
		FOREIGN KEY (camp_id) REFERENCES camp(id)
	);

	CREATE TABLE IF NOT EXISTS announcement (
		id TEXT PRIMARY KEY,
		camp_id TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (camp_id) REFERENCES camp(id)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// MigrateDB applies the schema to the database at dbPath. The schema uses
// IF NOT EXISTS throughout, so repeated runs are no-ops.
// PRE: db is a valid connection
// POST: Schema is current; safe to call on every startup
func MigrateDB(db *sql.DB, dbPath string) error {
	if err := InitDB(db); err != nil {
		return fmt.Errorf("migrate %s: %w", dbPath, err)
	}
	return nil
}
