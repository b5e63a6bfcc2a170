package history

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS transitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			button TEXT NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('idle', 'loading', 'success', 'error')),
			origin TEXT NOT NULL,
			error TEXT,
			trace TEXT,
			at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_transitions_button_at ON transitions(button, at);
		CREATE INDEX IF NOT EXISTS idx_transitions_session ON transitions(session);

		CREATE TABLE IF NOT EXISTS prune_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cutoff INTEGER NOT NULL,
			deleted INTEGER NOT NULL,
			pruned_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = conn.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}
