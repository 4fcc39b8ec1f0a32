package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent, so it is safe to
// run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Timestamps are stored as fixed-width UTC text so they sort lexically.
	`CREATE TABLE IF NOT EXISTS task_emotion_records (
		id          TEXT PRIMARY KEY,
		description TEXT NOT NULL CHECK(length(trim(description)) > 0),
		logged_at   TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS task_emotion_tags (
		record_id TEXT NOT NULL REFERENCES task_emotion_records(id) ON DELETE CASCADE,
		emotion   TEXT NOT NULL,
		position  INTEGER NOT NULL,
		PRIMARY KEY (record_id, emotion)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_logged_at ON task_emotion_records(logged_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tags_emotion ON task_emotion_tags(emotion)`,
}
