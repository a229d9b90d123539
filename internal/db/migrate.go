package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations run in order on every open. Statements must be idempotent;
// ALTER TABLE additions rely on the duplicate-column tolerance below.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS maintenance_audit (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		maintenance_id  TEXT NOT NULL,
		name            TEXT NOT NULL,
		user_id         TEXT NOT NULL DEFAULT '',
		ticket          TEXT NOT NULL DEFAULT '',
		recurrence_kind TEXT NOT NULL,
		hosts           TEXT NOT NULL DEFAULT '[]',
		groups          TEXT NOT NULL DEFAULT '[]',
		active_since    INTEGER NOT NULL,
		active_till     INTEGER NOT NULL,
		created_at      INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_created_at
		ON maintenance_audit (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_ticket
		ON maintenance_audit (ticket)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
