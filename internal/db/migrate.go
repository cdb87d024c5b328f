package db

import (
	"context"
	"fmt"
)

// migrations run in order inside one transaction; each is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS eligibility_check (
		check_id        UUID PRIMARY KEY,
		applicant_ref   TEXT NOT NULL DEFAULT '',
		year_level      TEXT NOT NULL DEFAULT '',
		is_eligible     BOOLEAN NOT NULL,
		grade_count     INTEGER NOT NULL,
		passed_checks   INTEGER NOT NULL,
		total_checks    INTEGER NOT NULL,
		recommendation  TEXT NOT NULL,
		result          JSONB NOT NULL,
		checked_by      TEXT NOT NULL DEFAULT '',
		checked_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS eligibility_check_applicant_idx
		ON eligibility_check (applicant_ref, checked_at DESC)`,
}

// Migrate creates the check-log tables
func (c *Connection) Migrate(ctx context.Context) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range migrations {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
