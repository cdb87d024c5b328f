package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// PostgresStore records checks in the eligibility_check table.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore creates a store over db
func NewPostgresStore(db *sql.DB, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, logger: logger}
}

// Record saves a check
func (s *PostgresStore) Record(ctx context.Context, c Check) error {
	payload, err := json.Marshal(c.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	v := c.Result.Verdict
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO eligibility_check (
			check_id, applicant_ref, year_level, is_eligible, grade_count,
			passed_checks, total_checks, recommendation, result, checked_by, checked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, c.ID, c.ApplicantRef, c.YearLevel, v.IsEligible, v.GradeCount,
		v.PassedChecks, v.TotalChecks, v.Recommendation, payload, c.CheckedBy, c.CheckedAt)
	if err != nil {
		return fmt.Errorf("failed to insert check %s: %w", c.ID, err)
	}

	s.logger.InfoContext(ctx, "eligibility check recorded",
		"check_id", c.ID,
		"applicant_ref", c.ApplicantRef,
		"eligible", v.IsEligible,
	)
	return nil
}

const selectCheck = `
	SELECT check_id, applicant_ref, year_level, result, checked_by, checked_at
	FROM eligibility_check`

// Get returns one check or ErrNotFound
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Check, error) {
	row := s.db.QueryRowContext(ctx, selectCheck+` WHERE check_id = $1`, id)
	c, err := scanCheck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Check{}, fmt.Errorf("check %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Check{}, fmt.Errorf("failed to load check %s: %w", id, err)
	}
	return c, nil
}

// ListByApplicant returns the newest checks for an applicant first
func (s *PostgresStore) ListByApplicant(ctx context.Context, applicantRef string, limit int) ([]Check, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		selectCheck+` WHERE applicant_ref = $1 ORDER BY checked_at DESC, id LIMIT $2`, applicantRef, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	checks := []Check{}
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCheck(sc scanner) (Check, error) {
	var (
		c       Check
		payload []byte
	)
	if err := sc.Scan(&c.ID, &c.ApplicantRef, &c.YearLevel, &payload, &c.CheckedBy, &c.CheckedAt); err != nil {
		return Check{}, err
	}
	if err := json.Unmarshal(payload, &c.Result); err != nil {
		return Check{}, fmt.Errorf("decode result: %w", err)
	}
	return c, nil
}
