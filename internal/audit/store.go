// Package audit keeps a history of eligibility checks so a reviewer can
// look up what the engine decided and re-run it later.
package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iskolar-ocr/internal/eligibility"
)

// ErrNotFound is returned when no check has the requested ID.
var ErrNotFound = errors.New("check not found")

// Check is one recorded validation.
type Check struct {
	ID           uuid.UUID          `json:"id"`
	ApplicantRef string             `json:"applicant_ref"`
	YearLevel    string             `json:"year_level"`
	Result       eligibility.Result `json:"result"`
	CheckedBy    string             `json:"checked_by"`
	CheckedAt    time.Time          `json:"checked_at"`
}

// NewCheck wraps a result with a fresh ID and timestamp
func NewCheck(applicantRef, checkedBy string, md eligibility.DeclaredMetadata, res eligibility.Result) Check {
	return Check{
		ID:           uuid.New(),
		ApplicantRef: applicantRef,
		YearLevel:    md.YearLevelName,
		Result:       res,
		CheckedBy:    checkedBy,
		CheckedAt:    time.Now().UTC(),
	}
}

// Store persists checks.
type Store interface {
	Record(ctx context.Context, c Check) error
	Get(ctx context.Context, id uuid.UUID) (Check, error)
	ListByApplicant(ctx context.Context, applicantRef string, limit int) ([]Check, error)
}
