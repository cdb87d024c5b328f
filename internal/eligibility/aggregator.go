package eligibility

import (
	"fmt"
	"sort"

	"github.com/iskolar-ocr/internal/grades"
	"github.com/iskolar-ocr/internal/normalize"
	"github.com/iskolar-ocr/internal/section"
	"github.com/iskolar-ocr/internal/validation"
)

// Recommendations shown to the applicant or reviewer.
const (
	RecommendEligible       = "Eligible: all checks passed."
	RecommendResubmit       = "Not eligible: the year level section could not be found. Upload a clearer copy of the grade report."
	RecommendWrongDocument  = "Not eligible: the uploaded file does not look like the requested document."
	RecommendFailingGrades  = "Not eligible: one or more grades exceed the passing ceiling."
	RecommendNoGrades       = "Not eligible: no grades could be read from the year section. Manual review recommended."
	RecommendIdentityReview = "Not eligible: document details do not match the application. Manual review recommended."
)

// Inputs is what the aggregator combines.
type Inputs struct {
	YearSection section.Match
	Grades      []grades.Record
	Failing     []grades.Record
	Ceiling     normalize.Decimal
	// Fields holds every identity/document check keyed by check name.
	Fields map[string]validation.FieldMatch
}

// Aggregate reduces the section, grade and field results to one verdict.
// Eligibility is the AND of: year section found, at least one grade read
// with none above the ceiling, and every field check matched. Auto-passed
// checks count as passed.
func Aggregate(in Inputs) Verdict {
	v := Verdict{
		GradeCount:     len(in.Grades),
		FailingGrades:  nonNilRecords(in.Failing),
		FieldResults:   make(map[string]validation.FieldMatch, len(in.Fields)),
		FailureReasons: []string{},
	}
	v.AllGradesPassing = v.GradeCount > 0 && len(v.FailingGrades) == 0

	v.TotalChecks = 2
	if in.YearSection.Found {
		v.PassedChecks++
	} else {
		reason := in.YearSection.Reason
		if reason == "" {
			reason = section.ReasonYearMarkerNotFound
		}
		v.FailureReasons = append(v.FailureReasons, fmt.Sprintf("%s: %s", CheckYearSection, reason))
	}

	switch {
	case v.AllGradesPassing:
		v.PassedChecks++
	case v.GradeCount == 0:
		if in.YearSection.Found {
			v.FailureReasons = append(v.FailureReasons, fmt.Sprintf("%s: no grades extracted", CheckGrades))
		}
	default:
		for _, r := range v.FailingGrades {
			v.FailureReasons = append(v.FailureReasons,
				fmt.Sprintf("%s: %s has %s, above %s", CheckGrades, r.Subject, r.Grade, in.Ceiling))
		}
	}

	for _, name := range fieldOrder(in.Fields) {
		fm := in.Fields[name]
		v.FieldResults[name] = fm
		v.TotalChecks++
		if fm.Matched {
			v.PassedChecks++
			continue
		}
		reason := fm.Reason
		if reason == "" {
			reason = "not matched"
		}
		v.FailureReasons = append(v.FailureReasons, fmt.Sprintf("%s: %s", name, reason))
	}

	v.IsEligible = v.PassedChecks == v.TotalChecks
	v.Recommendation = recommend(v, in)
	return v
}

func recommend(v Verdict, in Inputs) string {
	switch {
	case v.IsEligible:
		return RecommendEligible
	case !in.YearSection.Found:
		return RecommendResubmit
	case hasField(in.Fields, CheckDocumentType) && !in.Fields[CheckDocumentType].Matched:
		return RecommendWrongDocument
	case len(v.FailingGrades) > 0:
		return RecommendFailingGrades
	case v.GradeCount == 0:
		return RecommendNoGrades
	default:
		return RecommendIdentityReview
	}
}

// fieldOrder lists known checks first in reporting order, then any others
// sorted by name.
func fieldOrder(fields map[string]validation.FieldMatch) []string {
	order := make([]string, 0, len(fields))
	known := make(map[string]bool)
	for _, name := range FieldChecks() {
		known[name] = true
		if hasField(fields, name) {
			order = append(order, name)
		}
	}
	var extra []string
	for name := range fields {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

func hasField(fields map[string]validation.FieldMatch, name string) bool {
	_, ok := fields[name]
	return ok
}

func nonNilRecords(r []grades.Record) []grades.Record {
	if r == nil {
		return []grades.Record{}
	}
	return r
}
