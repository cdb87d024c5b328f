package eligibility

import (
	"github.com/iskolar-ocr/internal/crossdoc"
	"github.com/iskolar-ocr/internal/debug"
	"github.com/iskolar-ocr/internal/grades"
	"github.com/iskolar-ocr/internal/normalize"
	"github.com/iskolar-ocr/internal/section"
	"github.com/iskolar-ocr/internal/validation"
)

// DeclaredMetadata is what the applicant entered: the expected side of
// every comparison.
type DeclaredMetadata struct {
	FirstName       string `json:"first_name" yaml:"first_name"`
	LastName        string `json:"last_name" yaml:"last_name"`
	UniversityName  string `json:"university_name" yaml:"university_name"`
	YearLevelName   string `json:"year_level" yaml:"year_level"`
	DeclaredTerm    string `json:"declared_term" yaml:"declared_term"`
	SchoolStudentID string `json:"school_student_id" yaml:"school_student_id"`
}

// PolicyConfig is what the administrator configured.
type PolicyConfig struct {
	RequiredSemester     string           `json:"required_semester" yaml:"required_semester"`
	RequiredSchoolYear   string           `json:"required_school_year" yaml:"required_school_year"`
	PassingGradeCeiling  float64          `json:"passing_grade_ceiling" yaml:"passing_grade_ceiling"`
	GradeBounds          normalize.Bounds `json:"grade_bounds" yaml:"grade_bounds"`
	ExpectedDocumentType string           `json:"expected_document_type" yaml:"expected_document_type"`
}

// DefaultCeiling is the passing grade ceiling on a lower-is-better scale.
const DefaultCeiling = 3.00

// DefaultPolicy returns a policy with only the numeric defaults set
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		PassingGradeCeiling: DefaultCeiling,
		GradeBounds:         normalize.DefaultBounds(),
	}
}

// WithDefaults fills unset numeric fields
func (p PolicyConfig) WithDefaults() PolicyConfig {
	if p.PassingGradeCeiling <= 0 {
		p.PassingGradeCeiling = DefaultCeiling
	}
	if !p.GradeBounds.Valid() {
		p.GradeBounds = normalize.DefaultBounds()
	}
	return p
}

// Request is one document to validate.
type Request struct {
	Text     string           `json:"text"`
	Metadata DeclaredMetadata `json:"metadata"`
	Policy   PolicyConfig     `json:"policy"`
}

// Check names used as keys in Verdict.FieldResults and in failure reasons.
const (
	CheckYearSection  = "year_section"
	CheckGrades       = "grades_passing"
	CheckFirstName    = "first_name"
	CheckLastName     = "last_name"
	CheckUniversity   = "university"
	CheckStudentID    = "student_id"
	CheckSemester     = "semester"
	CheckSchoolYear   = "school_year"
	CheckDocumentType = "document_type"
)

// FieldChecks lists the identity/document checks in reporting order
func FieldChecks() []string {
	return []string{
		CheckFirstName, CheckLastName, CheckUniversity, CheckStudentID,
		CheckSemester, CheckSchoolYear, CheckDocumentType,
	}
}

// Verdict is the combined eligibility outcome.
type Verdict struct {
	IsEligible       bool                             `json:"is_eligible"`
	AllGradesPassing bool                             `json:"all_grades_passing"`
	GradeCount       int                              `json:"grade_count"`
	FailingGrades    []grades.Record                  `json:"failing_grades"`
	FieldResults     map[string]validation.FieldMatch `json:"field_results"`
	PassedChecks     int                              `json:"passed_checks"`
	TotalChecks      int                              `json:"total_checks"`
	Recommendation   string                           `json:"recommendation"`
	FailureReasons   []string                         `json:"failure_reasons"`
}

// Result is everything one validation call returns.
type Result struct {
	YearSection     section.Match     `json:"year_section"`
	SemesterSection section.Match     `json:"semester_section"`
	Grades          []grades.Record   `json:"grades"`
	FailingGrades   []grades.Record   `json:"failing_grades"`
	CrossDocument   *crossdoc.Finding `json:"cross_document,omitempty"`
	Verdict         Verdict           `json:"verdict"`
	// Diagnostic is set only when extraction failed; it is meant for
	// operator logs, not end users.
	Diagnostic string        `json:"diagnostic,omitempty"`
	Debug      []debug.Entry `json:"debug"`
}
