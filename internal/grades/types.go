package grades

import (
	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/normalize"
)

// Record is one subject with its grade.
type Record struct {
	Subject string            `json:"subject"`
	Grade   normalize.Decimal `json:"grade"`
}

// Options drive line classification.
type Options struct {
	Bounds   normalize.Bounds
	Semester catalog.Semester
	Period   catalog.GradingPeriod
	// SideBySide is set when both semesters share the rows of the section.
	// Only then does a two-candidate row hold one grade per semester.
	SideBySide bool
	// Markers, when set, keeps year and semester heading lines from being
	// used as subject names.
	Markers *catalog.Catalog
}

// LineClass is the classifier's verdict on one line.
type LineClass struct {
	Skipped    bool
	Reason     string
	Candidates []normalize.NumericToken
	Units      []normalize.NumericToken
	HasGrade   bool
	Grade      normalize.Decimal
	// Subject is the raw text in front of the selected grade, course code
	// removed and residue trimmed. Not yet cleaned.
	Subject   string
	GradeOnly bool
}

// Result is the outcome of pairing subjects with grades.
type Result struct {
	Records []Record
	Failing []Record
}
