// Package eligibility wires the extraction stages into one pure call:
// OCR text, declared metadata and policy in, a scored verdict out.
package eligibility

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/crossdoc"
	"github.com/iskolar-ocr/internal/debug"
	"github.com/iskolar-ocr/internal/grades"
	"github.com/iskolar-ocr/internal/normalize"
	"github.com/iskolar-ocr/internal/section"
	"github.com/iskolar-ocr/internal/validation"
)

// Engine runs validations. It holds only read-only tables, so one Engine
// can serve any number of goroutines.
type Engine struct {
	catalog   *catalog.Catalog
	validator *validation.Validator
}

// NewEngine creates an engine over cat, or the built-in catalog when nil
func NewEngine(cat *catalog.Catalog) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Engine{
		catalog:   cat,
		validator: validation.NewValidator(cat),
	}
}

// WithThresholds returns a copy of e whose matchers use t
func (e *Engine) WithThresholds(t validation.Thresholds) *Engine {
	return &Engine{catalog: e.catalog, validator: e.validator.WithThresholds(t)}
}

// Catalog returns the synonym tables the engine matches against
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Validate extracts grades from the declared year (and required semester)
// and runs every identity and document check. It never fails: problems are
// reported in the verdict and in Diagnostic.
func (e *Engine) Validate(req Request) Result {
	tr := debug.NewTrace()
	policy := req.Policy.WithDefaults()
	md := req.Metadata
	ceiling := normalize.DecimalFromFloat(policy.PassingGradeCeiling)

	res := Result{
		Grades:        []grades.Record{},
		FailingGrades: []grades.Record{},
	}

	res.YearSection = section.LocateYear(e.catalog, req.Text, md.YearLevelName, tr)
	if res.YearSection.Found {
		res.SemesterSection = section.SliceSemester(e.catalog, res.YearSection.Text, policy.RequiredSemester, tr)

		opts := grades.Options{
			Bounds:     policy.GradeBounds,
			Semester:   e.declaredSemester(md.DeclaredTerm, policy.RequiredSemester),
			Period:     e.catalog.ResolvePeriod(md.DeclaredTerm),
			SideBySide: res.SemesterSection.SideBySide,
			Markers:    e.catalog,
		}
		paired := grades.Pair(strings.Split(res.SemesterSection.Text, "\n"), opts, ceiling, tr)
		res.Grades = paired.Records
		res.FailingGrades = paired.Failing
		if len(res.Grades) == 0 {
			res.Diagnostic = "no grade rows recognised in the year section"
		}
	} else {
		res.SemesterSection = section.Match{Reason: "year section not located"}
		res.Diagnostic = "year section: " + res.YearSection.Reason
	}

	fields := e.fieldChecks(req.Text, md, policy)

	expected := policy.ExpectedDocumentType
	if expected == "" {
		expected = string(catalog.DocGrades)
	}
	finding := crossdoc.Detect(e.catalog, req.Text, expected)
	res.CrossDocument = &finding
	if policy.ExpectedDocumentType != "" {
		fields[CheckDocumentType] = documentTypeCheck(finding)
	}
	if finding.WrongDocumentDetected {
		tr.Add("crossdoc", "looks like %s, expected %s (confidence %d)", *finding.DetectedType, expected, finding.Confidence)
	}

	res.Verdict = Aggregate(Inputs{
		YearSection: res.YearSection,
		Grades:      res.Grades,
		Failing:     res.FailingGrades,
		Ceiling:     ceiling,
		Fields:      fields,
	})
	res.Debug = tr.Entries()
	return res
}

// ValidateBatch validates reqs with at most limit running at once (no
// limit when limit <= 0). Results keep the order of reqs. Once ctx is done
// no further documents are started and ctx's error is returned.
func (e *Engine) ValidateBatch(ctx context.Context, reqs []Request, limit int) ([]Result, error) {
	results := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Validate(reqs[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validate batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("validate batch: %w", err)
	}
	return results, nil
}

func (e *Engine) fieldChecks(text string, md DeclaredMetadata, policy PolicyConfig) map[string]validation.FieldMatch {
	v := e.validator
	return map[string]validation.FieldMatch{
		CheckFirstName:  v.ValidateName(text, md.FirstName, CheckFirstName),
		CheckLastName:   v.ValidateName(text, md.LastName, CheckLastName),
		CheckUniversity: v.ValidateUniversity(text, md.UniversityName),
		CheckStudentID:  v.ValidateStudentID(text, md.SchoolStudentID),
		CheckSemester:   v.ValidateSemester(text, policy.RequiredSemester),
		CheckSchoolYear: v.ValidateSchoolYear(text, policy.RequiredSchoolYear),
	}
}

// declaredSemester prefers the applicant's declared term and falls back to
// the policy's required semester.
func (e *Engine) declaredSemester(term, required string) catalog.Semester {
	if s, ok := e.catalog.ResolveSemester(term); ok {
		return s
	}
	if s, ok := e.catalog.ResolveSemester(required); ok {
		return s
	}
	return catalog.SemesterUnknown
}

func documentTypeCheck(f crossdoc.Finding) validation.FieldMatch {
	if !f.WrongDocumentDetected {
		return validation.FieldMatch{
			Matched:    true,
			Confidence: 100,
			FoundText:  f.ExpectedType,
			MatchType:  validation.MatchExact,
			Reason:     fmt.Sprintf("no other document type detected than %s", f.ExpectedType),
		}
	}
	return validation.FieldMatch{
		Matched:    false,
		Confidence: f.Confidence,
		FoundText:  string(*f.DetectedType),
		MatchType:  validation.MatchNone,
		Reason:     fmt.Sprintf("document looks like %s, expected %s", *f.DetectedType, f.ExpectedType),
	}
}
