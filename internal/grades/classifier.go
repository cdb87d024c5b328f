package grades

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/normalize"
)

var reSummaryRow = regexp.MustCompile(`(?i)\b(?:total\s+units?|total\s+credits?|no\.?\s+of\s+units|g\.?\s?w\.?\s?a|gpa|general\s+(?:weighted\s+)?average|weighted\s+average|passing\s+percentage)\b`)

var headerWords = map[string]bool{
	"subject": true, "subjects": true, "course": true, "courses": true, "code": true,
	"description": true, "descriptive": true, "title": true, "unit": true, "units": true,
	"credit": true, "credits": true, "grade": true, "grades": true, "final": true,
	"remarks": true, "rating": true, "section": true, "no": true, "sem": true,
	"term": true, "instructor": true, "prelim": true, "midterm": true, "finals": true,
	"re": true, "exam": true, "completion": true, "cr": true, "of": true,
}

const (
	minUnit = 1
	maxUnit = 6
)

// ClassifyLine extracts the grade of one transcript row. Numbers outside the
// bounds are discarded, a trailing run of whole numbers in [1,6] is treated
// as unit/credit columns, and the rest are grade candidates.
func ClassifyLine(line string, opts Options) LineClass {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LineClass{Skipped: true, Reason: "empty"}
	}
	if reSummaryRow.MatchString(trimmed) {
		return LineClass{Skipped: true, Reason: "summary row"}
	}

	repaired := normalize.RepairOCR(trimmed)
	tokens := normalize.NumericTokens(repaired)
	if len(tokens) == 0 && isHeaderRow(trimmed) {
		return LineClass{Skipped: true, Reason: "column header"}
	}

	bounds := opts.Bounds
	if !bounds.Valid() {
		bounds = normalize.DefaultBounds()
	}

	// numbers inside a leading course code ("MATH 1") are not values
	codeEnd := len(trimmed) - len(normalize.StripCourseCode(trimmed))
	var kept []normalize.NumericToken
	for _, t := range tokens {
		if t.Start >= codeEnd && bounds.Contains(t.Value) {
			kept = append(kept, t)
		}
	}

	units := 0
	for i := len(kept) - 1; i >= 0; i-- {
		t := kept[i]
		if !t.IsWhole() || t.Value < minUnit || t.Value > maxUnit {
			break
		}
		units++
	}
	candidates := leadingSubjectNumbers(kept[:len(kept)-units])
	lc := LineClass{
		Candidates: candidates,
		Units:      kept[len(kept)-units:],
		GradeOnly:  isGradeOnly(repaired, tokens),
	}
	if len(lc.Candidates) == 0 {
		lc.Reason = "no grade candidate"
		return lc
	}

	pick, ok := selectCandidate(lc.Candidates, opts, bounds)
	if !ok {
		lc.Reason = "no grade candidate"
		return lc
	}
	lc.HasGrade = true
	lc.Grade = normalize.DecimalFromFloat(pick.Value)
	lc.Subject = normalize.TrimResidue(repaired[:pick.Start])
	return lc
}

// leadingSubjectNumbers drops whole numbers printed in front of the first
// decimal ("Mathematics 4 1.50"); they belong to the subject name.
func leadingSubjectNumbers(c []normalize.NumericToken) []normalize.NumericToken {
	for i, t := range c {
		if !t.IsWhole() {
			return c[i:]
		}
	}
	return c
}

// selectCandidate picks the grade column. Two candidates in a side-by-side
// semester layout hold one grade per semester; three with a declared grading
// period are prelim/midterm/final columns. Otherwise the token rule applies:
// last decimal, else last number. Neither column rule holds for reversed or
// wider layouts.
func selectCandidate(c []normalize.NumericToken, opts Options, b normalize.Bounds) (normalize.NumericToken, bool) {
	switch {
	case len(c) == 2 && opts.SideBySide && opts.Semester == catalog.FirstSemester:
		return c[0], true
	case len(c) == 2 && opts.SideBySide && opts.Semester == catalog.SecondSemester:
		return c[1], true
	case len(c) == 3 && opts.Period != catalog.PeriodNone:
		return c[opts.Period.Column()], true
	}
	return normalize.SelectToken(c, b)
}

func isHeaderRow(line string) bool {
	words := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !headerWords[w] {
			return false
		}
	}
	return true
}

// isGradeOnly reports whether nothing but numbers and separators is left
func isGradeOnly(line string, tokens []normalize.NumericToken) bool {
	if len(tokens) == 0 {
		return false
	}
	b := []byte(line)
	for _, t := range tokens {
		for i := t.Start; i < t.End; i++ {
			b[i] = ' '
		}
	}
	return strings.Trim(string(b), " \t\r.,|:;-_/") == ""
}
