package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/normalize"
)

// Validator runs the identity and document checks against OCR text. Every
// method is independent of the others and safe for concurrent use.
type Validator struct {
	catalog    *catalog.Catalog
	thresholds Thresholds
}

// NewValidator creates a validator with the default thresholds
func NewValidator(cat *catalog.Catalog) *Validator {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Validator{
		catalog:    cat,
		thresholds: DefaultThresholds(),
	}
}

// WithThresholds returns a copy of v using t
func (v *Validator) WithThresholds(t Thresholds) *Validator {
	return &Validator{catalog: v.catalog, thresholds: t}
}

// ValidateName checks that one name part occurs in the text. The match is
// binary: containment after folding case, accents and spacing.
func (v *Validator) ValidateName(text, expected, field string) FieldMatch {
	if strings.TrimSpace(expected) == "" {
		return autoPass(field)
	}

	want := normalize.Fold(expected)
	folded := normalize.Fold(text)
	if strings.Contains(folded, want) {
		return FieldMatch{
			Matched:    true,
			Confidence: v.thresholds.NameConfidence,
			FoundText:  findSpan(text, expected),
			MatchType:  MatchExact,
			Reason:     fmt.Sprintf("%s '%s' found", field, expected),
		}
	}

	// "DELACRUZ" for "Dela Cruz"
	if squash(want) != "" && strings.Contains(squash(folded), squash(want)) {
		return FieldMatch{
			Matched:    true,
			Confidence: v.thresholds.NameConfidence,
			FoundText:  expected,
			MatchType:  MatchFormatVariation,
			Reason:     fmt.Sprintf("%s '%s' found with different spacing", field, expected),
		}
	}

	return FieldMatch{
		Matched:   false,
		MatchType: MatchNone,
		Reason:    fmt.Sprintf("%s '%s' not found in document", field, expected),
	}
}

// ValidateUniversity accepts the full name, or failing that at least 70% of
// the significant words (longer than three characters). The word ratio is
// reported as confidence even when the check fails.
func (v *Validator) ValidateUniversity(text, expected string) FieldMatch {
	if strings.TrimSpace(expected) == "" {
		return autoPass("university")
	}

	textWords := normalize.Words(text)
	wantWords := normalize.Words(expected)
	flat := " " + strings.Join(textWords, " ") + " "
	if len(wantWords) > 0 && strings.Contains(flat, " "+strings.Join(wantWords, " ")+" ") {
		return FieldMatch{
			Matched:    true,
			Confidence: 100,
			FoundText:  findSpan(text, expected),
			MatchType:  MatchExact,
			Reason:     fmt.Sprintf("University '%s' found", expected),
		}
	}

	present := make(map[string]bool, len(textWords))
	for _, w := range textWords {
		present[w] = true
	}

	var significant, found []string
	for _, w := range wantWords {
		if len([]rune(w)) > v.thresholds.SignificantWordLen {
			significant = append(significant, w)
			if present[w] {
				found = append(found, w)
			}
		}
	}
	if len(significant) == 0 {
		return FieldMatch{
			Matched:   false,
			MatchType: MatchNone,
			Reason:    fmt.Sprintf("University '%s' not found and has no significant words", expected),
		}
	}

	ratio := float64(len(found)) / float64(len(significant))
	fm := FieldMatch{
		Confidence: percent(ratio * 100),
		FoundText:  strings.Join(found, " "),
		MatchType:  MatchNone,
	}
	if ratio >= v.thresholds.UniversityWordRatio {
		fm.Matched = true
		fm.MatchType = MatchPartialSimilarity
		fm.Reason = fmt.Sprintf("%d of %d university words found", len(found), len(significant))
	} else {
		fm.Reason = fmt.Sprintf("Only %d of %d university words found (%.2f < %.2f)",
			len(found), len(significant), ratio, v.thresholds.UniversityWordRatio)
	}
	return fm
}

// ValidateSemester looks for the required semester anywhere in the document,
// first literally, then through its synonyms.
func (v *Validator) ValidateSemester(text, required string) FieldMatch {
	if strings.TrimSpace(required) == "" {
		return autoPass("semester")
	}

	if normalize.Fold(required) != "" && strings.Contains(normalize.Fold(text), normalize.Fold(required)) {
		return FieldMatch{
			Matched:    true,
			Confidence: 100,
			FoundText:  findSpan(text, required),
			MatchType:  MatchExact,
			Reason:     fmt.Sprintf("Semester '%s' found", required),
		}
	}

	sem, ok := v.catalog.ResolveSemester(required)
	if !ok {
		return FieldMatch{
			MatchType: MatchNone,
			Reason:    fmt.Sprintf("Semester '%s' not found and has no known synonyms", required),
		}
	}
	if hit, ok := catalog.Earliest(text, v.catalog.SemesterPatterns(sem), 0); ok {
		return FieldMatch{
			Matched:    true,
			Confidence: v.thresholds.SynonymConfidence,
			FoundText:  text[hit.Start:hit.End],
			MatchType:  MatchFormatVariation,
			Reason:     fmt.Sprintf("Semester '%s' found as '%s'", required, hit.Synonym),
		}
	}
	return FieldMatch{
		MatchType: MatchNone,
		Reason:    fmt.Sprintf("Semester '%s' not found in document", required),
	}
}

var reYearRange = regexp.MustCompile(`(\d{4})\s*(?:-|–|—|/|to)\s*(\d{2,4})`)

// ValidateSchoolYear looks for a required "2023-2024" style range, accepting
// spacing, dash, slash, "to" and two-digit end-year variants.
func (v *Validator) ValidateSchoolYear(text, required string) FieldMatch {
	required = strings.TrimSpace(required)
	if required == "" {
		return autoPass("school year")
	}

	if strings.Contains(normalize.Fold(text), normalize.Fold(required)) {
		return FieldMatch{
			Matched:    true,
			Confidence: 100,
			FoundText:  findSpan(text, required),
			MatchType:  MatchExact,
			Reason:     fmt.Sprintf("School year '%s' found", required),
		}
	}

	m := reYearRange.FindStringSubmatch(required)
	if m == nil {
		return FieldMatch{
			MatchType: MatchNone,
			Reason:    fmt.Sprintf("School year '%s' not found and is not a year range", required),
		}
	}
	from, to := m[1], m[2]
	if len(to) == 2 {
		to = from[:2] + to
	}
	re := regexp.MustCompile(`(?i)\b` + from + `\s*(?:-|–|—|/|to)\s*(?:` + to + `|` + to[2:] + `)\b`)
	if loc := re.FindStringIndex(text); loc != nil {
		return FieldMatch{
			Matched:    true,
			Confidence: v.thresholds.SynonymConfidence,
			FoundText:  text[loc[0]:loc[1]],
			MatchType:  MatchFormatVariation,
			Reason:     fmt.Sprintf("School year '%s' found as '%s'", required, text[loc[0]:loc[1]]),
		}
	}
	return FieldMatch{
		MatchType: MatchNone,
		Reason:    fmt.Sprintf("School year '%s' not found in document", required),
	}
}

// findSpan returns the text as printed in the document when the expected
// words occur in order, otherwise expected itself.
func findSpan(text, expected string) string {
	words := strings.Fields(expected)
	if len(words) == 0 {
		return expected
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	re, err := regexp.Compile(`(?i)` + strings.Join(quoted, `\s+`))
	if err != nil {
		return expected
	}
	if loc := re.FindStringIndex(text); loc != nil {
		return text[loc[0]:loc[1]]
	}
	return expected
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}
