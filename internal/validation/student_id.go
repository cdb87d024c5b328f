package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateStudentID tries four strategies in order: alphanumeric-only
// equality, the ID as typed, formatting variants, and finally the best fuzzy
// candidate among alphanumeric tokens of at least four characters.
func (v *Validator) ValidateStudentID(text, expected string) FieldMatch {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return autoPass("student ID")
	}

	want := alnumUpper(expected)
	fields := strings.Fields(text)

	// 1. punctuation-insensitive equality, also across one OCR-inserted space
	if want != "" {
		for i, f := range fields {
			if alnumUpper(f) == want {
				return idMatch(f, 100, MatchExact, "Student ID matched ignoring punctuation")
			}
			if i+1 < len(fields) && alnumUpper(f+fields[i+1]) == want {
				return idMatch(f+" "+fields[i+1], 100, MatchExact, "Student ID matched across a split token")
			}
		}
	}

	// 2. as typed
	if strings.Contains(text, expected) {
		return idMatch(expected, 100, MatchExact, "Student ID matched exactly")
	}

	// 3. formatting variants
	lower := strings.ToLower(text)
	for _, variant := range idVariants(expected) {
		if strings.Contains(lower, strings.ToLower(variant)) {
			return idMatch(variant, v.thresholds.VariationConfidence, MatchFormatVariation,
				fmt.Sprintf("Student ID matched as variant '%s'", variant))
		}
	}

	// 4. fuzzy
	bestScore, bestCandidate := 0.0, ""
	for _, f := range fields {
		candidate := alnumUpper(f)
		if len(candidate) < v.thresholds.MinIDCandidateLen {
			continue
		}
		score := similarTextPercent(want, candidate)
		if edit := editSimilarityPercent(want, candidate); edit > score {
			score = edit
		}
		if score > bestScore {
			bestScore, bestCandidate = score, f
		}
	}

	conf := percent(bestScore)
	if bestCandidate != "" && conf >= v.thresholds.StudentIDSimilarity {
		return idMatch(bestCandidate, conf, MatchPartialSimilarity,
			fmt.Sprintf("Student ID similar to '%s' (%d%%)", bestCandidate, conf))
	}
	return FieldMatch{
		Matched:    false,
		Confidence: conf,
		FoundText:  bestCandidate,
		MatchType:  MatchNone,
		Reason:     fmt.Sprintf("Student ID '%s' not found (best similarity %d%% < %d%%)", expected, conf, v.thresholds.StudentIDSimilarity),
	}
}

func idMatch(found string, confidence int, mt MatchType, reason string) FieldMatch {
	return FieldMatch{
		Matched:    true,
		Confidence: confidence,
		FoundText:  found,
		MatchType:  mt,
		Reason:     reason,
	}
}

// idVariants creates common formatting variations of a student ID
func idVariants(id string) []string {
	variants := []string{
		strings.ReplaceAll(id, "-", " "),
		strings.ReplaceAll(id, " ", "-"),
		strings.ReplaceAll(id, "-", ""),
		strings.ReplaceAll(id, " ", ""),
		strings.ReplaceAll(id, "/", "-"),
		strings.ToUpper(id),
		strings.ToLower(id),
	}

	out := make([]string, 0, len(variants))
	seen := map[string]bool{id: true}
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func alnumUpper(s string) string {
	b := strings.Builder{}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
