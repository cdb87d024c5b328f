package validation

import (
	"fmt"
)

// MatchType says how a field was found.
type MatchType string

const (
	MatchExact             MatchType = "exact"
	MatchFormatVariation   MatchType = "format_variation"
	MatchPartialSimilarity MatchType = "partial_similarity"
	MatchNone              MatchType = "none"
)

// FieldMatch is the uniform result of every identity/document matcher
type FieldMatch struct {
	Matched    bool      `json:"matched"`
	Confidence int       `json:"confidence"` // 0-100
	FoundText  string    `json:"found_text"`
	MatchType  MatchType `json:"match_type"`
	AutoPassed bool      `json:"auto_passed"`
	Reason     string    `json:"reason"`
}

// Thresholds holds matcher constants
type Thresholds struct {
	NameConfidence      int     `json:"name_confidence"`       // binary name match score
	UniversityWordRatio float64 `json:"university_word_ratio"` // ≥0.70 of significant words
	SignificantWordLen  int     `json:"significant_word_len"`  // words longer than this count
	StudentIDSimilarity int     `json:"student_id_similarity"` // ≥70
	VariationConfidence int     `json:"variation_confidence"`  // format variants
	SynonymConfidence   int     `json:"synonym_confidence"`    // semester/school-year synonyms
	MinIDCandidateLen   int     `json:"min_id_candidate_len"`  // fuzzy ID candidates
}

// DefaultThresholds returns the production matcher constants
func DefaultThresholds() Thresholds {
	return Thresholds{
		NameConfidence:      95,
		UniversityWordRatio: 0.70,
		SignificantWordLen:  3,
		StudentIDSimilarity: 70,
		VariationConfidence: 95,
		SynonymConfidence:   90,
		MinIDCandidateLen:   4,
	}
}

// autoPass is returned for checks with no configured expectation
func autoPass(field string) FieldMatch {
	return FieldMatch{
		Matched:    true,
		Confidence: 100,
		MatchType:  MatchExact,
		AutoPassed: true,
		Reason:     fmt.Sprintf("No %s configured - auto-passed", field),
	}
}

func (fm FieldMatch) String() string {
	switch {
	case fm.AutoPassed:
		return "AUTO-PASS"
	case fm.Matched:
		return fmt.Sprintf("MATCH %s (%d): %s", fm.MatchType, fm.Confidence, fm.FoundText)
	}
	return fmt.Sprintf("NO MATCH (%d): %s", fm.Confidence, fm.Reason)
}
