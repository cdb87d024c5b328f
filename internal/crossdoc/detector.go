// Package crossdoc flags uploads that look like a different document type
// than the one the slot expects, using fixed keyword signatures.
package crossdoc

import (
	"strings"

	"github.com/iskolar-ocr/internal/catalog"
)

const (
	// StrongMatchHits is how many signature keywords make a strong match.
	StrongMatchHits = 3
	// GradesInLetterHits is the stricter bar for calling a letter a grades
	// report: letters discuss grades and GPA in prose.
	GradesInLetterHits = 6
)

// Finding is the detector's result.
type Finding struct {
	WrongDocumentDetected bool                  `json:"wrong_document_detected"`
	DetectedType          *catalog.DocumentType `json:"detected_type"`
	ExpectedType          string                `json:"expected_type"`
	Confidence            int                   `json:"confidence"`
	Hits                  map[string]int        `json:"hits"`
}

// Detect scores text against every document type other than expected and
// reports the one with the most keyword hits among those past their
// threshold. Ties go to the type listed first in catalog.DocumentTypes.
func Detect(cat *catalog.Catalog, text, expected string) Finding {
	f := Finding{
		ExpectedType: expected,
		Hits:         make(map[string]int),
	}
	expectedType := catalog.DocumentType(strings.TrimSpace(expected))

	bestHits := 0
	for _, doc := range catalog.DocumentTypes() {
		if doc == expectedType {
			continue
		}
		hits := countHits(text, cat.Signature(doc))
		f.Hits[string(doc)] = hits

		if !isStrong(cat, text, doc, expectedType, hits) {
			continue
		}
		if hits > bestHits {
			bestHits = hits
			detected := doc
			f.DetectedType = &detected
		}
	}

	if f.DetectedType != nil {
		f.WrongDocumentDetected = true
		f.Confidence = confidence(bestHits)
	}
	return f
}

func isStrong(cat *catalog.Catalog, text string, doc, expected catalog.DocumentType, hits int) bool {
	if doc == catalog.DocGrades && expected == catalog.DocLetter {
		return hits >= GradesInLetterHits && countHits(text, cat.LetterPhrases()) == 0
	}
	return hits >= StrongMatchHits
}

// countHits counts distinct keywords present in text
func countHits(text string, patterns []catalog.Pattern) int {
	hits := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			hits++
		}
	}
	return hits
}

func confidence(hits int) int {
	c := hits * 15
	if c > 100 {
		return 100
	}
	return c
}
