package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Course codes are upper-case letter classes optionally followed by a
	// number: "MATH 101", "CS101", "GE-3", "NSTP".
	reLeadingCode  = regexp.MustCompile(`^[A-Z]{2,6}\s?-?\d{1,4}[A-Z]?(?:\s+|$)`)
	reTrailingCode = regexp.MustCompile(`\s+[A-Z]{2,6}\s?-?\d{1,4}[A-Z]?$`)
	reRowNumber    = regexp.MustCompile(`^\d{1,3}[.)]\s+`)
	reYearTag      = regexp.MustCompile(`\b[A-Za-z]\d{2}\s?-\s?\d{2}\b`)
	reYearRange    = regexp.MustCompile(`\b(?:19|20)\d{2}\s*-\s*(?:19|20)?\d{2}\b`)
	reSeparatorRun = regexp.MustCompile(`[._|:;=~*#/\\\-–—]{2,}`)
)

const edgePunct = " \t.,;:|-_*#=~/\\'\"`()[]{}"

// StripCourseCode removes a single leading upper-case course code
func StripCourseCode(s string) string {
	trimmed := strings.TrimSpace(s)
	if loc := reLeadingCode.FindStringIndex(trimmed); loc != nil {
		return strings.TrimSpace(trimmed[loc[1]:])
	}
	return trimmed
}

// CleanSubject strips course codes, year-range tags, separator runs and
// stray punctuation tokens from a candidate subject. If less than three
// characters survive, the whitespace-collapsed original is returned.
func CleanSubject(raw string) string {
	original := CollapseSpace(raw)
	s := original

	s = reRowNumber.ReplaceAllString(s, "")
	for i := 0; i < 2; i++ {
		if loc := reLeadingCode.FindStringIndex(s); loc != nil && loc[1] < len(s) {
			s = s[loc[1]:]
		}
	}
	s = reTrailingCode.ReplaceAllString(s, "")
	s = reYearTag.ReplaceAllString(s, " ")
	s = reYearRange.ReplaceAllString(s, " ")
	s = reSeparatorRun.ReplaceAllString(s, " ")

	var kept []string
	for _, tok := range strings.Fields(s) {
		if isStrayToken(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	s = strings.Trim(strings.Join(kept, " "), edgePunct)
	s = CollapseSpace(s)

	if len([]rune(s)) < 3 {
		return original
	}
	return s
}

// TrimResidue drops trailing tokens that are decimals, glued codes, long
// integers or separators. Short integers stay because they are usually part
// of the subject name ("English 1").
func TrimResidue(s string) string {
	fields := strings.Fields(s)
	for len(fields) > 0 {
		last := fields[len(fields)-1]
		if !isResidue(last) {
			break
		}
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// SubjectKey is the dedup key for subject names: folded, alphanumeric only.
func SubjectKey(s string) string {
	folded := Fold(s)
	b := strings.Builder{}
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return CollapseSpace(b.String())
}

// HasLetter reports whether s contains at least one letter
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isStrayToken(tok string) bool {
	r := []rune(tok)
	if len(r) != 1 {
		return false
	}
	return !unicode.IsLetter(r[0]) && !unicode.IsDigit(r[0])
}

func isResidue(tok string) bool {
	t := strings.Trim(tok, edgePunct)
	if t == "" {
		return true
	}

	digits, letters, dots := 0, 0, 0
	for _, r := range t {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		case r == '.' || r == ',':
			dots++
		}
	}
	switch {
	case digits == 0:
		return false
	case letters == 0 && dots > 0:
		return true
	case letters == 0:
		return digits >= 3
	default:
		// CS101, 3A, 2nd: glued code or ordinal
		return digits >= 2 || letters <= 2
	}
}
