package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bounds is the plausible grade range. Lower is exclusive, Upper inclusive.
type Bounds struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// DefaultBounds returns (0, 6], wide enough for a 1.00-5.00 scale plus
// the odd 6.00 and narrow enough to reject years and page numbers.
func DefaultBounds() Bounds {
	return Bounds{Lower: 0, Upper: 6}
}

// Contains reports whether v lies inside the bounds
func (b Bounds) Contains(v float64) bool {
	return v > b.Lower && v <= b.Upper
}

// Valid reports whether the bounds describe a non-empty range
func (b Bounds) Valid() bool {
	return b.Upper > b.Lower
}

// Decimal is a non-negative value held in hundredths so grade comparisons
// and formatting are exact.
type Decimal int64

// DecimalFromFloat rounds f to hundredths
func DecimalFromFloat(f float64) Decimal {
	return Decimal(math.Round(f * 100))
}

// ParseDecimal parses "1.75" style text
func ParseDecimal(s string) (Decimal, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("parse decimal %q: negative value", s)
	}
	return DecimalFromFloat(f), nil
}

// Float returns the value as float64
func (d Decimal) Float() float64 {
	return float64(d) / 100
}

// String formats with exactly two decimal places
func (d Decimal) String() string {
	return fmt.Sprintf("%d.%02d", d/100, d%100)
}

// MarshalJSON renders the decimal as a quoted two-place string
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts both "1.75" and 1.75
func (d *Decimal) UnmarshalJSON(data []byte) error {
	v, err := ParseDecimal(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// NumericToken is an integer or decimal substring found in a line.
type NumericToken struct {
	Text  string
	Value float64
	Start int
	End   int
}

// IsWhole reports whether the token was printed without a decimal point
func (t NumericToken) IsWhole() bool {
	return !strings.Contains(t.Text, ".")
}

var (
	reDecimalComma = regexp.MustCompile(`(\d),(\d)`)
	reNumber       = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// RepairOCR turns comma decimal separators into periods, an O that sits
// against a digit or a decimal point into 0, and a lone l or I inside a
// number ("l.75", "2.I5") into 1.
func RepairOCR(line string) string {
	s := reDecimalComma.ReplaceAllString(line, "$1.$2")
	if !strings.ContainsAny(s, "OlI") {
		return s
	}

	r := []rune(s)
	at := func(i int) rune {
		if i < 0 || i >= len(r) {
			return 0
		}
		return r[i]
	}
	for i := range r {
		prev, next := at(i-1), at(i+1)
		numeric := isDigit(prev) || isDigit(next) ||
			(next == '.' && isDigit(at(i+2))) ||
			(prev == '.' && isDigit(at(i-2)))
		if !numeric {
			continue
		}
		switch r[i] {
		case 'O':
			r[i] = '0'
		case 'l', 'I':
			// "Il", "Algebra lI" and similar letter runs stay words
			if !unicode.IsLetter(prev) && !unicode.IsLetter(next) {
				r[i] = '1'
			}
		}
	}
	return string(r)
}

// NumericTokens extracts numbers from an already repaired line. Digits glued
// to letters ("1st", "CS101") are course codes or ordinals, not values.
func NumericTokens(line string) []NumericToken {
	var tokens []NumericToken
	for _, loc := range reNumber.FindAllStringIndex(line, -1) {
		if gluedToLetter(line, loc[0], loc[1]) {
			continue
		}
		text := line[loc[0]:loc[1]]
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			continue
		}
		tokens = append(tokens, NumericToken{Text: text, Value: v, Start: loc[0], End: loc[1]})
	}
	return tokens
}

// Token reduces one line to a grade. When several numbers are present the
// last one carrying a decimal point wins, otherwise the last number.
func Token(line string, b Bounds) (Decimal, bool) {
	pick, ok := SelectToken(NumericTokens(RepairOCR(line)), b)
	if !ok {
		return 0, false
	}
	return DecimalFromFloat(pick.Value), true
}

// SelectToken applies the grade rule of Token to already extracted tokens:
// last decimal, else last token, rejected when outside the bounds.
func SelectToken(tokens []NumericToken, b Bounds) (NumericToken, bool) {
	if len(tokens) == 0 {
		return NumericToken{}, false
	}

	pick := tokens[len(tokens)-1]
	for i := len(tokens) - 1; i >= 0; i-- {
		if !tokens[i].IsWhole() {
			pick = tokens[i]
			break
		}
	}

	if !b.Contains(pick.Value) {
		return NumericToken{}, false
	}
	return pick, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func gluedToLetter(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); unicode.IsLetter(r) {
			return true
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
