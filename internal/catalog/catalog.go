package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Pattern is one compiled synonym.
type Pattern struct {
	Synonym string
	re      *regexp.Regexp
}

// FindFrom returns the byte offsets of the first match at or after from
func (p Pattern) FindFrom(text string, from int) (int, int, bool) {
	if from < 0 {
		from = 0
	}
	if from >= len(text) {
		return 0, 0, false
	}
	loc := p.re.FindStringIndex(text[from:])
	if loc == nil {
		return 0, 0, false
	}
	return from + loc[0], from + loc[1], true
}

// MatchString reports whether the synonym occurs anywhere in text
func (p Pattern) MatchString(text string) bool {
	return p.re.MatchString(text)
}

// Hit is the earliest synonym occurrence found by a scan.
type Hit struct {
	Start   int
	End     int
	Synonym string
}

// Catalog is an immutable set of compiled synonym tables.
type Catalog struct {
	years      map[YearLevel][]Pattern
	semesters  map[Semester][]Pattern
	periods    map[GradingPeriod][]Pattern
	signatures map[DocumentType][]Pattern
	letter     []Pattern
}

var defaultCatalog = mustBuild(yearSynonyms, semesterSynonyms)

// Default returns the built-in catalog
func Default() *Catalog {
	return defaultCatalog
}

func mustBuild(years map[YearLevel][]string, semesters map[Semester][]string) *Catalog {
	c, err := build(years, semesters)
	if err != nil {
		panic(err)
	}
	return c
}

func build(years map[YearLevel][]string, semesters map[Semester][]string) (*Catalog, error) {
	c := &Catalog{
		years:      make(map[YearLevel][]Pattern),
		semesters:  make(map[Semester][]Pattern),
		periods:    make(map[GradingPeriod][]Pattern),
		signatures: make(map[DocumentType][]Pattern),
	}

	var err error
	for _, y := range YearLevels() {
		if c.years[y], err = compileAll(years[y]); err != nil {
			return nil, fmt.Errorf("year level %s: %w", y, err)
		}
	}
	for _, s := range Semesters() {
		if c.semesters[s], err = compileAll(semesters[s]); err != nil {
			return nil, fmt.Errorf("semester %s: %w", s, err)
		}
	}
	for p, words := range periodSynonyms {
		if c.periods[p], err = compileAll(words); err != nil {
			return nil, fmt.Errorf("grading period %s: %w", p, err)
		}
	}
	for d, words := range documentSignatures {
		if c.signatures[d], err = compileAll(words); err != nil {
			return nil, fmt.Errorf("document type %s: %w", d, err)
		}
	}
	if c.letter, err = compileAll(letterPhrases); err != nil {
		return nil, fmt.Errorf("letter phrases: %w", err)
	}
	return c, nil
}

func compileAll(synonyms []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(synonyms))
	seen := make(map[string]bool)
	for _, s := range synonyms {
		key := strings.ToLower(strings.Join(strings.Fields(s), " "))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		re, err := compile(key)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, Pattern{Synonym: key, re: re})
	}
	return patterns, nil
}

// compile builds a case-insensitive, word-bounded pattern whose words may be
// separated by any run of spaces, dashes, dots or underscores.
func compile(synonym string) (*regexp.Regexp, error) {
	words := strings.Fields(synonym)
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	expr := strings.Join(quoted, `[\s\-_.]*`)

	if isWordRune(firstRune(synonym)) {
		expr = `\b` + expr
	}
	if isWordRune(lastRune(synonym)) {
		expr += `\b`
	}
	return regexp.Compile(`(?i)` + expr)
}

// YearPatterns returns the synonyms of one year level
func (c *Catalog) YearPatterns(y YearLevel) []Pattern {
	return c.years[y]
}

// SemesterPatterns returns the synonyms of one semester
func (c *Catalog) SemesterPatterns(s Semester) []Pattern {
	return c.semesters[s]
}

// Signature returns the keyword patterns of a document type
func (c *Catalog) Signature(d DocumentType) []Pattern {
	return c.signatures[d]
}

// LetterPhrases returns the patterns that only letters carry
func (c *Catalog) LetterPhrases() []Pattern {
	return c.letter
}

// ResolveYearLevel maps a declared label ("1st Year", "Freshman", "year ii")
// onto the enum.
func (c *Catalog) ResolveYearLevel(name string) (YearLevel, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return YearLevelUnknown, false
	}
	for _, y := range YearLevels() {
		if strings.EqualFold(name, y.String()) {
			return y, true
		}
	}
	for _, y := range YearLevels() {
		for _, p := range c.years[y] {
			if p.MatchString(name) {
				return y, true
			}
		}
	}
	return YearLevelUnknown, false
}

// ResolveSemester maps an administrator semester label onto the enum
func (c *Catalog) ResolveSemester(name string) (Semester, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SemesterUnknown, false
	}
	for _, s := range Semesters() {
		if strings.EqualFold(name, s.String()) {
			return s, true
		}
	}
	for _, s := range Semesters() {
		for _, p := range c.semesters[s] {
			if p.MatchString(name) {
				return s, true
			}
		}
	}
	return SemesterUnknown, false
}

// ResolvePeriod maps a declared term onto a grading period. Semester labels
// and empty input resolve to PeriodNone.
func (c *Catalog) ResolvePeriod(term string) GradingPeriod {
	if _, ok := c.ResolveSemester(term); ok {
		return PeriodNone
	}
	for _, p := range []GradingPeriod{Prelim, Midterm, Final} {
		for _, pat := range c.periods[p] {
			if pat.MatchString(term) {
				return p
			}
		}
	}
	return PeriodNone
}

// Earliest scans text from offset from and returns the earliest occurrence
// of any pattern. Ties on start offset go to the longer match, then to the
// pattern listed first.
func Earliest(text string, patterns []Pattern, from int) (Hit, bool) {
	best := Hit{Start: -1}
	for _, p := range patterns {
		start, end, ok := p.FindFrom(text, from)
		if !ok {
			continue
		}
		if best.Start < 0 || start < best.Start || (start == best.Start && end > best.End) {
			best = Hit{Start: start, End: end, Synonym: p.Synonym}
		}
	}
	return best, best.Start >= 0
}

// OtherYearPatterns returns every year synonym not belonging to y
func (c *Catalog) OtherYearPatterns(y YearLevel) []Pattern {
	var out []Pattern
	for _, other := range YearLevels() {
		if other != y {
			out = append(out, c.years[other]...)
		}
	}
	return out
}

// OtherSemesterPatterns returns every semester synonym not belonging to s
func (c *Catalog) OtherSemesterPatterns(s Semester) []Pattern {
	var out []Pattern
	for _, other := range Semesters() {
		if other != s {
			out = append(out, c.semesters[other]...)
		}
	}
	return out
}

// IsMarkerLine reports whether a line carries a year-level or semester
// marker. Such lines are headings, never subject names.
func (c *Catalog) IsMarkerLine(line string) bool {
	for _, y := range YearLevels() {
		for _, p := range c.years[y] {
			if p.MatchString(line) {
				return true
			}
		}
	}
	for _, s := range Semesters() {
		for _, p := range c.semesters[s] {
			if p.MatchString(line) {
				return true
			}
		}
	}
	return false
}

// Overrides is the YAML shape accepted by LoadOverrides. Keys are the
// canonical labels ("1st Year", "2nd Semester").
type Overrides struct {
	YearLevels map[string][]string `yaml:"year_levels"`
	Semesters  map[string][]string `yaml:"semesters"`
}

// LoadOverrides reads extra synonyms from a YAML file and returns a new
// catalog with them appended to the built-in tables.
func LoadOverrides(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonym overrides: %w", err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse synonym overrides %s: %w", path, err)
	}
	return WithOverrides(o)
}

// WithOverrides builds a catalog from the built-in tables plus o
func WithOverrides(o Overrides) (*Catalog, error) {
	years := make(map[YearLevel][]string)
	for y, syns := range yearSynonyms {
		years[y] = append([]string(nil), syns...)
	}
	semesters := make(map[Semester][]string)
	for s, syns := range semesterSynonyms {
		semesters[s] = append([]string(nil), syns...)
	}

	for label, extra := range o.YearLevels {
		y, ok := levelByLabel(label)
		if !ok {
			return nil, fmt.Errorf("unknown year level %q in overrides", label)
		}
		years[y] = append(years[y], extra...)
	}
	for label, extra := range o.Semesters {
		s, ok := semesterByLabel(label)
		if !ok {
			return nil, fmt.Errorf("unknown semester %q in overrides", label)
		}
		semesters[s] = append(semesters[s], extra...)
	}
	return build(years, semesters)
}

func levelByLabel(label string) (YearLevel, bool) {
	for _, y := range YearLevels() {
		if strings.EqualFold(strings.TrimSpace(label), y.String()) {
			return y, true
		}
	}
	return YearLevelUnknown, false
}

func semesterByLabel(label string) (Semester, bool) {
	for _, s := range Semesters() {
		if strings.EqualFold(strings.TrimSpace(label), s.String()) {
			return s, true
		}
	}
	return SemesterUnknown, false
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
