package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynonymCoverage(t *testing.T) {
	for _, y := range YearLevels() {
		assert.GreaterOrEqual(t, len(Default().YearPatterns(y)), 10, y.String())
	}
	for _, s := range Semesters() {
		assert.NotEmpty(t, Default().SemesterPatterns(s), s.String())
	}
}

func TestResolveYearLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   YearLevel
		wantOK bool
	}{
		{"1st Year", FirstYear, true},
		{"  2nd year ", SecondYear, true},
		{"Year II", SecondYear, true},
		{"Year I", FirstYear, true},
		{"third-year", ThirdYear, true},
		{"Freshman", FirstYear, true},
		{"4th Yr", FourthYear, true},
		{"Grade 12", YearLevelUnknown, false},
		{"", YearLevelUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Default().ResolveYearLevel(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSemesterAndPeriod(t *testing.T) {
	c := Default()

	s, ok := c.ResolveSemester("Second Sem")
	assert.True(t, ok)
	assert.Equal(t, SecondSemester, s)

	s, ok = c.ResolveSemester("summer")
	assert.True(t, ok)
	assert.Equal(t, Summer, s)

	_, ok = c.ResolveSemester("quarter 4")
	assert.False(t, ok)

	assert.Equal(t, Prelim, c.ResolvePeriod("Prelims"))
	assert.Equal(t, Midterm, c.ResolvePeriod("mid term"))
	assert.Equal(t, Final, c.ResolvePeriod("Final"))
	assert.Equal(t, PeriodNone, c.ResolvePeriod("1st Semester"))
	assert.Equal(t, PeriodNone, c.ResolvePeriod(""))
}

func TestPatternsAreWordBounded(t *testing.T) {
	c := Default()

	_, ok := Earliest("School Year 2023-2024", c.YearPatterns(SecondYear), 0)
	assert.False(t, ok, "year 2 must not match inside 2023")

	hit, ok := Earliest("YEAR II - 2nd Semester", c.YearPatterns(FirstYear), 0)
	assert.False(t, ok, "year i must not match inside year ii: %+v", hit)

	hit, ok = Earliest("GRADE REPORT\n1st-Year", c.YearPatterns(FirstYear), 0)
	require.True(t, ok)
	assert.Equal(t, 13, hit.Start)
	assert.Equal(t, "1st year", hit.Synonym)
}

func TestEarliestPrefersLongerMatchOnTie(t *testing.T) {
	patterns, err := compileAll([]string{"summer", "summer term"})
	require.NoError(t, err)

	hit, ok := Earliest("x Summer Term grades", patterns, 0)
	require.True(t, ok)
	assert.Equal(t, "summer term", hit.Synonym)
	assert.Equal(t, 2, hit.Start)

	_, ok = Earliest("x Summer Term", patterns, 20)
	assert.False(t, ok)
}

func TestIsMarkerLine(t *testing.T) {
	c := Default()
	assert.True(t, c.IsMarkerLine("FIRST YEAR - FIRST SEMESTER"))
	assert.True(t, c.IsMarkerLine("Summer"))
	assert.False(t, c.IsMarkerLine("College Algebra"))
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	data := []byte("year_levels:\n  1st Year:\n    - \"plebe\"\nsemesters:\n  2nd Semester:\n    - \"spring term\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := LoadOverrides(path)
	require.NoError(t, err)

	y, ok := c.ResolveYearLevel("Plebe")
	assert.True(t, ok)
	assert.Equal(t, FirstYear, y)

	_, ok = c.ResolveSemester("Spring Term")
	assert.True(t, ok)

	// the built-in catalog is untouched
	_, ok = Default().ResolveYearLevel("plebe")
	assert.False(t, ok)
}

func TestWithOverridesRejectsUnknownLabel(t *testing.T) {
	_, err := WithOverrides(Overrides{YearLevels: map[string][]string{"5th Year": {"super senior"}}})
	assert.Error(t, err)

	_, err = LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
