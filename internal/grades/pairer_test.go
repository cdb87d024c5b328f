package grades

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/debug"
	"github.com/iskolar-ocr/internal/normalize"
)

func defaultOptions() Options {
	return Options{Bounds: normalize.DefaultBounds(), Markers: catalog.Default()}
}

func subjects(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Subject
	}
	return out
}

func TestPairSameLineBeforeSplitLine(t *testing.T) {
	lines := []string{
		"College Algebra",
		"1.75 3",
		"Purposive Communication 2.00 3",
		"purposive communication 2.50 3",
	}
	res := Pair(lines, defaultOptions(), normalize.DecimalFromFloat(3), debug.NewTrace())

	assert.Equal(t, []string{"Purposive Communication", "College Algebra"}, subjects(res.Records))
	assert.Equal(t, "2.00", res.Records[0].Grade.String())
	assert.Equal(t, "1.75", res.Records[1].Grade.String())
	assert.Empty(t, res.Failing)
	assert.NotNil(t, res.Failing)
}

func TestPairSplitLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{"blank lines skipped", []string{"History", "", "1.25 3"}, []string{"History"}},
		{"previous line graded", []string{"Algebra 1.50 3", "2.00 3"}, []string{"Algebra"}},
		{"previous line is a marker", []string{"1st Semester", "1.75 3"}, []string{}},
		{"previous line is a header", []string{"Subject Units Grade", "1.75 3"}, []string{}},
		{"grade on first line", []string{"1.75 3"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Pair(tt.lines, defaultOptions(), normalize.DecimalFromFloat(3), nil)
			assert.Equal(t, tt.want, subjects(res.Records))
		})
	}
}

func TestPairCollectsFailing(t *testing.T) {
	lines := []string{"Physics 3.50 4", "Chemistry 3.00 4", "Biology 5.00 3"}
	res := Pair(lines, defaultOptions(), normalize.DecimalFromFloat(3), nil)

	require.Len(t, res.Records, 3)
	assert.Equal(t, []string{"Physics", "Biology"}, subjects(res.Failing))
}

func TestPairDedupInvariant(t *testing.T) {
	lines := []string{"Ethics 1.00", "ETHICS 2.00", "Ethics.", "3.00", "Art 1.25"}
	res := Pair(lines, defaultOptions(), normalize.DecimalFromFloat(3), nil)

	seen := map[string]bool{}
	for _, r := range res.Records {
		key := normalize.SubjectKey(r.Subject)
		assert.False(t, seen[key], "duplicate %s", r.Subject)
		seen[key] = true
	}
	assert.Equal(t, "1.00", res.Records[0].Grade.String())
}
