package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceRecordsInOrder(t *testing.T) {
	tr := NewTrace()
	tr.Add("year", "marker %q at %d", "1st year", 0)
	tr.Add("semester", "fail-open")

	entries := tr.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, Entry{Tag: "year", Message: `marker "1st year" at 0`}, entries[0])
	assert.Equal(t, "semester", entries[1].Tag)
}

func TestNilTraceIsSafe(t *testing.T) {
	var tr *Trace
	tr.Add("year", "ignored")

	assert.Equal(t, 0, tr.Len())
	assert.NotNil(t, tr.Entries())
	assert.Empty(t, tr.Entries())
}

func TestEntriesReturnsCopy(t *testing.T) {
	tr := NewTrace()
	tr.Add("a", "one")

	entries := tr.Entries()
	entries[0].Message = "changed"

	assert.Equal(t, "one", tr.Entries()[0].Message)
}
