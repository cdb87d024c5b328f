package debug

import (
	"fmt"
	"log"
)

// Entry is one tagged extraction decision.
type Entry struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Trace collects extraction decisions for a single validation call.
// A nil *Trace discards everything, so callers can pass nil when they
// don't want the trace.
type Trace struct {
	entries []Entry
}

// NewTrace creates an empty trace
func NewTrace() *Trace {
	return &Trace{}
}

// Add records a tagged decision
func (t *Trace) Add(tag, format string, args ...interface{}) {
	if t == nil {
		return
	}
	t.entries = append(t.entries, Entry{Tag: tag, Message: fmt.Sprintf(format, args...)})
}

// Entries returns a copy of the recorded decisions in insertion order
func (t *Trace) Entries() []Entry {
	if t == nil || len(t.entries) == 0 {
		return []Entry{}
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of recorded decisions
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Print writes entries to the standard logger if enabled
func Print(enabled bool, entries []Entry) {
	if !enabled {
		return
	}
	log.Printf("=== DEBUG START ===")
	for _, e := range entries {
		log.Printf("[%s] %s", e.Tag, e.Message)
	}
	log.Printf("=== DEBUG END ===")
}
