package grades

import (
	"strings"

	"github.com/iskolar-ocr/internal/debug"
	"github.com/iskolar-ocr/internal/normalize"
)

// Pair runs both pairing stages over the lines of a section. Records from
// the same-line stage come first; a subject seen once is never recorded
// again, so the same-line stage wins over the split-line fallback.
func Pair(lines []string, opts Options, ceiling normalize.Decimal, tr *debug.Trace) Result {
	classes := make([]LineClass, len(lines))
	for i, line := range lines {
		classes[i] = ClassifyLine(line, opts)
	}

	seen := make(map[string]bool)
	records := PairSameLine(lines, classes, seen, tr)
	records = append(records, PairSplitLine(lines, classes, opts, seen, tr)...)

	res := Result{Records: records, Failing: []Record{}}
	for _, r := range records {
		if r.Grade > ceiling {
			res.Failing = append(res.Failing, r)
		}
	}
	return res
}

// PairSameLine pairs each graded row with the subject text printed in front
// of the grade on the same line.
func PairSameLine(lines []string, classes []LineClass, seen map[string]bool, tr *debug.Trace) []Record {
	records := []Record{}
	for i, c := range classes {
		if !c.HasGrade || c.GradeOnly {
			continue
		}
		subject := normalize.CleanSubject(c.Subject)
		if !normalize.HasLetter(subject) {
			tr.Add("pair", "line %d: grade %s without subject text", i+1, c.Grade)
			continue
		}
		if rec, ok := accept(subject, c.Grade, seen); ok {
			records = append(records, rec)
			tr.Add("pair", "line %d: %q = %s", i+1, rec.Subject, rec.Grade)
		} else {
			tr.Add("pair", "line %d: duplicate subject %q dropped", i+1, subject)
		}
	}
	return records
}

// PairSplitLine handles rows OCR broke in two: a grade-only line takes the
// nearest preceding non-empty line as its subject, provided that line is
// neither graded, a heading, nor already captured.
func PairSplitLine(lines []string, classes []LineClass, opts Options, seen map[string]bool, tr *debug.Trace) []Record {
	records := []Record{}
	for i, c := range classes {
		if !c.HasGrade || !c.GradeOnly {
			continue
		}

		j := i - 1
		for j >= 0 && strings.TrimSpace(lines[j]) == "" {
			j--
		}
		if j < 0 {
			continue
		}
		prev := classes[j]
		if prev.Skipped || prev.HasGrade || prev.GradeOnly {
			continue
		}
		if opts.Markers != nil && opts.Markers.IsMarkerLine(lines[j]) {
			continue
		}

		subject := normalize.CleanSubject(normalize.TrimResidue(lines[j]))
		if !normalize.HasLetter(subject) {
			continue
		}
		if rec, ok := accept(subject, c.Grade, seen); ok {
			records = append(records, rec)
			tr.Add("pair", "lines %d-%d: %q = %s (split row)", j+1, i+1, rec.Subject, rec.Grade)
		}
	}
	return records
}

func accept(subject string, grade normalize.Decimal, seen map[string]bool) (Record, bool) {
	key := normalize.SubjectKey(subject)
	if key == "" || seen[key] {
		return Record{}, false
	}
	seen[key] = true
	return Record{Subject: subject, Grade: grade}, true
}
