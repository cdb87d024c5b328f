package section

import (
	"strings"

	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/debug"
)

// SliceSemester narrows a year section to the required semester. It fails
// open: when no semester is required, the label is unknown or no marker is
// present, the whole year section is returned with Found=false.
//
// Two different semester markers on one line mean the semesters are printed
// side by side. The slice then starts at the beginning of that line and is
// not cut at the neighbouring marker; the column is picked per row later.
func SliceSemester(cat *catalog.Catalog, year string, required string, tr *debug.Trace) Match {
	whole := Match{Text: year, Start: 0, End: len(year)}

	if strings.TrimSpace(required) == "" {
		whole.Reason = ReasonNoSemester
		return whole
	}

	sem, ok := cat.ResolveSemester(required)
	if !ok {
		tr.Add("semester", "cannot map required semester %q, keeping year section", required)
		whole.Reason = ReasonUnknownSemester
		return whole
	}

	hit, ok := catalog.Earliest(year, cat.SemesterPatterns(sem), 0)
	if !ok {
		tr.Add("semester", "no %s marker, keeping year section", sem)
		whole.Reason = ReasonSemesterNotFound
		return whole
	}

	others := cat.OtherSemesterPatterns(sem)
	lineStart, lineEnd := lineBounds(year, hit.Start)
	sideBySide := false
	if _, ok := catalog.Earliest(year[lineStart:lineEnd], others, 0); ok {
		sideBySide = true
	}

	start, searchFrom := hit.Start, hit.End
	if sideBySide {
		start, searchFrom = lineStart, lineEnd
		tr.Add("semester", "side-by-side semester columns on line at %d", lineStart)
	}

	end := len(year)
	if next, ok := catalog.Earliest(year, others, searchFrom); ok {
		end = next.Start
	}
	tr.Add("semester", "%s slice [%d,%d) via %q", sem, start, end, hit.Synonym)

	return Match{
		Found:          true,
		Text:           year[start:end],
		MatchedSynonym: hit.Synonym,
		Confidence:     SemesterConfidence,
		Start:          start,
		End:            end,
		SideBySide:     sideBySide,
	}
}

func lineBounds(text string, pos int) (int, int) {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := len(text)
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		end = pos + i
	}
	return start, end
}
