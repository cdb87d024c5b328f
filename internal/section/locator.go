package section

import (
	"github.com/iskolar-ocr/internal/catalog"
	"github.com/iskolar-ocr/internal/debug"
)

// LocateYear finds the part of text that belongs to the declared year level.
// The section starts at the earliest synonym of that level and runs up to the
// earliest later synonym of any other level, or the end of the document.
func LocateYear(cat *catalog.Catalog, text, declared string, tr *debug.Trace) Match {
	level, ok := cat.ResolveYearLevel(declared)
	if !ok {
		tr.Add("year", "cannot map declared year level %q", declared)
		return Match{Reason: ReasonUnknownYearLevel}
	}

	hit, ok := catalog.Earliest(text, cat.YearPatterns(level), 0)
	if !ok {
		tr.Add("year", "no %s marker in %d bytes of text", level, len(text))
		return Match{Reason: ReasonYearMarkerNotFound}
	}
	tr.Add("year", "%s starts at %d via %q", level, hit.Start, hit.Synonym)

	end := len(text)
	if next, ok := catalog.Earliest(text, cat.OtherYearPatterns(level), hit.End); ok {
		end = next.Start
		tr.Add("year", "section ends at %d before %q", end, next.Synonym)
	} else {
		tr.Add("year", "section runs to end of document")
	}

	return Match{
		Found:          true,
		Text:           text[hit.Start:end],
		MatchedSynonym: hit.Synonym,
		Confidence:     YearConfidence,
		Start:          hit.Start,
		End:            end,
	}
}
