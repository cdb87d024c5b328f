package section

// Match is the outcome of locating a year section or slicing a semester
// out of one. Start and End are byte offsets into the text the search ran
// over.
type Match struct {
	Found          bool   `json:"found"`
	Text           string `json:"text"`
	MatchedSynonym string `json:"matched_synonym,omitempty"`
	Confidence     int    `json:"confidence"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	SideBySide     bool   `json:"side_by_side,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

const (
	// YearConfidence reflects marker certainty only, not grade extraction.
	YearConfidence = 95
	// SemesterConfidence is reported when a semester marker bounds the slice.
	SemesterConfidence = 90
)

// Reasons reported on Match.Reason.
const (
	ReasonUnknownYearLevel   = "declared year level could not be mapped"
	ReasonYearMarkerNotFound = "year level marker not found"
	ReasonNoSemester         = "no semester required"
	ReasonUnknownSemester    = "required semester could not be mapped; using full year section"
	ReasonSemesterNotFound   = "semester marker not found; using full year section"
)
