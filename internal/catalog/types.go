// Package catalog holds the synonym tables the engine scans OCR text with:
// year levels, semesters, grading periods and document-type keyword
// signatures. Tables are compiled once and shared read-only.
package catalog

// YearLevel is the closed set of declared year levels.
type YearLevel int

const (
	YearLevelUnknown YearLevel = iota
	FirstYear
	SecondYear
	ThirdYear
	FourthYear
)

// YearLevels returns the levels in scan order
func YearLevels() []YearLevel {
	return []YearLevel{FirstYear, SecondYear, ThirdYear, FourthYear}
}

func (y YearLevel) String() string {
	switch y {
	case FirstYear:
		return "1st Year"
	case SecondYear:
		return "2nd Year"
	case ThirdYear:
		return "3rd Year"
	case FourthYear:
		return "4th Year"
	}
	return "unknown"
}

// Semester is the closed set of semester labels.
type Semester int

const (
	SemesterUnknown Semester = iota
	FirstSemester
	SecondSemester
	Summer
	ThirdSemester
)

// Semesters returns the semesters in scan order
func Semesters() []Semester {
	return []Semester{FirstSemester, SecondSemester, Summer, ThirdSemester}
}

func (s Semester) String() string {
	switch s {
	case FirstSemester:
		return "1st Semester"
	case SecondSemester:
		return "2nd Semester"
	case Summer:
		return "Summer"
	case ThirdSemester:
		return "3rd Semester"
	}
	return "unknown"
}

// GradingPeriod is a column in prelim/midterm/final style grade sheets.
type GradingPeriod int

const (
	PeriodNone GradingPeriod = iota
	Prelim
	Midterm
	Final
)

// Column returns the zero-based column a period occupies in a
// three-column row, or -1 for PeriodNone.
func (p GradingPeriod) Column() int {
	switch p {
	case Prelim:
		return 0
	case Midterm:
		return 1
	case Final:
		return 2
	}
	return -1
}

func (p GradingPeriod) String() string {
	switch p {
	case Prelim:
		return "prelim"
	case Midterm:
		return "midterm"
	case Final:
		return "final"
	}
	return "none"
}

// DocumentType identifies an uploadable document kind.
type DocumentType string

const (
	DocGrades    DocumentType = "grades"
	DocLetter    DocumentType = "letter_to_mayor"
	DocIndigency DocumentType = "certificate_of_indigency"
)

// DocumentTypes returns the known document types in tie-break order
func DocumentTypes() []DocumentType {
	return []DocumentType{DocGrades, DocLetter, DocIndigency}
}
