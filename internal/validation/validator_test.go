package validation

import (
	"testing"
)

const gradeSlip = `CAVITE STATE UNIVERSITY - Main Campus
Name: DELACRUZ, JUAN P.
Student No: 2021 00123
S.Y. 2023 - 2024  FIRST SEMESTER
MATH 101 College Algebra 1.75 3`

func TestValidateName(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name          string
		text          string
		expected      string
		wantMatched   bool
		wantType      MatchType
		wantAutoPass  bool
		wantConfident bool
	}{
		{"first name exact", gradeSlip, "Juan", true, MatchExact, false, true},
		{"spacing variation", gradeSlip, "Dela Cruz", true, MatchFormatVariation, false, true},
		{"accent folded", "Name: PENA, MARIA", "Peña", true, MatchExact, false, true},
		{"absent", gradeSlip, "Pedro", false, MatchNone, false, false},
		{"empty expectation", gradeSlip, "  ", true, MatchExact, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateName(tt.text, tt.expected, "first name")
			if got.Matched != tt.wantMatched {
				t.Errorf("ValidateName() matched = %v, want %v (%s)", got.Matched, tt.wantMatched, got.Reason)
			}
			if got.MatchType != tt.wantType {
				t.Errorf("ValidateName() type = %v, want %v", got.MatchType, tt.wantType)
			}
			if got.AutoPassed != tt.wantAutoPass {
				t.Errorf("ValidateName() autoPassed = %v, want %v", got.AutoPassed, tt.wantAutoPass)
			}
			if tt.wantConfident && got.Confidence < 95 {
				t.Errorf("ValidateName() confidence = %d, want >= 95", got.Confidence)
			}
			if !tt.wantMatched && got.Confidence != 0 {
				t.Errorf("ValidateName() confidence = %d, want 0", got.Confidence)
			}
		})
	}
}

func TestValidateUniversity(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name        string
		text        string
		expected    string
		wantMatched bool
		wantConf    int
		wantType    MatchType
	}{
		{"full name", gradeSlip, "Cavite State University", true, 100, MatchExact},
		{"three of four words", gradeSlip, "Cavite State University Imus", true, 75, MatchPartialSimilarity},
		{"one of three words", "University of Manila", "Polytechnic University of the Philippines", false, 33, MatchNone},
		{"no significant words", "ABC", "UP", false, 0, MatchNone},
		{"empty expectation", gradeSlip, "", true, 100, MatchExact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateUniversity(tt.text, tt.expected)
			if got.Matched != tt.wantMatched {
				t.Errorf("ValidateUniversity() matched = %v, want %v (%s)", got.Matched, tt.wantMatched, got.Reason)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("ValidateUniversity() confidence = %d, want %d", got.Confidence, tt.wantConf)
			}
			if got.MatchType != tt.wantType {
				t.Errorf("ValidateUniversity() type = %v, want %v", got.MatchType, tt.wantType)
			}
		})
	}
}

func TestValidateStudentID(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name        string
		text        string
		expected    string
		wantMatched bool
		wantType    MatchType
		minConf     int
	}{
		{"split by OCR space", gradeSlip, "2021-00123", true, MatchExact, 100},
		{"punctuation ignored", "ID: 2021-00123", "202100123", true, MatchExact, 100},
		{"embedded as typed", "ID#2021-00123.", "2021-00123", true, MatchExact, 100},
		{"dash variant", "No.2021-00123", "2021 00123", true, MatchFormatVariation, 95},
		{"one misread character", "ID 202I-00123", "2021-00123", true, MatchPartialSimilarity, 80},
		{"different id", "Student No: 1999-55555", "2021-00123", false, MatchNone, 0},
		{"empty expectation", gradeSlip, "", true, MatchExact, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateStudentID(tt.text, tt.expected)
			if got.Matched != tt.wantMatched {
				t.Errorf("ValidateStudentID() matched = %v, want %v (%s)", got.Matched, tt.wantMatched, got.Reason)
			}
			if got.MatchType != tt.wantType {
				t.Errorf("ValidateStudentID() type = %v, want %v", got.MatchType, tt.wantType)
			}
			if got.Confidence < tt.minConf {
				t.Errorf("ValidateStudentID() confidence = %d, want >= %d", got.Confidence, tt.minConf)
			}
			if !tt.wantMatched && got.Confidence >= 70 {
				t.Errorf("ValidateStudentID() confidence = %d for a failed match", got.Confidence)
			}
		})
	}
}

func TestValidateSemester(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name        string
		required    string
		wantMatched bool
		wantConf    int
	}{
		{"literal", "First Semester", true, 100},
		{"synonym", "1st Semester", true, 90},
		{"absent", "2nd Semester", false, 0},
		{"unknown label", "Quarter 3", false, 0},
		{"empty", "", true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateSemester(gradeSlip, tt.required)
			if got.Matched != tt.wantMatched || got.Confidence != tt.wantConf {
				t.Errorf("ValidateSemester(%q) = %v/%d, want %v/%d", tt.required, got.Matched, got.Confidence, tt.wantMatched, tt.wantConf)
			}
		})
	}
}

func TestValidateSchoolYear(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name        string
		text        string
		required    string
		wantMatched bool
		wantFound   string
	}{
		{"spaced dash", gradeSlip, "2023-2024", true, "2023 - 2024"},
		{"short end year", "SY 2023-24", "2023-2024", true, "2023-24"},
		{"slash", "A.Y. 2023/2024", "2023-2024", true, "2023/2024"},
		{"literal", "SY 2023-2024", "2023-2024", true, "2023-2024"},
		{"other year", "SY 2022-2023", "2023-2024", false, ""},
		{"not a range", gradeSlip, "this year", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateSchoolYear(tt.text, tt.required)
			if got.Matched != tt.wantMatched {
				t.Errorf("ValidateSchoolYear() matched = %v, want %v (%s)", got.Matched, tt.wantMatched, got.Reason)
			}
			if tt.wantMatched && got.FoundText != tt.wantFound {
				t.Errorf("ValidateSchoolYear() found = %q, want %q", got.FoundText, tt.wantFound)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	if got := similarTextPercent("HELLO", "HELLO"); got != 100 {
		t.Errorf("similarTextPercent identical = %v, want 100", got)
	}
	if got := similarTextPercent("", ""); got != 0 {
		t.Errorf("similarTextPercent empty = %v, want 0", got)
	}
	if got := similarText("World", "Word"); got != 4 {
		t.Errorf("similarText(World, Word) = %d, want 4", got)
	}
	if got := editSimilarityPercent("202100123", "202I00123"); percent(got) != 89 {
		t.Errorf("editSimilarityPercent = %v, want ~89", got)
	}
}

func TestWithThresholds(t *testing.T) {
	strict := DefaultThresholds()
	strict.UniversityWordRatio = 0.80
	v := NewValidator(nil).WithThresholds(strict)

	if got := v.ValidateUniversity(gradeSlip, "Cavite State University Imus"); got.Matched {
		t.Errorf("75%% should fail an 80%% threshold: %+v", got)
	}
}
