package normalize

import "testing"

func TestCleanSubject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"leading course code", "MATH 101 College Algebra", "College Algebra"},
		{"glued course code", "CS101 Intro to Computing", "Intro to Computing"},
		{"trailing code", "Physical Education PE 2", "Physical Education"},
		{"year tag", "Ethics A23-24", "Ethics"},
		{"year range", "Art Appreciation 2023-2024", "Art Appreciation"},
		{"separator run", "Rizal ..... Life and Works", "Rizal Life and Works"},
		{"row number", "3. Understanding the Self", "Understanding the Self"},
		{"stray punctuation", "| Science , Technology |", "Science Technology"},
		{"course number kept", "English 1", "English 1"},
		{"code only keeps original", "NSTP 1", "NSTP 1"},
		{"too short keeps original", "PE 1 ..", "PE 1 .."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSubject(tt.input); got != tt.want {
				t.Errorf("CleanSubject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimResidue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Math 101 .... ", "Math"},
		{"Purposive Communication 1.25", "Purposive Communication"},
		{"English 1", "English 1"},
		{"Intro CS101", "Intro"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TrimResidue(tt.input); got != tt.want {
			t.Errorf("TrimResidue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSubjectKey(t *testing.T) {
	if SubjectKey("College  Algebra") != SubjectKey("college algebra.") {
		t.Error("SubjectKey should ignore case, spacing and punctuation")
	}
	if SubjectKey("Filipino 1") == SubjectKey("Filipino 2") {
		t.Error("SubjectKey should keep course numbers apart")
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"PEÑA  José", "pena jose"},
		{"  Dela Cruz ", "dela cruz"},
		{"ﬁnal", "final"},
	}
	for _, tt := range tests {
		if got := Fold(tt.input); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	words := Words("Cavite State University - Imus")
	if len(words) != 4 || words[3] != "imus" {
		t.Errorf("Words() = %v", words)
	}
}
