package normalize

import (
	"encoding/json"
	"testing"
)

func TestRepairOCR(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"comma decimal", "Math 1,75 3", "Math 1.75 3"},
		{"O before point", "Science O.00 3", "Science 0.00 3"},
		{"O after point", "PE 1.O0", "PE 1.00"},
		{"O next to digit", "Filipino 2O 3", "Filipino 20 3"},
		{"word O untouched", "ORAL COMMUNICATION 1.50", "ORAL COMMUNICATION 1.50"},
		{"list commas untouched", "units: 3, 2", "units: 3, 2"},
		{"l before point", "Ethics l.75 3", "Ethics 1.75 3"},
		{"I inside decimal", "Rizal 2.I5", "Rizal 2.15"},
		{"roman numeral untouched", "Physics II 1.50", "Physics II 1.50"},
		{"lone l before digit", "Calculus l2", "Calculus 12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairOCR(tt.input); got != tt.want {
				t.Errorf("RepairOCR() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumericTokensSkipsGluedDigits(t *testing.T) {
	tokens := NumericTokens("1st Year CS101 Intro 2.25 3")
	if len(tokens) != 2 {
		t.Fatalf("NumericTokens() returned %d tokens, want 2: %+v", len(tokens), tokens)
	}
	if tokens[0].Text != "2.25" || tokens[1].Text != "3" {
		t.Errorf("NumericTokens() = %+v, want 2.25 and 3", tokens)
	}
	if tokens[0].IsWhole() || !tokens[1].IsWhole() {
		t.Errorf("IsWhole() wrong for %+v", tokens)
	}
}

func TestToken(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"last decimal wins over units", "Math 101 1.75 3", "1.75", true},
		{"whole number only", "Ethics 2", "2.00", true},
		{"comma separator", "Rizal 2,25", "2.25", true},
		{"zero rejected", "Science O.00 3", "", false},
		{"above upper bound", "Algebra 7.50", "", false},
		{"upper bound inclusive", "Physics 6.00", "6.00", true},
		{"no numbers", "College Algebra", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Token(tt.line, DefaultBounds())
			if ok != tt.wantOK {
				t.Fatalf("Token(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Token(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSelectToken(t *testing.T) {
	tokens := NumericTokens("Algebra 1.50 2.00 3")
	got, ok := SelectToken(tokens, DefaultBounds())
	if !ok || got.Text != "2.00" {
		t.Errorf("SelectToken() = %v, %v, want 2.00, true", got.Text, ok)
	}

	if _, ok := SelectToken(NumericTokens("Science 0.00"), DefaultBounds()); ok {
		t.Error("SelectToken() accepted 0.00")
	}
	if _, ok := SelectToken(nil, DefaultBounds()); ok {
		t.Error("SelectToken(nil) ok = true, want false")
	}
}

func TestBoundsContains(t *testing.T) {
	b := DefaultBounds()
	cases := map[float64]bool{0: false, 0.01: true, 3: true, 6: true, 6.01: false, -1: false}
	for v, want := range cases {
		if got := b.Contains(v); got != want {
			t.Errorf("Contains(%v) = %v, want %v", v, got, want)
		}
	}
	if (Bounds{Lower: 5, Upper: 1}).Valid() {
		t.Error("inverted bounds reported valid")
	}
}

func TestDecimal(t *testing.T) {
	d, err := ParseDecimal("1.5")
	if err != nil {
		t.Fatalf("ParseDecimal() error = %v", err)
	}
	if d.String() != "1.50" {
		t.Errorf("String() = %v, want 1.50", d)
	}
	if DecimalFromFloat(2.5).String() != "2.50" {
		t.Errorf("DecimalFromFloat(2.5) = %v, want 2.50", DecimalFromFloat(2.5))
	}

	b, err := json.Marshal(struct {
		Grade Decimal `json:"grade"`
	}{d})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"grade":"1.50"}` {
		t.Errorf("Marshal() = %s", b)
	}

	var back Decimal
	if err := json.Unmarshal([]byte(`"3.00"`), &back); err != nil || back.String() != "3.00" {
		t.Errorf("Unmarshal() = %v, %v", back, err)
	}
	if _, err := ParseDecimal("abc"); err == nil {
		t.Error("ParseDecimal(abc) expected error")
	}
}
