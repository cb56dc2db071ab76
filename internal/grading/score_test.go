package grading

import "testing"

func TestParseScore(t *testing.T) {
	tests := []struct {
		code    string
		want    Score
		wantErr bool
	}{
		{"0", Score{Kind: ScoreNumeric, Value: 0}, false},
		{"50", Score{Kind: ScoreNumeric, Value: 50}, false},
		{"100", Score{Kind: ScoreNumeric, Value: 100}, false},
		{" 80 ", Score{Kind: ScoreNumeric, Value: 80}, false},
		{"G", Score{Kind: ScoreExemptCounted}, false},
		{"R", Score{Kind: ScoreExemptUncounted}, false},
		{"İ", Score{Kind: ScoreExemptUncounted}, false},
		{"Not Seçin", Score{Kind: ScoreUnselected}, false},
		{"", Score{Kind: ScoreUnselected}, false},
		{"55", Score{}, true},   // not in the closed set
		{"-10", Score{}, true},  // below range
		{"110", Score{}, true},  // above range
		{"A", Score{}, true},    // unknown code
		{"10.5", Score{}, true}, // not an integer code
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseScore(tt.code)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseScore(%q) = %+v, want error", tt.code, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScore(%q) unexpected error: %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("ParseScore(%q) = %+v, want %+v", tt.code, got, tt.want)
			}
		})
	}
}

func TestScoreCode(t *testing.T) {
	if got := (Score{Kind: ScoreNumeric, Value: 70}).Code(); got != "70" {
		t.Errorf("numeric code = %q, want 70", got)
	}
	if got := (Score{Kind: ScoreExemptCounted}).Code(); got != "G" {
		t.Errorf("exempt-counted code = %q, want G", got)
	}
	if !(Score{Kind: ScoreUnselected}).IsUnselected() {
		t.Error("unselected score not reported as unselected")
	}
}
