package finding

import "testing"

func TestSeverity_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		want     bool
	}{
		{"critical is valid", SeverityCritical, true},
		{"high is valid", SeverityHigh, true},
		{"medium is valid", SeverityMedium, true},
		{"low is valid", SeverityLow, true},
		{"empty is invalid", Severity(""), false},
		{"info is invalid", Severity("info"), false},
		{"unknown is invalid", Severity("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.severity.IsValid(); got != tt.want {
				t.Errorf("Severity.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverityForScore(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		want    Severity
		wantErr bool
	}{
		{"score 10 is critical", 10, SeverityCritical, false},
		{"score 9 is critical", 9, SeverityCritical, false},
		{"score 8 is critical", 8, SeverityCritical, false},
		{"score 7 is high", 7, SeverityHigh, false},
		{"score 6 is high", 6, SeverityHigh, false},
		{"score 5 is medium", 5, SeverityMedium, false},
		{"score 4 is medium", 4, SeverityMedium, false},
		{"score 3 is low", 3, SeverityLow, false},
		{"score 2 is low", 2, SeverityLow, false},
		{"score 1 is low", 1, SeverityLow, false},
		{"score 0 is out of range", 0, "", true},
		{"score 11 is out of range", 11, "", true},
		{"negative score is out of range", -4, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SeverityForScore(tt.score)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SeverityForScore(%d) error = %v, wantErr %v", tt.score, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SeverityForScore(%d) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestSeverity_Rank(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		want     int
	}{
		{"critical rank", SeverityCritical, 4},
		{"high rank", SeverityHigh, 3},
		{"medium rank", SeverityMedium, 2},
		{"low rank", SeverityLow, 1},
		{"invalid rank", Severity("invalid"), 0},
		{"empty rank", Severity(""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.severity.Rank(); got != tt.want {
				t.Errorf("Severity.Rank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverity_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		want     string
	}{
		{"critical display", SeverityCritical, "Critical"},
		{"high display", SeverityHigh, "High"},
		{"medium display", SeverityMedium, "Medium"},
		{"low display", SeverityLow, "Low"},
		{"unknown falls through", Severity("weird"), "weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.severity.DisplayName(); got != tt.want {
				t.Errorf("Severity.DisplayName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Severity
		wantErr bool
	}{
		{"lowercase critical", "critical", SeverityCritical, false},
		{"uppercase high", "HIGH", SeverityHigh, false},
		{"mixed case medium", "Medium", SeverityMedium, false},
		{"padded low", "  low ", SeverityLow, false},
		{"empty is invalid", "", "", true},
		{"unknown is invalid", "catastrophic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeverity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompareSeverity(t *testing.T) {
	if CompareSeverity(SeverityCritical, SeverityLow) <= 0 {
		t.Error("critical should compare greater than low")
	}
	if CompareSeverity(SeverityMedium, SeverityHigh) >= 0 {
		t.Error("medium should compare less than high")
	}
	if CompareSeverity(SeverityHigh, SeverityHigh) != 0 {
		t.Error("equal bands should compare equal")
	}
}

func TestAllSeverities(t *testing.T) {
	all := AllSeverities()
	if len(all) != 4 {
		t.Fatalf("AllSeverities() returned %d bands, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Rank() <= all[i].Rank() {
			t.Errorf("AllSeverities() not ordered from critical to low at index %d", i)
		}
	}
}
