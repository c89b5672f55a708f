package triage

import "testing"

func TestDocumentStatusIsValid(t *testing.T) {
	tests := []struct {
		status DocumentStatus
		valid  bool
	}{
		{StatusAccepted, true},
		{StatusDuplicate, true},
		{StatusParseError, true},
		{StatusSkipped, true},
		{DocumentStatus("rejected"), false},
		{DocumentStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestRunReportSucceeded(t *testing.T) {
	tests := []struct {
		name   string
		report RunReport
		want   bool
	}{
		{
			name:   "clean run",
			report: RunReport{Failures: 0, ArtifactPath: "findings.xlsx"},
			want:   true,
		},
		{
			name:   "halted run",
			report: RunReport{Failures: 2},
			want:   false,
		},
		{
			name:   "write never happened",
			report: RunReport{Failures: 0},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.Succeeded(); got != tt.want {
				t.Errorf("Succeeded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunReportFailedDocuments(t *testing.T) {
	report := RunReport{
		Outcomes: []DocumentOutcome{
			{Path: "intake/a.md", Status: StatusSkipped},
			{Path: "intake/b.md", Status: StatusParseError},
			{Path: "intake/c.md", Status: StatusParseError},
		},
	}
	failed := report.FailedDocuments()
	if len(failed) != 2 || failed[0] != "intake/b.md" || failed[1] != "intake/c.md" {
		t.Errorf("FailedDocuments() = %v", failed)
	}
}
