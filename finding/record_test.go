package finding

import "testing"

func validRecord() Record {
	return Record{
		Title:          "Unprotected Storage Account",
		Score:          7,
		Severity:       SeverityHigh,
		ResourceType:   "Storage",
		BusinessImpact: "Customer documents are readable by unauthenticated clients.",
		SourcePath:     "intake/storage-account.md",
	}
}

func TestNewRecord(t *testing.T) {
	rec, err := NewRecord("Network Security Group Open to Internet", 9, "Network",
		"Management ports are reachable from any address.", "intake/nsg.md")
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if rec.Severity != SeverityCritical {
		t.Errorf("NewRecord() severity = %v, want %v", rec.Severity, SeverityCritical)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() on fresh record = %v", err)
	}
}

func TestNewRecord_OutOfRangeScore(t *testing.T) {
	if _, err := NewRecord("Anything", 12, "General", "Impact.", "x.md"); err == nil {
		t.Error("NewRecord() with score 12 should fail")
	}
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr bool
	}{
		{"valid record", func(r *Record) {}, false},
		{"empty title", func(r *Record) { r.Title = "  " }, true},
		{"underscore in title", func(r *Record) { r.Title = "storage_account" }, true},
		{"score too low", func(r *Record) { r.Score = 0 }, true},
		{"score too high", func(r *Record) { r.Score = 11 }, true},
		{"severity drifted from score", func(r *Record) { r.Severity = SeverityCritical }, true},
		{"empty resource type", func(r *Record) { r.ResourceType = "" }, true},
		{"empty impact", func(r *Record) { r.BusinessImpact = "" }, true},
		{"multi-line impact", func(r *Record) { r.BusinessImpact = "Line one.\nLine two." }, true},
		{"empty source path", func(r *Record) { r.SourcePath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			err := rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecord_AddWarning(t *testing.T) {
	rec := validRecord()
	rec.AddWarning("declared severity Critical disagrees with score band High")
	rec.AddWarning("declared severity Critical disagrees with score band High")
	if len(rec.Warnings) != 1 {
		t.Errorf("AddWarning() should deduplicate, got %d warnings", len(rec.Warnings))
	}
}
