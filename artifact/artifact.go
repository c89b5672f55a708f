package artifact

import "errors"

// SheetName is the worksheet holding the ranked findings.
const SheetName = "Findings"

// Columns is the fixed column order of the report artifact. The header row
// is bold, frozen on scroll, and carries column filters.
var Columns = []string{
	"Priority",
	"Resource Type",
	"Issue",
	"Risk Score",
	"Overall Severity",
	"Business Impact",
	"File Reference",
}

// Sentinel errors for artifact failures. These can be matched with
// errors.Is() through wrapped errors.
var (
	// ErrRowCountMismatch indicates the staged artifact's body row count
	// does not equal the record count. This signals a logic bug and is
	// never silently tolerated; the swap is aborted.
	ErrRowCountMismatch = errors.New("artifact row count mismatch")

	// ErrMalformedArtifact indicates an existing artifact that cannot be
	// read back into records (unexpected header or unparseable cells).
	ErrMalformedArtifact = errors.New("malformed artifact")
)
