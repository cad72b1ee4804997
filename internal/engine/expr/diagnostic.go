package expr

import apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"

// Severity grades a diagnostic.
type Severity string

const (
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Diagnostic records a malformed or degraded expression without failing the
// evaluation. Nothing in the engine throws fatally: bad contract data
// degrades to a logged, skipped or defaulted effect so a single bad row
// cannot halt gameplay.
type Diagnostic struct {
	Severity Severity
	Code     apperrors.Code
	Message  string
	Raw      string // the offending expression text
}

func warnDiag(code apperrors.Code, message, raw string) Diagnostic {
	return Diagnostic{Severity: SeverityWarn, Code: code, Message: message, Raw: raw}
}

func errorDiag(code apperrors.Code, message, raw string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Code: code, Message: message, Raw: raw}
}
