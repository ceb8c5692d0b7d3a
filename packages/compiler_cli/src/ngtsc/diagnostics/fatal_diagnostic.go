package diagnostics

import (
	"fmt"
)

// FatalDiagnosticError aborts the analysis of a single declaration. It is
// recorded against the declaration and does not stop the compilation of
// other declarations.
type FatalDiagnosticError struct {
	Code     ErrorCode
	FileName string
	Node     string
	Message  string
}

// NewFatalDiagnosticError creates a new FatalDiagnosticError
func NewFatalDiagnosticError(code ErrorCode, fileName, node, message string) *FatalDiagnosticError {
	return &FatalDiagnosticError{Code: code, FileName: fileName, Node: node, Message: message}
}

// Error implements the error interface
func (e *FatalDiagnosticError) Error() string {
	return fmt.Sprintf("%s: NG%d: %s", e.position(), e.Code, e.Message)
}

func (e *FatalDiagnosticError) position() string {
	if e.Node != "" {
		return fmt.Sprintf("%s (%s)", e.FileName, e.Node)
	}
	return e.FileName
}

// IsFatalDiagnosticError checks whether an error is a FatalDiagnosticError
func IsFatalDiagnosticError(err error) bool {
	_, ok := err.(*FatalDiagnosticError)
	return ok
}
