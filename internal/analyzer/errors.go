package analyzer

import (
	"fmt"

	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/token"
)

// addError records a fatal diagnostic, deduplicated by position and
// code so a single malformed expression does not cascade into a wall of
// repeated errors from every caller that re-visits it.
func (a *Analyzer) addError(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	key := fmt.Sprintf("E:%d:%d:%s", tok.Line, tok.Column, code)
	if a.seen[key] {
		return
	}
	a.seen[key] = true
	a.errors = append(a.errors, diagnostics.NewAnalyzerError(code, tok, args...))
}

// warn records a warning-grade diagnostic (currently just ErrA009,
// non-exhaustive `is`) on a separate list from the fatal errors, per the
// taxonomy's own "(warning-grade)" annotation for that code.
func (a *Analyzer) warn(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	key := fmt.Sprintf("W:%d:%d:%s", tok.Line, tok.Column, code)
	if a.seen[key] {
		return
	}
	a.seen[key] = true
	a.warnings = append(a.warnings, diagnostics.NewAnalyzerError(code, tok, args...))
}
