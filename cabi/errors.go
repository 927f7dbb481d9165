package cabi

import (
	"log/slog"

	"github.com/whatwg-dom/domcore/dom"
)

// errorCode maps an error returned by the dom package to the DOM_ERROR_*
// code an embedder expects back from a fallible dom_* call. A non-DOMError
// (which should not happen for anything this package calls into) maps to
// ErrUnknown rather than panicking, since a panic would unwind across the
// ABI boundary into foreign stack frames that cannot handle it.
func errorCode(err error) int32 {
	if err == nil {
		return ErrOK
	}
	domErr, ok := err.(*dom.DOMError)
	if !ok {
		slog.Error("cabi: non-DOMError crossed the ABI boundary", "run_id", runID, "error", err)
		return ErrUnknown
	}
	code, ok := errorCodeByName[domErr.Name]
	if !ok {
		slog.Error("cabi: unmapped DOMError name", "run_id", runID, "name", domErr.Name)
		return ErrUnknown
	}
	return code
}
