package domain

import (
	"errors"
	"fmt"
)

// Standard error values for the tool pipeline. Handlers wrap these with
// operation-specific context via fmt.Errorf("%w: ...").
var (
	// ErrInvalidParams is returned by argument parsers before any upstream
	// call is made.
	ErrInvalidParams = errors.New("invalid parameters")

	// ErrUnknownOperation is returned when a tool name does not match any
	// registered operation.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrNotFound is returned when an upstream lookup succeeds but matches
	// zero records (e.g. a SMILES string with no corresponding compound).
	ErrNotFound = errors.New("not found")
)

// UpstreamError wraps a failed call to the ChEMBL REST API: a non-2xx
// response, a network failure, or a timeout. StatusCode is zero for
// transport-level failures.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream error: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream error: %s", e.Message)
}
