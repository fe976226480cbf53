package artifact

import (
	"fmt"
	"strings"
)

// ErrIncomplete indicates that some members of the set are not stored.
type ErrIncomplete struct {
	Missing []Name
}

func (e *ErrIncomplete) Error() string {
	names := make([]string, len(e.Missing))
	for i, n := range e.Missing {
		names[i] = string(n)
	}
	return fmt.Sprintf("artifact set incomplete: missing %s", strings.Join(names, ", "))
}

// ErrMismatch indicates that stored artifacts cannot be used together.
type ErrMismatch struct {
	Reason string
	Err    error
}

func (e *ErrMismatch) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("artifact mismatch: %s: %v", e.Reason, e.Err)
	}
	return "artifact mismatch: " + e.Reason
}

func (e *ErrMismatch) Unwrap() error { return e.Err }
