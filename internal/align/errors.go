package align

import "fmt"

// MalformedInputError reports a transcript whose text could not be turned
// into tokens. Rows carrying one are dropped before alignment.
type MalformedInputError struct {
	Side   string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("malformed %s transcript", e.Side)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for logging.
func (e *MalformedInputError) ErrorKind() string { return "malformed_input" }

// AlignmentInvariantError signals an alignment that violates the segment
// contract. It indicates a bug, not bad input.
type AlignmentInvariantError struct {
	Index  int
	Reason string
}

func (e *AlignmentInvariantError) Error() string {
	if e.Index < 0 {
		return "alignment invariant violated: " + e.Reason
	}
	return fmt.Sprintf("alignment invariant violated at segment %d: %s", e.Index, e.Reason)
}

func (e *AlignmentInvariantError) ErrorKind() string { return "invariant" }
