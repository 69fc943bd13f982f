package expand

import "fmt"

// InvariantError reports slots that no longer reproduce their source tokens.
type InvariantError struct {
	Side   string
	Index  int
	Want   string
	Got    string
	Reason string
}

func (e *InvariantError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("expand %s invariant: %s", e.Side, e.Reason)
	}
	return fmt.Sprintf("expand %s invariant: token %d is %q, want %q", e.Side, e.Index, e.Got, e.Want)
}

func (e *InvariantError) ErrorKind() string { return "invariant" }
