package pricing

import "fmt"

// ValidationError reports a submission field that failed the creation
// invariants. It blocks the append entirely; no partial record is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
