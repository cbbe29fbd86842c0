package analytics

import "fmt"

// InsufficientDataError reports that a computation needs more recorded
// sessions than are available. It is the only error kind the analytics
// engine produces; callers render it as a friendly "not enough data yet"
// state rather than a failure.
type InsufficientDataError struct {
	Required int
	Have     int
	What     string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least %d sessions for %s (have %d)", e.Required, e.What, e.Have)
}

// ErrInsufficient builds an InsufficientDataError for the given analysis.
func ErrInsufficient(what string, required, have int) *InsufficientDataError {
	return &InsufficientDataError{Required: required, Have: have, What: what}
}
