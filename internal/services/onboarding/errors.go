package onboarding

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports itemized field failures. Handlers render the
// field map verbatim so the merchant sees every problem at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// TransitionError reports a guard failure. Current carries the
// profile's actual status so the caller can tell the user what state
// the record is really in. Not retryable.
type TransitionError struct {
	Action  string
	Current string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a profile in status %q", e.Action, e.Current)
}
