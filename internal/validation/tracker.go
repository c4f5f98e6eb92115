package validation

import (
	"fmt"
	"sync"
)

// Tracker counts consecutive validation failures per context identity and
// escalates the correction guidance attached to each failure. A successful
// validation resets the identity's counter. The tracker carries no other
// state and imposes no limit on attempts; it only changes what the caller
// is told.
type Tracker struct {
	mu       sync.Mutex
	attempts map[string]int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{attempts: make(map[string]int)}
}

// TrackerKey identifies one validated context across attempts.
func TrackerKey(project, contextType, contextName string) string {
	return project + "/" + contextType + "/" + contextName
}

// Record notes one validation outcome for key. For a failure it returns the
// guidance for the attempt number just recorded; for a success it resets
// the counter and returns the empty string.
func (t *Tracker) Record(key string, isValid bool) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if isValid {
		delete(t.attempts, key)
		return ""
	}

	t.attempts[key]++
	return guidance(t.attempts[key])
}

// guidance escalates with repeated failures: point at the deviations first,
// then at the template, then suggest starting over from it.
func guidance(attempt int) string {
	switch {
	case attempt <= 1:
		return "Fix the listed structure errors and resubmit; the rest of the document can stay as it is."
	case attempt == 2:
		return "Fetch the template with get_template and reorder the document so its headings match the template exactly, top to bottom."
	default:
		return fmt.Sprintf("Validation has failed %d times in a row. Start from the template: copy its headings verbatim, then move the existing prose under the matching sections.", attempt)
	}
}
