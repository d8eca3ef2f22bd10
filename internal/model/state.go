package model

// SessionState represents the state of a download session
type SessionState string

const (
	// StateIdle means the session has been constructed but not started
	StateIdle SessionState = "Idle"

	// StateValidating means precondition checks are running
	StateValidating SessionState = "Validating"

	// StateRunning means the media engine is transferring
	StateRunning SessionState = "Running"

	// StateRetrying means the session is waiting out the back-off delay
	// before re-entering Running
	StateRetrying SessionState = "Retrying"

	// StateSucceeded means every item in the workflow completed
	StateSucceeded SessionState = "Succeeded"

	// StateFailed means the job failed, was cancelled, or exhausted retries
	StateFailed SessionState = "Failed"
)

// String returns the string representation of SessionState
func (s SessionState) String() string {
	return string(s)
}

// IsTerminal returns true for final states; a finished session is
// discarded, never reused
func (s SessionState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// IsActive returns true while the session owns the worker
func (s SessionState) IsActive() bool {
	return s == StateValidating || s == StateRunning || s == StateRetrying
}
