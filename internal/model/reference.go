package model

// ReferenceKind classifies what a source reference points at
type ReferenceKind string

const (
	// KindSingle is a link to one video
	KindSingle ReferenceKind = "single"

	// KindList is a path to a newline-delimited file of links
	KindList ReferenceKind = "list"

	// KindCollection is a link to a playlist
	KindCollection ReferenceKind = "playlist"
)

// String returns the string representation of ReferenceKind
func (k ReferenceKind) String() string {
	return string(k)
}

// SourceReference is a validated pointer to remote content or to a local
// list file. It is immutable once constructed and consumed by exactly one
// download session.
type SourceReference struct {
	Kind  ReferenceKind
	Value string // URL for single/playlist, file path for list
}

// JobSpec describes one download job. Constructed once per start request
// and owned exclusively by one session.
type JobSpec struct {
	ID       string
	Ref      SourceReference
	DestDir  string
	Selector string
}

// RetryState tracks retry bookkeeping for the active job. It is owned by
// the session and reset between jobs.
type RetryState struct {
	Attempt     int
	MaxAttempts int
	LastErr     error
}

// Exhausted returns true when the retry budget has been spent
func (r RetryState) Exhausted() bool {
	return r.Attempt >= r.MaxAttempts
}
