package model

// EventKind discriminates the ProgressEvent union
type EventKind string

const (
	// EventDownloading carries a coalesced progress sample
	EventDownloading EventKind = "downloading"

	// EventItemStarted signals that an item began transferring
	EventItemStarted EventKind = "item_started"

	// EventItemFinished signals that an item completed
	EventItemFinished EventKind = "item_finished"

	// EventFailed carries a human-readable failure message
	EventFailed EventKind = "failed"

	// EventAllFinished is the terminal event for the whole job
	EventAllFinished EventKind = "all_finished"
)

// ProgressEvent is a transient notification delivered at most once to the
// attached presentation layer, in emission order.
type ProgressEvent struct {
	Kind    EventKind
	Percent float64 // EventDownloading, clamped to [0,100]
	Rate    string  // EventDownloading, human readable (e.g. "1.2MiB/s")
	ETA     string  // EventDownloading, human readable
	Label   string  // EventItemStarted
	Message string  // EventFailed
	Index   int     // 1-based item index for batch/collection, 0 otherwise
	Total   int     // item count for batch/collection, 0 otherwise
	Success bool    // EventAllFinished
}
