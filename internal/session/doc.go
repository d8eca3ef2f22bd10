package session

// Package session drives one (reference, format, destination) job through
// precondition checks, media-engine invocation, fixed back-off retry, and
// completion reporting. One workflow per reference kind: single item,
// batch-from-file, collection.
