package engine

import (
	"context"
	"errors"
	"strings"
)

// Substrings of yt-dlp stderr that identify transient failures worth
// retrying. Everything unrecognized is treated as non-retryable so a
// persistent failure cannot loop the retry budget pointlessly.
var retryableFragments = []string{
	"timed out",
	"timeout",
	"connection reset",
	"connection refused",
	"temporary failure",
	"network is unreachable",
	"unable to download webpage",
	"http error 5",
	"got error",
}

// Fragments that are definitely fatal even when a transient fragment also
// matches.
var fatalFragments = []string{
	"permission denied",
	"no space left",
	"requested format is not available",
	"unsupported url",
	"read-only file system",
}

// wrap tags err with its retryability class. Nil stays nil; context
// cancellation passes through untouched so sessions can tell a stop
// request from an engine failure. Deadline expiry counts as a timeout and
// is therefore retryable.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Op: op, Retryable: true, Err: err}
	}

	msg := strings.ToLower(err.Error())
	for _, f := range fatalFragments {
		if strings.Contains(msg, f) {
			return &Error{Op: op, Retryable: false, Err: err}
		}
	}
	for _, f := range retryableFragments {
		if strings.Contains(msg, f) {
			return &Error{Op: op, Retryable: true, Err: err}
		}
	}
	return &Error{Op: op, Retryable: false, Err: err}
}
