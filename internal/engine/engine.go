package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/progress"
)

// ProbeResult is the engine's answer to a no-transfer catalog query
type ProbeResult struct {
	Title    string
	Variants []model.VariantDescriptor
}

// FetchOptions narrows the engine's wide option surface to what the
// orchestration layer actually needs.
type FetchOptions struct {
	SocketTimeout time.Duration
	MergeFormat   string // output container for merged streams
	Playlist      bool   // expand collection references
	Overwrite     bool   // replace pre-existing outputs
	AudioOnly     bool   // extract audio instead of fetching video
	OnFrame       func(progress.Frame)
}

// Engine is the narrow media-engine capability consumed by sessions:
// catalog probing, collection sizing, and the actual transfer.
type Engine interface {
	// Probe enumerates available encoded variants without transferring
	Probe(ctx context.Context, url string) (*ProbeResult, error)

	// CountItems sizes a collection without transferring
	CountItems(ctx context.Context, url string) (int, error)

	// Fetch performs the byte transfer for one reference
	Fetch(ctx context.Context, url, selector, destTemplate string, opts FetchOptions) error
}

// Error wraps a media-engine failure with its retryability class.
// Network and timeout failures are retryable; permission, disk and
// format-id failures are not.
type Error struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("engine %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
