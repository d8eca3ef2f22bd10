package model

import "fmt"

// BytesPerMegabyte converts byte counts for display
const BytesPerMegabyte = 1024 * 1024

// VariantDescriptor is one entry from the media engine's format catalog.
// Produced by the engine, never mutated.
type VariantDescriptor struct {
	FormatID string
	Ext      string
	Height   int   // 0 when unknown or audio-only
	Filesize int64 // 0 when the engine omits it
	HasVideo bool
	HasAudio bool
}

// SelectionEntry is one user-facing menu row derived from the catalog
type SelectionEntry struct {
	Label    string
	Selector string
	Filesize int64 // estimated size in bytes, 0 when unknown
}

// ResolutionLabel formats a pixel height as "1080p"
func ResolutionLabel(height int) string {
	return fmt.Sprintf("%dp", height)
}
