package format

import (
	"fmt"
	"sort"

	"github.com/ytgrab/ytgrab/internal/model"
)

// Engine-native selector expressions
const (
	// SelectorBest always heads the menu regardless of catalog contents
	SelectorBest = "bestvideo[ext=mp4]+bestaudio[ext=mp4]/best[ext=mp4]"

	// SelectorAudioOnly extracts the best audio stream
	SelectorAudioOnly = "bestaudio[ext=mp4]/bestaudio"

	// selectorAudioFallback pairs a silent video with the generic best
	// audio in the same container when the catalog has no audio-only entry
	selectorAudioFallback = "bestaudio[ext=mp4]"
)

// Labels
const (
	LabelBest      = "Best available (video+audio)"
	LabelAudioOnly = "Audio only (best)"
)

// PreferredContainer restricts the menu to a single container format;
// near-duplicates in other containers only bloat the menu.
const PreferredContainer = "mp4"

// Resolve reduces a raw variant catalog to a ranked, deduplicated menu.
// The synthetic best entry is always first; the rest are combined
// video+audio rows in strictly descending resolution order. An empty or
// unusable catalog yields just the synthetic entry, which is not an error.
func Resolve(catalog []model.VariantDescriptor) []model.SelectionEntry {
	entries := []model.SelectionEntry{{Label: LabelBest, Selector: SelectorBest}}

	byHeight, heights := dedupVideoVariants(catalog)
	audio, hasAudio := fallbackAudio(catalog)

	for _, h := range heights {
		v := byHeight[h]
		selector := v.FormatID
		size := v.Filesize
		if !v.HasAudio {
			if hasAudio {
				selector = v.FormatID + "+" + audio.FormatID
				size += audio.Filesize
			} else {
				selector = v.FormatID + "+" + selectorAudioFallback
			}
		}
		entries = append(entries, model.SelectionEntry{
			Label:    fmt.Sprintf("%s (%s)", model.ResolutionLabel(h), selector),
			Selector: selector,
			Filesize: size,
		})
	}

	return entries
}

// ResolveExtended returns the full selection menu: the combined rows from
// Resolve followed by per-resolution video-only rows and a trailing
// audio-only row.
func ResolveExtended(catalog []model.VariantDescriptor) []model.SelectionEntry {
	entries := Resolve(catalog)

	byHeight, heights := dedupVideoVariants(catalog)
	for _, h := range heights {
		v := byHeight[h]
		entries = append(entries, model.SelectionEntry{
			Label:    fmt.Sprintf("Video only %s (%s)", model.ResolutionLabel(h), v.FormatID),
			Selector: v.FormatID,
			Filesize: v.Filesize,
		})
	}

	entries = append(entries, model.SelectionEntry{
		Label:    LabelAudioOnly,
		Selector: SelectorAudioOnly,
	})

	return entries
}

// dedupVideoVariants groups video-capable variants in the preferred
// container by height, keeping the largest known file per resolution, and
// returns the surviving heights in descending order. Variants with no
// height are discarded.
func dedupVideoVariants(catalog []model.VariantDescriptor) (map[int]model.VariantDescriptor, []int) {
	byHeight := make(map[int]model.VariantDescriptor)
	for _, v := range catalog {
		if !v.HasVideo || v.Ext != PreferredContainer || v.Height <= 0 {
			continue
		}
		best, ok := byHeight[v.Height]
		if !ok || v.Filesize > best.Filesize {
			byHeight[v.Height] = v
		}
	}

	heights := make([]int, 0, len(byHeight))
	for h := range byHeight {
		heights = append(heights, h)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	return byHeight, heights
}

// fallbackAudio picks the audio-only variant with the largest known file
// size; unknown sizes count as zero.
func fallbackAudio(catalog []model.VariantDescriptor) (model.VariantDescriptor, bool) {
	var best model.VariantDescriptor
	found := false
	for _, v := range catalog {
		if v.HasVideo || !v.HasAudio || v.Ext != PreferredContainer {
			continue
		}
		if !found || v.Filesize > best.Filesize {
			best = v
			found = true
		}
	}
	return best, found
}
