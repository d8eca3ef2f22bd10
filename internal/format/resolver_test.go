package format

import (
	"strings"
	"testing"

	"github.com/ytgrab/ytgrab/internal/model"
)

func TestResolveEmptyCatalog(t *testing.T) {
	entries := Resolve(nil)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry for empty catalog, got %d", len(entries))
	}
	if entries[0].Label != LabelBest {
		t.Errorf("Expected label %q, got %q", LabelBest, entries[0].Label)
	}
	if entries[0].Selector != SelectorBest {
		t.Errorf("Expected selector %q, got %q", SelectorBest, entries[0].Selector)
	}
}

func TestResolveDedupAndAudioPairing(t *testing.T) {
	catalog := []model.VariantDescriptor{
		{FormatID: "137", Ext: "mp4", Height: 1080, Filesize: 500, HasVideo: true},
		{FormatID: "137b", Ext: "mp4", Height: 1080, Filesize: 300, HasVideo: true},
		{FormatID: "136", Ext: "mp4", Height: 720, Filesize: 200, HasVideo: true, HasAudio: true},
		{FormatID: "140", Ext: "mp4", Filesize: 128, HasAudio: true},
	}

	entries := Resolve(catalog)

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d: %v", len(entries), entries)
	}
	if entries[0].Label != LabelBest {
		t.Errorf("Expected first entry %q, got %q", LabelBest, entries[0].Label)
	}
	if entries[1].Label != "1080p (137+140)" {
		t.Errorf("Expected second entry '1080p (137+140)', got %q", entries[1].Label)
	}
	if entries[1].Selector != "137+140" {
		t.Errorf("Expected selector '137+140', got %q", entries[1].Selector)
	}
	if entries[2].Label != "720p (136)" {
		t.Errorf("Expected third entry '720p (136)', got %q", entries[2].Label)
	}
	if entries[2].Selector != "136" {
		t.Errorf("Expected selector '136', got %q", entries[2].Selector)
	}
}

func TestResolveLargerSizeSurvives(t *testing.T) {
	catalog := []model.VariantDescriptor{
		{FormatID: "small", Ext: "mp4", Height: 720, Filesize: 100, HasVideo: true, HasAudio: true},
		{FormatID: "large", Ext: "mp4", Height: 720, Filesize: 900, HasVideo: true, HasAudio: true},
	}

	entries := Resolve(catalog)

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Selector != "large" {
		t.Errorf("Expected larger variant to survive, got selector %q", entries[1].Selector)
	}
}

func TestResolveGenericAudioFallback(t *testing.T) {
	catalog := []model.VariantDescriptor{
		{FormatID: "137", Ext: "mp4", Height: 1080, Filesize: 500, HasVideo: true},
	}

	entries := Resolve(catalog)

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Selector != "137+bestaudio[ext=mp4]" {
		t.Errorf("Expected generic audio fallback selector, got %q", entries[1].Selector)
	}
}

func TestResolveDescendingOrder(t *testing.T) {
	catalog := []model.VariantDescriptor{
		{FormatID: "v360", Ext: "mp4", Height: 360, Filesize: 50, HasVideo: true, HasAudio: true},
		{FormatID: "v1080", Ext: "mp4", Height: 1080, Filesize: 500, HasVideo: true, HasAudio: true},
		{FormatID: "v720", Ext: "mp4", Height: 720, Filesize: 200, HasVideo: true, HasAudio: true},
	}

	entries := Resolve(catalog)

	want := []string{"v1080", "v720", "v360"}
	if len(entries) != len(want)+1 {
		t.Fatalf("Expected %d entries, got %d", len(want)+1, len(entries))
	}
	for i, sel := range want {
		if entries[i+1].Selector != sel {
			t.Errorf("Entry %d: expected selector %q, got %q", i+1, sel, entries[i+1].Selector)
		}
	}
}

func TestResolveDiscardsOtherContainersAndHeightless(t *testing.T) {
	catalog := []model.VariantDescriptor{
		{FormatID: "webm", Ext: "webm", Height: 1080, Filesize: 999, HasVideo: true, HasAudio: true},
		{FormatID: "noheight", Ext: "mp4", Filesize: 999, HasVideo: true, HasAudio: true},
	}

	entries := Resolve(catalog)

	if len(entries) != 1 {
		t.Errorf("Expected only the synthetic entry, got %d entries", len(entries))
	}
}

func TestResolveEstimatedSize(t *testing.T) {
	catalog := []model.VariantDescriptor{
		{FormatID: "137", Ext: "mp4", Height: 1080, Filesize: 500, HasVideo: true},
		{FormatID: "140", Ext: "mp4", Filesize: 128, HasAudio: true},
	}

	entries := Resolve(catalog)

	if entries[1].Filesize != 628 {
		t.Errorf("Expected paired size 628, got %d", entries[1].Filesize)
	}
}

func TestResolveExtended(t *testing.T) {
	catalog := []model.VariantDescriptor{
		{FormatID: "137", Ext: "mp4", Height: 1080, Filesize: 500, HasVideo: true},
		{FormatID: "140", Ext: "mp4", Filesize: 128, HasAudio: true},
	}

	entries := ResolveExtended(catalog)

	// best + 1080p combined + 1080p video only + audio only
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[2].Label, "Video only 1080p") {
		t.Errorf("Expected video-only row, got %q", entries[2].Label)
	}
	if entries[2].Selector != "137" {
		t.Errorf("Expected raw id selector for video-only row, got %q", entries[2].Selector)
	}
	last := entries[len(entries)-1]
	if last.Label != LabelAudioOnly {
		t.Errorf("Expected trailing audio-only row, got %q", last.Label)
	}
	if last.Selector != SelectorAudioOnly {
		t.Errorf("Expected audio-only selector, got %q", last.Selector)
	}
}
