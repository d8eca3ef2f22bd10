package engine

import (
	"testing"

	"github.com/lrstanley/go-ytdlp"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestVariantFrom(t *testing.T) {
	f := &ytdlp.ExtractedFormat{
		FormatID:  strp("137"),
		Extension: strp("mp4"),
		FileSize:  intp(524288),
		VCodec:    strp("avc1.640028"),
		ACodec:    strp("none"),
	}

	v := variantFrom(f)

	if v.FormatID != "137" {
		t.Errorf("Expected format id '137', got %q", v.FormatID)
	}
	if v.Ext != "mp4" {
		t.Errorf("Expected ext 'mp4', got %q", v.Ext)
	}
	if v.Filesize != 524288 {
		t.Errorf("Expected filesize 524288, got %d", v.Filesize)
	}
	if !v.HasVideo {
		t.Error("Expected HasVideo for a real video codec")
	}
	if v.HasAudio {
		t.Error("Expected no audio for acodec 'none'")
	}
}

func TestVariantFromAbsentFields(t *testing.T) {
	v := variantFrom(&ytdlp.ExtractedFormat{})

	if v.FormatID != "" || v.Ext != "" || v.Filesize != 0 || v.Height != 0 {
		t.Errorf("Expected zero values for absent fields, got %+v", v)
	}
	if v.HasVideo || v.HasAudio {
		t.Error("Expected no streams when codecs are absent")
	}
}

func TestProbeResultFrom(t *testing.T) {
	info := &ytdlp.ExtractedInfo{
		Title: strp("My Video"),
		Formats: []*ytdlp.ExtractedFormat{
			{FormatID: strp("137"), Extension: strp("mp4"), VCodec: strp("avc1"), ACodec: strp("none")},
			{FormatID: strp("140"), Extension: strp("mp4"), VCodec: strp("none"), ACodec: strp("mp4a.40.2")},
		},
	}

	pr := probeResultFrom(info)

	if pr.Title != "My Video" {
		t.Errorf("Expected title 'My Video', got %q", pr.Title)
	}
	if len(pr.Variants) != 2 {
		t.Fatalf("Expected 2 variants, got %d", len(pr.Variants))
	}
	if !pr.Variants[0].HasVideo || pr.Variants[0].HasAudio {
		t.Errorf("Expected video-only first variant, got %+v", pr.Variants[0])
	}
	if pr.Variants[1].HasVideo || !pr.Variants[1].HasAudio {
		t.Errorf("Expected audio-only second variant, got %+v", pr.Variants[1])
	}
}
