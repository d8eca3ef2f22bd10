package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
	ytget "github.com/ytget/ytdlp/v2"

	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/progress"
)

// Codec sentinel in catalog entries for absent streams
const codecNone = "none"

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// Audio extraction settings
const (
	AudioCodec = "mp3"
)

// Progress callback cadence
const progressInterval = 500 * time.Millisecond

// YTDLP implements Engine on top of the yt-dlp tool, using
// lrstanley/go-ytdlp for probe and transfer and ytget/ytdlp/v2 for cheap
// collection enumeration.
type YTDLP struct {
	log          *logrus.Logger
	probeTimeout time.Duration
}

// Config holds YTDLP construction knobs
type Config struct {
	ProbeTimeout time.Duration
	Logger       *logrus.Logger
}

// NewYTDLP creates the yt-dlp backed engine
func NewYTDLP(cfg Config) *YTDLP {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 60 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &YTDLP{log: cfg.Logger, probeTimeout: cfg.ProbeTimeout}
}

// Probe enumerates the format catalog for one reference without
// transferring anything.
func (y *YTDLP) Probe(ctx context.Context, url string) (*ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, y.probeTimeout)
	defer cancel()

	// DumpJSON makes yt-dlp print the metadata GetExtractedInfo parses;
	// without it the run produces no JSON and the probe comes back empty.
	dl := ytdlp.New().
		SkipDownload().
		DumpJSON().
		NoPlaylist()

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, wrap("probe", err)
	}

	info, err := res.GetExtractedInfo()
	if err != nil {
		return nil, wrap("probe", err)
	}
	if len(info) == 0 {
		return nil, &Error{Op: "probe", Err: fmt.Errorf("no metadata for %s", url)}
	}

	result := probeResultFrom(info[0])

	y.log.WithFields(logrus.Fields{
		"url":      url,
		"variants": len(result.Variants),
	}).Debug("probe complete")

	return result, nil
}

// CountItems enumerates a collection without transferring and returns its
// size. Zero is a valid answer, not an error.
func (y *YTDLP) CountItems(ctx context.Context, url string) (int, error) {
	playlistID := extractPlaylistID(url)
	if playlistID == "" {
		return 0, &Error{Op: "count", Err: fmt.Errorf("could not extract playlist ID from URL: %s", url)}
	}

	ctx, cancel := context.WithTimeout(ctx, y.probeTimeout)
	defer cancel()

	d := ytget.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return 0, wrap("count", err)
	}
	return len(items), nil
}

// Fetch performs the transfer for one reference
func (y *YTDLP) Fetch(ctx context.Context, url, selector, destTemplate string, opts FetchOptions) error {
	dl := ytdlp.New().
		Output(destTemplate).
		RestrictFilenames()

	if opts.SocketTimeout > 0 {
		dl = dl.SocketTimeout(opts.SocketTimeout.Seconds())
	}

	if opts.AudioOnly {
		dl = dl.Format(selector).
			ExtractAudio().
			AudioFormat(AudioCodec)
	} else {
		dl = dl.Format(selector)
		if opts.MergeFormat != "" {
			dl = dl.MergeOutputFormat(opts.MergeFormat)
		}
	}

	if opts.Playlist {
		dl = dl.YesPlaylist()
	} else {
		dl = dl.NoPlaylist()
	}

	if opts.Overwrite {
		dl = dl.ForceOverwrites()
	} else {
		dl = dl.NoOverwrites()
	}

	if opts.OnFrame != nil {
		dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			opts.OnFrame(frameFrom(update))
		})
	}

	_, err := dl.Run(ctx, url)
	return wrap("fetch", err)
}

// probeResultFrom flattens extracted metadata into the probe answer
func probeResultFrom(info *ytdlp.ExtractedInfo) *ProbeResult {
	result := &ProbeResult{}
	if info.Title != nil {
		result.Title = *info.Title
	}
	for _, f := range info.Formats {
		result.Variants = append(result.Variants, variantFrom(f))
	}
	return result
}

// variantFrom flattens one extracted format into the catalog shape
func variantFrom(f *ytdlp.ExtractedFormat) model.VariantDescriptor {
	v := model.VariantDescriptor{}
	if f.FormatID != nil {
		v.FormatID = *f.FormatID
	}
	if f.Extension != nil {
		v.Ext = *f.Extension
	}
	if f.Height != nil {
		v.Height = int(*f.Height)
	}
	if f.FileSize != nil {
		v.Filesize = int64(*f.FileSize)
	}
	v.HasVideo = f.VCodec != nil && *f.VCodec != codecNone
	v.HasAudio = f.ACodec != nil && *f.ACodec != codecNone
	return v
}

// frameFrom renders a library progress update as the raw string frame
// consumed by the aggregator.
func frameFrom(u ytdlp.ProgressUpdate) progress.Frame {
	f := progress.Frame{
		Phase:   strings.ToLower(string(u.Status)),
		Percent: "N/A",
		Rate:    "N/A",
		ETA:     "N/A",
	}

	if u.TotalBytes > 0 {
		f.Percent = fmt.Sprintf("%.1f%%", float64(u.DownloadedBytes)/float64(u.TotalBytes)*100)
	}

	if !u.Started.IsZero() {
		elapsed := time.Since(u.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(u.DownloadedBytes) / elapsed.Seconds()
			f.Rate = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	if eta := u.ETA(); eta > 0 {
		f.ETA = eta.Truncate(time.Second).String()
	}

	return f
}

// extractPlaylistID extracts the playlist ID from various URL formats
func extractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}
