package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults
const (
	DefaultMaxAttempts   = 3
	DefaultRetryBackoff  = 2 * time.Second
	DefaultSocketTimeout = 30 * time.Second
	DefaultProbeTimeout  = 60 * time.Second
	DefaultMergeFormat   = "mp4"
	DefaultCacheCapacity = 16

	// Output templates handed to the media engine
	DefaultOutputTemplate     = "%(title)s.%(ext)s"
	DefaultCollectionTemplate = "%(playlist_title)s/%(title)s.%(ext)s"
)

// Settings holds application configuration aggregated from env and an
// optional config file.
type Settings struct {
	DownloadDir        string
	MaxAttempts        int
	RetryBackoff       time.Duration
	SocketTimeout      time.Duration
	ProbeTimeout       time.Duration
	MergeFormat        string
	CacheCapacity      int
	OutputTemplate     string
	CollectionTemplate string
}

// Load reads configuration from YTGRAB_* environment variables and an
// optional config file in the working directory.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("YTGRAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("download.dir", defaultDownloadDir())
	v.SetDefault("download.maxattempts", DefaultMaxAttempts)
	v.SetDefault("download.retrybackoff", DefaultRetryBackoff)
	v.SetDefault("download.sockettimeout", DefaultSocketTimeout)
	v.SetDefault("download.probetimeout", DefaultProbeTimeout)
	v.SetDefault("download.mergeformat", DefaultMergeFormat)
	v.SetDefault("download.outputtemplate", DefaultOutputTemplate)
	v.SetDefault("download.collectiontemplate", DefaultCollectionTemplate)
	v.SetDefault("formats.cachecapacity", DefaultCacheCapacity)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	s := &Settings{
		DownloadDir:        v.GetString("download.dir"),
		MaxAttempts:        v.GetInt("download.maxattempts"),
		RetryBackoff:       v.GetDuration("download.retrybackoff"),
		SocketTimeout:      v.GetDuration("download.sockettimeout"),
		ProbeTimeout:       v.GetDuration("download.probetimeout"),
		MergeFormat:        v.GetString("download.mergeformat"),
		CacheCapacity:      v.GetInt("formats.cachecapacity"),
		OutputTemplate:     v.GetString("download.outputtemplate"),
		CollectionTemplate: v.GetString("download.collectiontemplate"),
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if s.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", s.MaxAttempts)
	}
	if s.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff must not be negative, got %s", s.RetryBackoff)
	}
	if s.CacheCapacity < 1 {
		return fmt.Errorf("cache capacity must be at least 1, got %d", s.CacheCapacity)
	}
	return nil
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "downloads"
	}
	return filepath.Join(home, "Downloads")
}
