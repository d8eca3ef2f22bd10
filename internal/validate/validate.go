package validate

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/platform"
)

// ErrorKind classifies a validation failure
type ErrorKind string

const (
	KindInvalidReference ErrorKind = "invalid_reference"
	KindFileNotFound     ErrorKind = "file_not_found"
	KindNotReadable      ErrorKind = "not_readable"
	KindNotWritable      ErrorKind = "not_writable"
)

// Accepted transfer schemes and platform domains
var (
	acceptedSchemes = []string{"http", "https"}
	allowedDomains  = []string{"youtube.com", "youtu.be"}
)

// Error reports why a reference or destination was rejected
type Error struct {
	Kind  ErrorKind
	Value string
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidReference:
		return fmt.Sprintf("invalid reference: %s", e.Value)
	case KindFileNotFound:
		return fmt.Sprintf("file not found: %s", e.Value)
	case KindNotReadable:
		return fmt.Sprintf("file not readable: %s", e.Value)
	case KindNotWritable:
		return fmt.Sprintf("destination not writable: %s", e.Value)
	}
	return fmt.Sprintf("validation failed: %s", e.Value)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsValidURL reports whether raw is an http(s) link on an allowed platform
// domain.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	schemeOK := false
	for _, s := range acceptedSchemes {
		if u.Scheme == s {
			schemeOK = true
			break
		}
	}
	if !schemeOK {
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, d := range allowedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// ValidateReference classifies and accepts or rejects a raw source
// reference. Pure and synchronous, no network access.
func ValidateReference(kind model.ReferenceKind, raw string) (model.SourceReference, error) {
	raw = strings.TrimSpace(raw)

	switch kind {
	case model.KindSingle, model.KindCollection:
		if !IsValidURL(raw) {
			return model.SourceReference{}, &Error{Kind: KindInvalidReference, Value: raw}
		}

	case model.KindList:
		info, err := os.Stat(raw)
		if err != nil || !info.Mode().IsRegular() {
			return model.SourceReference{}, &Error{Kind: KindFileNotFound, Value: raw, Err: err}
		}
		f, err := os.Open(raw)
		if err != nil {
			return model.SourceReference{}, &Error{Kind: KindNotReadable, Value: raw, Err: err}
		}
		f.Close()

	default:
		return model.SourceReference{}, &Error{Kind: KindInvalidReference, Value: string(kind)}
	}

	return model.SourceReference{Kind: kind, Value: raw}, nil
}

// ValidateDestination resolves path to an absolute directory, creating it
// if necessary, and verifies write permission. Creating the directory is
// idempotent, so the check is safe to call repeatedly.
func ValidateDestination(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", &Error{Kind: KindNotWritable, Value: path}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &Error{Kind: KindNotWritable, Value: path, Err: err}
	}

	if err := platform.CreateDirectoryIfNotExists(abs); err != nil {
		return "", &Error{Kind: KindNotWritable, Value: abs, Err: err}
	}

	probe, err := os.CreateTemp(abs, ".ytgrab-*")
	if err != nil {
		return "", &Error{Kind: KindNotWritable, Value: abs, Err: err}
	}
	probe.Close()
	os.Remove(probe.Name())

	return abs, nil
}

// LoadListFile reads a newline-delimited UTF-8 file of links. Blank lines
// are ignored and invalid lines are skipped; the skipped count is returned
// so callers can warn without aborting the batch.
func LoadListFile(path string) (urls []string, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, &Error{Kind: KindNotReadable, Value: path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !IsValidURL(line) {
			skipped++
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, &Error{Kind: KindNotReadable, Value: path, Err: err}
	}

	return urls, skipped, nil
}
