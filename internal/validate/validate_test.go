package validate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ytgrab/ytgrab/internal/model"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://www.youtube.com/watch?v=abc123", true},
		{"http://youtube.com/watch?v=abc123", true},
		{"https://youtu.be/abc123", true},
		{"https://m.youtube.com/watch?v=abc123", true},
		{"ftp://youtube.com/watch?v=abc123", false},
		{"https://vimeo.com/12345", false},
		{"https://notyoutube.com/watch", false},
		{"youtube.com/watch?v=abc123", false},
		{"", false},
		{"not a url", false},
	}

	for _, test := range tests {
		if got := IsValidURL(test.url); got != test.valid {
			t.Errorf("IsValidURL(%q) = %v, expected %v", test.url, got, test.valid)
		}
	}
}

func TestValidateReferenceSingle(t *testing.T) {
	ref, err := ValidateReference(model.KindSingle, "https://youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ref.Kind != model.KindSingle {
		t.Errorf("Expected kind %s, got %s", model.KindSingle, ref.Kind)
	}

	_, err = ValidateReference(model.KindSingle, "https://example.com/video")
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if verr.Kind != KindInvalidReference {
		t.Errorf("Expected kind %s, got %s", KindInvalidReference, verr.Kind)
	}
}

func TestValidateReferenceList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	if err := os.WriteFile(path, []byte("https://youtu.be/a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ref, err := ValidateReference(model.KindList, path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ref.Value != path {
		t.Errorf("Expected value %s, got %s", path, ref.Value)
	}

	_, err = ValidateReference(model.KindList, filepath.Join(dir, "missing.txt"))
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if verr.Kind != KindFileNotFound {
		t.Errorf("Expected kind %s, got %s", KindFileNotFound, verr.Kind)
	}

	// A directory is not a regular file
	_, err = ValidateReference(model.KindList, dir)
	if err == nil {
		t.Error("Expected error for directory reference, got nil")
	}
}

func TestValidateDestination(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out")

	abs, err := ValidateDestination(target)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !filepath.IsAbs(abs) {
		t.Errorf("Expected absolute path, got %s", abs)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		t.Errorf("Expected directory to be created at %s", abs)
	}

	// Idempotent on repeat
	if _, err := ValidateDestination(target); err != nil {
		t.Errorf("Expected repeated validation to succeed, got %v", err)
	}

	if _, err := ValidateDestination(""); err == nil {
		t.Error("Expected error for empty destination, got nil")
	}
}

func TestLoadListFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	content := "https://youtube.com/watch?v=one\n" +
		"\n" +
		"not-a-url\n" +
		"https://youtu.be/two\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, skipped, err := LoadListFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != 2 {
		t.Errorf("Expected 2 valid URLs, got %d", len(urls))
	}
	if skipped != 1 {
		t.Errorf("Expected 1 skipped line, got %d", skipped)
	}

	_, _, err = LoadListFile(filepath.Join(dir, "missing.txt"))
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
