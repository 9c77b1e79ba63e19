package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.ArticleLimit != 10000 {
		t.Errorf("article limit = %d, expected 10000", opts.ArticleLimit)
	}
	if opts.TranscriptLimit != 15000 {
		t.Errorf("transcript limit = %d, expected 15000", opts.TranscriptLimit)
	}
	if len(opts.ContentSelectors) == 0 {
		t.Error("expected default content selectors")
	}
	if opts.ContentSelectors[0] != "article" {
		t.Errorf("first selector = %q, expected %q", opts.ContentSelectors[0], "article")
	}
	if len(opts.MirrorHosts) == 0 {
		t.Error("expected default mirror hosts")
	}
}

func TestLoadOptions_EmptyPath(t *testing.T) {
	opts, err := LoadOptions("")
	if err != nil {
		t.Fatalf("LoadOptions returned error: %v", err)
	}

	if opts.ArticleLimit != DefaultOptions().ArticleLimit {
		t.Errorf("expected defaults for empty path")
	}
}

func TestLoadOptions_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extractor.yaml")
	data := "article_limit: 5000\nmirror_hosts:\n  - mirror.example.com\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions returned error: %v", err)
	}

	if opts.ArticleLimit != 5000 {
		t.Errorf("article limit = %d, expected 5000", opts.ArticleLimit)
	}
	if opts.TranscriptLimit != 15000 {
		t.Errorf("transcript limit = %d, expected default 15000", opts.TranscriptLimit)
	}
	if len(opts.MirrorHosts) != 1 || opts.MirrorHosts[0] != "mirror.example.com" {
		t.Errorf("mirror hosts = %v", opts.MirrorHosts)
	}
	if len(opts.ContentSelectors) != len(DefaultOptions().ContentSelectors) {
		t.Errorf("content selectors should keep defaults, got %v", opts.ContentSelectors)
	}
}

func TestLoadOptions_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extractor.yaml")
	if err := os.WriteFile(path, []byte("article_limit: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadOptions(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadOptions_MissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing overrides file")
	}
}
