package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options tunes the extraction strategies. Zero values fall back to the
// defaults, so a partial overrides file only replaces what it names.
type Options struct {
	ArticleLimit     int      `yaml:"article_limit"`
	TranscriptLimit  int      `yaml:"transcript_limit"`
	ContentSelectors []string `yaml:"content_selectors"`
	MirrorHosts      []string `yaml:"mirror_hosts"`
}

// DefaultOptions returns the built-in extraction settings.
func DefaultOptions() Options {
	return Options{
		ArticleLimit:    10000,
		TranscriptLimit: 15000,
		ContentSelectors: []string{
			"article",
			"main",
			`[role="main"]`,
			".post-content",
			".article-content",
		},
		MirrorHosts: []string{
			"nitter.net",
			"nitter.privacydev.net",
		},
	}
}

// LoadOptions loads extraction overrides from a YAML file. An empty path
// returns the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read extractor overrides: %w", err)
	}

	var overrides Options
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return opts, fmt.Errorf("failed to parse extractor overrides: %w", err)
	}

	if overrides.ArticleLimit != 0 {
		opts.ArticleLimit = overrides.ArticleLimit
	}
	if overrides.TranscriptLimit != 0 {
		opts.TranscriptLimit = overrides.TranscriptLimit
	}
	if len(overrides.ContentSelectors) > 0 {
		opts.ContentSelectors = overrides.ContentSelectors
	}
	if len(overrides.MirrorHosts) > 0 {
		opts.MirrorHosts = overrides.MirrorHosts
	}

	if err := validateOptions(opts); err != nil {
		return DefaultOptions(), fmt.Errorf("invalid extractor overrides %s: %w", path, err)
	}

	return opts, nil
}

func validateOptions(opts Options) error {
	if opts.ArticleLimit < 0 {
		return fmt.Errorf("article limit must be non-negative")
	}
	if opts.TranscriptLimit < 0 {
		return fmt.Errorf("transcript limit must be non-negative")
	}
	return nil
}
