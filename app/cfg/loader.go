package cfg

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Outbound service credentials
	AnthropicAPIKey string `long:"anthropic-api-key" env:"ANTHROPIC_API_KEY" description:"Anthropic API key (required)" required:"true"`
	AnthropicModel  string `long:"anthropic-model" env:"ANTHROPIC_MODEL" default:"claude-sonnet-4-20250514" description:"Model used for relevance analysis"`
	GitHubToken     string `long:"github-token" env:"GITHUB_TOKEN" description:"GitHub token for the library repository (required)" required:"true"`
	LibraryRepo     string `long:"library-repo" env:"LIBRARY_REPO" description:"Library repository in owner/repo format (required)" required:"true"`

	// Application configuration
	LogsDir            string `long:"logs-dir" env:"LOGS_DIR" default:"logs" description:"Directory for per-project review logs"`
	Port               string `long:"port" env:"PORT" default:"8000" description:"HTTP server port"`
	StaticDir          string `long:"static-dir" env:"STATIC_DIR" description:"Directory with the frontend assets (optional)"`
	ExtractorOverrides string `long:"extractor-overrides" env:"EXTRACTOR_OVERRIDES" description:"YAML file with extractor overrides (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if !strings.Contains(raw.LibraryRepo, "/") {
		return nil, fmt.Errorf("invalid library repository %q, expected owner/repo", raw.LibraryRepo)
	}

	cfg := &Cfg{
		AnthropicAPIKey:    raw.AnthropicAPIKey,
		AnthropicModel:     raw.AnthropicModel,
		GitHubToken:        raw.GitHubToken,
		LibraryRepo:        raw.LibraryRepo,
		LogsDir:            raw.LogsDir,
		Port:               raw.Port,
		StaticDir:          raw.StaticDir,
		ExtractorOverrides: raw.ExtractorOverrides,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
