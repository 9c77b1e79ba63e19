package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const fetchTimeout = 30 * time.Second

// Fetcher normalizes heterogeneous sources (articles, videos, social
// posts) into FetchedContent via type-specific extraction strategies.
type Fetcher struct {
	httpClient  *http.Client
	userAgent   string
	opts        Options
	transcripts TranscriptSource
}

// NewFetcher creates a fetcher with a shared 30 second HTTP client.
// Redirects are followed by default.
func NewFetcher(userAgent string, opts Options) *Fetcher {
	client := &http.Client{Timeout: fetchTimeout}

	return &Fetcher{
		httpClient:  client,
		userAgent:   userAgent,
		opts:        opts,
		transcripts: NewTranscriptClient(client, userAgent),
	}
}

// Detect classifies a URL by host substring. Purely syntactic: no
// network call, stable for identical input.
func Detect(rawURL string) ContentType {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return TypeArticle
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case strings.Contains(host, "twitter.com") || strings.Contains(host, "x.com"):
		return TypeTwitter
	case strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be"):
		return TypeYouTube
	default:
		return TypeArticle
	}
}

// Fetch dispatches to the extraction strategy matching the URL type.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchedContent, error) {
	switch Detect(rawURL) {
	case TypeYouTube:
		return f.fetchVideo(ctx, rawURL)
	case TypeTwitter:
		return f.fetchSocialPost(ctx, rawURL)
	default:
		return f.fetchArticle(ctx, rawURL)
	}
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	return f.httpClient.Do(req)
}

// normalizeText trims every line and drops blank ones, collapsing the
// document into newline-separated content lines.
func normalizeText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// truncate caps text at limit characters with a trailing marker, never
// cutting inside a multi-byte rune. Must be the last transformation
// applied to extracted content.
func truncate(text string, limit int, marker string) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + marker
}
