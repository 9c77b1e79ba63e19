package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	transcriptTruncationMark = "\n\n[Transcript truncated...]"
	fallbackVideoTitle       = "YouTube Video"
)

// videoIDPatterns are tried in order; the first match wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

var videoTitleSuffix = regexp.MustCompile(`\s*-\s*YouTube\s*$`)

func extractVideoID(rawURL string) string {
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return match[1]
		}
	}
	return ""
}

func (f *Fetcher) fetchVideo(ctx context.Context, rawURL string) (*FetchedContent, error) {
	videoID := extractVideoID(rawURL)
	if videoID == "" {
		return nil, fmt.Errorf("%w: could not extract video ID from URL: %s", ErrFetch, rawURL)
	}

	// Title lookup is best-effort and never aborts the fetch.
	title := f.videoTitle(ctx, rawURL)

	text, err := f.transcripts.Fetch(ctx, videoID)
	switch {
	case err == nil:
	case errors.Is(err, ErrTranscriptsDisabled) || errors.Is(err, ErrNoTranscript):
		text = fmt.Sprintf("[Transcript not available: %s]", err)
	default:
		text = fmt.Sprintf("[Error fetching transcript: %s]", err)
	}

	if err != nil {
		slog.Debug("Transcript unavailable", "video_id", videoID, "error", err)
	}

	return &FetchedContent{
		URL:         rawURL,
		Title:       title,
		Content:     truncate(text, f.opts.TranscriptLimit, transcriptTruncationMark),
		ContentType: TypeYouTube,
	}, nil
}

func (f *Fetcher) videoTitle(ctx context.Context, rawURL string) string {
	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return fallbackVideoTitle
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallbackVideoTitle
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fallbackVideoTitle
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	title = strings.TrimSpace(videoTitleSuffix.ReplaceAllString(title, ""))
	if title == "" {
		return fallbackVideoTitle
	}

	return title
}
