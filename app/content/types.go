package content

import (
	"context"
	"errors"
)

// ContentType classifies a URL by its hosting domain.
type ContentType string

const (
	TypeArticle ContentType = "article"
	TypeTwitter ContentType = "twitter"
	TypeYouTube ContentType = "youtube"
	TypeUnknown ContentType = "unknown"
)

// FetchedContent is the uniform output of every extraction strategy.
type FetchedContent struct {
	URL         string
	Title       string
	Content     string
	ContentType ContentType
}

// ErrFetch marks hard acquisition failures: unreachable URLs, non-2xx
// responses, pages with no extractable text, unparseable video URLs.
// Soft failures (missing transcript, blocked post) are absorbed into the
// content as marker strings and never surface as errors.
var ErrFetch = errors.New("content fetch failed")

var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscript        = errors.New("no transcript found for this video")
)

// TranscriptSource retrieves a plain-text transcript for a video ID.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

var _ TranscriptSource = (*TranscriptClient)(nil)
