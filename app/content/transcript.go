package content

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
)

const watchPageBase = "https://www.youtube.com/watch?v="

// TranscriptClient retrieves video transcripts through the caption
// tracks advertised on the watch page: the page embeds a JSON list of
// track URLs, each serving timed text segments as XML.
type TranscriptClient struct {
	httpClient *http.Client
	userAgent  string
	watchBase  string
}

func NewTranscriptClient(httpClient *http.Client, userAgent string) *TranscriptClient {
	return &TranscriptClient{
		httpClient: httpClient,
		userAgent:  userAgent,
		watchBase:  watchPageBase,
	}
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

type timedText struct {
	Segments []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch returns the space-joined transcript for a video ID.
// ErrTranscriptsDisabled and ErrNoTranscript signal soft conditions the
// caller is expected to absorb.
func (c *TranscriptClient) Fetch(ctx context.Context, videoID string) (string, error) {
	page, err := c.getBody(ctx, c.watchBase+videoID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch watch page: %w", err)
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		return "", err
	}

	track := pickTrack(tracks)

	body, err := c.getBody(ctx, track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch caption track: %w", err)
	}

	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse caption track: %w", err)
	}

	var parts []string
	for _, segment := range parsed.Segments {
		text := strings.TrimSpace(html.UnescapeString(segment.Text))
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", ErrNoTranscript
	}

	return strings.Join(parts, " "), nil
}

func (c *TranscriptClient) getBody(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}

	return io.ReadAll(resp.Body)
}

// parseCaptionTracks extracts the caption track list from the watch page.
// A page without the captionTracks key means captions are turned off.
func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	const key = `"captionTracks":`

	idx := bytes.Index(page, []byte(key))
	if idx < 0 {
		return nil, ErrTranscriptsDisabled
	}

	span := balancedArray(page[idx+len(key):])
	if span == nil {
		return nil, ErrNoTranscript
	}

	var tracks []captionTrack
	if err := json.Unmarshal(span, &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	return tracks, nil
}

// balancedArray returns the first bracket-balanced JSON array in data,
// respecting string literals and escapes.
func balancedArray(data []byte) []byte {
	start := bytes.IndexByte(data, '[')
	if start < 0 {
		return nil
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(data); i++ {
		b := data[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return data[start : i+1]
			}
		}
	}

	return nil
}

// pickTrack prefers an English track, falling back to the first one.
func pickTrack(tracks []captionTrack) captionTrack {
	for _, track := range tracks {
		if track.LanguageCode == "en" || strings.HasPrefix(track.LanguageCode, "en-") {
			return track
		}
	}
	return tracks[0]
}
