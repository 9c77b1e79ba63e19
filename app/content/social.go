package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	fallbackPostTitle   = "X/Twitter Post"
	protectedPostNotice = "[Could not fetch tweet content. The post may be protected or require authentication.]"
	mirrorPostSelector  = ".tweet-content"
)

// fetchSocialPost extracts short-form post content: direct fetch first
// (public posts expose the text via og: metadata), then each mirror host
// in order. Every outcome short of an unparseable URL produces a valid
// FetchedContent; an empty ladder collapses to a placeholder notice.
func (f *Fetcher) fetchSocialPost(ctx context.Context, rawURL string) (*FetchedContent, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse post URL %s: %v", ErrFetch, rawURL, err)
	}

	title := fallbackPostTitle
	var text string

	if resp, err := f.get(ctx, rawURL); err == nil {
		func() {
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return
			}

			doc, derr := goquery.NewDocumentFromReader(resp.Body)
			if derr != nil {
				return
			}

			text = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))

			if t := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", "")); t != "" {
				title = t
			}
		}()
	}

	if text == "" {
		text = f.fetchFromMirrors(ctx, parsed.Path)
	}

	if text == "" {
		text = protectedPostNotice
	}

	return &FetchedContent{
		URL:         rawURL,
		Title:       title,
		Content:     text,
		ContentType: TypeTwitter,
	}, nil
}

// fetchFromMirrors walks the mirror hosts with the original post path,
// stopping at the first non-empty content match.
func (f *Fetcher) fetchFromMirrors(ctx context.Context, path string) string {
	for _, host := range f.opts.MirrorHosts {
		mirrorURL := mirrorBase(host) + path

		resp, err := f.get(ctx, mirrorURL)
		if err != nil {
			slog.Debug("Mirror fetch failed", "mirror", host, "error", err)
			continue
		}

		text := func() string {
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return ""
			}

			doc, derr := goquery.NewDocumentFromReader(resp.Body)
			if derr != nil {
				return ""
			}

			return strings.TrimSpace(doc.Find(mirrorPostSelector).First().Text())
		}()

		if text != "" {
			return text
		}
	}

	return ""
}

// mirrorBase accepts bare hosts as well as full scheme-qualified entries
// from the overrides file.
func mirrorBase(host string) string {
	if strings.Contains(host, "://") {
		return strings.TrimSuffix(host, "/")
	}
	return "https://" + host
}
