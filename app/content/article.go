package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"

	readability "codeberg.org/readeck/go-readability"
	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
)

const articleTruncationMark = "\n\n[Content truncated...]"

// strippedElements are removed before content extraction.
const strippedElements = "script, style, nav, header, footer, aside, iframe"

func (f *Fetcher) fetchArticle(ctx context.Context, rawURL string) (*FetchedContent, error) {
	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d fetching %s", ErrFetch, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrFetch, err)
	}

	contentType := resp.Header.Get("Content-Type")

	// Feed URLs are handed to the feed parser instead of the HTML path,
	// so reviewing an RSS/Atom link still yields usable text.
	if strings.Contains(strings.ToLower(contentType), "xml") {
		if fetched, ok := f.extractFeed(rawURL, body); ok {
			return fetched, nil
		}
	}

	body = decodeCharset(body, contentType)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse HTML: %v", ErrFetch, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	}
	if title == "" {
		title = "Untitled Article"
	}

	doc.Find(strippedElements).Remove()

	var text string
	for _, selector := range f.opts.ContentSelectors {
		if selection := doc.Find(selector).First(); selection.Length() > 0 {
			text = selectionText(selection)
			break
		}
	}

	if strings.TrimSpace(text) == "" {
		text = selectionText(doc.Find("body"))
	}

	normalized := normalizeText(text)

	// Last resort before giving up on the page: let readability take a
	// pass at the raw document.
	if normalized == "" {
		if article, rerr := readability.FromReader(bytes.NewReader(body), nil); rerr == nil {
			normalized = normalizeText(article.TextContent)
		}
	}

	if normalized == "" {
		return nil, fmt.Errorf("%w: no extractable text at %s", ErrFetch, rawURL)
	}

	slog.Debug("Article extracted", "url", rawURL, "title", title, "content_length", len(normalized))

	return &FetchedContent{
		URL:         rawURL,
		Title:       title,
		Content:     truncate(normalized, f.opts.ArticleLimit, articleTruncationMark),
		ContentType: TypeArticle,
	}, nil
}

// blockTags delimit text runs when flattening a node tree.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "figure": true, "footer": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "td": true,
	"th": true, "tr": true, "ul": true,
}

// selectionText flattens a selection to text, inserting newlines at
// block element boundaries. goquery's Text() concatenates text nodes
// directly, which fuses adjacent paragraphs into one line.
func selectionText(sel *goquery.Selection) string {
	var b strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}

		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			b.WriteByte('\n')
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if block {
			b.WriteByte('\n')
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return b.String()
}

// extractFeed turns an RSS/Atom document into reviewable text: the feed
// title followed by each item's title and description.
func (f *Fetcher) extractFeed(rawURL string, body []byte) (*FetchedContent, bool) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, false
	}

	var lines []string
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		if item.Title != "" {
			lines = append(lines, item.Title)
		}
		if item.Description != "" {
			lines = append(lines, item.Description)
		}
	}

	text := normalizeText(strings.Join(lines, "\n"))
	if text == "" {
		return nil, false
	}

	title := strings.TrimSpace(feed.Title)
	if title == "" {
		title = "Untitled Article"
	}

	slog.Debug("Feed extracted", "url", rawURL, "title", title, "items", len(feed.Items))

	return &FetchedContent{
		URL:         rawURL,
		Title:       title,
		Content:     truncate(text, f.opts.ArticleLimit, articleTruncationMark),
		ContentType: TypeArticle,
	}, true
}

// decodeCharset converts the body to UTF-8 using the Content-Type
// charset parameter. Unknown or missing charsets pass through unchanged.
func decodeCharset(body []byte, contentType string) []byte {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body
	}

	name := params["charset"]
	if name == "" || strings.EqualFold(name, "utf-8") {
		return body
	}

	decoded, derr := decodeWithEncoding(body, name)
	if derr != nil {
		slog.Debug("Charset decode failed, using raw body", "charset", name, "error", derr)
		return body
	}

	return decoded
}
