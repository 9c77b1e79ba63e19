package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestFetcher() *Fetcher {
	return NewFetcher("test-agent", DefaultOptions())
}

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}))
}

func TestFetchArticle_SelectorLadder(t *testing.T) {
	srv := serveHTML(t, `<html><head><title>Test Page</title></head><body>
		<nav>Navigation junk</nav>
		<article>Article body text here.</article>
		<footer>Footer junk</footer>
	</body></html>`)
	defer srv.Close()

	fetched, err := newTestFetcher().fetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetchArticle returned error: %v", err)
	}

	if fetched.Title != "Test Page" {
		t.Errorf("title = %q, expected %q", fetched.Title, "Test Page")
	}
	if fetched.ContentType != TypeArticle {
		t.Errorf("content type = %q, expected %q", fetched.ContentType, TypeArticle)
	}
	if !strings.Contains(fetched.Content, "Article body text here.") {
		t.Errorf("content missing article text: %q", fetched.Content)
	}
	if strings.Contains(fetched.Content, "Navigation junk") || strings.Contains(fetched.Content, "Footer junk") {
		t.Errorf("content includes stripped elements: %q", fetched.Content)
	}
}

func TestFetchArticle_SelectorPriority(t *testing.T) {
	srv := serveHTML(t, `<html><head><title>T</title></head><body>
		<main>Main region text</main>
		<div class="post-content">Class-matched text</div>
	</body></html>`)
	defer srv.Close()

	fetched, err := newTestFetcher().fetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetchArticle returned error: %v", err)
	}

	if !strings.Contains(fetched.Content, "Main region text") {
		t.Errorf("expected main region to win, got %q", fetched.Content)
	}
	if strings.Contains(fetched.Content, "Class-matched text") {
		t.Errorf("lower-priority selector leaked into content: %q", fetched.Content)
	}
}

func TestFetchArticle_BodyFallback(t *testing.T) {
	srv := serveHTML(t, `<html><head><title>T</title></head><body>
		<div>Plain body paragraph without any content container.</div>
	</body></html>`)
	defer srv.Close()

	fetched, err := newTestFetcher().fetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetchArticle returned error: %v", err)
	}

	if !strings.Contains(fetched.Content, "Plain body paragraph") {
		t.Errorf("body fallback missing text: %q", fetched.Content)
	}
}

func TestFetchArticle_TitleFromOpenGraph(t *testing.T) {
	srv := serveHTML(t, `<html><head>
		<meta property="og:title" content="OG Title">
	</head><body><article>text</article></body></html>`)
	defer srv.Close()

	fetched, err := newTestFetcher().fetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetchArticle returned error: %v", err)
	}

	if fetched.Title != "OG Title" {
		t.Errorf("title = %q, expected %q", fetched.Title, "OG Title")
	}
}

func TestFetchArticle_PlaceholderTitle(t *testing.T) {
	srv := serveHTML(t, `<html><body><article>text</article></body></html>`)
	defer srv.Close()

	fetched, err := newTestFetcher().fetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetchArticle returned error: %v", err)
	}

	if fetched.Title != "Untitled Article" {
		t.Errorf("title = %q, expected placeholder", fetched.Title)
	}
}

func TestFetchArticle_ParagraphsStaySeparate(t *testing.T) {
	srv := serveHTML(t, `<html><head><title>T</title></head><body>
		<article><p>First paragraph.</p><p>Second paragraph.</p><ul><li>item one</li><li>item two</li></ul></article>
	</body></html>`)
	defer srv.Close()

	fetched, err := newTestFetcher().fetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetchArticle returned error: %v", err)
	}

	if !strings.Contains(fetched.Content, "First paragraph.\nSecond paragraph.") {
		t.Errorf("adjacent paragraphs fused: %q", fetched.Content)
	}
	if !strings.Contains(fetched.Content, "item one\nitem two") {
		t.Errorf("list items fused: %q", fetched.Content)
	}
}

func TestFetchArticle_Truncation(t *testing.T) {
	long := strings.Repeat("x", 12000)
	srv := serveHTML(t, "<html><head><title>T</title></head><body><article>"+long+"</article></body></html>")
	defer srv.Close()

	f := newTestFetcher()

	fetched, err := f.fetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetchArticle returned error: %v", err)
	}

	expected := f.opts.ArticleLimit + len(articleTruncationMark)
	if len(fetched.Content) != expected {
		t.Errorf("content length = %d, expected %d", len(fetched.Content), expected)
	}
	if !strings.HasSuffix(fetched.Content, articleTruncationMark) {
		t.Errorf("content does not end with the truncation marker")
	}
}

func TestFetchArticle_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestFetcher().fetchArticle(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for HTTP 403")
	}
	if !errors.Is(err, ErrFetch) {
		t.Errorf("error %v is not an ErrFetch", err)
	}
}

func TestFetchArticle_NoExtractableText(t *testing.T) {
	srv := serveHTML(t, `<html><head><title>Empty</title></head><body></body></html>`)
	defer srv.Close()

	_, err := newTestFetcher().fetchArticle(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for page without text")
	}
	if !errors.Is(err, ErrFetch) {
		t.Errorf("error %v is not an ErrFetch", err)
	}
}

func TestFetchArticle_FeedURL(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
	<title>Example Feed</title>
	<link>https://example.com</link>
	<description>Feed description</description>
	<item><title>First Post</title><description>About the first thing</description></item>
	<item><title>Second Post</title><description>About the second thing</description></item>
</channel></rss>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		fmt.Fprint(w, rss)
	}))
	defer srv.Close()

	fetched, err := newTestFetcher().fetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetchArticle returned error: %v", err)
	}

	if fetched.Title != "Example Feed" {
		t.Errorf("title = %q, expected feed title", fetched.Title)
	}
	if !strings.Contains(fetched.Content, "First Post") || !strings.Contains(fetched.Content, "Second Post") {
		t.Errorf("feed content missing item titles: %q", fetched.Content)
	}
}

func TestDecodeCharset_Latin1(t *testing.T) {
	body := []byte{'c', 'a', 'f', 0xE9} // "café" in ISO-8859-1

	decoded := decodeCharset(body, "text/html; charset=iso-8859-1")

	if string(decoded) != "café" {
		t.Errorf("decoded = %q, expected %q", decoded, "café")
	}
}

func TestDecodeCharset_UTF8PassThrough(t *testing.T) {
	body := []byte("café")

	decoded := decodeCharset(body, "text/html; charset=utf-8")

	if string(decoded) != "café" {
		t.Errorf("decoded = %q, expected unchanged input", decoded)
	}
}
