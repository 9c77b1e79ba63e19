package content

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		url      string
		expected ContentType
	}{
		{"https://twitter.com/user/status/123", TypeTwitter},
		{"https://x.com/user/status/123", TypeTwitter},
		{"https://mobile.twitter.com/user/status/123", TypeTwitter},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", TypeYouTube},
		{"https://youtu.be/dQw4w9WgXcQ", TypeYouTube},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", TypeYouTube},
		{"https://example.com/blog/post", TypeArticle},
		{"https://news.ycombinator.com/item?id=1", TypeArticle},
	}

	for _, tt := range tests {
		if got := Detect(tt.url); got != tt.expected {
			t.Errorf("Detect(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
	}
}

func TestDetect_Deterministic(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	first := Detect(url)
	for i := 0; i < 10; i++ {
		if got := Detect(url); got != first {
			t.Fatalf("Detect(%q) returned %q after returning %q", url, got, first)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	input := "  first line  \n\n\n   second line\n\t\nthird line   "
	expected := "first line\nsecond line\nthird line"

	if got := normalizeText(input); got != expected {
		t.Errorf("normalizeText() = %q, expected %q", got, expected)
	}
}

func TestNormalizeText_Empty(t *testing.T) {
	if got := normalizeText("  \n \t \n  "); got != "" {
		t.Errorf("normalizeText() = %q, expected empty string", got)
	}
}

func TestTruncate(t *testing.T) {
	marker := "\n\n[Content truncated...]"
	text := strings.Repeat("a", 150)

	got := truncate(text, 100, marker)

	if len(got) != 100+len(marker) {
		t.Errorf("truncated length = %d, expected %d", len(got), 100+len(marker))
	}
	if !strings.HasSuffix(got, marker) {
		t.Errorf("truncated text does not end with marker: %q", got[len(got)-30:])
	}
	if got[:100] != text[:100] {
		t.Errorf("truncated text does not preserve the first 100 bytes")
	}
}

func TestTruncate_UnderLimit(t *testing.T) {
	text := "short content"

	if got := truncate(text, 100, "[marker]"); got != text {
		t.Errorf("truncate() = %q, expected unchanged %q", got, text)
	}
}

func TestTruncate_MultiByte(t *testing.T) {
	marker := "\n\n[Content truncated...]"
	text := strings.Repeat("日", 150)

	got := truncate(text, 100, marker)

	if !utf8.ValidString(got) {
		t.Fatal("truncated text is not valid UTF-8")
	}
	if !strings.HasSuffix(got, marker) {
		t.Fatalf("truncated text does not end with marker: %q", got)
	}

	trimmed := strings.TrimSuffix(got, marker)
	if n := utf8.RuneCountInString(trimmed); n != 100 {
		t.Errorf("truncated to %d characters, expected 100", n)
	}
	if trimmed != strings.Repeat("日", 100) {
		t.Error("truncated text does not preserve the first 100 characters")
	}
}

func TestTruncate_MultiByteUnderLimit(t *testing.T) {
	// 100 characters but 300 bytes: the limit counts characters.
	text := strings.Repeat("日", 100)

	if got := truncate(text, 100, "[marker]"); got != text {
		t.Errorf("truncate() modified text within the character limit")
	}
}

func TestTruncate_ExactLimit(t *testing.T) {
	text := strings.Repeat("a", 100)

	if got := truncate(text, 100, "[marker]"); got != text {
		t.Errorf("truncate() modified text of exactly the limit length")
	}
}
