package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/braindrive/scout/app/analysis"
	"github.com/braindrive/scout/app/content"
)

// Writer appends human-readable review records to one markdown log per
// project. Existing bytes are never rewritten; the date header for a
// given day is inserted at most once per file.
type Writer struct {
	logsDir string
	now     func() time.Time
}

func NewWriter(logsDir string) *Writer {
	return &Writer{
		logsDir: logsDir,
		now:     time.Now,
	}
}

// LogReview appends one entry to the project's log and returns the
// timestamp recorded in it.
func (w *Writer) LogReview(projectName string, fetched *content.FetchedContent, result analysis.AnalysisResult) (time.Time, error) {
	if err := os.MkdirAll(w.logsDir, 0o755); err != nil {
		return time.Time{}, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logPath := filepath.Join(w.logsDir, projectName+".md")
	now := w.now()
	dateHeader := "## " + now.Format("2006-01-02")

	existing, err := os.ReadFile(logPath)
	fileExists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return time.Time{}, fmt.Errorf("failed to read log file: %w", err)
	}

	var parts []string

	if !fileExists {
		parts = append(parts, fmt.Sprintf("# Research Log: %s\n", projectName))
	}

	if !strings.Contains(string(existing), dateHeader) {
		parts = append(parts, fmt.Sprintf("\n%s\n", dateHeader))
	}

	parts = append(parts,
		fmt.Sprintf("\n### [%s](%s)", fetched.Title, fetched.URL),
		fmt.Sprintf("*Reviewed at %s | Type: %s*\n", now.Format("15:04"), fetched.ContentType),
		fmt.Sprintf("- **Relevance**: %s", result.Relevance),
	)

	if len(result.Insights) > 0 {
		parts = append(parts, "- **Key insights**:")
		for _, insight := range result.Insights {
			parts = append(parts, "  - "+insight)
		}
	}

	if len(result.Suggestions) > 0 {
		parts = append(parts, "- **Suggestions**:")
		for _, suggestion := range result.Suggestions {
			parts = append(parts, "  - "+suggestion)
		}
	}

	parts = append(parts, "")

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(strings.Join(parts, "\n")); err != nil {
		return time.Time{}, fmt.Errorf("failed to append log entry: %w", err)
	}

	return now, nil
}
