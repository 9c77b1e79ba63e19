package review

import (
	"context"
	"errors"
	"time"

	"github.com/braindrive/scout/app/analysis"
	"github.com/braindrive/scout/app/content"
	"github.com/braindrive/scout/app/journal"
	"github.com/braindrive/scout/app/library"
)

var (
	// ErrNoContext is a precondition failure: the project exists but has
	// no context documents to analyze against.
	ErrNoContext = errors.New("project not found or has no context files")

	// ErrAnalysis marks a failed call to the text-generation service.
	ErrAnalysis = errors.New("analysis failed")

	// ErrContextLoad marks a failure loading a project's context.
	ErrContextLoad = errors.New("failed to load project context")

	// ErrProjectList marks a failure enumerating projects.
	ErrProjectList = errors.New("failed to list projects")
)

type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*content.FetchedContent, error)
}

type ProjectStore interface {
	ListProjects(ctx context.Context) ([]library.ProjectInfo, error)
	LoadProjectContext(ctx context.Context, name string) (library.ProjectContext, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, fetched *content.FetchedContent, project library.ProjectContext) (analysis.AnalysisResult, error)
}

type ReviewLogger interface {
	LogReview(projectName string, fetched *content.FetchedContent, result analysis.AnalysisResult) (time.Time, error)
}

var (
	_ ContentFetcher = (*content.Fetcher)(nil)
	_ ProjectStore   = (*library.Store)(nil)
	_ Analyzer       = (*analysis.Analyzer)(nil)
	_ ReviewLogger   = (*journal.Writer)(nil)
)

// SingleResult is the verdict for one URL against one project.
type SingleResult struct {
	URL         string
	Project     string
	Title       string
	ContentType content.ContentType
	Relevance   analysis.RelevanceLevel
	Insights    []string
	Suggestions []string
	LoggedAt    time.Time
}

// ProjectResult is one retained verdict of the all-projects fan-out.
type ProjectResult struct {
	Project     string
	Relevance   analysis.RelevanceLevel
	Insights    []string
	Suggestions []string
}

// MultiResult is the merged outcome of the all-projects fan-out, sorted
// high before medium with per-project order preserved within each tier.
type MultiResult struct {
	URL         string
	Title       string
	ContentType content.ContentType
	Results     []ProjectResult
	LoggedAt    time.Time
}
