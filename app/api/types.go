package api

import (
	"context"
	"time"

	"github.com/braindrive/scout/app/analysis"
	"github.com/braindrive/scout/app/content"
	"github.com/braindrive/scout/app/library"
	"github.com/braindrive/scout/app/review"
)

type OrchestratorInterface interface {
	ReviewSingle(ctx context.Context, url, projectName, manual string) (*review.SingleResult, error)
	ReviewAll(ctx context.Context, url, manual string) (*review.MultiResult, error)
}

type ProjectStoreInterface interface {
	ListProjects(ctx context.Context) ([]library.ProjectInfo, error)
	LoadProjectContext(ctx context.Context, name string) (library.ProjectContext, error)
}

type ChatInterface interface {
	Chat(ctx context.Context, messages []analysis.ChatMessage, project library.ProjectContext, analysisContext, initialAnalysis string) (string, error)
}

var (
	_ OrchestratorInterface = (*review.Orchestrator)(nil)
	_ ProjectStoreInterface = (*library.Store)(nil)
	_ ChatInterface         = (*analysis.Analyzer)(nil)
)

type Handler struct {
	orchestrator OrchestratorInterface
	store        ProjectStoreInterface
	chat         ChatInterface
	version      string
}

type ReviewRequest struct {
	URL     string `json:"url" binding:"required,url"`
	Project string `json:"project" binding:"required"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Project         string                 `json:"project" binding:"required"`
	Messages        []analysis.ChatMessage `json:"messages" binding:"required"`
	AnalysisContext string                 `json:"analysis_context"`
	InitialAnalysis string                 `json:"initial_analysis"`
}

type ProjectInfoResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
}

type ProjectListResponse struct {
	Projects []ProjectInfoResponse `json:"projects"`
}

type ReviewResponse struct {
	URL         string                  `json:"url"`
	Project     string                  `json:"project"`
	Title       string                  `json:"title"`
	ContentType content.ContentType     `json:"content_type"`
	Relevance   analysis.RelevanceLevel `json:"relevance"`
	Insights    []string                `json:"insights"`
	Suggestions []string                `json:"suggestions"`
	LoggedAt    time.Time               `json:"logged_at"`
}

type ProjectRelevanceResponse struct {
	Project     string                  `json:"project"`
	Relevance   analysis.RelevanceLevel `json:"relevance"`
	Insights    []string                `json:"insights"`
	Suggestions []string                `json:"suggestions"`
}

type MultiProjectReviewResponse struct {
	URL         string                     `json:"url"`
	Title       string                     `json:"title"`
	ContentType content.ContentType        `json:"content_type"`
	Results     []ProjectRelevanceResponse `json:"results"`
	LoggedAt    time.Time                  `json:"logged_at"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
