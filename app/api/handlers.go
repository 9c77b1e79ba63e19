package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/braindrive/scout/app/content"
	"github.com/braindrive/scout/app/review"
)

func NewHandler(orchestrator OrchestratorInterface, store ProjectStoreInterface, chat ChatInterface, version string) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		store:        store,
		chat:         chat,
		version:      version,
	}
}

// GetProjects lists every project discovered in the library repository.
func (h *Handler) GetProjects(c *gin.Context) {
	projects, err := h.store.ListProjects(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list projects", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects: " + err.Error()})
		return
	}

	response := ProjectListResponse{Projects: make([]ProjectInfoResponse, 0, len(projects))}
	for _, project := range projects {
		response.Projects = append(response.Projects, ProjectInfoResponse{
			Name:        project.Name,
			Description: project.Description,
			Path:        project.Path,
		})
	}

	c.JSON(http.StatusOK, response)
}

// PostReview reviews a URL against one project, or against every project
// when the request names the literal "all".
func (h *Handler) PostReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	if req.Project == "all" {
		result, err := h.orchestrator.ReviewAll(ctx, req.URL, req.Content)
		if err != nil {
			h.reviewError(c, err)
			return
		}

		response := MultiProjectReviewResponse{
			URL:         result.URL,
			Title:       result.Title,
			ContentType: result.ContentType,
			Results:     make([]ProjectRelevanceResponse, 0, len(result.Results)),
			LoggedAt:    result.LoggedAt,
		}
		for _, r := range result.Results {
			response.Results = append(response.Results, ProjectRelevanceResponse{
				Project:     r.Project,
				Relevance:   r.Relevance,
				Insights:    orEmpty(r.Insights),
				Suggestions: orEmpty(r.Suggestions),
			})
		}

		c.JSON(http.StatusOK, response)
		return
	}

	result, err := h.orchestrator.ReviewSingle(ctx, req.URL, req.Project, req.Content)
	if err != nil {
		h.reviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReviewResponse{
		URL:         result.URL,
		Project:     result.Project,
		Title:       result.Title,
		ContentType: result.ContentType,
		Relevance:   result.Relevance,
		Insights:    orEmpty(result.Insights),
		Suggestions: orEmpty(result.Suggestions),
		LoggedAt:    result.LoggedAt,
	})
}

// reviewError maps pipeline failures onto status codes: bad input (an
// unfetchable URL, a missing or context-less project) is the client's
// problem, everything downstream is ours.
func (h *Handler) reviewError(c *gin.Context, err error) {
	slog.Error("Review failed", "error", err)

	switch {
	case errors.Is(err, content.ErrFetch),
		errors.Is(err, review.ErrNoContext),
		errors.Is(err, review.ErrContextLoad):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// PostChat continues a discussion about previously analyzed content.
// Stateless: the caller resubmits the full transcript on every call.
func (h *Handler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	project, err := h.store.LoadProjectContext(ctx, req.Project)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to load project context: " + err.Error()})
		return
	}

	if !project.HasContext() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project '" + req.Project + "' not found or has no context files"})
		return
	}

	response, err := h.chat.Chat(ctx, req.Messages, project, req.AnalysisContext, req.InitialAnalysis)
	if err != nil {
		slog.Error("Chat failed", "project", req.Project, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: response})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
