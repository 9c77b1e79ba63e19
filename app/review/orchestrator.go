package review

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/braindrive/scout/app/analysis"
	"github.com/braindrive/scout/app/content"
)

// Orchestrator composes fetching, context loading, analysis and logging
// for the two review modes.
type Orchestrator struct {
	fetcher  ContentFetcher
	store    ProjectStore
	analyzer Analyzer
	logger   ReviewLogger
}

func NewOrchestrator(fetcher ContentFetcher, store ProjectStore, analyzer Analyzer, logger ReviewLogger) *Orchestrator {
	return &Orchestrator{
		fetcher:  fetcher,
		store:    store,
		analyzer: analyzer,
		logger:   logger,
	}
}

// acquire fetches the URL, falling back to caller-supplied manual
// content when the fetch fails or yields blank text.
func (o *Orchestrator) acquire(ctx context.Context, url, manual string) (*content.FetchedContent, error) {
	fetched, err := o.fetcher.Fetch(ctx, url)

	if (err != nil || strings.TrimSpace(fetched.Content) == "") && manual != "" {
		return &content.FetchedContent{
			URL:         url,
			Title:       "Manual Content",
			Content:     manual,
			ContentType: content.Detect(url),
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	return fetched, nil
}

// ReviewSingle runs the pipeline for one project. Logging failures are
// reported but never fail the review.
func (o *Orchestrator) ReviewSingle(ctx context.Context, url, projectName, manual string) (*SingleResult, error) {
	fetched, err := o.acquire(ctx, url, manual)
	if err != nil {
		return nil, err
	}

	project, err := o.store.LoadProjectContext(ctx, projectName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextLoad, err)
	}

	if !project.HasContext() {
		return nil, fmt.Errorf("%w: %s", ErrNoContext, projectName)
	}

	result, err := o.analyzer.Analyze(ctx, fetched, project)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}

	loggedAt, err := o.logger.LogReview(projectName, fetched, result)
	if err != nil {
		slog.Warn("Failed to log review", "project", projectName, "error", err)
		loggedAt = time.Now()
	}

	return &SingleResult{
		URL:         url,
		Project:     projectName,
		Title:       fetched.Title,
		ContentType: fetched.ContentType,
		Relevance:   result.Relevance,
		Insights:    result.Insights,
		Suggestions: result.Suggestions,
		LoggedAt:    loggedAt,
	}, nil
}

// ReviewAll fans the content out across every known project, strictly
// sequentially so results come back in a stable, reproducible order.
// A failing project is logged and skipped, never aborting the batch.
// Low-relevance verdicts are dropped as noise.
func (o *Orchestrator) ReviewAll(ctx context.Context, url, manual string) (*MultiResult, error) {
	fetched, err := o.acquire(ctx, url, manual)
	if err != nil {
		return nil, err
	}

	projects, err := o.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjectList, err)
	}

	var results []ProjectResult

	for _, info := range projects {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		project, err := o.store.LoadProjectContext(ctx, info.Name)
		if err != nil {
			slog.Warn("Skipping project, context load failed", "project", info.Name, "error", err)
			continue
		}

		if !project.HasContext() {
			continue
		}

		result, err := o.analyzer.Analyze(ctx, fetched, project)
		if err != nil {
			slog.Warn("Skipping project, analysis failed", "project", info.Name, "error", err)
			continue
		}

		if result.Relevance != analysis.RelevanceHigh && result.Relevance != analysis.RelevanceMedium {
			continue
		}

		if _, err := o.logger.LogReview(info.Name, fetched, result); err != nil {
			slog.Warn("Failed to log review", "project", info.Name, "error", err)
		}

		results = append(results, ProjectResult{
			Project:     info.Name,
			Relevance:   result.Relevance,
			Insights:    result.Insights,
			Suggestions: result.Suggestions,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance.Rank() < results[j].Relevance.Rank()
	})

	return &MultiResult{
		URL:         url,
		Title:       fetched.Title,
		ContentType: fetched.ContentType,
		Results:     results,
		LoggedAt:    time.Now(),
	}, nil
}
