package library

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const activeProjectsPath = "projects/active"

const (
	specFile      = "spec.md"
	buildPlanFile = "build-plan.md"
	ideasFile     = "ideas.md"
)

const maxDescriptionLength = 100

// Store reads project context documents from the library repository
// through the GitHub contents API.
type Store struct {
	client *github.Client
	owner  string
	repo   string
}

// NewStore creates a store for a library repository in owner/repo form.
func NewStore(ctx context.Context, token, libraryRepo string) (*Store, error) {
	owner, repo, ok := strings.Cut(libraryRepo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid library repository %q, expected owner/repo", libraryRepo)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &Store{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// ListProjects enumerates the project directories under projects/active,
// skipping hidden entries. Descriptions come from each project's spec
// document and are best-effort: a failed lookup leaves them empty.
func (s *Store) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	_, entries, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, activeProjectsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var projects []ProjectInfo
	for _, entry := range entries {
		if entry.GetType() != "dir" || strings.HasPrefix(entry.GetName(), ".") {
			continue
		}

		projects = append(projects, ProjectInfo{
			Name:        entry.GetName(),
			Description: s.projectDescription(ctx, entry.GetName()),
			Path:        entry.GetPath(),
		})
	}

	return projects, nil
}

// LoadProjectContext fetches the three context documents independently.
// Missing or unreadable files degrade to absent fields; only context
// cancellation aborts the load.
func (s *Store) LoadProjectContext(ctx context.Context, name string) (ProjectContext, error) {
	project := ProjectContext{Name: name}

	for _, doc := range []struct {
		filename string
		field    *string
	}{
		{specFile, &project.Spec},
		{buildPlanFile, &project.BuildPlan},
		{ideasFile, &project.Ideas},
	} {
		if err := ctx.Err(); err != nil {
			return project, err
		}
		*doc.field = s.fetchFile(ctx, name, doc.filename)
	}

	return project, nil
}

// projectDescription extracts the first non-empty, non-heading line of
// the project's spec document, truncated to 100 characters.
func (s *Store) projectDescription(ctx context.Context, name string) string {
	spec := s.fetchFile(ctx, name, specFile)
	if spec == "" {
		return ""
	}

	for _, line := range strings.Split(spec, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if utf8.RuneCountInString(line) > maxDescriptionLength {
			return string([]rune(line)[:maxDescriptionLength-3]) + "..."
		}
		return line
	}

	return ""
}

// fetchFile returns the decoded file content, or "" when the file is
// absent or unreadable. A 404 is a normal signal, not an error.
func (s *Store) fetchFile(ctx context.Context, project, filename string) string {
	filePath := path.Join(activeProjectsPath, project, filename)

	fileContent, _, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, filePath, nil)
	if err != nil {
		if resp == nil || resp.StatusCode != http.StatusNotFound {
			slog.Debug("Failed to fetch context file", "project", project, "file", filename, "error", err)
		}
		return ""
	}

	if fileContent == nil {
		return ""
	}

	text, err := fileContent.GetContent()
	if err != nil {
		slog.Debug("Failed to decode context file", "project", project, "file", filename, "error", err)
		return ""
	}

	return text
}
