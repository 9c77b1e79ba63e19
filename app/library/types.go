package library

import "strings"

// ProjectInfo describes one discovered project directory. Description is
// best-effort and may be empty.
type ProjectInfo struct {
	Name        string
	Description string
	Path        string
}

// ProjectContext carries the up-to-three context documents of a project.
// An empty field means the document is absent.
type ProjectContext struct {
	Name      string
	Spec      string
	BuildPlan string
	Ideas     string
}

const noContextSentinel = "No project context available."

// HasContext reports whether at least one context document is present.
func (c ProjectContext) HasContext() bool {
	return c.Spec != "" || c.BuildPlan != "" || c.Ideas != ""
}

// CombinedContext serializes the present documents in fixed order (spec,
// build plan, ideas), separated by a section marker. Pure function of the
// present fields.
func (c ProjectContext) CombinedContext() string {
	var parts []string

	if c.Spec != "" {
		parts = append(parts, "## Project Specification\n\n"+c.Spec)
	}
	if c.BuildPlan != "" {
		parts = append(parts, "## Build Plan\n\n"+c.BuildPlan)
	}
	if c.Ideas != "" {
		parts = append(parts, "## Ideas\n\n"+c.Ideas)
	}

	if len(parts) == 0 {
		return noContextSentinel
	}

	return strings.Join(parts, "\n\n---\n\n")
}
