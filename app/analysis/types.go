package analysis

// RelevanceLevel is the analyzer's verdict tier. Ordering is by rank
// (high before medium before low), not alphabetical.
type RelevanceLevel string

const (
	RelevanceHigh   RelevanceLevel = "high"
	RelevanceMedium RelevanceLevel = "medium"
	RelevanceLow    RelevanceLevel = "low"
)

// Rank returns the sort position of a level; unknown levels sort last.
func (l RelevanceLevel) Rank() int {
	switch l {
	case RelevanceHigh:
		return 0
	case RelevanceMedium:
		return 1
	case RelevanceLow:
		return 2
	default:
		return 99
	}
}

// ParseRelevance validates a wire value as a relevance level.
func ParseRelevance(value string) (RelevanceLevel, bool) {
	switch RelevanceLevel(value) {
	case RelevanceHigh, RelevanceMedium, RelevanceLow:
		return RelevanceLevel(value), true
	default:
		return "", false
	}
}

// AnalysisResult is produced exactly once per (content, context) pair
// and never mutated after construction.
type AnalysisResult struct {
	Relevance   RelevanceLevel
	Insights    []string
	Suggestions []string
}

// ChatMessage is one role-tagged turn of a review discussion.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
