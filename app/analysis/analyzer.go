package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/braindrive/scout/app/content"
	"github.com/braindrive/scout/app/library"
)

const (
	analysisMaxTokens = 1024
	chatMaxTokens     = 2048
)

type messageService interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Analyzer scores content relevance against a project context through
// the text-generation service. Analyze never fails on model output:
// unparseable responses degrade to a deterministic low-relevance verdict.
type Analyzer struct {
	messages messageService
	model    anthropic.Model
}

func NewAnalyzer(apiKey, model string) *Analyzer {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Analyzer{
		messages: &client.Messages,
		model:    anthropic.Model(model),
	}
}

// Analyze builds the structured prompt and parses the model's verdict.
// The returned error is non-nil only when the service call itself fails.
func (a *Analyzer) Analyze(ctx context.Context, fetched *content.FetchedContent, project library.ProjectContext) (AnalysisResult, error) {
	prompt := buildAnalysisPrompt(fetched, project)

	message, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: analysisMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("failed to call analysis model: %w", err)
	}

	result := parseVerdict(messageText(message))

	slog.Debug("Content analyzed",
		"project", project.Name,
		"url", fetched.URL,
		"relevance", result.Relevance)

	return result, nil
}

// Chat continues a stateless review discussion. The caller supplies the
// full prior transcript on every call.
func (a *Analyzer) Chat(ctx context.Context, messages []ChatMessage, project library.ProjectContext, analysisContext, initialAnalysis string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: chatMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: buildChatSystemPrompt(project, analysisContext, initialAnalysis)},
		},
	}

	for _, msg := range messages {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == "assistant" {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}

	message, err := a.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to call chat model: %w", err)
	}

	return messageText(message), nil
}

func messageText(message *anthropic.Message) string {
	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}

type rawVerdict struct {
	Relevance   string   `json:"relevance"`
	Insights    []string `json:"insights"`
	Suggestions []string `json:"suggestions"`
}

// parseVerdict extracts the JSON verdict from the raw model response.
// The whole response is tried first; only on failure is a brace-matched
// span scanned out, so well-formed output is never second-guessed.
func parseVerdict(raw string) AnalysisResult {
	var verdict rawVerdict

	err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &verdict)
	if err != nil {
		if span := balancedObject(raw); span != "" {
			err = json.Unmarshal([]byte(span), &verdict)
		}
	}
	if err != nil {
		return fallbackResult(fmt.Sprintf("Analysis parsing error: %v", err))
	}

	relevance, ok := ParseRelevance(verdict.Relevance)
	if !ok {
		return fallbackResult(fmt.Sprintf("Analysis parsing error: invalid relevance value %q", verdict.Relevance))
	}

	return AnalysisResult{
		Relevance:   relevance,
		Insights:    verdict.Insights,
		Suggestions: verdict.Suggestions,
	}
}

func fallbackResult(insight string) AnalysisResult {
	return AnalysisResult{
		Relevance:   RelevanceLow,
		Insights:    []string{insight},
		Suggestions: []string{"Please try again or review the content manually"},
	}
}

// balancedObject returns the first brace-balanced JSON object in raw,
// respecting string literals and escapes.
func balancedObject(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		b := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}

	return ""
}
