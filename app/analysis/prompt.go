package analysis

import (
	"fmt"

	"github.com/braindrive/scout/app/content"
	"github.com/braindrive/scout/app/library"
)

const analysisPromptFormat = `You are a research analyst helping evaluate whether external content is relevant to a software project.

## Project Context
Project Name: %s

%s

## Content to Analyze
Title: %s
Type: %s
URL: %s

Content:
%s

## Your Task
Analyze how relevant this content is to the project above. Consider:
- Does it address problems the project is trying to solve?
- Does it describe techniques, patterns, or approaches applicable to the project?
- Does it contain insights that could improve the project's design or implementation?
- Does it cover related technologies or integrations mentioned in the project?

Respond with a JSON object in this exact format:
{
  "relevance": "high" | "medium" | "low",
  "insights": [
    "Insight 1 - specific observation about how this content relates to the project",
    "Insight 2 - another relevant observation"
  ],
  "suggestions": [
    "Suggestion 1 - specific actionable idea for the project based on this content",
    "Suggestion 2 - another actionable suggestion"
  ]
}

Guidelines for relevance levels:
- "high": Directly applicable to core project goals, describes similar systems, or offers immediately useful patterns
- "medium": Tangentially related, covers adjacent topics, or provides general best practices that could help
- "low": Minimal connection to project goals, mostly unrelated content

Provide 2-4 insights and 1-3 suggestions. Be specific and reference both the content and project details.
Only output the JSON object, no other text.`

const chatSystemFormat = `You are a research assistant helping discuss content that was analyzed for relevance to a software project.

## Project Context
Project Name: %s

%s

## Original Analyzed Content
%s

## Initial Analysis Results
%s

## Your Role
Help the user explore this content further. You can:
- Explain insights in more detail
- Discuss how specific parts of the content apply to the project
- Suggest implementation approaches based on the content
- Answer questions about the content or the analysis
- Provide additional context or clarification

Be concise but thorough. Reference specific parts of the content when relevant.`

func buildAnalysisPrompt(fetched *content.FetchedContent, project library.ProjectContext) string {
	return fmt.Sprintf(analysisPromptFormat,
		project.Name,
		project.CombinedContext(),
		fetched.Title,
		fetched.ContentType,
		fetched.URL,
		fetched.Content,
	)
}

func buildChatSystemPrompt(project library.ProjectContext, analysisContext, initialAnalysis string) string {
	return fmt.Sprintf(chatSystemFormat,
		project.Name,
		project.CombinedContext(),
		analysisContext,
		initialAnalysis,
	)
}
