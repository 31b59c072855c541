package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yukikurage/ticket-tracker/internal/models"
)

// TriageAdvisor asks a language model for a category and priority for a
// ticket. Suggestions are only shown to admins, never applied.
type TriageAdvisor struct {
	client *openai.Client
	model  string
}

// TriageSuggestion holds the suggested values. Either may be empty.
type TriageSuggestion struct {
	Category models.TicketCategory `json:"category"`
	Priority models.TicketPriority `json:"priority"`
}

func NewTriageAdvisor(apiKey, model string) *TriageAdvisor {
	if model == "" {
		model = openai.GPT4o
	}
	return &TriageAdvisor{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Suggest returns a triage suggestion for the given ticket text
func (a *TriageAdvisor) Suggest(ctx context.Context, title, description string) (*TriageSuggestion, error) {
	if a == nil || a.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You triage support tickets.

Title: %s
Description:
%s

Reply with a JSON object of the form {"category": "...", "priority": "..."}.
category must be one of: %s.
priority must be one of: %s.
Reply with JSON only.`, title, description, joinValues(models.Categories), joinValues(models.Priorities))

	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseTriageSuggestion(resp.Choices[0].Message.Content)
}

// parseTriageSuggestion decodes the model reply and drops values that are
// not part of the enumerations.
func parseTriageSuggestion(content string) (*TriageSuggestion, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var suggestion TriageSuggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if !suggestion.Category.Valid() {
		suggestion.Category = ""
	}
	if !suggestion.Priority.Valid() {
		suggestion.Priority = ""
	}

	return &suggestion, nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
