package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/ticket-tracker/internal/models"
)

func TestParseTriageSuggestion(t *testing.T) {
	suggestion, err := parseTriageSuggestion(`{"category": "Hardware", "priority": "High"}`)
	require.NoError(t, err)
	assert.Equal(t, models.TicketCategoryHardware, suggestion.Category)
	assert.Equal(t, models.TicketPriorityHigh, suggestion.Priority)
}

func TestParseTriageSuggestion_CodeFence(t *testing.T) {
	suggestion, err := parseTriageSuggestion("```json\n{\"category\": \"Software\", \"priority\": \"Low\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, models.TicketCategorySoftware, suggestion.Category)
	assert.Equal(t, models.TicketPriorityLow, suggestion.Priority)
}

func TestParseTriageSuggestion_DropsUnknownValues(t *testing.T) {
	suggestion, err := parseTriageSuggestion(`{"category": "Plumbing", "priority": "Critical"}`)
	require.NoError(t, err)
	assert.Empty(t, suggestion.Category)
	assert.Empty(t, suggestion.Priority)
}

func TestParseTriageSuggestion_InvalidJSON(t *testing.T) {
	_, err := parseTriageSuggestion("I think this is a hardware issue.")
	assert.Error(t, err)
}

func TestTriageAdvisor_NilAdvisor(t *testing.T) {
	var advisor *TriageAdvisor
	_, err := advisor.Suggest(context.Background(), "t", "d")
	assert.Error(t, err)
}

func TestJoinValues(t *testing.T) {
	assert.Equal(t, "Low, Medium, High", joinValues(models.Priorities))
}
