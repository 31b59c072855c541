package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/ticket-tracker/internal/models"
	"github.com/yukikurage/ticket-tracker/internal/utils"
)

func TestToTicketDTO_HidesOwnerSecrets(t *testing.T) {
	ticket := models.Ticket{
		ID:          7,
		UserID:      2,
		Title:       "T1",
		Description: "d",
		Status:      models.TicketStatusOpen,
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Owner:       models.User{ID: 2, Email: "b@x.com", PasswordHash: "$2a$10$secret", IsAdmin: true},
	}

	body, err := json.Marshal(ToTicketDTO(ticket))
	require.NoError(t, err)

	assert.Contains(t, string(body), `"owner":{"id":2,"email":"b@x.com"}`)
	assert.NotContains(t, string(body), "secret")
	assert.NotContains(t, string(body), "is_admin")
}

func TestToTicketDTO_WithoutOwner(t *testing.T) {
	dto := ToTicketDTO(models.Ticket{ID: 1, UserID: 3})
	assert.Nil(t, dto.Owner)
	assert.Equal(t, uint64(3), dto.UserID)
}

func TestToTicketListResponse(t *testing.T) {
	tickets := []models.Ticket{{ID: 2}, {ID: 1}}

	resp := ToTicketListResponse(tickets, utils.PaginationParams{Page: 1, Limit: 2}, 5)

	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, uint64(2), resp.Tickets[0].ID)
	assert.Equal(t, int64(5), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestToTicketListResponse_EmptyIsArray(t *testing.T) {
	body, err := json.Marshal(ToTicketListResponse(nil, utils.PaginationParams{Page: 1, Limit: 20}, 0))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"tickets":[]`)
}
