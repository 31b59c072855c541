package dto

import (
	"time"

	"github.com/yukikurage/ticket-tracker/internal/models"
	"github.com/yukikurage/ticket-tracker/internal/utils"
)

// UserDTO represents a ticket owner in API responses. The password hash and
// admin flag are never exposed.
type UserDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// TicketDTO represents a ticket in API responses
type TicketDTO struct {
	ID          uint64                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    models.TicketCategory `json:"category"`
	Budget      string                `json:"budget"`
	Priority    models.TicketPriority `json:"priority"`
	Status      models.TicketStatus   `json:"status"`
	UserID      uint64                `json:"user_id"`
	Owner       *UserDTO              `json:"owner,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// TicketListResponse represents a paginated list of tickets
type TicketListResponse struct {
	Tickets    []TicketDTO              `json:"tickets"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}
}

// ToTicketDTO converts a Ticket model to TicketDTO
func ToTicketDTO(ticket models.Ticket) TicketDTO {
	dto := TicketDTO{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Category:    ticket.Category,
		Budget:      ticket.Budget,
		Priority:    ticket.Priority,
		Status:      ticket.Status,
		UserID:      ticket.UserID,
		CreatedAt:   ticket.CreatedAt,
	}

	// Include owner if joined
	if ticket.Owner.ID != 0 {
		owner := ToUserDTO(ticket.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToTicketListResponse converts one page of tickets to TicketListResponse
func ToTicketListResponse(tickets []models.Ticket, params utils.PaginationParams, total int64) TicketListResponse {
	items := make([]TicketDTO, len(tickets))
	for i, ticket := range tickets {
		items[i] = ToTicketDTO(ticket)
	}

	return TicketListResponse{
		Tickets:    items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
