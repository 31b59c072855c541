package repository

import (
	"context"

	"github.com/yukikurage/ticket-tracker/internal/models"
	"github.com/yukikurage/ticket-tracker/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a user. When claimAdmin is set the insert also tries to
	// take the single admin claim; if another user already holds it the new
	// user is stored with IsAdmin=false. Returns ErrDuplicateEmail when the
	// email is taken.
	Create(ctx context.Context, user *models.User, claimAdmin bool) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Count returns the number of registered users
	Count(ctx context.Context) (int64, error)
}

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// Create creates a new ticket
	Create(ctx context.Context, ticket *models.Ticket) error

	// FindByID finds a ticket by ID
	FindByID(ctx context.Context, id uint64) (*models.Ticket, error)

	// ListWithOwner returns every ticket with its owner loaded, newest first
	ListWithOwner(ctx context.Context) ([]models.Ticket, error)

	// ListPage returns one page of ListWithOwner and the total ticket count
	ListPage(ctx context.Context, params utils.PaginationParams) ([]models.Ticket, int64, error)

	// UpdateFields overwrites every mutable field of the ticket
	UpdateFields(ctx context.Context, id uint64, fields TicketFields) (*models.Ticket, error)

	// Delete removes a ticket; deleting a missing ticket is not an error
	Delete(ctx context.Context, id uint64) error
}

// TicketFields holds the mutable columns of a ticket
type TicketFields struct {
	Title       string
	Description string
	Category    models.TicketCategory
	Budget      string
	Priority    models.TicketPriority
	Status      models.TicketStatus
}
