package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apierrors "github.com/yukikurage/ticket-tracker/internal/errors"
	"github.com/yukikurage/ticket-tracker/internal/models"
	"github.com/yukikurage/ticket-tracker/internal/repository"
	"github.com/yukikurage/ticket-tracker/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired       = apierrors.Validation("Title is required.")
	ErrDescriptionRequired = apierrors.Validation("Description is required.")
	ErrInvalidCategory     = apierrors.Validation("Unknown category.")
	ErrInvalidPriority     = apierrors.Validation("Unknown priority.")
	ErrInvalidStatus       = apierrors.Validation("Unknown status.")
	ErrTicketNotFound      = apierrors.ErrNotFound
)

// TicketService handles the ticket lifecycle
type TicketService struct {
	ticketRepo repository.TicketRepository
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo repository.TicketRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
	}
}

// CreateTicketInput represents input for creating a ticket
type CreateTicketInput struct {
	Title       string
	Description string
	Category    string
	Budget      string
	Priority    string
}

// UpdateTicketInput represents a full overwrite of a ticket's mutable fields
type UpdateTicketInput struct {
	Title       string
	Description string
	Category    string
	Budget      string
	Priority    string
	Status      string
}

// ListTickets returns every ticket with its owner, newest first
func (s *TicketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets, err := s.ticketRepo.ListWithOwner(ctx)
	if err != nil {
		return nil, apierrors.StorageUnavailable(fmt.Errorf("list tickets: %w", err))
	}
	return tickets, nil
}

// ListTicketsPage returns one page of ListTickets and the total count
func (s *TicketService) ListTicketsPage(ctx context.Context, params utils.PaginationParams) ([]models.Ticket, int64, error) {
	tickets, total, err := s.ticketRepo.ListPage(ctx, params)
	if err != nil {
		return nil, 0, apierrors.StorageUnavailable(fmt.Errorf("list tickets: %w", err))
	}
	return tickets, total, nil
}

// GetTicket returns a single ticket
func (s *TicketService) GetTicket(ctx context.Context, id uint64) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, apierrors.StorageUnavailable(fmt.Errorf("find ticket: %w", err))
	}
	return ticket, nil
}

// CreateTicket creates a ticket owned by ownerID. New tickets always start Open.
func (s *TicketService) CreateTicket(ctx context.Context, ownerID uint64, input CreateTicketInput) (*models.Ticket, error) {
	fields, err := validateFields(input.Title, input.Description, input.Category, input.Priority)
	if err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		UserID:      ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		Category:    fields.Category,
		Budget:      strings.TrimSpace(input.Budget),
		Priority:    fields.Priority,
		Status:      models.TicketStatusOpen,
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, apierrors.StorageUnavailable(fmt.Errorf("create ticket: %w", err))
	}

	return ticket, nil
}

// UpdateTicket overwrites every mutable field, status included. Any status
// may follow any other.
func (s *TicketService) UpdateTicket(ctx context.Context, id uint64, input UpdateTicketInput) (*models.Ticket, error) {
	fields, err := validateFields(input.Title, input.Description, input.Category, input.Priority)
	if err != nil {
		return nil, err
	}

	status := models.TicketStatus(strings.TrimSpace(input.Status))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	fields.Status = status
	fields.Budget = strings.TrimSpace(input.Budget)

	ticket, err := s.ticketRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, apierrors.StorageUnavailable(fmt.Errorf("update ticket: %w", err))
	}

	return ticket, nil
}

// DeleteTicket removes a ticket. Deleting a missing ticket succeeds.
func (s *TicketService) DeleteTicket(ctx context.Context, id uint64) error {
	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		return apierrors.StorageUnavailable(fmt.Errorf("delete ticket: %w", err))
	}
	return nil
}

func validateFields(title, description, category, priority string) (repository.TicketFields, error) {
	fields := repository.TicketFields{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    models.TicketCategory(strings.TrimSpace(category)),
		Priority:    models.TicketPriority(strings.TrimSpace(priority)),
	}

	switch {
	case fields.Title == "":
		return fields, ErrTitleRequired
	case fields.Description == "":
		return fields, ErrDescriptionRequired
	case !fields.Category.Valid():
		return fields, ErrInvalidCategory
	case !fields.Priority.Valid():
		return fields, ErrInvalidPriority
	}

	return fields, nil
}
