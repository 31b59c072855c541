package repository

import (
	"context"

	"github.com/yukikurage/ticket-tracker/internal/database"
	"github.com/yukikurage/ticket-tracker/internal/models"
	"github.com/yukikurage/ticket-tracker/internal/utils"
	"gorm.io/gorm"
)

// GormTicketRepository is a GORM implementation of TicketRepository
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &GormTicketRepository{db: db}
}

// Create creates a new ticket
func (r *GormTicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Omit("Owner").Create(ticket).Error
}

// FindByID finds a ticket by ID
func (r *GormTicketRepository) FindByID(ctx context.Context, id uint64) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListWithOwner returns every ticket joined with its owner, newest first
func (r *GormTicketRepository) ListWithOwner(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		InnerJoins("Owner").
		Scopes(database.NewestFirst).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListPage returns one page of tickets joined with their owners
func (r *GormTicketRepository) ListPage(ctx context.Context, params utils.PaginationParams) ([]models.Ticket, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Joins("JOIN users ON users.id = tickets.user_id").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		InnerJoins("Owner").
		Scopes(database.NewestFirst, database.Paginate(params)).
		Find(&tickets).Error
	if err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// UpdateFields overwrites every mutable field of an existing ticket
func (r *GormTicketRepository) UpdateFields(ctx context.Context, id uint64, fields TicketFields) (*models.Ticket, error) {
	var ticket models.Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, id).Error; err != nil {
			return err
		}

		ticket.Title = fields.Title
		ticket.Description = fields.Description
		ticket.Category = fields.Category
		ticket.Budget = fields.Budget
		ticket.Priority = fields.Priority
		ticket.Status = fields.Status

		// Select forces empty strings to be written too.
		return tx.Model(&ticket).
			Select("title", "description", "category", "budget", "priority", "status").
			Updates(&ticket).Error
	})
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

// Delete removes a ticket
func (r *GormTicketRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Ticket{}, id).Error
}
