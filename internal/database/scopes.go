package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/ticket-tracker/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// NewestFirst orders tickets by creation time, newest first. The id breaks
// ties between tickets created within the same clock tick.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("tickets.created_at DESC").Order("tickets.id DESC")
}
