package models

import "time"

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusClosed     TicketStatus = "Closed"
)

type TicketCategory string

const (
	TicketCategorySoftware TicketCategory = "Software"
	TicketCategoryHardware TicketCategory = "Hardware"
	TicketCategoryGeneral  TicketCategory = "General"
	TicketCategoryOther    TicketCategory = "Other"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// Statuses, Categories and Priorities list the accepted values in display order.
var (
	Statuses   = []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed}
	Categories = []TicketCategory{TicketCategorySoftware, TicketCategoryHardware, TicketCategoryGeneral, TicketCategoryOther}
	Priorities = []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh}
)

// Valid reports whether s is one of the known statuses.
func (s TicketStatus) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Valid reports whether c is empty or one of the known categories.
func (c TicketCategory) Valid() bool {
	if c == "" {
		return true
	}
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Valid reports whether p is empty or one of the known priorities.
func (p TicketPriority) Valid() bool {
	if p == "" {
		return true
	}
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

type Ticket struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	UserID      uint64         `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    TicketCategory `gorm:"type:varchar(20)" json:"category"`
	Budget      string         `gorm:"type:varchar(100)" json:"budget"`
	Priority    TicketPriority `gorm:"type:varchar(20)" json:"priority"`
	Status      TicketStatus   `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`

	// Relations
	Owner User `gorm:"foreignKey:UserID" json:"owner,omitempty"`
}
