package models

import "time"

// AdminClaimID is the only primary key an AdminClaim row may have, so at
// most one registration can ever insert it.
const AdminClaimID uint64 = 1

type AdminClaim struct {
	ID        uint64    `gorm:"primarykey;autoIncrement:false" json:"id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
