package models

import "time"

// BaseModel is gorm.Model without soft deletion. Lifecycle rows carry
// unique constraints that must not be satisfied by tombstones.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
