package models

import (
	"time"
)

// Topic is a discussion thread. It only ever exists together with at least
// one Post: creation is atomic with the opening post, and deleting the last
// post removes the topic too.
type Topic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	UserID    *uint     `gorm:"index" json:"user_id"` // nullable, topics may be orphaned
	User      *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`
	CreatedAt time.Time `json:"created_at"`

	// Filled by a grouped count query, not a column.
	PostCount int `gorm:"-" json:"post_count"`
}
