package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item represents a menu item. Immutable reference data during a billing
// session; created and edited through the admin flows.
type Item struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Price     float64        `gorm:"not null;check:price >= 0" json:"price"`
	Category  string         `gorm:"size:100;default:''" json:"category"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}
