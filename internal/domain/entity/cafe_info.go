package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CafeInfo holds the café details printed on receipt headers. It is a
// singleton resource: the first PUT creates it, later PUTs update it.
type CafeInfo struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Address      string    `gorm:"size:500;not null" json:"address"`
	Contact      string    `gorm:"size:50;not null" json:"contact"`
	GSTNumber    string    `gorm:"size:50;not null" json:"gst_number"`
	Logo         string    `gorm:"size:500;default:''" json:"logo,omitempty"`
	Website      string    `gorm:"size:255;default:''" json:"website,omitempty"`
	Email        string    `gorm:"size:255;default:''" json:"email,omitempty"`
	OpeningHours string    `gorm:"size:100;default:''" json:"opening_hours,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the café info record
func (i *CafeInfo) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CafeInfo model
func (CafeInfo) TableName() string {
	return "cafe_info"
}
