package entity

import (
	"time"

	"github.com/LokeshN1/bill-master/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Table represents a physical or logical seating unit. TableNumber is either
// a numeric identifier ("5", "12A") or a custom name ("Patio"); it is unique
// across the floor.
//
// Invariant: Status is occupied if and only if the table has a non-empty cart
// in some till session or a persisted bill referenced by LastBillID.
type Table struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TableNumber string           `gorm:"size:50;unique;not null" json:"table_number"`
	Status      enum.TableStatus `gorm:"size:20;default:available" json:"status"`
	Capacity    int              `gorm:"default:4" json:"capacity"`
	LastBillID  *uuid.UUID       `gorm:"type:uuid" json:"last_bill_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new table
func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = enum.TableStatusAvailable
	}
	if t.Capacity == 0 {
		t.Capacity = 4
	}
	return nil
}

// TableName returns the table name for the Table model
func (Table) TableName() string {
	return "tables"
}

// TableWithStatus decorates a table with its live bill association for the
// floor overview endpoint.
type TableWithStatus struct {
	Table
	HasBill bool       `json:"has_bill"`
	BillID  *uuid.UUID `json:"bill_id,omitempty"`
}
