package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LokeshN1/bill-master/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillLine is one line item on a bill: a menu item with the quantity ordered.
type BillLine struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// BillLines is stored as a single jsonb column, keeping the bill a
// self-contained document the way the receipt archive expects it.
type BillLines []BillLine

func (l BillLines) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *BillLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("billlines: unsupported scan type %T", value)
}

// Bill is a persisted, numbered record of an order linked to a table.
// TotalAmount equals the sum of line price x quantity unless it was
// explicitly overridden at creation.
type Bill struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BillNumber    string             `gorm:"size:100;unique;not null" json:"bill_number"`
	TableNumber   string             `gorm:"size:50;not null;index" json:"table_number"`
	Lines         BillLines          `gorm:"type:jsonb;not null" json:"items"`
	TotalAmount   float64            `gorm:"not null" json:"total_amount"`
	ReceiptFormat enum.ReceiptFormat `gorm:"size:20;default:detailed" json:"receipt_format"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.ReceiptFormat == "" {
		b.ReceiptFormat = enum.ReceiptFormatDetailed
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}
