package entity

import "github.com/LokeshN1/bill-master/internal/domain/enum"

// ReceiptHeader holds the café header printed at the top of a receipt.
type ReceiptHeader struct {
	CafeName  string `json:"cafe_name"`
	Address   string `json:"address,omitempty"`
	Contact   string `json:"contact,omitempty"`
	GSTNumber string `json:"gst_number,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt. It is not a
// database entity; it is composed from a persisted bill and the café info at
// print time. Format selects the template: detailed shows per-line pricing
// and totals, simple (KOT) is the kitchen ticket without any price columns.
type Receipt struct {
	Header      ReceiptHeader      `json:"header"`
	BillNumber  string             `json:"bill_number"`
	TableNumber string             `json:"table_number"`
	Date        string             `json:"date"`
	Format      enum.ReceiptFormat `json:"format"`
	Items       []ReceiptItem      `json:"items"`
	Total       float64            `json:"total"`
}
