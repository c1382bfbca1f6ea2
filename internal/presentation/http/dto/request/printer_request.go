package request

// PrintReceiptRequest is the request body for printing a saved bill.
type PrintReceiptRequest struct {
	BillID string `json:"bill_id" binding:"required,uuid"`
	Format string `json:"format" binding:"omitempty,oneof=detailed simple"`
}
