package request

// SelectTableRequest is the request body for switching a till to a table.
type SelectTableRequest struct {
	TableID string `json:"table_id" binding:"required,uuid"`
}

// CartItemRequest identifies the menu item being added to or removed from
// the active cart.
type CartItemRequest struct {
	ItemID string `json:"item_id" binding:"required,uuid"`
}

// SaveBillRequest is the request body for persisting the active cart as a
// bill. Format defaults to the detailed receipt; total overrides the
// computed amount when present.
type SaveBillRequest struct {
	Format string   `json:"format" binding:"omitempty,oneof=detailed simple"`
	Total  *float64 `json:"total" binding:"omitempty,gte=0"`
}
