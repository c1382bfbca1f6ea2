package request

// CreateItemRequest is the request body for creating a menu item.
type CreateItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Category string  `json:"category"`
}

// UpdateItemRequest is the request body for updating a menu item. Omitted
// fields are left unchanged.
type UpdateItemRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
}
