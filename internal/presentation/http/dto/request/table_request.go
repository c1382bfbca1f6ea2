package request

// CreateTableRequest is the request body for creating a table. An empty
// table_number asks the numbering engine for the next identifier.
type CreateTableRequest struct {
	TableNumber string `json:"table_number"`
	Capacity    int    `json:"capacity"`
}

// BulkCreateTablesRequest is the request body for creating several
// auto-numbered tables at once.
type BulkCreateTablesRequest struct {
	Count    int `json:"count" binding:"required,min=1,max=100"`
	Capacity int `json:"capacity"`
}

// UpdateTableRequest is the request body for updating a table. Omitted
// fields are left unchanged.
type UpdateTableRequest struct {
	Status   *string `json:"status" binding:"omitempty,oneof=available occupied reserved"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1"`
}
