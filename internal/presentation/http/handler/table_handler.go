package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/LokeshN1/bill-master/internal/application/service"
	"github.com/LokeshN1/bill-master/internal/domain/enum"
	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/request"
	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/response"
)

// TableHandler handles floor layout HTTP requests
type TableHandler struct {
	tableService *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// List handles listing the floor with bill associations
func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.tableService.ListTables(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tables retrieved successfully", tables)
}

// Get handles retrieving a single table
func (h *TableHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	table, err := h.tableService.GetTable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table retrieved successfully", table)
}

// NextNumber previews the next auto-generated table number
func (h *TableHandler) NextNumber(c *gin.Context) {
	number, err := h.tableService.NextTableNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Next table number", gin.H{"table_number": number})
}

// Create handles creating a table
func (h *TableHandler) Create(c *gin.Context) {
	var req request.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.tableService.CreateTable(c.Request.Context(), &service.CreateTableInput{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Table created successfully", result)
}

// BulkCreate handles creating several auto-numbered tables at once
func (h *TableHandler) BulkCreate(c *gin.Context) {
	var req request.BulkCreateTablesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tables, err := h.tableService.BulkCreateTables(c.Request.Context(), req.Count, req.Capacity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Tables created successfully", tables)
}

// Update handles updating a table's status or capacity
func (h *TableHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req request.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateTableInput{Capacity: req.Capacity}
	if req.Status != nil {
		status := enum.TableStatus(*req.Status)
		input.Status = &status
	}

	table, err := h.tableService.UpdateTable(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table updated successfully", table)
}

// Delete handles deleting a table
func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.tableService.DeleteTable(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table deleted successfully", nil)
}
