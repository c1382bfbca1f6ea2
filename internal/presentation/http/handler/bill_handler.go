package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LokeshN1/bill-master/internal/application/service"
	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/response"
	"github.com/LokeshN1/bill-master/pkg/pagination"
)

// BillHandler handles bill archive HTTP requests
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// List handles listing the bill archive with filtering and pagination
func (h *BillHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.billService.ListBills(c.Request.Context(), &service.ListBillsInput{
		Pagination:  &pagination.PaginationParams{Page: page, PerPage: perPage},
		TableNumber: c.Query("table_number"),
		Search:      c.Query("search"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles retrieving a single bill
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill retrieved successfully", bill)
}

// Delete handles removing a bill from the archive
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill deleted successfully", nil)
}
