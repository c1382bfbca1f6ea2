package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/LokeshN1/bill-master/internal/application/service"
	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/request"
	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/response"
)

// ItemHandler handles menu item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List handles listing the menu
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.itemService.ListItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Items retrieved successfully", items)
}

// Get handles retrieving a single menu item
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item retrieved successfully", item)
}

// Create handles creating a menu item
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item created successfully", item)
}

// Update handles updating a menu item
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), id, &service.UpdateItemInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item updated successfully", item)
}

// Delete handles deleting a menu item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item deleted successfully", nil)
}
