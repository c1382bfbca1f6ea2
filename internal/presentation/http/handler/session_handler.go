package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LokeshN1/bill-master/internal/application/service"
	"github.com/LokeshN1/bill-master/internal/billing"
	"github.com/LokeshN1/bill-master/internal/domain/enum"
	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/request"
	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/response"
)

// SessionHandler exposes the till sessions over HTTP: opening a till,
// selecting tables, editing the cart and saving bills.
type SessionHandler struct {
	manager      *billing.Manager
	itemService  *service.ItemService
	tableService *service.TableService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager *billing.Manager, itemService *service.ItemService, tableService *service.TableService) *SessionHandler {
	return &SessionHandler{manager: manager, itemService: itemService, tableService: tableService}
}

// Open handles opening a new till session
func (h *SessionHandler) Open(c *gin.Context) {
	s := h.manager.Open()
	response.Created(c, "Session opened", s.State())
}

// Close handles closing a till session
func (h *SessionHandler) Close(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if !h.manager.Close(id) {
		response.NotFound(c, "Session not found")
		return
	}
	response.OK(c, "Session closed", nil)
}

// Get handles retrieving a session's current state
func (h *SessionHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, "Session state", s.State())
}

// SelectTable handles switching the till to a table
func (h *SessionHandler) SelectTable(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req request.SelectTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		response.BadRequest(c, "Invalid table ID format")
		return
	}

	table, err := h.tableService.GetTable(c.Request.Context(), tableID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.SelectTable(c.Request.Context(), table)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	response.OK(c, "Table selected", result)
}

// AddItem handles adding a menu item to the active cart
func (h *SessionHandler) AddItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req request.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		response.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.AddItem(c.Request.Context(), *item); err != nil {
		h.sessionError(c, err)
		return
	}
	response.OK(c, "Item added", s.State())
}

// RemoveItem handles removing one unit of an item from the active cart
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	itemID := c.Param("itemId")
	if _, err := uuid.Parse(itemID); err != nil {
		response.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := s.RemoveItem(c.Request.Context(), itemID); err != nil {
		h.sessionError(c, err)
		return
	}
	response.OK(c, "Item removed", s.State())
}

// Save handles persisting the active cart as a bill
func (h *SessionHandler) Save(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req request.SaveBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bill, err := s.Save(c.Request.Context(), enum.ReceiptFormat(req.Format), req.Total)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	response.Created(c, "Bill saved", bill)
}

// Clear handles abandoning the active cart
func (h *SessionHandler) Clear(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Clear(c.Request.Context()); err != nil {
		h.sessionError(c, err)
		return
	}
	response.OK(c, "Cart cleared", s.State())
}

// Tables handles the session's floor view with local cart state overlaid
func (h *SessionHandler) Tables(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	tables, err := s.RefreshTables(c.Request.Context())
	if err != nil {
		h.sessionError(c, err)
		return
	}
	response.OK(c, "Tables retrieved successfully", tables)
}

func (h *SessionHandler) session(c *gin.Context) (*billing.Session, bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil, false
	}
	s, found := h.manager.Get(id)
	if !found {
		response.NotFound(c, "Session not found")
		return nil, false
	}
	return s, true
}

// sessionError maps the till state errors onto HTTP status codes.
func (h *SessionHandler) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, billing.ErrSwitchInProgress):
		response.Conflict(c, err.Error())
	case errors.Is(err, billing.ErrNoTableSelected),
		errors.Is(err, billing.ErrEmptyCart),
		errors.Is(err, billing.ErrInvalidQuantity),
		errors.Is(err, billing.ErrInvalidPrice):
		response.BadRequest(c, err.Error())
	default:
		response.Error(c, err)
	}
}
