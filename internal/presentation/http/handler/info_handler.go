package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/LokeshN1/bill-master/internal/application/service"
	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/request"
	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/response"
)

// InfoHandler handles café profile HTTP requests
type InfoHandler struct {
	infoService *service.InfoService
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(infoService *service.InfoService) *InfoHandler {
	return &InfoHandler{infoService: infoService}
}

// Get handles retrieving the café profile
func (h *InfoHandler) Get(c *gin.Context) {
	info, err := h.infoService.GetInfo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cafe info retrieved successfully", info)
}

// Update handles creating or replacing the café profile
func (h *InfoHandler) Update(c *gin.Context) {
	var req request.UpdateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	info, err := h.infoService.UpdateInfo(c.Request.Context(), &service.UpdateInfoInput{
		Name:         req.Name,
		Address:      req.Address,
		Contact:      req.Contact,
		GSTNumber:    req.GSTNumber,
		Logo:         req.Logo,
		Website:      req.Website,
		Email:        req.Email,
		OpeningHours: req.OpeningHours,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cafe info updated successfully", info)
}
