package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LokeshN1/bill-master/internal/presentation/http/dto/response"
)

// parseUUIDParam parses a UUID path parameter, writing a 400 response and
// returning false when it is malformed.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
