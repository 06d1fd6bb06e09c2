package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/response"
)

// pathID reads a required path parameter, answering 400 when it is blank.
func pathID(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		response.BadRequest(c, "Missing "+name)
		return "", false
	}
	return id, true
}
