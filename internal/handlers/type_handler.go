// =============================================================================
// FILE: internal/handlers/type_handler.go
// PURPOSE: HTTP request handling for type endpoints
// =============================================================================

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pokedex-api/internal/services"
)

// TypeHandler handles HTTP requests for type endpoints
type TypeHandler struct {
	typeService services.TypeServiceInterface
}

// NewTypeHandler creates a new TypeHandler instance
func NewTypeHandler(typeService services.TypeServiceInterface) *TypeHandler {
	return &TypeHandler{typeService: typeService}
}

// ListTypes handles GET /types
// @Summary List all types
// @Description Get all pokemon types for filter dropdowns
// @Tags types
// @Produce json
// @Success 200 {object} map[string]interface{} "types array with count"
// @Failure 500 {object} map[string]string "Server error"
// @Router /types [get]
func (h *TypeHandler) ListTypes(c *gin.Context) {
	types, err := h.typeService.GetAllTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve types",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"types": types,
		"count": len(types),
	})
}
