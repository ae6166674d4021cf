package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freight-quote-service/internal/models"
	"freight-quote-service/internal/services"
)

// PortHandler handles HTTP requests for the port directory
type PortHandler struct {
	portService services.PortService
}

// NewPortHandler creates a new port handler
func NewPortHandler(portService services.PortService) *PortHandler {
	return &PortHandler{portService: portService}
}

// SearchPorts handles GET /api/finder_port/search?q=
func (h *PortHandler) SearchPorts(c *gin.Context) {
	matches, err := h.portService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// ListPorts handles GET /api/finder_port
func (h *PortHandler) ListPorts(c *gin.Context) {
	ports, err := h.portService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    ports,
	})
}

// GetPort handles GET /api/finder_port/:id
func (h *PortHandler) GetPort(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid port ID",
			Message: "Port ID must be a valid UUID",
		})
		return
	}

	port, err := h.portService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, port)
}

// CreatePort handles POST /api/finder_port
func (h *PortHandler) CreatePort(c *gin.Context) {
	var request models.CreatePortRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBadRequest(c, err)
		return
	}

	port, err := h.portService.Create(c.Request.Context(), request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    port,
		Message: stringPtr("Port created successfully"),
	})
}

// UpdatePort handles PUT /api/finder_port/:id
func (h *PortHandler) UpdatePort(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid port ID",
			Message: "Port ID must be a valid UUID",
		})
		return
	}

	var request models.UpdatePortRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBadRequest(c, err)
		return
	}

	port, err := h.portService.Update(c.Request.Context(), id, request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    port,
		Message: stringPtr("Port updated"),
	})
}

// DeletePort handles DELETE /api/finder_port/:id — soft delete
func (h *PortHandler) DeletePort(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid port ID",
			Message: "Port ID must be a valid UUID",
		})
		return
	}

	if err := h.portService.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Port deactivated"),
	})
}
