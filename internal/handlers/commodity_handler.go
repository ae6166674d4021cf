package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"freight-quote-service/internal/models"
	"freight-quote-service/internal/repository"
	"freight-quote-service/internal/services"
)

// CommodityHandler handles HTTP requests for commodity reference data
type CommodityHandler struct {
	commodities repository.CommodityRepository
}

// NewCommodityHandler creates a new commodity handler
func NewCommodityHandler(commodities repository.CommodityRepository) *CommodityHandler {
	return &CommodityHandler{commodities: commodities}
}

// ListCommodities handles GET /api/commodities
func (h *CommodityHandler) ListCommodities(c *gin.Context) {
	commodities, err := h.commodities.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    commodities,
	})
}

// GetCommodity handles GET /api/commodities/:id
func (h *CommodityHandler) GetCommodity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid commodity ID",
			Message: "Commodity ID must be a valid UUID",
		})
		return
	}

	commodity, err := h.commodities.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrCommodityNotFound)
		} else {
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, commodity)
}

// CreateCommodities handles POST /api/commodities. Accepts a single object
// or an array of objects.
func (h *CommodityHandler) CreateCommodities(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	var requests []models.CreateCommodityRequest
	if err := json.Unmarshal(body, &requests); err != nil {
		var single models.CreateCommodityRequest
		if err := json.Unmarshal(body, &single); err != nil {
			respondBadRequest(c, err)
			return
		}
		requests = []models.CreateCommodityRequest{single}
	}

	created := make([]*models.Commodity, 0, len(requests))
	for _, req := range requests {
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Message: "Missing required field: name",
			})
			return
		}
		commodity := &models.Commodity{
			Name:        req.Name,
			Code:        req.Code,
			Description: req.Description,
		}
		if err := h.commodities.Create(c.Request.Context(), commodity); err != nil {
			respondError(c, err)
			return
		}
		created = append(created, commodity)
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    created,
		Message: stringPtr("Commodities created"),
	})
}

// UpdateCommodity handles PUT /api/commodities/:id
func (h *CommodityHandler) UpdateCommodity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid commodity ID",
			Message: "Commodity ID must be a valid UUID",
		})
		return
	}

	var request models.UpdateCommodityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBadRequest(c, err)
		return
	}

	commodity, err := h.commodities.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrCommodityNotFound)
		} else {
			respondError(c, err)
		}
		return
	}

	if request.Name != nil {
		commodity.Name = *request.Name
	}
	if request.Code != nil {
		commodity.Code = *request.Code
	}
	if request.Description != nil {
		commodity.Description = *request.Description
	}

	if err := h.commodities.Update(c.Request.Context(), commodity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    commodity,
		Message: stringPtr("Commodity updated"),
	})
}

// DeleteCommodity handles DELETE /api/commodities/:id — soft delete
func (h *CommodityHandler) DeleteCommodity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid commodity ID",
			Message: "Commodity ID must be a valid UUID",
		})
		return
	}

	if err := h.commodities.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrCommodityNotFound)
		} else {
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Commodity deactivated"),
	})
}
