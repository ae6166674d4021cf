package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freight-quote-service/internal/models"
	"freight-quote-service/internal/services"
)

// QuoteHandler handles HTTP requests for quote operations
type QuoteHandler struct {
	quoteService services.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// CreateQuote handles POST /api/quote
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var request models.CreateQuoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBadRequest(c, err)
		return
	}

	quote, err := h.quoteService.GenerateQuote(c.Request.Context(), request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CreateQuoteResponse{
		QuoteID:          quote.ID.String(),
		DistanceKm:       quote.DistanceKm,
		ChargeableWeight: quote.ChargeableWeight,
		Quotes:           quote.Lines,
	})
}

// GetQuote handles GET /api/quote/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid quote ID",
			Message: "Quote ID must be a valid UUID",
		})
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// UpdateQuote handles PUT /api/quote/:id
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid quote ID",
			Message: "Quote ID must be a valid UUID",
		})
		return
	}

	var patch models.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, err)
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// History handles GET /api/quotes/history
func (h *QuoteHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	history, err := h.quoteService.History(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// HealthCheck handles GET /health
func (h *QuoteHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "freight-quote-service",
	})
}
