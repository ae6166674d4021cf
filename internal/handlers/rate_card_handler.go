package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"freight-quote-service/internal/events"
	"freight-quote-service/internal/models"
	"freight-quote-service/internal/repository"
	"freight-quote-service/internal/services"
)

// RateCardHandler handles HTTP requests for rate card administration
type RateCardHandler struct {
	rateCards repository.RateCardRepository
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewRateCardHandler creates a new rate card handler
func NewRateCardHandler(rateCards repository.RateCardRepository, publisher *events.Publisher, logger *logrus.Logger) *RateCardHandler {
	return &RateCardHandler{
		rateCards: rateCards,
		publisher: publisher,
		logger:    logger.WithField("component", "handlers.rate_card"),
	}
}

// ListRateCards handles GET /api/rate-cards
func (h *RateCardHandler) ListRateCards(c *gin.Context) {
	cards, err := h.rateCards.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    cards,
	})
}

// CreateRateCard handles POST /api/rate-cards
func (h *RateCardHandler) CreateRateCard(c *gin.Context) {
	var request models.CreateRateCardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBadRequest(c, err)
		return
	}

	card := &models.RateCard{
		Country:       request.Country,
		Mode:          models.TransportMode(strings.ToLower(request.Mode)),
		Service:       models.ServiceType(strings.ToLower(request.Service)),
		Trucking:      request.Trucking,
		Docs:          request.Docs,
		Freight:       request.Freight,
		OTHC:          request.OTHC,
		MinimumCharge: request.MinimumCharge,
		Currency:      request.Currency,
	}
	if card.Currency == "" {
		card.Currency = "USD"
	}
	if request.TransitTime != nil {
		card.TransitTime = *request.TransitTime
	}

	if err := h.rateCards.Create(c.Request.Context(), card); err != nil {
		respondError(c, err)
		return
	}

	if err := h.publisher.PublishRateCardEvent(c.Request.Context(), events.RateCardCreated, card); err != nil {
		h.logger.WithError(err).Warn("rate_card.created event not published")
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    card,
		Message: stringPtr("Rate card created"),
	})
}

// UpdateRateCard handles PUT /api/rate-cards/:id
func (h *RateCardHandler) UpdateRateCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid rate card ID",
			Message: "Rate card ID must be a valid UUID",
		})
		return
	}

	var request models.UpdateRateCardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBadRequest(c, err)
		return
	}

	card, err := h.rateCards.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrRateCardNotFound)
		} else {
			respondError(c, err)
		}
		return
	}

	applyRateCardPatch(card, request)

	if err := h.rateCards.Update(c.Request.Context(), card); err != nil {
		respondError(c, err)
		return
	}

	if err := h.publisher.PublishRateCardEvent(c.Request.Context(), events.RateCardUpdated, card); err != nil {
		h.logger.WithError(err).Warn("rate_card.updated event not published")
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    card,
		Message: stringPtr("Rate card updated"),
	})
}

// DeleteRateCard handles DELETE /api/rate-cards/:id — deactivation only,
// rate cards are never physically removed
func (h *RateCardHandler) DeleteRateCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid rate card ID",
			Message: "Rate card ID must be a valid UUID",
		})
		return
	}

	card, err := h.rateCards.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrRateCardNotFound)
		} else {
			respondError(c, err)
		}
		return
	}

	if err := h.rateCards.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if err := h.publisher.PublishRateCardEvent(c.Request.Context(), events.RateCardDeactivated, card); err != nil {
		h.logger.WithError(err).Warn("rate_card.deactivated event not published")
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Rate card deactivated"),
	})
}

func applyRateCardPatch(card *models.RateCard, patch models.UpdateRateCardRequest) {
	if patch.Country != nil {
		card.Country = *patch.Country
	}
	if patch.Mode != nil {
		card.Mode = models.TransportMode(strings.ToLower(*patch.Mode))
	}
	if patch.Service != nil {
		card.Service = models.ServiceType(strings.ToLower(*patch.Service))
	}
	if patch.Trucking != nil {
		card.Trucking = *patch.Trucking
	}
	if patch.Docs != nil {
		card.Docs = *patch.Docs
	}
	if patch.Freight != nil {
		card.Freight = *patch.Freight
	}
	if patch.OTHC != nil {
		card.OTHC = *patch.OTHC
	}
	if patch.MinimumCharge != nil {
		card.MinimumCharge = *patch.MinimumCharge
	}
	if patch.Currency != nil {
		card.Currency = *patch.Currency
	}
	if patch.TransitTime != nil {
		card.TransitTime = *patch.TransitTime
	}
	if patch.Active != nil {
		card.Active = *patch.Active
	}
}
