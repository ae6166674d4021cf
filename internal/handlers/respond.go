package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-quote-service/internal/models"
	"freight-quote-service/internal/repository"
	"freight-quote-service/internal/services"
)

// respondError maps domain errors onto HTTP statuses with the standard
// error envelope
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	title := "Internal server error"

	switch {
	case errors.Is(err, services.ErrQuoteNotFound),
		errors.Is(err, services.ErrRateCardNotFound),
		errors.Is(err, services.ErrPortNotFound),
		errors.Is(err, services.ErrCommodityNotFound):
		status = http.StatusNotFound
		title = "Not found"
	case errors.Is(err, repository.ErrDuplicateRateCard),
		errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
		title = "Conflict"
	case errors.Is(err, services.ErrUnsupportedMode),
		errors.Is(err, services.ErrNoAvailableRates),
		errors.Is(err, services.ErrDistanceUnavailable):
		status = http.StatusUnprocessableEntity
		title = "Cannot price request"
	}

	c.JSON(status, models.ErrorResponse{
		Error:   title,
		Message: err.Error(),
	})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "Invalid request body",
		Message: err.Error(),
	})
}

// stringPtr returns a pointer to a string
func stringPtr(s string) *string {
	return &s
}
