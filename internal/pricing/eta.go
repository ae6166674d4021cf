package pricing

import (
	"fmt"

	"freight-quote-service/internal/models"
)

// EstimateETA maps distance and service onto a delivery window. A transit
// time on the rate card always wins; otherwise a per-service fallback
// table applies.
func EstimateETA(distanceKm float64, service models.ServiceType, card *models.RateCard) string {
	if card != nil && card.TransitTime.Defined() {
		tt := card.TransitTime
		return fmt.Sprintf("%d–%d %s", tt.Min, tt.Max, tt.Unit)
	}

	switch service {
	case models.ServiceLocalCharge:
		if distanceKm < 150 {
			return "Same day"
		}
		if distanceKm < 400 {
			return "1 day"
		}
		return "1–2 days"
	case models.ServiceFreight:
		return "5–10 days"
	default:
		return "N/A"
	}
}
