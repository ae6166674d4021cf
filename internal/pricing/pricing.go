package pricing

import (
	"errors"
	"math"

	"freight-quote-service/internal/models"
)

// ErrUnsupportedCombination means no pricing formula exists for the
// requested (mode, service) pair
var ErrUnsupportedCombination = errors.New("no pricing formula for mode/service combination")

// Input carries everything a pricing formula may consume
type Input struct {
	DistanceKm        float64
	ChargeableWeight  float64
	ContainerQuantity int
	Mode              models.TransportMode
	Service           models.ServiceType
	Card              *models.RateCard
}

type combo struct {
	mode    models.TransportMode
	service models.ServiceType
}

type formula func(Input) (subtotal float64, components map[string]float64)

// formulas is the closed enumeration of priceable (mode, service) pairs.
// A pair absent here is unsupported, not a silent zero.
var formulas = map[combo]formula{
	{models.ModeRoad, models.ServiceLocalCharge}: priceRoadLocal,
	{models.ModeSea, models.ServiceFreight}:      priceSeaFreight,
}

func priceRoadLocal(in Input) (float64, map[string]float64) {
	card := in.Card
	subtotal := (card.Trucking + card.Docs) + card.OTHC
	return subtotal, map[string]float64{
		"trucking": round2(card.Trucking),
		"docs":     round2(card.Docs),
		"othc":     round2(card.OTHC),
	}
}

func priceSeaFreight(in Input) (float64, map[string]float64) {
	card := in.Card
	freightCost := float64(in.ContainerQuantity) * card.Freight
	subtotal := freightCost + card.OTHC
	return subtotal, map[string]float64{
		"freight_cost": round2(freightCost),
		"othc":         round2(card.OTHC),
	}
}

// Price combines a rate card with the shipment inputs into an itemized
// breakdown. The minimum-charge floor clamps the total; MinimumApplied is
// set iff the floor bit. Pure function over its inputs.
func Price(in Input) (*models.PriceBreakdown, error) {
	f, ok := formulas[combo{in.Mode, in.Service}]
	if !ok {
		return nil, ErrUnsupportedCombination
	}

	subtotal, components := f(in)
	total := math.Max(subtotal, in.Card.MinimumCharge)

	return &models.PriceBreakdown{
		Subtotal:       round2(subtotal),
		MinimumApplied: total != subtotal,
		Total:          round2(total),
		Components:     components,
	}, nil
}

// ChargeableWeight is the billable weight basis: max per-container weight
// times container count. No volumetric-weight comparison is performed.
func ChargeableWeight(containerMaxWeight float64, containerQuantity int) float64 {
	return containerMaxWeight * float64(containerQuantity)
}

// ServicesForMode returns the static service set priced for a transport
// mode. ok is false for modes with no pricing rules.
func ServicesForMode(mode models.TransportMode) ([]models.ServiceType, bool) {
	switch mode {
	case models.ModeRoad:
		return []models.ServiceType{models.ServiceLocalCharge}, true
	case models.ModeSea:
		return []models.ServiceType{models.ServiceFreight}, true
	default:
		return nil, false
	}
}

// RequiresDistance reports whether quoting a mode needs a resolved
// geo-distance. Sea freight prices purely off the rate card.
func RequiresDistance(mode models.TransportMode) bool {
	return mode == models.ModeRoad
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
