package pricing

import (
	"errors"
	"testing"

	"freight-quote-service/internal/models"
)

func khRoadCard() *models.RateCard {
	return &models.RateCard{
		Country:       "KH",
		Mode:          models.ModeRoad,
		Service:       models.ServiceLocalCharge,
		Trucking:      120.00,
		Docs:          35.00,
		OTHC:          45.00,
		MinimumCharge: 150.00,
		Currency:      "USD",
		Active:        true,
	}
}

func khSeaCard() *models.RateCard {
	return &models.RateCard{
		Country:       "KH",
		Mode:          models.ModeSea,
		Service:       models.ServiceFreight,
		Freight:       850.00,
		OTHC:          95.00,
		MinimumCharge: 900.00,
		Currency:      "USD",
		Active:        true,
	}
}

func TestPrice_RoadLocalCharge(t *testing.T) {
	bd, err := Price(Input{
		DistanceKm:        220,
		ChargeableWeight:  48000,
		ContainerQuantity: 2,
		Mode:              models.ModeRoad,
		Service:           models.ServiceLocalCharge,
		Card:              khRoadCard(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 120 + 35 + 45 = 200, above the 150 minimum
	if bd.Subtotal != 200.00 {
		t.Fatalf("unexpected subtotal: %v", bd.Subtotal)
	}
	if bd.Total != 200.00 {
		t.Fatalf("unexpected total: %v", bd.Total)
	}
	if bd.MinimumApplied {
		t.Fatal("minimum should not apply when subtotal exceeds the floor")
	}
	if bd.Components["trucking"] != 120.00 || bd.Components["docs"] != 35.00 || bd.Components["othc"] != 45.00 {
		t.Fatalf("unexpected components: %v", bd.Components)
	}
}

func TestPrice_RoadMinimumChargeFloor(t *testing.T) {
	card := khRoadCard()
	card.Trucking = 60.00
	card.Docs = 10.00
	card.OTHC = 20.00
	// subtotal 90 < minimum 150

	bd, err := Price(Input{
		Mode:    models.ModeRoad,
		Service: models.ServiceLocalCharge,
		Card:    card,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bd.Subtotal != 90.00 {
		t.Fatalf("unexpected subtotal: %v", bd.Subtotal)
	}
	if bd.Total != 150.00 {
		t.Fatalf("expected floor total 150, got %v", bd.Total)
	}
	if !bd.MinimumApplied {
		t.Fatal("expected minimum_applied when subtotal is below the floor")
	}
}

func TestPrice_SeaFreight(t *testing.T) {
	bd, err := Price(Input{
		ContainerQuantity: 3,
		Mode:              models.ModeSea,
		Service:           models.ServiceFreight,
		Card:              khSeaCard(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 * 850 = 2550; + 95 othc = 2645
	if bd.Components["freight_cost"] != 2550.00 {
		t.Fatalf("unexpected freight_cost: %v", bd.Components["freight_cost"])
	}
	if bd.Subtotal != 2645.00 {
		t.Fatalf("unexpected subtotal: %v", bd.Subtotal)
	}
	if bd.Total != 2645.00 || bd.MinimumApplied {
		t.Fatalf("unexpected total/minimum: %v/%v", bd.Total, bd.MinimumApplied)
	}
}

func TestPrice_UnsupportedCombination(t *testing.T) {
	cases := []struct {
		mode    models.TransportMode
		service models.ServiceType
	}{
		{models.ModeRoad, models.ServiceFreight},
		{models.ModeSea, models.ServiceLocalCharge},
		{"air", models.ServiceFreight},
	}

	for _, tc := range cases {
		_, err := Price(Input{Mode: tc.mode, Service: tc.service, Card: khRoadCard()})
		if !errors.Is(err, ErrUnsupportedCombination) {
			t.Fatalf("%s/%s: expected ErrUnsupportedCombination, got %v", tc.mode, tc.service, err)
		}
	}
}

func TestPrice_Idempotent(t *testing.T) {
	in := Input{
		ContainerQuantity: 2,
		Mode:              models.ModeSea,
		Service:           models.ServiceFreight,
		Card:              khSeaCard(),
	}

	first, err := Price(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Price(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Total != second.Total || first.Subtotal != second.Subtotal || first.MinimumApplied != second.MinimumApplied {
		t.Fatalf("pricing is not idempotent: %+v vs %+v", first, second)
	}
	for k, v := range first.Components {
		if second.Components[k] != v {
			t.Fatalf("component %s differs between runs", k)
		}
	}
}

func TestChargeableWeight(t *testing.T) {
	if got := ChargeableWeight(24000, 2); got != 48000 {
		t.Fatalf("unexpected chargeable weight: %v", got)
	}
	if got := ChargeableWeight(18500.5, 1); got != 18500.5 {
		t.Fatalf("unexpected chargeable weight: %v", got)
	}
}

func TestServicesForMode(t *testing.T) {
	road, ok := ServicesForMode(models.ModeRoad)
	if !ok || len(road) != 1 || road[0] != models.ServiceLocalCharge {
		t.Fatalf("unexpected road services: %v", road)
	}

	sea, ok := ServicesForMode(models.ModeSea)
	if !ok || len(sea) != 1 || sea[0] != models.ServiceFreight {
		t.Fatalf("unexpected sea services: %v", sea)
	}

	if _, ok := ServicesForMode("air"); ok {
		t.Fatal("air must not have a service set")
	}
}

func TestRequiresDistance(t *testing.T) {
	if !RequiresDistance(models.ModeRoad) {
		t.Fatal("road requires distance")
	}
	if RequiresDistance(models.ModeSea) {
		t.Fatal("sea must not require distance")
	}
}
