package pricing

import (
	"testing"

	"freight-quote-service/internal/models"
)

func TestEstimateETA_LocalChargeBoundaries(t *testing.T) {
	cases := []struct {
		distance float64
		want     string
	}{
		{0, "Same day"},
		{149.99, "Same day"},
		{150.0, "1 day"},
		{399.99, "1 day"},
		{400.0, "1–2 days"},
		{1200, "1–2 days"},
	}

	for _, tc := range cases {
		got := EstimateETA(tc.distance, models.ServiceLocalCharge, nil)
		if got != tc.want {
			t.Fatalf("distance %v: expected %q, got %q", tc.distance, tc.want, got)
		}
	}
}

func TestEstimateETA_Freight(t *testing.T) {
	if got := EstimateETA(0, models.ServiceFreight, nil); got != "5–10 days" {
		t.Fatalf("unexpected freight ETA: %q", got)
	}
}

func TestEstimateETA_UnknownService(t *testing.T) {
	if got := EstimateETA(100, "warehousing", nil); got != "N/A" {
		t.Fatalf("unexpected ETA for unknown service: %q", got)
	}
}

func TestEstimateETA_TransitTimeOverrides(t *testing.T) {
	card := &models.RateCard{
		TransitTime: models.TransitTime{Min: 7, Max: 12, Unit: "days"},
	}

	// An explicit transit window always wins over the fallback table
	if got := EstimateETA(10, models.ServiceLocalCharge, card); got != "7–12 days" {
		t.Fatalf("unexpected overridden ETA: %q", got)
	}
}

func TestEstimateETA_EmptyTransitTimeFallsThrough(t *testing.T) {
	card := &models.RateCard{}
	if got := EstimateETA(160, models.ServiceLocalCharge, card); got != "1 day" {
		t.Fatalf("unexpected ETA: %q", got)
	}
}
