package repository

import (
	"log"

	"gorm.io/gorm"

	"freight-quote-service/internal/models"
)

// SeedReferenceData seeds the starter rate cards and ports. Idempotent:
// rate cards are keyed by their active triple, ports by code.
func SeedReferenceData(db *gorm.DB) error {
	if err := seedRateCards(db); err != nil {
		return err
	}
	return seedPorts(db)
}

func seedRateCards(db *gorm.DB) error {
	cards := []models.RateCard{
		{
			Country:       "KH",
			Mode:          models.ModeRoad,
			Service:       models.ServiceLocalCharge,
			Trucking:      120.00,
			Docs:          35.00,
			OTHC:          45.00,
			MinimumCharge: 150.00,
			Currency:      "USD",
			Active:        true,
		},
		{
			Country:       "KH",
			Mode:          models.ModeSea,
			Service:       models.ServiceFreight,
			Freight:       850.00,
			OTHC:          95.00,
			MinimumCharge: 900.00,
			Currency:      "USD",
			TransitTime:   models.TransitTime{Min: 7, Max: 12, Unit: "days"},
			Active:        true,
		},
	}

	seeded := 0
	for i := range cards {
		card := cards[i]
		result := db.Where(
			"country = ? AND mode = ? AND service = ? AND active = true",
			card.Country, card.Mode, card.Service,
		).FirstOrCreate(&card)
		if result.Error != nil {
			return result.Error
		}
		seeded += int(result.RowsAffected)
	}
	if seeded > 0 {
		log.Printf("Seeded %d rate cards", seeded)
	}
	return nil
}

func seedPorts(db *gorm.DB) error {
	ports := []models.Port{
		{
			Name:    "Sihanoukville Autonomous Port",
			Code:    "KHSHV",
			Country: "Cambodia",
			City:    "Sihanoukville",
			Type:    models.PortTypeSea,
			Lat:     10.640000,
			Lon:     103.503000,
			Source:  models.PortSourceManual,
			Active:  true,
		},
		{
			Name:    "Phnom Penh Autonomous Port",
			Code:    "KHPNH",
			Country: "Cambodia",
			City:    "Phnom Penh",
			Type:    models.PortTypeInland,
			Lat:     11.576300,
			Lon:     104.923400,
			Source:  models.PortSourceManual,
			Active:  true,
		},
		{
			Name:    "Port of Singapore",
			Code:    "SGSIN",
			Country: "Singapore",
			City:    "Singapore",
			Type:    models.PortTypeSea,
			Lat:     1.264000,
			Lon:     103.840000,
			Source:  models.PortSourceManual,
			Active:  true,
		},
		{
			Name:    "Laem Chabang Port",
			Code:    "THLCH",
			Country: "Thailand",
			City:    "Laem Chabang",
			Type:    models.PortTypeSea,
			Lat:     13.081900,
			Lon:     100.883100,
			Source:  models.PortSourceManual,
			Active:  true,
		},
	}

	seeded := 0
	for i := range ports {
		port := ports[i]
		result := db.Where("code = ?", port.Code).FirstOrCreate(&port)
		if result.Error != nil {
			return result.Error
		}
		seeded += int(result.RowsAffected)
	}
	if seeded > 0 {
		log.Printf("Seeded %d ports", seeded)
	}
	return nil
}
