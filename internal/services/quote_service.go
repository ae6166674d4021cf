package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"freight-quote-service/internal/events"
	"freight-quote-service/internal/geo"
	"freight-quote-service/internal/models"
	"freight-quote-service/internal/pricing"
	"freight-quote-service/internal/repository"
)

const (
	defaultCountry = "KH"
	defaultMode    = "road"
)

// DistanceResolver resolves two place names to a distance in kilometers
type DistanceResolver interface {
	Distance(ctx context.Context, origin, destination string) (float64, error)
}

// QuoteService drives the quote generation pipeline: validation, distance
// resolution, rate-card lookup, pricing, ETA, persistence.
type QuoteService interface {
	GenerateQuote(ctx context.Context, req models.CreateQuoteRequest) (*models.Quote, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	UpdateQuote(ctx context.Context, id uuid.UUID, patch models.UpdateQuoteRequest) (*models.Quote, error)
	History(ctx context.Context, page, limit int) (*models.QuoteHistoryResponse, error)
}

type quoteService struct {
	quotes    repository.QuoteRepository
	rateCards repository.RateCardRepository
	distance  DistanceResolver
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewQuoteService creates the quote orchestrator. publisher may be nil.
func NewQuoteService(
	quotes repository.QuoteRepository,
	rateCards repository.RateCardRepository,
	distance DistanceResolver,
	publisher *events.Publisher,
	logger *logrus.Logger,
) QuoteService {
	return &quoteService{
		quotes:    quotes,
		rateCards: rateCards,
		distance:  distance,
		publisher: publisher,
		logger:    logger.WithField("component", "services.quote"),
	}
}

// quoteInputs are the recompute inputs a quote snapshot is derived from
type quoteInputs struct {
	origin      string
	destination string
	maxWeight   float64
	quantity    int
	country     string
	mode        models.TransportMode
}

// GenerateQuote validates input, prices every applicable service, and
// persists the assembled quote
func (s *quoteService) GenerateQuote(ctx context.Context, req models.CreateQuoteRequest) (*models.Quote, error) {
	country := req.Country
	if country == "" {
		country = defaultCountry
	}
	mode := req.Mode
	if mode == "" {
		mode = defaultMode
	}

	in := quoteInputs{
		origin:      req.Origin,
		destination: req.Destination,
		maxWeight:   req.ContainerMaxWeight,
		quantity:    req.ContainerQuantity,
		country:     country,
		mode:        normalizeMode(mode),
	}

	distanceKm, chargeableWeight, lines, err := s.computeSnapshot(ctx, in)
	if err != nil {
		return nil, err
	}

	quote := &models.Quote{
		Origin:             in.origin,
		Destination:        in.destination,
		Commodity:          req.Commodity,
		Mode:               in.mode,
		Country:            in.country,
		DistanceKm:         distanceKm,
		ContainerMaxWeight: in.maxWeight,
		ContainerQuantity:  in.quantity,
		ChargeableWeight:   chargeableWeight,
		Lines:              lines,
		Converted:          false,
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to persist quote: %w", err)
	}

	if err := s.publisher.PublishQuoteCreated(ctx, quote); err != nil {
		s.logger.WithError(err).Warn("quote.created event not published")
	}

	s.logger.WithFields(logrus.Fields{
		"quoteId": quote.ID,
		"mode":    quote.Mode,
		"country": quote.Country,
	}).Info("Quote generated")

	return quote, nil
}

// GetQuote retrieves a quote by id
func (s *quoteService) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}
	return quote, nil
}

// UpdateQuote merges the patch into the stored quote, fully recomputes the
// priced fields from current inputs and rate cards, and writes the new
// snapshot with a compare-and-swap on the version column. One retry on a
// concurrent-writer conflict.
func (s *quoteService) UpdateQuote(ctx context.Context, id uuid.UUID, patch models.UpdateQuoteRequest) (*models.Quote, error) {
	for attempt := 0; attempt < 2; attempt++ {
		quote, err := s.GetQuote(ctx, id)
		if err != nil {
			return nil, err
		}

		applyPatch(quote, patch)

		in := quoteInputs{
			origin:      quote.Origin,
			destination: quote.Destination,
			maxWeight:   quote.ContainerMaxWeight,
			quantity:    quote.ContainerQuantity,
			country:     quote.Country,
			mode:        normalizeMode(string(quote.Mode)),
		}

		distanceKm, chargeableWeight, lines, err := s.computeSnapshot(ctx, in)
		if err != nil {
			return nil, err
		}

		quote.Mode = in.mode
		quote.DistanceKm = distanceKm
		quote.ChargeableWeight = chargeableWeight
		quote.Lines = lines

		err = s.quotes.ReplaceSnapshot(ctx, quote, quote.Version)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logger.WithField("quoteId", id).Info("Quote version conflict, retrying recompute")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to persist recomputed quote: %w", err)
		}

		if err := s.publisher.PublishQuoteUpdated(ctx, quote); err != nil {
			s.logger.WithError(err).Warn("quote.updated event not published")
		}

		return quote, nil
	}

	return nil, ErrConflict
}

// History returns a page of quotes, newest first
func (s *quoteService) History(ctx context.Context, page, limit int) (*models.QuoteHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	quotes, total, err := s.quotes.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &models.QuoteHistoryResponse{
		Quotes: quotes,
		Total:  total,
		Page:   page,
		Pages:  pages,
	}, nil
}

// computeSnapshot derives the priced fields of a quote from its inputs.
// Distance is mandatory for road and skipped entirely for sea; a missing
// rate card skips that service; zero priced services fails the whole
// operation.
func (s *quoteService) computeSnapshot(ctx context.Context, in quoteInputs) (*float64, float64, models.QuoteLineMap, error) {
	serviceSet, ok := pricing.ServicesForMode(in.mode)
	if !ok {
		return nil, 0, nil, ErrUnsupportedMode
	}

	var distanceKm *float64
	if pricing.RequiresDistance(in.mode) {
		km, err := s.distance.Distance(ctx, in.origin, in.destination)
		if err != nil {
			if errors.Is(err, geo.ErrGeocodingUnavailable) {
				s.logger.WithError(err).Warn("Geocoding degraded, distance unavailable")
			} else {
				s.logger.WithFields(logrus.Fields{
					"origin":      in.origin,
					"destination": in.destination,
				}).Info("Route endpoints could not be resolved")
			}
			return nil, 0, nil, fmt.Errorf("%w: %s", ErrDistanceUnavailable, err)
		}
		distanceKm = &km
	}

	chargeableWeight := pricing.ChargeableWeight(in.maxWeight, in.quantity)
	lines := make(models.QuoteLineMap)

	for _, service := range serviceSet {
		card, err := s.rateCards.Lookup(ctx, in.country, in.mode, service)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, 0, nil, fmt.Errorf("rate card lookup failed: %w", err)
		}

		breakdown, err := pricing.Price(pricing.Input{
			DistanceKm:        deref(distanceKm),
			ChargeableWeight:  chargeableWeight,
			ContainerQuantity: in.quantity,
			Mode:              in.mode,
			Service:           service,
			Card:              card,
		})
		if err != nil {
			continue
		}

		currency := card.Currency
		if currency == "" {
			currency = "USD"
		}

		lines[service] = models.QuoteLine{
			Price:     breakdown.Total,
			ETA:       pricing.EstimateETA(deref(distanceKm), service, card),
			Currency:  currency,
			Breakdown: *breakdown,
		}
	}

	if len(lines) == 0 {
		return nil, 0, nil, ErrNoAvailableRates
	}

	return distanceKm, chargeableWeight, lines, nil
}

func applyPatch(quote *models.Quote, patch models.UpdateQuoteRequest) {
	if patch.Origin != nil {
		quote.Origin = *patch.Origin
	}
	if patch.Destination != nil {
		quote.Destination = *patch.Destination
	}
	if patch.ContainerMaxWeight != nil {
		quote.ContainerMaxWeight = *patch.ContainerMaxWeight
	}
	if patch.ContainerQuantity != nil {
		quote.ContainerQuantity = *patch.ContainerQuantity
	}
	if patch.Commodity != nil {
		quote.Commodity = *patch.Commodity
	}
	if patch.Country != nil {
		quote.Country = *patch.Country
	}
	if patch.Mode != nil {
		quote.Mode = models.TransportMode(*patch.Mode)
	}
	if patch.Converted != nil {
		quote.Converted = *patch.Converted
	}
}

func normalizeMode(mode string) models.TransportMode {
	return models.TransportMode(strings.ToLower(strings.TrimSpace(mode)))
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
