package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"freight-quote-service/internal/models"
)

// Quote event types
const (
	QuoteCreated        = "quote.quote_created"
	QuoteUpdated        = "quote.quote_updated"
	RateCardCreated     = "quote.rate_card_created"
	RateCardUpdated     = "quote.rate_card_updated"
	RateCardDeactivated = "quote.rate_card_deactivated"
)

const streamName = "QUOTE_EVENTS"

// QuoteEvent represents a quoting-related event
type QuoteEvent struct {
	EventType   string    `json:"eventType"`
	Timestamp   time.Time `json:"timestamp"`
	QuoteID     string    `json:"quoteId,omitempty"`
	RateCardID  string    `json:"rateCardId,omitempty"`
	Origin      string    `json:"origin,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Country     string    `json:"country,omitempty"`
	Mode        string    `json:"mode,omitempty"`
	Service     string    `json:"service,omitempty"`
	Currency    string    `json:"currency,omitempty"`
}

// Publisher publishes quote events to NATS JetStream. A nil Publisher is
// valid and drops all events, matching the optional-at-boot wiring.
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the quote events stream exists
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("freight-quote-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{"quote.>"},
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		logger.WithError(err).Warn("Failed to ensure quote events stream")
	}

	return &Publisher{
		nc:     nc,
		js:     js,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// PublishQuoteCreated publishes a quote created event
func (p *Publisher) PublishQuoteCreated(ctx context.Context, quote *models.Quote) error {
	return p.publish(ctx, QuoteEvent{
		EventType:   QuoteCreated,
		Timestamp:   time.Now().UTC(),
		QuoteID:     quote.ID.String(),
		Origin:      quote.Origin,
		Destination: quote.Destination,
		Country:     quote.Country,
		Mode:        string(quote.Mode),
	})
}

// PublishQuoteUpdated publishes a quote updated event
func (p *Publisher) PublishQuoteUpdated(ctx context.Context, quote *models.Quote) error {
	return p.publish(ctx, QuoteEvent{
		EventType:   QuoteUpdated,
		Timestamp:   time.Now().UTC(),
		QuoteID:     quote.ID.String(),
		Origin:      quote.Origin,
		Destination: quote.Destination,
		Country:     quote.Country,
		Mode:        string(quote.Mode),
	})
}

// PublishRateCardEvent publishes a rate card lifecycle event
func (p *Publisher) PublishRateCardEvent(ctx context.Context, eventType string, card *models.RateCard) error {
	return p.publish(ctx, QuoteEvent{
		EventType:  eventType,
		Timestamp:  time.Now().UTC(),
		RateCardID: card.ID.String(),
		Country:    card.Country,
		Mode:       string(card.Mode),
		Service:    string(card.Service),
		Currency:   card.Currency,
	})
}

func (p *Publisher) publish(ctx context.Context, event QuoteEvent) error {
	if p == nil || p.js == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := p.js.Publish(event.EventType, data, nats.Context(ctx)); err != nil {
		p.logger.WithError(err).WithField("eventType", event.EventType).Warn("Failed to publish event")
		return err
	}
	return nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p != nil && p.nc != nil {
		p.nc.Close()
	}
}
