package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Routing keys for domain events
const (
	FeeAccrued                 = "fee.accrued"
	FeedbackStatusChanged      = "feedback.status_changed"
	ContributionPaymentCreated = "contribution.payment_created"
)

// Event is the JSON envelope published for every domain event
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// NewEvent wraps payload in an envelope with a fresh id
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}, nil
}

// Publisher sends domain events to interested consumers
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close() error
}

// NopPublisher drops every event. Used when AMQP_URL is empty.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NopPublisher) Close() error                                      { return nil }
