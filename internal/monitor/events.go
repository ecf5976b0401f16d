package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
)

// ProductPendingEvent is the domain event emitted when a vendor submission
// shows up in the pending queue.
type ProductPendingEvent struct {
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	BusinessCode string    `json:"business_code"`
	BranchName   string    `json:"branch_name"`
	VendorCode   string    `json:"vendor_code,omitempty"`
	ObservedAt   time.Time `json:"observed_at"`
}

// EventPublisher pushes product events to interested consumers.
type EventPublisher interface {
	PublishProductPending(ctx context.Context, event ProductPendingEvent) error
}

// PubSubPublisher adapts a Pub/Sub publisher handle to EventPublisher.
type PubSubPublisher struct {
	publisher *pubsub.Publisher
}

// NewPubSubPublisher wraps a publisher handle. A nil handle yields a nil
// adapter, which the controller treats as events disabled.
func NewPubSubPublisher(publisher *pubsub.Publisher) *PubSubPublisher {
	if publisher == nil {
		return nil
	}
	return &PubSubPublisher{publisher: publisher}
}

// PublishProductPending sends the event and waits for the broker ack.
func (p *PubSubPublisher) PublishProductPending(ctx context.Context, event ProductPendingEvent) error {
	if p == nil || p.publisher == nil {
		return errors.New("publisher not configured")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event":         "product.pending",
			"business_code": event.BusinessCode,
		},
	})
	_, err = result.Get(ctx)
	return err
}
