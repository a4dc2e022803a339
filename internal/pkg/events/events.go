package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const ChannelEvents = "smarthogar_events"

// Event types consumed by the external notifier.
const (
	TypePurchaseApproved   = "purchase_approved"
	TypePurchaseRejected   = "purchase_rejected"
	TypeProfitActivated    = "profit_activated"
	TypeWithdrawalResolved = "withdrawal_resolved"
)

type Event struct {
	Type     string  `json:"type"`
	UserID   int64   `json:"user_id"`
	AmountBs float64 `json:"amount_bs,omitempty"`
	Message  string  `json:"message,omitempty"`
}

// Publisher pushes domain events onto redis pub/sub. Delivery to end
// users (push, chat) happens in a separate process.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.client.Publish(ctx, ChannelEvents, data).Err()
}

// Subscriber receives domain events, used by the notifier process.
type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

func (s *Subscriber) Subscribe(ctx context.Context, handler func(*Event)) error {
	pubsub := s.client.Subscribe(ctx, ChannelEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}

			handler(&event)
		}
	}
}
