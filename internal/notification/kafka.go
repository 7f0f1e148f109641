package notification

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/cart"
	"github.com/segmentio/kafka-go"
)

const activityTopic = "cart-activity"

type activityRecord struct {
	SessionID   string    `json:"session_id"`
	Kind        string    `json:"kind"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	At          time.Time `json:"at"`
}

// ActivityPublisher forwards cart events to Kafka for downstream analytics.
// Publishing is best effort: a broker outage must never affect the cart.
type ActivityPublisher struct {
	writer *kafka.Writer
}

func NewActivityPublisher(brokers ...string) *ActivityPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  activityTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &ActivityPublisher{writer: w}
}

func (p *ActivityPublisher) CartEvent(sessionID string, event cart.Event) {
	record := activityRecord{
		SessionID:   sessionID,
		Kind:        string(event.Kind),
		ProductID:   event.ProductID,
		ProductName: event.ProductName,
		Quantity:    event.Quantity,
		At:          time.Now().UTC(),
	}

	value, err := json.Marshal(record)
	if err != nil {
		log.Printf("marshal cart activity: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(sessionID),
		Value: value,
	}); err != nil {
		log.Printf("publish cart activity: %v", err)
	}
}

func (p *ActivityPublisher) Close() error {
	return p.writer.Close()
}
