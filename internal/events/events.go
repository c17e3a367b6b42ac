package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// Event types, also used as routing keys on the menu exchange.
const (
	RestaurantDeleted      = "restaurant.deleted"
	PizzaDeleted           = "pizza.deleted"
	RestaurantPizzaCreated = "restaurant_pizza.created"
	RestaurantPizzaDeleted = "restaurant_pizza.deleted"
)

// DefaultExchange is the topic exchange menu events are published to.
const DefaultExchange = "menu_topic"

// Event is a change to what a restaurant offers.
type Event struct {
	Type              string           `json:"type"`
	RestaurantID      uint             `json:"restaurant_id,omitempty"`
	PizzaID           uint             `json:"pizza_id,omitempty"`
	RestaurantPizzaID uint             `json:"restaurant_pizza_id,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	OccurredAt        time.Time        `json:"occurred_at"`
}

// Publisher delivers events. Implementations must be safe to call after a committed write;
// callers log failures instead of undoing the write.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}

// AMQPPublisher publishes JSON events to a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// DialAMQP connects to the broker at url and declares the exchange.
func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	log.WithField("exchange", exchange).Info("Connected to message broker")
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := Encode(event)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		ContentType:  "application/json",
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	if p == nil {
		return nil
	}
	var chErr error
	if p.ch != nil {
		chErr = p.ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			if chErr != nil {
				log.WithError(chErr).Warn("Failed to close AMQP channel")
			}
			return fmt.Errorf("closing amqp connection: %w", err)
		}
	}
	if chErr != nil {
		return fmt.Errorf("closing amqp channel: %w", chErr)
	}
	return nil
}

// Encode renders an event as it travels on the wire, stamping OccurredAt if unset.
func Encode(event Event) ([]byte, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	return body, nil
}
