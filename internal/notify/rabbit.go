package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const sessionsExchange = "shop.sessions"

func MustDialRabbit(url string) *amqp.Connection {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("connect to RabbitMQ: %v", err)
	}
	return conn
}

// AMQPPublisher routes session events through a direct exchange with the
// opaque session address as routing key. The websocket edge binds a
// per-session queue to its own address and drains it; anything published
// to an unbound address is dropped by the broker, which is exactly the
// offline-listener semantics we want.
type AMQPPublisher struct {
	ch *amqp.Channel
}

func NewAMQPPublisher(conn *amqp.Connection) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		sessionsExchange,
		"direct",
		false, // durable: sessions are ephemeral
		true,  // autoDelete
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare sessions exchange: %w", err)
	}

	return &AMQPPublisher{ch: ch}, nil
}

func (p *AMQPPublisher) Close() error {
	return p.ch.Close()
}

type sessionEvent struct {
	Kind    EventKind `json:"kind"`
	Payload any       `json:"payload"`
}

func (p *AMQPPublisher) Publish(ctx context.Context, addr string, kind EventKind, payload any) error {
	if addr == "" {
		return nil
	}

	body, err := json.Marshal(sessionEvent{Kind: kind, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", kind, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		sessionsExchange,
		addr,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Transient,
			Body:         body,
		},
	)
}
