package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
)

// publisher is the subset of *amqp.Channel the sink uses.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSink publishes events to a topic exchange, routed by kind.
type AMQPSink struct {
	mu       sync.Mutex
	ch       publisher
	exchange string
	closers  []func() error
}

func NewAMQPSink(ch publisher, exchange string) *AMQPSink {
	return &AMQPSink{ch: ch, exchange: exchange}
}

// DialAMQP connects to url and declares a durable topic exchange.
func DialAMQP(url, exchange string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("exchange declare: %w", err)
	}
	s := NewAMQPSink(ch, exchange)
	s.closers = []func() error{ch.Close, conn.Close}
	return s, nil
}

func (s *AMQPSink) Record(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.Stamp()
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch.Publish(s.exchange, string(e.Kind), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID.String(),
		Timestamp:    e.At,
		Body:         body,
	})
}

func (s *AMQPSink) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
