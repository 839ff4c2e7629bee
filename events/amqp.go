package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpConn interface {
	IsClosed() bool
	Close() error
}

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type connectFunc func() (amqpConn, amqpChannel, error)

// AMQPPublisher publishes events to a RabbitMQ topic exchange. A dropped
// connection is redialed once on the next Publish.
type AMQPPublisher struct {
	connect  connectFunc
	conn     amqpConn
	ch       amqpChannel
	exchange string
	mu       sync.Mutex
}

// DialAMQP connects and declares the exchange
func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	return newAMQPPublisher(exchange, func() (amqpConn, amqpChannel, error) {
		return dialExchange(url, exchange)
	})
}

func newAMQPPublisher(exchange string, connect connectFunc) (*AMQPPublisher, error) {
	conn, ch, err := connect()
	if err != nil {
		return nil, err
	}
	return &AMQPPublisher{connect: connect, conn: conn, ch: ch, exchange: exchange}, nil
}

func dialExchange(url, exchange string) (amqpConn, amqpChannel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return conn, ch, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	redialed := false
	if p.closed() {
		if err := p.redial(); err != nil {
			return err
		}
		redialed = true
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, e.Type, false, false, msg)
	if errors.Is(err, amqp.ErrClosed) && !redialed {
		if err := p.redial(); err != nil {
			return err
		}
		err = p.ch.PublishWithContext(ctx, p.exchange, e.Type, false, false, msg)
	}
	return err
}

func (p *AMQPPublisher) closed() bool {
	return p.conn == nil || p.ch == nil || p.conn.IsClosed() || p.ch.IsClosed()
}

// redial replaces the connection and channel; callers hold mu
func (p *AMQPPublisher) redial() error {
	p.closeLocked()
	conn, ch, err := p.connect()
	if err != nil {
		return fmt.Errorf("rabbitmq reconnect: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *AMQPPublisher) closeLocked() error {
	if p.ch != nil && !p.ch.IsClosed() {
		if err := p.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}
	if p.conn != nil && !p.conn.IsClosed() {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	p.conn, p.ch = nil, nil
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}
