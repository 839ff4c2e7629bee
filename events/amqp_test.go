package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeConn struct{ closed bool }

func (c *fakeConn) IsClosed() bool { return c.closed }
func (c *fakeConn) Close() error   { c.closed = true; return nil }

type fakeChannel struct {
	closed     bool
	publishErr error
	keys       []string
	bodies     [][]byte
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.keys = append(c.keys, key)
	c.bodies = append(c.bodies, msg.Body)
	return nil
}

func (c *fakeChannel) IsClosed() bool { return c.closed }
func (c *fakeChannel) Close() error   { c.closed = true; return nil }

type fakeBroker struct {
	dials    int
	fail     error
	conns    []*fakeConn
	channels []*fakeChannel
}

func (b *fakeBroker) connect() (amqpConn, amqpChannel, error) {
	b.dials++
	if b.fail != nil {
		return nil, nil, b.fail
	}
	conn, ch := &fakeConn{}, &fakeChannel{}
	b.conns = append(b.conns, conn)
	b.channels = append(b.channels, ch)
	return conn, ch, nil
}

func TestAMQPPublish(t *testing.T) {
	broker := &fakeBroker{}
	p, err := newAMQPPublisher("homechef.events", broker.connect)
	if err != nil {
		t.Fatalf("newAMQPPublisher: %v", err)
	}

	if err := p.Publish(context.Background(), Event{Type: PaymentSettled, Subject: "o-1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	ch := broker.channels[0]
	if len(ch.keys) != 1 || ch.keys[0] != PaymentSettled {
		t.Fatalf("routing keys = %v", ch.keys)
	}
	var got Event
	if err := json.Unmarshal(ch.bodies[0], &got); err != nil {
		t.Fatal(err)
	}
	if got.Subject != "o-1" || got.OccurredAt.IsZero() {
		t.Errorf("event = %+v", got)
	}
}

func TestAMQPRedialsDroppedConnection(t *testing.T) {
	broker := &fakeBroker{}
	p, err := newAMQPPublisher("homechef.events", broker.connect)
	if err != nil {
		t.Fatalf("newAMQPPublisher: %v", err)
	}

	broker.conns[0].closed = true
	if err := p.Publish(context.Background(), Event{Type: OrderCreated}); err != nil {
		t.Fatalf("Publish after drop: %v", err)
	}
	if broker.dials != 2 || len(broker.channels[1].keys) != 1 {
		t.Fatalf("dials = %d, want redial and publish on the new channel", broker.dials)
	}

	broker.channels[1].publishErr = amqp.ErrClosed
	if err := p.Publish(context.Background(), Event{Type: OrderAccepted}); err != nil {
		t.Fatalf("Publish after channel close: %v", err)
	}
	if broker.dials != 3 || len(broker.channels[2].keys) != 1 {
		t.Errorf("dials = %d, want retry on a fresh channel", broker.dials)
	}
}

func TestAMQPRedialFailure(t *testing.T) {
	broker := &fakeBroker{}
	p, err := newAMQPPublisher("homechef.events", broker.connect)
	if err != nil {
		t.Fatalf("newAMQPPublisher: %v", err)
	}

	broker.conns[0].closed = true
	broker.fail = errors.New("connection refused")
	if err := p.Publish(context.Background(), Event{Type: OrderCreated}); err == nil {
		t.Fatal("expected error while broker is down")
	}

	broker.fail = nil
	if err := p.Publish(context.Background(), Event{Type: OrderCreated}); err != nil {
		t.Fatalf("Publish after broker recovered: %v", err)
	}
	if broker.dials != 3 {
		t.Errorf("dials = %d, want 3", broker.dials)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !broker.conns[1].closed || !broker.channels[1].closed {
		t.Error("Close should close the live connection and channel")
	}
}
