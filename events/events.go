// Package events publishes domain notifications for downstream consumers.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Routing keys
const (
	OrderCreated   = "order.created"
	OrderAccepted  = "order.accepted"
	OrderCancelled = "order.cancelled"
	OrderDelivered = "order.delivered"
	OrderForced    = "order.status_forced"
	PaymentSettled = "payment.settled"
	RefundDue      = "payment.refund_due"
	RoleRequested  = "role.requested"
	RoleApproved   = "role.approved"
	RoleDeclined   = "role.declined"
)

// Event is a single notification envelope
type Event struct {
	Type       string         `json:"type"`
	Subject    string         `json:"subject"`
	Actor      string         `json:"actor,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// LogPublisher writes events to a structured logger; used when no broker is configured
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.logger.InfoContext(ctx, "event",
		"type", e.Type,
		"subject", e.Subject,
		"actor", e.Actor,
	)
	return nil
}

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, e)
	return nil
}

// Types returns the recorded routing keys in publish order
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}
