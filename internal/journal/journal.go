// Package journal records client-side order activity. Recording never
// changes the outcome of the operation that produced the event.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindSubmitted    Kind = "order.submitted"
	KindCancelled    Kind = "order.cancelled"
	KindCancelFailed Kind = "order.cancel_failed"
)

type Event struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	OrderID   int64     `json:"orderId,omitempty"`
	UserID    int64     `json:"userId,omitempty"`
	ProductID int64     `json:"productId,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	Attempts  int       `json:"attempts,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}

// Stamp fills ID and At when they are unset.
func (e *Event) Stamp() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
}

type Sink interface {
	Record(ctx context.Context, e Event) error
}

type nop struct{}

func (nop) Record(context.Context, Event) error { return nil }

// Nop discards events.
var Nop Sink = nop{}

// Multi fans an event out to every sink. All sinks are tried; the errors are joined.
type Multi []Sink

func (m Multi) Record(ctx context.Context, e Event) error {
	e.Stamp()
	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log writes events to a zap logger.
type Log struct {
	Logger *zap.Logger
}

func (l Log) Record(_ context.Context, e Event) error {
	e.Stamp()
	l.Logger.Info("order activity",
		zap.String("event_id", e.ID.String()),
		zap.String("kind", string(e.Kind)),
		zap.Int64("order_id", e.OrderID),
		zap.Int64("user_id", e.UserID),
		zap.Int("attempts", e.Attempts),
		zap.String("detail", e.Detail),
	)
	return nil
}

// Record sends e to s and logs a failure instead of returning it.
func Record(ctx context.Context, s Sink, logger *zap.Logger, e Event) {
	if s == nil {
		return
	}
	e.Stamp()
	if err := s.Record(ctx, e); err != nil && logger != nil {
		logger.Warn("journal record failed", zap.String("kind", string(e.Kind)), zap.Error(err))
	}
}

// History reads back the events of one order, newest first.
type History interface {
	ListByOrder(ctx context.Context, orderID int64, limit int) ([]Event, error)
}
