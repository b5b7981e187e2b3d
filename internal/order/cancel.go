package order

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-storefront/internal/journal"
	"github.com/MikeMC777/ordenes-storefront/internal/logging"
	"github.com/MikeMC777/ordenes-storefront/internal/retry"
)

// Canceller issues PUT /orders/{id}/cancel. The endpoint must be idempotent:
// the Coordinator may send it more than once for the same order.
type Canceller interface {
	CancelOrder(ctx context.Context, id int64) (*Order, error)
}

// Confirmer asks the user whether to go ahead with a cancellation.
type Confirmer interface {
	Confirm(ctx context.Context, orderID int64) (bool, error)
}

type ConfirmFunc func(ctx context.Context, orderID int64) bool

func (f ConfirmFunc) Confirm(ctx context.Context, orderID int64) (bool, error) {
	return f(ctx, orderID), nil
}

// Answer is a decision taken before Cancel is called.
type Answer bool

func (a Answer) Confirm(context.Context, int64) (bool, error) { return bool(a), nil }

const (
	DefaultCancelAttempts  = 3
	DefaultCancelBaseDelay = 600 * time.Millisecond
)

type CoordinatorOptions struct {
	Attempts  int
	BaseDelay time.Duration
	// Sleep replaces the backoff timer, mainly in tests.
	Sleep   retry.Sleeper
	Book    *Book
	Journal journal.Sink
	Logger  *zap.Logger
}

// Coordinator runs user cancellations with bounded retry and allows at most
// one cancellation per order at a time.
type Coordinator struct {
	api     Canceller
	policy  retry.Policy
	book    *Book
	journal journal.Sink
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewCoordinator(api Canceller, opts CoordinatorOptions) *Coordinator {
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultCancelAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultCancelBaseDelay
	}
	if opts.Journal == nil {
		opts.Journal = journal.Nop
	}
	return &Coordinator{
		api: api,
		policy: retry.Policy{
			Attempts: opts.Attempts,
			Backoff:  retry.Exponential(opts.BaseDelay),
			Sleep:    opts.Sleep,
		},
		book:     opts.Book,
		journal:  opts.Journal,
		logger:   logging.OrNop(opts.Logger),
		inFlight: make(map[int64]struct{}),
	}
}

// InFlight reports whether a cancellation of orderID is running.
func (c *Coordinator) InFlight(orderID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inFlight[orderID]
	return ok
}

func (c *Coordinator) acquire(orderID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[orderID]; busy {
		return false
	}
	c.inFlight[orderID] = struct{}{}
	return true
}

func (c *Coordinator) release(orderID int64) {
	c.mu.Lock()
	delete(c.inFlight, orderID)
	c.mu.Unlock()
}

// Cancel cancels orderID, whose last known status is current. A nil confirm
// counts as declined.
//
// Once the first request is sent the retry loop is not interrupted by ctx; it
// runs until the backend confirms or every attempt has failed.
func (c *Coordinator) Cancel(ctx context.Context, orderID int64, current Status, confirm Confirmer) (*Order, error) {
	if !IsCancellable(current) {
		return nil, ErrNotCancellable
	}
	if confirm == nil {
		return nil, ErrUserAborted
	}
	ok, err := confirm.Confirm(ctx, orderID)
	if err != nil {
		c.logger.Warn("cancel confirmation failed", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, ErrUserAborted
	}
	if !ok {
		return nil, ErrUserAborted
	}

	if !c.acquire(orderID) {
		return nil, ErrAlreadyInProgress
	}
	defer c.release(orderID)

	run := context.WithoutCancel(ctx)
	var confirmed *Order
	attempts, err := retry.Do(run, c.policy, func(ctx context.Context, attempt int) error {
		o, err := c.api.CancelOrder(ctx, orderID)
		if err != nil {
			c.logger.Warn("cancel attempt failed",
				zap.Int64("order_id", orderID),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}
		confirmed = o
		return nil
	})
	if err != nil {
		c.logger.Error("cancel exhausted", zap.Int64("order_id", orderID), zap.Int("attempts", attempts), zap.Error(err))
		journal.Record(run, c.journal, c.logger, journal.Event{
			Kind:     journal.KindCancelFailed,
			OrderID:  orderID,
			Attempts: attempts,
			Detail:   err.Error(),
		})
		return nil, &ExhaustedError{OrderID: orderID, Attempts: attempts, Err: err}
	}

	if c.book != nil {
		c.book.MarkCancelled(orderID, confirmed)
	}
	out := Order{ID: orderID}
	if confirmed != nil {
		out = *confirmed
	}
	out.Status = StatusCancelled

	c.logger.Info("order cancelled", zap.Int64("order_id", orderID), zap.Int("attempts", attempts))
	journal.Record(run, c.journal, c.logger, journal.Event{
		Kind:     journal.KindCancelled,
		OrderID:  orderID,
		UserID:   out.UserID,
		Attempts: attempts,
	})
	return &out, nil
}
