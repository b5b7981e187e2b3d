package order

import (
	"context"
	"errors"
	"testing"
)

type listerFunc func(ctx context.Context, userID int64) ([]Order, error)

func (f listerFunc) UserOrders(ctx context.Context, userID int64) ([]Order, error) {
	return f(ctx, userID)
}

func TestBook_LoadAndCopy(t *testing.T) {
	b := NewBook()
	err := b.Load(context.Background(), listerFunc(func(_ context.Context, userID int64) ([]Order, error) {
		if userID != 1 {
			t.Fatalf("userID=%d", userID)
		}
		return []Order{{ID: 1, Status: StatusPending}, {ID: 2, Status: StatusShipped}}, nil
	}), 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got := b.Orders()
	got[0].Status = StatusDelivered
	if o, _ := b.Get(1); o.Status != StatusPending {
		t.Fatalf("Orders must return a copy")
	}
	if _, ok := b.Get(99); ok {
		t.Fatalf("unexpected order 99")
	}
}

func TestBook_LoadErrorKeepsPrevious(t *testing.T) {
	b := NewBook()
	b.Replace([]Order{{ID: 1, Status: StatusPending}})
	err := b.Load(context.Background(), listerFunc(func(context.Context, int64) ([]Order, error) {
		return nil, errors.New("down")
	}), 1)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(b.Orders()) != 1 {
		t.Fatalf("failed load must not clear the book")
	}
}

func TestBook_MarkCancelled(t *testing.T) {
	b := NewBook()
	b.Replace([]Order{{ID: 1, Status: StatusPending, DeliveryAddress: "old"}, {ID: 2, Status: StatusConfirmed}})

	if !b.MarkCancelled(1, &Order{ID: 1, Status: StatusCancelled, DeliveryAddress: "server"}) {
		t.Fatalf("order 1 not found")
	}
	o, _ := b.Get(1)
	if o.Status != StatusCancelled || o.DeliveryAddress != "server" {
		t.Fatalf("order 1=%+v", o)
	}

	b.MarkCancelled(2, nil)
	if o, _ := b.Get(2); o.Status != StatusCancelled {
		t.Fatalf("order 2 status=%s", o.Status)
	}
	if b.MarkCancelled(3, nil) {
		t.Fatalf("order 3 does not exist")
	}
}
