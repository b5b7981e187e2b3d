package order

import (
	"context"
	"sync"
)

// Lister reads a user's orders from the store backend.
type Lister interface {
	UserOrders(ctx context.Context, userID int64) ([]Order, error)
}

// Book holds the order list a user is looking at. Statuses are written by
// Replace (a fresh server snapshot) and by MarkCancelled, which only the
// Coordinator calls after the backend confirmed a cancel.
type Book struct {
	mu     sync.RWMutex
	orders []Order
}

func NewBook() *Book { return &Book{} }

func (b *Book) Load(ctx context.Context, l Lister, userID int64) error {
	orders, err := l.UserOrders(ctx, userID)
	if err != nil {
		return err
	}
	b.Replace(orders)
	return nil
}

func (b *Book) Replace(orders []Order) {
	cp := append([]Order(nil), orders...)
	b.mu.Lock()
	b.orders = cp
	b.mu.Unlock()
}

func (b *Book) Orders() []Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Order(nil), b.orders...)
}

func (b *Book) Get(id int64) (Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// MarkCancelled sets one order's status to CANCELLED. confirmed, when given,
// is the order as returned by the backend and replaces the local copy.
func (b *Book) MarkCancelled(id int64, confirmed *Order) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID != id {
			continue
		}
		if confirmed != nil && confirmed.ID == id {
			b.orders[i] = *confirmed
		}
		b.orders[i].Status = StatusCancelled
		return true
	}
	return false
}
