package main

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ordenes-storefront/internal/order"
	"github.com/MikeMC777/ordenes-storefront/internal/product"
	"github.com/MikeMC777/ordenes-storefront/internal/session"
)

type stubStore struct {
	mu          sync.Mutex
	stock       map[int64]product.Stock
	orders      []order.Order
	created     []order.CreateRequest
	cancelCalls int
	cancelErr   error
}

func (s *stubStore) ListProducts(ctx context.Context) ([]product.Product, error) {
	return []product.Product{
		{ID: 1, Name: "Mouse Pro", Category: "peripherals", Price: decimal.RequireFromString("99.90")},
		{ID: 2, Name: "Keyboard", Category: "peripherals", Price: decimal.RequireFromString("149.90")},
		{ID: 3, Name: "Headset", Category: "audio", Price: decimal.RequireFromString("149.90")},
	}, nil
}

func (s *stubStore) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	ps, _ := s.ListProducts(ctx)
	for _, p := range ps {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, product.ErrNotFound
}

func (s *stubStore) ProductStock(ctx context.Context, id int64) (product.Stock, error) {
	return s.stock[id], nil
}

func (s *stubStore) Categories(ctx context.Context) ([]string, error) {
	return []string{"audio", "peripherals"}, nil
}

func (s *stubStore) CreateOrder(ctx context.Context, req order.CreateRequest, key string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, req)
	o := order.Order{ID: 100, UserID: req.UserID, Status: order.StatusPending, DeliveryAddress: req.DeliveryAddress}
	s.orders = append(s.orders, o)
	return &o, nil
}

func (s *stubStore) UserOrders(ctx context.Context, userID int64) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]order.Order(nil), s.orders...), nil
}

func (s *stubStore) CancelOrder(ctx context.Context, id int64) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelCalls++
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	return &order.Order{ID: id, UserID: 1, Status: order.StatusCancelled}, nil
}

func newTestDeps(s *stubStore) *deps {
	book := order.NewBook()
	return &deps{
		catalog:   product.NewCatalog(s, nil, 2),
		submitter: order.NewSubmitter(s, nil, nil),
		coord: order.NewCoordinator(s, order.CoordinatorOptions{
			Book:  book,
			Sleep: func(context.Context, time.Duration) error { return nil },
		}),
		book:   book,
		orders: s,
		user:   &session.User{ID: 1, Username: "alice"},
	}
}

// step applies msg and then runs the returned commands, feeding their
// messages back in. Batches are not expanded.
func step(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(model)
	if cmd == nil {
		return m
	}
	out := cmd()
	if _, isBatch := out.(tea.BatchMsg); out == nil || isBatch {
		return m
	}
	return step(t, m, out)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m model, text string) model {
	for _, r := range text {
		m = step(t, m, key(string(r)))
	}
	return m
}

func TestProductsScreen_HidesSoldOut(t *testing.T) {
	s := &stubStore{stock: map[int64]product.Stock{1: product.StockOf(2), 2: product.StockOf(0), 3: product.UnknownStock}}
	m := newModel(newTestDeps(s))
	m = step(t, m, loadProductsCmd(m.d, "all")())

	v := m.View()
	if !strings.Contains(v, "Mouse Pro") || !strings.Contains(v, "Headset") || strings.Contains(v, "Keyboard") {
		t.Fatalf("view=\n%s", v)
	}
	if !strings.Contains(v, "stock: unknown") {
		t.Fatalf("unknown stock not rendered:\n%s", v)
	}
}

func TestDetail_QuantityClampedAndOrderPlaced(t *testing.T) {
	s := &stubStore{stock: map[int64]product.Stock{1: product.StockOf(2)}}
	m := newModel(newTestDeps(s))
	m = step(t, m, loadProductsCmd(m.d, "all")())
	m = step(t, m, key("enter"))
	if m.screen != screenDetail {
		t.Fatalf("screen=%d", m.screen)
	}

	m = step(t, m, key("+"))
	m = step(t, m, key("+"))
	m = step(t, m, key("+"))
	if m.qty.Value() != 2 {
		t.Fatalf("quantity=%d, expected clamp to stock 2", m.qty.Value())
	}

	m = step(t, m, key("enter"))
	if m.status != "Please enter a delivery address." || len(s.created) != 0 {
		t.Fatalf("status=%q created=%d", m.status, len(s.created))
	}

	m = step(t, m, key("a"))
	m = typeText(t, m, "12 George St")
	m = step(t, m, key("enter"))
	m = step(t, m, key("enter"))

	if len(s.created) != 1 || s.created[0].Quantity != 2 || s.created[0].DeliveryAddress != "12 George St" {
		t.Fatalf("created=%+v", s.created)
	}
	if m.screen != screenOrders || !strings.Contains(m.View(), "#100") {
		t.Fatalf("screen=%d view=\n%s", m.screen, m.View())
	}
}

func TestOrders_CancelNeedsConfirmation(t *testing.T) {
	s := &stubStore{orders: []order.Order{
		{ID: 10, UserID: 1, Status: order.StatusShipped},
		{ID: 11, UserID: 1, Status: order.StatusPending},
	}}
	d := newTestDeps(s)
	m := newModel(d)
	m = step(t, m, key("o"))

	m = step(t, m, key("c"))
	if m.confirming != 0 {
		t.Fatalf("shipped order must not prompt")
	}

	m = step(t, m, key("down"))
	m = step(t, m, key("c"))
	if m.confirming != 11 || !strings.Contains(m.status, "(y/n)") {
		t.Fatalf("confirming=%d status=%q", m.confirming, m.status)
	}
	m = step(t, m, key("n"))
	if s.cancelCalls != 0 || m.confirming != 0 {
		t.Fatalf("declined cancel reached the backend")
	}

	m = step(t, m, key("c"))
	m = step(t, m, key("y"))
	if s.cancelCalls != 1 || m.status != "Order #11 cancelled." {
		t.Fatalf("calls=%d status=%q", s.cancelCalls, m.status)
	}
	if o, _ := d.book.Get(11); o.Status != order.StatusCancelled {
		t.Fatalf("book status=%s", o.Status)
	}
}

func TestOrders_CancelExhausted(t *testing.T) {
	s := &stubStore{
		orders:    []order.Order{{ID: 11, UserID: 1, Status: order.StatusConfirmed}},
		cancelErr: errors.New("503"),
	}
	d := newTestDeps(s)
	m := newModel(d)
	m = step(t, m, key("o"))
	m = step(t, m, key("c"))
	m = step(t, m, key("y"))

	if s.cancelCalls != 3 {
		t.Fatalf("calls=%d", s.cancelCalls)
	}
	if m.status != "Failed to cancel order. Please try again shortly." {
		t.Fatalf("status=%q", m.status)
	}
	if o, _ := d.book.Get(11); o.Status != order.StatusConfirmed {
		t.Fatalf("status changed to %s after failed cancel", o.Status)
	}
}

func TestOrders_CancelAfterListShrank(t *testing.T) {
	s := &stubStore{orders: []order.Order{
		{ID: 10, UserID: 1, Status: order.StatusPending},
		{ID: 11, UserID: 1, Status: order.StatusPending},
	}}
	d := newTestDeps(s)
	m := newModel(d)
	m = step(t, m, key("o"))
	m = step(t, m, key("down"))
	if m.selOrder != 1 {
		t.Fatalf("selOrder=%d", m.selOrder)
	}

	// A reload lands in the book before its message reaches the model.
	d.book.Replace([]order.Order{{ID: 10, UserID: 1, Status: order.StatusPending}})
	m = step(t, m, key("c"))
	if m.confirming != 0 || s.cancelCalls != 0 {
		t.Fatalf("confirming=%d calls=%d", m.confirming, s.cancelCalls)
	}
	if !strings.Contains(m.View(), "#10") {
		t.Fatalf("view=%q", m.View())
	}
}
