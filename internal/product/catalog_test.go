package product

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

// stubAPI implements API in memory. A missing stock entry fails the stock call.
type stubAPI struct {
	mu         sync.Mutex
	products   []Product
	stock      map[int64]Stock
	stockCalls int
}

func (s *stubAPI) ListProducts(ctx context.Context) ([]Product, error) {
	return append([]Product(nil), s.products...), nil
}

func (s *stubAPI) GetProduct(ctx context.Context, id int64) (*Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *stubAPI) ProductStock(ctx context.Context, id int64) (Stock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stockCalls++
	st, ok := s.stock[id]
	if !ok {
		return Stock{}, errors.New("stock service down")
	}
	return st, nil
}

func (s *stubAPI) Categories(ctx context.Context) ([]string, error) {
	return []string{"audio", "peripherals"}, nil
}

func newStubAPI() *stubAPI {
	return &stubAPI{
		products: []Product{
			{ID: 1, Name: "Mouse Pro", Description: "wireless", Category: "peripherals", Price: decimal.RequireFromString("99.90")},
			{ID: 2, Name: "Keyboard", Description: "mechanical", Category: "peripherals", Price: decimal.RequireFromString("149.90")},
			{ID: 3, Name: "Headset", Description: "noise cancelling", Category: "audio", Price: decimal.RequireFromString("149.90")},
			{ID: 4, Name: "Speaker", Description: "bluetooth", Category: "audio", Price: decimal.RequireFromString("59.00")},
		},
		// 3 has no entry: its stock read fails.
		stock: map[int64]Stock{1: StockOf(5), 2: StockOf(0), 4: StockOf(3)},
	}
}

func TestCatalogAvailable_FiltersZeroStockKeepsUnknown(t *testing.T) {
	api := newStubAPI()
	c := NewCatalog(api, nil, 2)

	got, err := c.Available(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	ids := []int64{}
	for _, it := range got {
		ids = append(ids, it.Product.ID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 3 || ids[2] != 4 {
		t.Fatalf("ids=%v, expected [1 3 4]", ids)
	}
	if got[1].Stock.Known {
		t.Fatalf("failed stock read must be unknown, got %s", got[1].Stock)
	}
	if api.stockCalls != 4 {
		t.Fatalf("stock calls=%d, expected one per product", api.stockCalls)
	}
}

func TestCatalogAvailable_RereadsStockEveryCall(t *testing.T) {
	api := newStubAPI()
	c := NewCatalog(api, nil, 4)

	if _, err := c.Available(context.Background(), Filter{}); err != nil {
		t.Fatalf("available: %v", err)
	}
	api.mu.Lock()
	api.stock[1] = StockOf(0)
	api.mu.Unlock()

	got, err := c.Available(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	for _, it := range got {
		if it.Product.ID == 1 {
			t.Fatalf("product 1 sold out but still listed")
		}
	}
}

func TestCatalogAvailable_CategoryAndKeyword(t *testing.T) {
	c := NewCatalog(newStubAPI(), nil, 1)

	got, err := c.Available(context.Background(), Filter{Category: "audio"})
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("audio len=%d, expected 2", len(got))
	}

	got, _ = c.Available(context.Background(), Filter{Category: "all", Q: "WIRE"})
	if len(got) != 1 || got[0].Product.ID != 1 {
		t.Fatalf("keyword result=%+v", got)
	}
}

// searchingAPI also answers the backend search endpoints. Its search ignores
// the keyword so the local filter still has work to do.
type searchingAPI struct {
	*stubAPI
	searched []string
	byCat    []string
}

func (s *searchingAPI) ListProducts(ctx context.Context) ([]Product, error) {
	return nil, errors.New("full listing not expected")
}

func (s *searchingAPI) SearchProducts(ctx context.Context, keyword string) ([]Product, error) {
	s.searched = append(s.searched, keyword)
	return s.stubAPI.ListProducts(ctx)
}

func (s *searchingAPI) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	s.byCat = append(s.byCat, category)
	var out []Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestCatalogAvailable_UsesBackendSearch(t *testing.T) {
	api := &searchingAPI{stubAPI: newStubAPI()}
	c := NewCatalog(api, nil, 2)

	got, err := c.Available(context.Background(), Filter{Category: "audio", Q: " speak "})
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(got) != 1 || got[0].Product.ID != 4 {
		t.Fatalf("result=%+v", got)
	}
	if len(api.searched) != 1 || api.searched[0] != "speak" || len(api.byCat) != 0 {
		t.Fatalf("searched=%v byCat=%v", api.searched, api.byCat)
	}

	got, err = c.Available(context.Background(), Filter{Category: "peripherals"})
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	// Keyboard is sold out.
	if len(got) != 1 || got[0].Product.ID != 1 {
		t.Fatalf("result=%+v", got)
	}
	if len(api.byCat) != 1 || api.byCat[0] != "peripherals" {
		t.Fatalf("byCat=%v", api.byCat)
	}

	if _, err := c.Available(context.Background(), Filter{Category: "all"}); err == nil {
		t.Fatalf("expected the full listing for category all")
	}
}

func TestCatalogDetail(t *testing.T) {
	c := NewCatalog(newStubAPI(), nil, 1)

	d, err := c.Detail(context.Background(), 4)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if d.Product.Name != "Speaker" || d.Stock != StockOf(3) {
		t.Fatalf("detail=%+v", d)
	}

	d, err = c.Detail(context.Background(), 3)
	if err != nil || d.Stock.Known {
		t.Fatalf("detail with failed stock read: %+v err=%v", d, err)
	}

	if _, err := c.Detail(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, expected ErrNotFound", err)
	}
}
