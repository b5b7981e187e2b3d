package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeMC777/ordenes-storefront/internal/config"
	"github.com/MikeMC777/ordenes-storefront/internal/journal"
	"github.com/MikeMC777/ordenes-storefront/internal/order"
)

func TestNew_WiresCancelThroughJournal(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/orders/5/cancel" {
			http.NotFound(w, r)
			return
		}
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 5, "userId": 1, "orderStatus": "CANCELLED"})
	}))
	defer srv.Close()

	cfg := config.Config{
		StoreAPIBaseURL:       srv.URL + "/api",
		StoreAPITimeout:       time.Second,
		StockFetchConcurrency: 2,
		CancelAttempts:        3,
		CancelBaseDelay:       time.Millisecond,
	}
	book := order.NewBook()
	book.Replace([]order.Order{{ID: 5, Status: order.StatusPending}})
	var waits []time.Duration
	a, err := New(context.Background(), cfg, nil, prometheus.NewRegistry(), Options{
		Book:  book,
		Sleep: func(_ context.Context, d time.Duration) error { waits = append(waits, d); return nil },
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer a.Close()

	if _, err := a.Coordinator.Cancel(context.Background(), 5, order.StatusPending, order.Answer(true)); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if calls != 2 || len(waits) != 1 || waits[0] != time.Millisecond {
		t.Fatalf("calls=%d waits=%v", calls, waits)
	}
	if o, _ := book.Get(5); o.Status != order.StatusCancelled {
		t.Fatalf("book status=%s", o.Status)
	}
	evs, err := a.History.ListByOrder(context.Background(), 5, 10)
	if err != nil || len(evs) != 1 || evs[0].Kind != journal.KindCancelled || evs[0].Attempts != 2 {
		t.Fatalf("history=%+v err=%v", evs, err)
	}
}
