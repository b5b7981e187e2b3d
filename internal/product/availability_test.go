package product

import (
	"encoding/json"
	"testing"
)

func TestIsAvailable_ListingFilter(t *testing.T) {
	stocks := []Stock{StockOf(5), StockOf(0), UnknownStock, StockOf(3)}
	want := []bool{true, false, true, true}
	for i, s := range stocks {
		if got := IsAvailable(s); got != want[i] {
			t.Fatalf("stock=%s available=%v, expected %v", s, got, want[i])
		}
	}
}

func TestFilterAvailable_PreservesOrder(t *testing.T) {
	in := []Listed{
		{Product: Product{ID: 1}, Stock: StockOf(5)},
		{Product: Product{ID: 2}, Stock: StockOf(0)},
		{Product: Product{ID: 3}, Stock: UnknownStock},
		{Product: Product{ID: 4}, Stock: StockOf(3)},
	}
	out := FilterAvailable(in)
	if len(out) != 3 {
		t.Fatalf("len=%d, expected 3", len(out))
	}
	for i, id := range []int64{1, 3, 4} {
		if out[i].Product.ID != id {
			t.Fatalf("out[%d]=%d, expected %d", i, out[i].Product.ID, id)
		}
	}
	if len(in) != 4 || in[1].Product.ID != 2 {
		t.Fatalf("input mutated: %+v", in)
	}
}

func TestClampQuantity_Bounds(t *testing.T) {
	stocks := []Stock{UnknownStock, StockOf(0), StockOf(1), StockOf(2), StockOf(7), StockOf(100)}
	for _, s := range stocks {
		for req := -3; req <= 120; req++ {
			got := ClampQuantity(req, s)
			if got < 1 {
				t.Fatalf("clamp(%d,%s)=%d < 1", req, s, got)
			}
			if s.Known && s.Total >= 1 && got > s.Total {
				t.Fatalf("clamp(%d,%s)=%d exceeds stock", req, s, got)
			}
			if !s.Known {
				want := req
				if want < 1 {
					want = 1
				}
				if got != want {
					t.Fatalf("clamp(%d,unknown)=%d, expected %d", req, got, want)
				}
			}
			if again := ClampQuantity(got, s); again != got {
				t.Fatalf("clamp not a fixed point: %d -> %d (stock %s)", got, again, s)
			}
		}
	}
}

func TestClampQuantity_ZeroAndNegativeStock(t *testing.T) {
	if got := ClampQuantity(4, StockOf(0)); got != 1 {
		t.Fatalf("zero stock clamp=%d, expected 1", got)
	}
	if got := ClampQuantity(4, StockOf(-2)); got != 4 {
		t.Fatalf("negative stock is treated as unbounded, got %d", got)
	}
}

func TestParseQuantity(t *testing.T) {
	cases := map[string]int{"3": 3, " 12 ": 12, "": 1, "abc": 1, "0": 1, "-5": 1, "2.5": 1}
	for raw, want := range cases {
		if got := ParseQuantity(raw); got != want {
			t.Fatalf("ParseQuantity(%q)=%d, expected %d", raw, got, want)
		}
	}
}

func TestCanSubmit(t *testing.T) {
	cases := []struct {
		q    int
		s    Stock
		want bool
	}{
		{1, UnknownStock, true},
		{50, UnknownStock, true},
		{0, UnknownStock, false},
		{2, StockOf(2), true},
		{5, StockOf(2), false},
		{1, StockOf(0), false},
		{0, StockOf(4), false},
		{1, StockOf(-1), false},
	}
	for _, c := range cases {
		if got := CanSubmit(c.q, c.s); got != c.want {
			t.Fatalf("CanSubmit(%d,%s)=%v, expected %v", c.q, c.s, got, c.want)
		}
	}
}

func TestQuantity_ReclampsOnStockChange(t *testing.T) {
	q := NewQuantity(UnknownStock)
	q.SetRaw("9")
	if q.Value() != 9 {
		t.Fatalf("value=%d, expected 9", q.Value())
	}
	q.SetStock(StockOf(4))
	if q.Value() != 4 {
		t.Fatalf("value=%d after stock drop, expected 4", q.Value())
	}
	q.Inc()
	if q.Value() != 4 {
		t.Fatalf("inc past stock: %d", q.Value())
	}
	q.Dec()
	q.Dec()
	q.Dec()
	q.Dec()
	if q.Value() != 1 {
		t.Fatalf("dec below 1: %d", q.Value())
	}
	q.SetRaw("oops")
	if q.Value() != 1 || !q.CanSubmit() {
		t.Fatalf("value=%d canSubmit=%v", q.Value(), q.CanSubmit())
	}
	q.SetStock(StockOf(0))
	if q.CanSubmit() {
		t.Fatalf("zero stock must not be submittable")
	}
}

func TestStockJSON(t *testing.T) {
	b, _ := json.Marshal(struct {
		A Stock `json:"a"`
		B Stock `json:"b"`
	}{StockOf(3), UnknownStock})
	if string(b) != `{"a":3,"b":null}` {
		t.Fatalf("json=%s", b)
	}
	var s Stock
	if err := json.Unmarshal([]byte("null"), &s); err != nil || s.Known {
		t.Fatalf("null -> %+v err=%v", s, err)
	}
	if err := json.Unmarshal([]byte("12"), &s); err != nil || s != StockOf(12) {
		t.Fatalf("12 -> %+v err=%v", s, err)
	}
}

func TestProductJSON_AcceptsActive(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":7,"name":"Mouse","price":19.90,"category":"peripherals","active":true}`), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != 7 || !p.IsActive || p.Price.String() != "19.9" {
		t.Fatalf("decoded=%+v", p)
	}
}
