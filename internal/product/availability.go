package product

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Stock is an aggregate stock snapshot across warehouses. The zero value is
// unknown stock.
type Stock struct {
	Total int
	Known bool
}

// UnknownStock is used when the backend has not (or could not) report stock.
var UnknownStock = Stock{}

func StockOf(total int) Stock { return Stock{Total: total, Known: true} }

// MarshalJSON encodes unknown stock as null.
func (s Stock) MarshalJSON() ([]byte, error) {
	if !s.Known {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(s.Total)), nil
}

func (s *Stock) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = UnknownStock
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = StockOf(n)
	return nil
}

func (s Stock) String() string {
	if !s.Known {
		return "unknown"
	}
	return strconv.Itoa(s.Total)
}

// IsAvailable reports whether a product may be listed. Unknown stock counts as
// available; a known stock of zero does not.
func IsAvailable(s Stock) bool {
	return !s.Known || s.Total > 0
}

// ClampQuantity bounds requested to [1, s.Total] when stock is known and
// non-negative, and to [1, ∞) otherwise. With a known stock of zero the result
// is 1; CanSubmit is what blocks that order.
func ClampQuantity(requested int, s Stock) int {
	q := requested
	if s.Known && s.Total >= 0 && q > s.Total {
		q = s.Total
	}
	if q < 1 {
		q = 1
	}
	return q
}

// ParseQuantity reads user input; anything that is not a positive integer is 1.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func CanSubmit(quantity int, s Stock) bool {
	if quantity < 1 {
		return false
	}
	if !s.Known {
		return true
	}
	return s.Total > 0 && quantity <= s.Total
}

// MaxQuantity is the upper bound of the quantity selector, if there is one.
func MaxQuantity(s Stock) (int, bool) {
	if !s.Known {
		return 0, false
	}
	if s.Total < 0 {
		return 0, true
	}
	return s.Total, true
}

// FilterAvailable keeps the listed products that are available, in order.
func FilterAvailable(items []Listed) []Listed {
	out := make([]Listed, 0, len(items))
	for _, it := range items {
		if IsAvailable(it.Stock) {
			out = append(out, it)
		}
	}
	return out
}

// Quantity is the quantity selector state of a product page. Requested is
// re-clamped on every change, so it is always inside the current bound.
type Quantity struct {
	requested int
	stock     Stock
}

func NewQuantity(s Stock) *Quantity {
	return &Quantity{requested: 1, stock: s}
}

func (q *Quantity) Value() int   { return q.requested }
func (q *Quantity) Stock() Stock { return q.stock }

func (q *Quantity) SetStock(s Stock) {
	q.stock = s
	q.requested = ClampQuantity(q.requested, s)
}

func (q *Quantity) Set(n int) { q.requested = ClampQuantity(n, q.stock) }

func (q *Quantity) SetRaw(raw string) { q.Set(ParseQuantity(raw)) }

func (q *Quantity) Inc() { q.Set(q.requested + 1) }

func (q *Quantity) Dec() { q.Set(q.requested - 1) }

// CanSubmit reports whether the current selection may be ordered.
func (q *Quantity) CanSubmit() bool { return CanSubmit(q.requested, q.stock) }
