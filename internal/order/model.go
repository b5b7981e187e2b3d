package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID                   int64           `json:"id"`
	UserID               int64           `json:"userId"`
	Username             string          `json:"username,omitempty"`
	Status               Status          `json:"orderStatus"`
	TotalPrice           decimal.Decimal `json:"totalPrice"` // BigDecimal on the backend
	DeliveryAddress      string          `json:"deliveryAddress"`
	OrderDate            Timestamp       `json:"orderDate"`
	Items                []Item          `json:"orderItems,omitempty"`
	WarehouseAllocations []Allocation    `json:"warehouseAllocations,omitempty"`
}

type Item struct {
	ID           int64           `json:"id,omitempty"`
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Allocation is how much of the order a warehouse covers. Read only.
type Allocation struct {
	ID                int64  `json:"id"`
	WarehouseID       int64  `json:"warehouseId"`
	WarehouseName     string `json:"warehouseName"`
	AllocatedQuantity int    `json:"allocatedQuantity"`
}

func (it Item) ComputedSubtotal() decimal.Decimal {
	return it.ProductPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

func (o Order) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.ComputedSubtotal())
	}
	return total
}

// Timestamp decodes ISO-8601 with or without a zone offset. The store backend
// sends local date-times without one.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	for _, layout := range timestampLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return err
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// Date is the calendar date shown in order lists.
func (t Timestamp) Date() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
