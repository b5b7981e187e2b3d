package product

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Price keeps the backend's BigDecimal exactly.
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	ImageURL string          `json:"imageUrl,omitempty"`
	IsActive bool            `json:"isActive"`
}

// UnmarshalJSON also accepts "active", which is how the store backend names the flag.
func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var aux struct {
		plain
		Active *bool `json:"active"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	if aux.Active != nil {
		p.IsActive = *aux.Active
	}
	return nil
}

// Listed is a product paired with the stock snapshot it was listed against.
// swagger:model Listed
type Listed struct {
	Product Product `json:"product"`
	Stock   Stock   `json:"stock"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: product not found
	Error string `json:"error"`
	// Machine readable reason, when there is one
	// example: insufficient_stock
	Code string `json:"code,omitempty"`
}

// DetailResponse is what the gateway returns for a single product.
// swagger:model DetailResponse
type DetailResponse struct {
	Product     Product `json:"product"`
	Stock       Stock   `json:"stock"`
	Available   bool    `json:"available"`
	MaxQuantity *int    `json:"maxQuantity,omitempty"`
}

// ListResponse represents the filtered product listing.
// swagger:model
type ListResponse struct {
	// category filter applied
	Category string `json:"category,omitempty"`
	// keyword filter applied
	Q     string   `json:"q,omitempty"`
	Items []Listed `json:"items"`
}
