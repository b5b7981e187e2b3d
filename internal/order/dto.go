package order

// CreateRequest is the body of POST /orders. One product per order.
// swagger:model CreateRequest
type CreateRequest struct {
	UserID          int64  `json:"userId" example:"1"`
	ProductID       int64  `json:"productId" example:"3"`
	Quantity        int    `json:"quantity" example:"2"`
	DeliveryAddress string `json:"deliveryAddress" example:"12 George St, Sydney NSW 2000"`
}

// PlaceOrderRequest is what the gateway accepts; the user comes from the session.
// swagger:model PlaceOrderRequest
type PlaceOrderRequest struct {
	ProductID       int64  `json:"productId" example:"3"`
	Quantity        int    `json:"quantity" example:"2"`
	DeliveryAddress string `json:"deliveryAddress" example:"12 George St, Sydney NSW 2000"`
}

// View is an order decorated for rendering.
// swagger:model View
type View struct {
	Order
	Cancellable bool   `json:"cancellable"`
	Cancelling  bool   `json:"cancelling"`
	ColorClass  string `json:"colorClass"`
	// Final is set for statuses no further transition leaves.
	Final       bool   `json:"final"`
}

// NewView decorates o. Orders listed without a total get one from their items.
func NewView(o Order, cancelling bool) View {
	if o.TotalPrice.IsZero() && len(o.Items) > 0 {
		o.TotalPrice = o.ComputedTotal()
	}
	return View{
		Order:       o,
		Cancellable: IsCancellable(o.Status),
		Cancelling:  cancelling,
		ColorClass:  ColorClass(o.Status),
		Final:       o.Status.Terminal(),
	}
}
