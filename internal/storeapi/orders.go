package storeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MikeMC777/ordenes-storefront/internal/order"
)

func (c *Client) CreateOrder(ctx context.Context, req order.CreateRequest, key string) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &o, idempotencyKey(key)); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &o)
	switch {
	case err == nil:
		return &o, nil
	case IsStatus(err, http.StatusNotFound):
		return nil, fmt.Errorf("order %d: %w", id, order.ErrNotFound)
	default:
		return nil, err
	}
}

func (c *Client) UserOrders(ctx context.Context, userID int64) ([]order.Order, error) {
	var out []order.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelOrder asks the backend to cancel id. The call is safe to repeat.
func (c *Client) CancelOrder(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/cancel", id), nil, &o); err != nil {
		return nil, err
	}
	if o.ID == 0 {
		o.ID = id
	}
	return &o, nil
}
