package storeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MikeMC777/ordenes-storefront/internal/product"
)

func (c *Client) ListProducts(ctx context.Context) ([]product.Product, error) {
	var out []product.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p)
	switch {
	case err == nil:
		return &p, nil
	case IsStatus(err, http.StatusNotFound):
		return nil, fmt.Errorf("product %d: %w", id, product.ErrNotFound)
	default:
		return nil, err
	}
}

// ProductStock reads the aggregate stock of a product. A null body means the
// backend does not know.
func (c *Client) ProductStock(ctx context.Context, id int64) (product.Stock, error) {
	s := product.UnknownStock
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/stock", id), nil, &s)
	switch {
	case err == nil:
		return s, nil
	case IsStatus(err, http.StatusNotFound):
		return product.UnknownStock, fmt.Errorf("stock of product %d: %w", id, product.ErrNotFound)
	default:
		return product.UnknownStock, err
	}
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var (
	_ product.Searcher       = (*Client)(nil)
	_ product.CategoryLister = (*Client)(nil)
)

func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]product.Product, error) {
	var out []product.Product
	path := "/products/search?keyword=" + url.QueryEscape(keyword)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]product.Product, error) {
	var out []product.Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
