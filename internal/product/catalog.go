package product

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MikeMC777/ordenes-storefront/internal/logging"
)

var (
	ErrNotFound = errors.New("product not found")
)

// API is the part of the store backend the catalog reads from.
type API interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ProductStock(ctx context.Context, id int64) (Stock, error)
	Categories(ctx context.Context) ([]string, error)
}

// Searcher and CategoryLister narrow the listing on the backend. The catalog
// uses them when the API has them and filters locally either way.
type Searcher interface {
	SearchProducts(ctx context.Context, keyword string) ([]Product, error)
}

type CategoryLister interface {
	ProductsByCategory(ctx context.Context, category string) ([]Product, error)
}

type Filter struct {
	// Category "" or "all" disables the category filter.
	Category string
	Q        string
}

func (f Filter) category() string {
	c := strings.TrimSpace(f.Category)
	if strings.EqualFold(c, "all") {
		return ""
	}
	return c
}

func (f Filter) match(p Product) bool {
	if c := f.category(); c != "" && p.Category != c {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q)
}

type Catalog struct {
	api         API
	logger      *zap.Logger
	concurrency int
}

func NewCatalog(api API, logger *zap.Logger, concurrency int) *Catalog {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Catalog{api: api, logger: logging.OrNop(logger), concurrency: concurrency}
}

// Available lists the products that can be ordered right now. Stock is read
// fresh on every call; a product whose stock cannot be read is listed with
// unknown stock.
func (c *Catalog) Available(ctx context.Context, f Filter) ([]Listed, error) {
	products, err := c.candidates(ctx, f)
	if err != nil {
		return nil, err
	}
	listed, err := c.withStock(ctx, products)
	if err != nil {
		return nil, err
	}
	available := FilterAvailable(listed)

	out := available[:0]
	for _, it := range available {
		if f.match(it.Product) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *Catalog) candidates(ctx context.Context, f Filter) ([]Product, error) {
	if q := strings.TrimSpace(f.Q); q != "" {
		if s, ok := c.api.(Searcher); ok {
			return s.SearchProducts(ctx, q)
		}
	}
	if cat := f.category(); cat != "" {
		if l, ok := c.api.(CategoryLister); ok {
			return l.ProductsByCategory(ctx, cat)
		}
	}
	return c.api.ListProducts(ctx)
}

func (c *Catalog) withStock(ctx context.Context, products []Product) ([]Listed, error) {
	listed := make([]Listed, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i := range products {
		i := i
		listed[i].Product = products[i]
		g.Go(func() error {
			s, err := c.api.ProductStock(gctx, products[i].ID)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Warn("stock unavailable, listing optimistically",
					zap.Int64("product_id", products[i].ID), zap.Error(err))
				s = UnknownStock
			}
			listed[i].Stock = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return listed, nil
}

// Detail returns a product with a fresh stock snapshot. Stock read failures
// are reported as unknown stock, as in the listing.
func (c *Catalog) Detail(ctx context.Context, id int64) (*Listed, error) {
	p, err := c.api.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	s, err := c.api.ProductStock(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("stock unavailable", zap.Int64("product_id", id), zap.Error(err))
		s = UnknownStock
	}
	return &Listed{Product: *p, Stock: s}, nil
}

func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	return c.api.Categories(ctx)
}
