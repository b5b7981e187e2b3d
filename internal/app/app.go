// Package app wires the storefront components from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-storefront/internal/config"
	"github.com/MikeMC777/ordenes-storefront/internal/journal"
	"github.com/MikeMC777/ordenes-storefront/internal/logging"
	"github.com/MikeMC777/ordenes-storefront/internal/metrics"
	"github.com/MikeMC777/ordenes-storefront/internal/order"
	"github.com/MikeMC777/ordenes-storefront/internal/product"
	"github.com/MikeMC777/ordenes-storefront/internal/retry"
	"github.com/MikeMC777/ordenes-storefront/internal/storeapi"
)

type App struct {
	API         *storeapi.Client
	Catalog     *product.Catalog
	Submitter   *order.Submitter
	Coordinator *order.Coordinator
	Journal     journal.Sink
	History     journal.History

	closers []func()
}

type Options struct {
	// Book, when set, is updated by the coordinator after confirmed cancels.
	Book *order.Book
	// Sleep overrides the cancel backoff timer.
	Sleep retry.Sleeper
}

// New builds the client stack. Postgres and AMQP journal sinks are added
// only when configured; failing to reach them is an error.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, reg prometheus.Registerer, opts Options) (*App, error) {
	logger = logging.OrNop(logger)
	a := &App{API: storeapi.New(cfg.StoreAPIBaseURL, cfg.StoreAPITimeout, logger)}

	mem := journal.NewMemory()
	sinks := journal.Multi{mem, journal.Log{Logger: logger}}
	a.History = mem
	if reg != nil {
		sinks = append(sinks, journal.Metrics{M: metrics.NewOrderMetrics(reg)})
	}
	if cfg.PostgresDSN != "" {
		pg, err := journal.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres journal: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		sinks = append(sinks, pg)
		a.History = pg
	}
	if cfg.AMQPURL != "" {
		mq, err := journal.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("amqp journal: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := mq.Close(); err != nil {
				logger.Warn("amqp close", zap.Error(err))
			}
		})
		sinks = append(sinks, mq)
	}
	a.Journal = sinks

	a.Catalog = product.NewCatalog(a.API, logger, cfg.StockFetchConcurrency)
	a.Submitter = order.NewSubmitter(a.API, a.Journal, logger)
	a.Coordinator = order.NewCoordinator(a.API, order.CoordinatorOptions{
		Attempts:  cfg.CancelAttempts,
		BaseDelay: cfg.CancelBaseDelay,
		Sleep:     opts.Sleep,
		Book:      opts.Book,
		Journal:   a.Journal,
		Logger:    logger,
	})
	return a, nil
}

// Close releases journal connections in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
