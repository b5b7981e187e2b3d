// Command storefront is a terminal storefront for the store backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-storefront/internal/app"
	"github.com/MikeMC777/ordenes-storefront/internal/config"
	"github.com/MikeMC777/ordenes-storefront/internal/logging"
	"github.com/MikeMC777/ordenes-storefront/internal/order"
	"github.com/MikeMC777/ordenes-storefront/internal/product"
	"github.com/MikeMC777/ordenes-storefront/internal/session"
)

func main() {
	list := flag.Bool("list", false, "print available products and exit")
	category := flag.String("category", "all", "category for -list")
	flag.Parse()

	if err := run(*list, *category); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(list bool, category string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logging.NewFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	cfg.Log(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	book := order.NewBook()
	a, err := app.New(ctx, cfg, logger, nil, app.Options{Book: book})
	if err != nil {
		return err
	}
	defer a.Close()

	if list {
		items, err := a.Catalog.Available(ctx, product.Filter{Category: category})
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Printf("%d\t%s\t%s\tstock=%s\n", it.Product.ID, it.Product.Name, it.Product.Price.StringFixed(2), it.Stock)
		}
		return nil
	}

	sess := session.New(a.API, logger)
	var user *session.User
	if cfg.Token != "" {
		user, err = sess.Resume(ctx, cfg.Token)
	} else {
		user, err = sess.Login(ctx, cfg.Username, cfg.Password)
	}
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := book.Load(ctx, a.API, user.ID); err != nil {
		logger.Warn("initial order load failed", zap.Error(err))
	}

	d := &deps{
		catalog:   a.Catalog,
		submitter: a.Submitter,
		coord:     a.Coordinator,
		book:      book,
		orders:    a.API,
		user:      user,
	}
	_, err = tea.NewProgram(newModel(d)).Run()
	return err
}
