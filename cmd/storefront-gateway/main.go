// Command storefront-gateway serves the storefront JSON API in front of the
// store backend.
//
// @title        Storefront Gateway API
// @version      1.0
// @description  Product availability, order placement and cancellation for the storefront UI.
// @BasePath     /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-storefront/internal/app"
	"github.com/MikeMC777/ordenes-storefront/internal/config"
	"github.com/MikeMC777/ordenes-storefront/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer func() { _ = logger.Sync() }()
	cfg.Log(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a, err := app.New(ctx, cfg, logger, reg, app.Options{})
	cancel()
	if err != nil {
		logger.Fatal("wiring", zap.Error(err))
	}
	defer a.Close()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.GatewayAddr,
		Handler:           newRouter(a, reg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("storefront-gateway listening", zap.String("addr", cfg.GatewayAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
