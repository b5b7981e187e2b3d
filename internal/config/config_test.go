package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreAPIBaseURL != "http://localhost:8080/api" {
		t.Fatalf("base url=%q", cfg.StoreAPIBaseURL)
	}
	if cfg.CancelAttempts != 3 || cfg.CancelBaseDelay != 600*time.Millisecond {
		t.Fatalf("cancel policy=%d/%s", cfg.CancelAttempts, cfg.CancelBaseDelay)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_API_BASEURL", "http://store:9000/api")
	t.Setenv("STOCK_FETCH_CONCURRENCY", "0")
	t.Setenv("CANCEL_BASE_DELAY", "10ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreAPIBaseURL != "http://store:9000/api" {
		t.Fatalf("base url=%q", cfg.StoreAPIBaseURL)
	}
	if cfg.StockFetchConcurrency != 1 {
		t.Fatalf("concurrency=%d, expected floor of 1", cfg.StockFetchConcurrency)
	}
	if cfg.CancelBaseDelay != 10*time.Millisecond {
		t.Fatalf("delay=%s", cfg.CancelBaseDelay)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("STORE_API_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
