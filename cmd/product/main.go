package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shoplite/internal/product"
	"shoplite/pkg/kit"
)

func main() {
	service := "product-service"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	store := product.NewMemStore()
	if cfg.SeedDemo {
		seedDemo(store, log)
	}

	deps := product.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	}
	if cfg.RateLimit.Max > 0 {
		deps.RateLimit = kit.NewIPRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds)
	}

	h := product.NewHandler(&product.Server{Store: store, Log: log}, deps)

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func seedDemo(store product.Store, log *zap.Logger) {
	demo := []product.Product{
		{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Category: "Electronics"},
		{Name: "Mouse", Price: decimal.RequireFromString("29.99"), Category: "Electronics"},
		{Name: "Keyboard", Price: decimal.RequireFromString("79.99"), Category: "Electronics"},
	}

	for _, p := range demo {
		if _, err := store.Create(context.Background(), p); err != nil {
			log.Warn("seed product failed", zap.Error(err), zap.String("name", p.Name))
		}
	}
	log.Info("demo catalog seeded", zap.Int("products", len(demo)))
}
