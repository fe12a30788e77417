package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"shoplite/internal/order"
	"shoplite/pkg/kit"
)

func main() {
	service := "order-service"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	products := order.NewProductClient(cfg.ProductServiceURL)
	products.Client.Timeout = cfg.ProductTimeout
	log.Info("product service configured", zap.String("url", cfg.ProductServiceURL))

	s := &order.Server{
		Store:    order.NewMemStore(),
		Products: products,
		Log:      log,
	}

	deps := order.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	}
	if cfg.RateLimit.Max > 0 {
		deps.RateLimit = kit.NewIPRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds)
	}

	h := order.NewHandler(s, deps)

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
