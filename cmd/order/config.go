package main

import (
	"os"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
)

// Config is loadable from environment variables, flags, or an optional
// YAML file next to the binary. The Product Service base URL is resolved
// once at startup and fixed for the process lifetime.
type Config struct {
	Addr              string        `default:"0.0.0.0:8002" usage:"listen address"`
	ProductServiceURL string        `default:"http://localhost:8001" usage:"Product Service base URL" flag:"product-service-url"`
	ProductTimeout    time.Duration `default:"5s" usage:"per-item product lookup timeout" flag:"product-timeout"`

	Metrics   MetricsConfig
	RateLimit RateLimitConfig
}

type MetricsConfig struct {
	Enabled bool   `default:"false" usage:"expose /metrics"`
	Token   string `usage:"bearer token guarding /metrics"`
}

// RateLimitConfig controls the per-client-IP sliding window limiter.
// Max 0 disables it.
type RateLimitConfig struct {
	Max           int `default:"0"  usage:"max requests per window per client IP (0 disables)"`
	WindowSeconds int `default:"60" usage:"rate limit window in seconds" flag:"rate-limit-window"`
}

func loadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		Files: []string{"order.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, err
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps the platform-provided PORT variable onto the
// listen address when Addr was not set explicitly.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8002" {
		c.Addr = "0.0.0.0:" + strings.TrimPrefix(port, ":")
	}
}
