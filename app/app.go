package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"cart-pricing/app/controller"
	"cart-pricing/app/router"
	"cart-pricing/db"
	"cart-pricing/metrics"
	"cart-pricing/pricing"
	"cart-pricing/repository"
	"cart-pricing/service"
)

// Config holds process-level settings read from the environment
type Config struct {
	Port          string
	PricingConfig string
}

// LoadConfig reads Config from environment variables
func LoadConfig() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// Remove leading colon if present
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}

	rulesPath := os.Getenv("PRICING_CONFIG")
	if rulesPath == "" {
		rulesPath = "config/pricing.yaml"
	}

	return Config{Port: port, PricingConfig: rulesPath}
}

// Addr returns the listen address on all interfaces
func (c Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// Initialize opens the database, wires the pricing stack and returns the HTTP handler
func Initialize(ctx context.Context, cfg Config, logger *zap.Logger) (http.Handler, error) {
	conn, err := db.InitDB(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rules, err := pricing.LoadRules(cfg.PricingConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing rules: %w", err)
	}
	logger.Info("📋 pricing rules loaded",
		zap.String("path", cfg.PricingConfig),
		zap.String("baseline", string(rules.Baseline)),
		zap.String("timezone", rules.Timezone),
	)

	return Build(conn, rules, logger)
}

// Build wires repositories, services and controllers over an open connection
func Build(conn *sql.DB, rules pricing.Rules, logger *zap.Logger) (http.Handler, error) {
	engine, err := pricing.NewEngine(rules, pricing.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	sales := pricing.NewSaleApplicator(rules.Sales, pricing.DefaultRNG())
	m := metrics.NewRegistry()

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(conn, logger)
	cartRepo := repository.NewCartRepository(conn, logger)

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, sales, m, logger)
	cartService := service.NewCartService(cartRepo, catalogService, engine, m, logger)

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(catalogService, logger),
		Cart:    controller.NewCartController(cartService, nil, logger),
		Sale:    controller.NewSaleController(catalogService, logger),
		Metrics: m.Handler(),
	}

	return router.NewRouter(controllers), nil
}
