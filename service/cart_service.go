package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cart-pricing/metrics"
	"cart-pricing/models"
	"cart-pricing/pricing"
	"cart-pricing/repository"
	"cart-pricing/utils"
)

// CartService manages stored carts and quotes them against a fresh catalog snapshot
type CartService struct {
	carts   repository.CartRepositoryInterface
	catalog CatalogServiceInterface
	engine  *pricing.Engine
	metrics *metrics.Registry
	logger  *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(carts repository.CartRepositoryInterface, catalog CatalogServiceInterface, engine *pricing.Engine, m *metrics.Registry, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		carts:   carts,
		catalog: catalog,
		engine:  engine,
		metrics: m,
		logger:  logger,
	}
}

// Ensure CartService implements CartServiceInterface
var _ CartServiceInterface = (*CartService)(nil)

func (s *CartService) GetCart(ctx context.Context, cartID string) (models.Cart, error) {
	return s.carts.GetCart(ctx, cartID)
}

func (s *CartService) SetLine(ctx context.Context, cartID, productID string, quantity int) error {
	return s.carts.SetLine(ctx, cartID, productID, quantity)
}

func (s *CartService) RemoveLine(ctx context.Context, cartID, productID string) error {
	return s.carts.RemoveLine(ctx, cartID, productID)
}

// QuoteCart prices a stored cart
func (s *CartService) QuoteCart(ctx context.Context, cartID string, at time.Time) (models.QuoteResponse, error) {
	cart, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return models.QuoteResponse{}, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}
	return s.QuoteLines(ctx, cart.Lines, at)
}

// QuoteLines prices the given lines, then computes points on the final total
func (s *CartService) QuoteLines(ctx context.Context, lines []models.CartLine, at time.Time) (models.QuoteResponse, error) {
	start := time.Now()

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return models.QuoteResponse{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	decision := s.engine.EvaluateDiscounts(catalog, lines, at)
	result := s.engine.PriceDecision(decision)
	points := s.engine.Points(result.FinalTotal, decision.CartLines(), at)

	s.metrics.Quotes.Inc()
	s.metrics.SkippedLines.Add(float64(decision.Skipped))
	s.metrics.QuoteTotal.Observe(float64(result.FinalTotal))
	s.metrics.PointsAwarded.Add(float64(points.TotalPoints))
	s.metrics.QuoteLatencySec.Observe(time.Since(start).Seconds())

	s.logger.Info("💰 cart quoted",
		zap.Int("lines", len(lines)),
		zap.Int("skipped", decision.Skipped),
		zap.Int("totalQuantity", decision.TotalQuantity),
		zap.Bool("bulk", decision.Bulk),
		zap.Bool("tuesday", decision.Tuesday),
		zap.String("subtotal", utils.FormatAmount(result.Subtotal)),
		zap.String("finalTotal", utils.FormatAmount(result.FinalTotal)),
		zap.Int64("points", points.TotalPoints))

	return models.QuoteResponse{
		Pricing:           result,
		Points:            points,
		FinalTotalDisplay: utils.FormatAmount(result.FinalTotal),
		DiscountDisplay:   utils.FormatPercent(result.OverallDiscountRate),
	}, nil
}
