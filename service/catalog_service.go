package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"cart-pricing/metrics"
	"cart-pricing/models"
	"cart-pricing/pricing"
	"cart-pricing/repository"
)

// LowStockThreshold marks products shown in the low-stock warning
const LowStockThreshold = 5

// saleAttempts bounds how often a sale is recomputed after losing a write race
const saleAttempts = 3

// CatalogService serves catalog snapshots and applies sale events.
// Sale events run read-apply-persist under the write lock so a snapshot
// never observes a product between its price and flag updates.
type CatalogService struct {
	mu         sync.RWMutex
	repository repository.CatalogRepositoryInterface
	sales      *pricing.SaleApplicator
	metrics    *metrics.Registry
	logger     *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo repository.CatalogRepositoryInterface, sales *pricing.SaleApplicator, m *metrics.Registry, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		repository: repo,
		sales:      sales,
		metrics:    m,
		logger:     logger,
	}
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// Snapshot returns a fresh copy of the catalog
func (s *CatalogService) Snapshot(ctx context.Context) (models.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repository.ListProducts(ctx)
}

// Overview returns the catalog with its total stock and low-stock names
func (s *CatalogService) Overview(ctx context.Context) (models.CatalogResponse, error) {
	catalog, err := s.Snapshot(ctx)
	if err != nil {
		return models.CatalogResponse{}, err
	}

	resp := models.CatalogResponse{
		Products:   catalog,
		TotalStock: catalog.TotalStock(),
		LowStock:   []string{},
	}
	for _, p := range catalog {
		if p.Stock < LowStockThreshold {
			resp.LowStock = append(resp.LowStock, p.Name)
		}
	}
	return resp, nil
}

// ApplyLightningSale cuts the price of a random eligible product and persists it
func (s *CatalogService) ApplyLightningSale(ctx context.Context) (models.Product, bool, error) {
	return s.applySale(ctx, models.SaleLightning, func(c models.Catalog) (models.Product, bool) {
		return s.sales.ApplyLightningSale(c)
	})
}

// ApplySuggestionSale cuts the price of the first eligible product other than the last selected one
func (s *CatalogService) ApplySuggestionSale(ctx context.Context, lastSelectedID string) (models.Product, bool, error) {
	return s.applySale(ctx, models.SaleSuggestion, func(c models.Catalog) (models.Product, bool) {
		return s.sales.ApplySuggestionSale(c, lastSelectedID)
	})
}

func (s *CatalogService) applySale(ctx context.Context, kind models.SaleKind, apply func(models.Catalog) (models.Product, bool)) (models.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		product models.Product
		err     error
	)
	for attempt := 1; attempt <= saleAttempts; attempt++ {
		var catalog models.Catalog
		catalog, err = s.repository.ListProducts(ctx)
		if err != nil {
			return models.Product{}, false, fmt.Errorf("failed to load catalog for %s sale: %w", kind, err)
		}

		var ok bool
		product, ok = apply(catalog)
		if !ok {
			s.metrics.SalesNoop.WithLabelValues(string(kind)).Inc()
			s.logger.Info("no eligible product for sale", zap.String("kind", string(kind)))
			return models.Product{}, false, nil
		}

		before, _ := catalog.FindByID(product.ID)
		err = s.repository.SaveSaleState(ctx, before, product)
		if !errors.Is(err, repository.ErrStaleProduct) {
			break
		}
		s.logger.Warn("product changed while applying sale, retrying",
			zap.String("kind", string(kind)), zap.String("productId", product.ID), zap.Int("attempt", attempt))
	}
	if err != nil {
		s.logger.Error("❌ failed to persist sale", zap.String("kind", string(kind)), zap.String("productId", product.ID), zap.Error(err))
		return models.Product{}, false, fmt.Errorf("failed to persist %s sale: %w", kind, err)
	}

	s.metrics.SalesApplied.WithLabelValues(string(kind)).Inc()
	s.logger.Info("⚡ sale applied",
		zap.String("kind", string(kind)),
		zap.String("productId", product.ID),
		zap.Int64("originalPrice", product.OriginalPrice),
		zap.Int64("currentPrice", product.CurrentPrice))
	return product, true, nil
}

// ResetSales restores list prices and clears sale flags, returning how many products changed
func (s *CatalogService) ResetSales(ctx context.Context, productID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var targets []models.Product
	if productID != "" {
		p, err := s.repository.GetProduct(ctx, productID)
		if err != nil {
			return 0, err
		}
		targets = []models.Product{p}
	} else {
		catalog, err := s.repository.ListProducts(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to load catalog for reset: %w", err)
		}
		targets = catalog
	}

	var changed []repository.SaleChange
	for _, p := range targets {
		if pricing.HasActiveSale(p) {
			changed = append(changed, repository.SaleChange{Before: p, After: pricing.ResetSale(p)})
		}
	}
	if err := s.repository.SaveSaleStates(ctx, changed); err != nil {
		return 0, fmt.Errorf("failed to reset sales: %w", err)
	}

	s.metrics.SalesReset.Add(float64(len(changed)))
	s.logger.Info("✅ sales reset", zap.String("productId", productID), zap.Int("reset", len(changed)))
	return len(changed), nil
}
