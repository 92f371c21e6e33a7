package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cart-pricing/models"
)

// CatalogRepository handles database operations for products
type CatalogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sql.DB, logger *zap.Logger) *CatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogRepository{db: db, logger: logger}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

const productColumns = `id, name, original_price, current_price, stock, on_lightning_sale, on_suggestion_sale`

// ListProducts retrieves the catalog in display order
func (r *CatalogRepository) ListProducts(ctx context.Context) (models.Catalog, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY position ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("❌ failed to query products", zap.Error(err))
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	catalog := models.Catalog{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		catalog = append(catalog, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	r.logger.Debug("✓ fetched catalog", zap.Int("products", len(catalog)))
	return catalog, nil
}

// GetProduct retrieves a single product by id
func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return p, nil
}

// SaveSaleState writes the sale-owned fields of a product: current price and both flags.
// Stock and list price are never touched here. The update is conditional on the
// row still holding before's sale state; otherwise ErrStaleProduct is returned.
func (r *CatalogRepository) SaveSaleState(ctx context.Context, before, after models.Product) error {
	return saveSaleState(ctx, r.db, before, after)
}

// SaveSaleStates writes sale state for several products atomically
func (r *CatalogRepository) SaveSaleStates(ctx context.Context, changes []SaleChange) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range changes {
		if err := saveSaleState(ctx, tx, c.Before, c.After); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	r.logger.Info("✓ saved sale state", zap.Int("products", len(changes)))
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func saveSaleState(ctx context.Context, db execer, before, after models.Product) error {
	query := `
		UPDATE products
		SET current_price = $1, on_lightning_sale = $2, on_suggestion_sale = $3
		WHERE id = $4 AND current_price = $5 AND on_lightning_sale = $6 AND on_suggestion_sale = $7
	`
	res, err := db.ExecContext(ctx, query,
		after.CurrentPrice, after.OnLightningSale, after.OnSuggestionSale,
		after.ID, before.CurrentPrice, before.OnLightningSale, before.OnSuggestionSale,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", after.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing matched: either the product is gone or another writer got there first
	var exists bool
	if err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, after.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check product %s: %w", after.ID, err)
	}
	if !exists {
		return ErrProductNotFound
	}
	return ErrStaleProduct
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, p *models.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.OriginalPrice,
		&p.CurrentPrice,
		&p.Stock,
		&p.OnLightningSale,
		&p.OnSuggestionSale,
	)
}
