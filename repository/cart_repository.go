package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cart-pricing/models"
)

// CartRepository handles database operations for carts.
// Cart quantities are reserved against product stock: adding to a cart
// decrements stock, removing returns it.
type CartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(db *sql.DB, logger *zap.Logger) *CartRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartRepository{db: db, logger: logger}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// GetCart retrieves the lines of a cart in insertion order. An unknown cart is empty.
func (r *CartRepository) GetCart(ctx context.Context, cartID string) (models.Cart, error) {
	query := `
		SELECT product_id, quantity
		FROM cart_lines
		WHERE cart_id = $1
		ORDER BY created_at ASC, product_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		r.logger.Error("❌ failed to query cart lines", zap.String("cartId", cartID), zap.Error(err))
		return models.Cart{}, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	cart := models.Cart{ID: cartID, Lines: []models.CartLine{}}
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return models.Cart{}, fmt.Errorf("failed to scan cart line: %w", err)
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return models.Cart{}, fmt.Errorf("failed to iterate cart lines: %w", err)
	}
	return cart, nil
}

// SetLine sets the quantity of a product in a cart, reserving the difference
// against stock. The new quantity may use the stock already reserved by this line.
func (r *CartRepository) SetLine(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var stock int
	err = tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock product: %w", err)
	}

	reserved, err := lineQuantity(ctx, tx, cartID, productID)
	if err != nil {
		return err
	}

	delta := quantity - reserved
	if delta > stock {
		r.logger.Warn("❌ insufficient stock",
			zap.String("productId", productID), zap.Int("stock", stock), zap.Int("requested", delta))
		return ErrInsufficientStock
	}

	if _, err := tx.ExecContext(ctx, `UPDATE products SET stock = stock - $1 WHERE id = $2`, delta, productID); err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}

	upsert := `
		INSERT INTO cart_lines (cart_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`
	if _, err := tx.ExecContext(ctx, upsert, cartID, productID, quantity); err != nil {
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	r.logger.Info("✓ cart line set",
		zap.String("cartId", cartID), zap.String("productId", productID), zap.Int("quantity", quantity))
	return nil
}

// RemoveLine deletes a product from a cart and returns its quantity to stock
func (r *CartRepository) RemoveLine(ctx context.Context, cartID, productID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	reserved, err := lineQuantity(ctx, tx, cartID, productID)
	if err != nil {
		return err
	}
	if reserved == 0 {
		return ErrLineNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id = $1 AND product_id = $2`, cartID, productID); err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE products SET stock = stock + $1 WHERE id = $2`, reserved, productID); err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	r.logger.Info("✓ cart line removed", zap.String("cartId", cartID), zap.String("productId", productID))
	return nil
}

// lineQuantity returns the quantity currently reserved by a cart line, 0 if absent
func lineQuantity(ctx context.Context, tx *sql.Tx, cartID, productID string) (int, error) {
	var qty int
	err := tx.QueryRowContext(ctx,
		`SELECT quantity FROM cart_lines WHERE cart_id = $1 AND product_id = $2 FOR UPDATE`,
		cartID, productID,
	).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cart line: %w", err)
	}
	return qty, nil
}
