package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, cartID string) (*Cart, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*Cart, error)
	GetItems(ctx context.Context, cartID string) ([]Item, error)
	CreateWithItems(ctx context.Context, c *Cart) error
	UpsertItem(ctx context.Context, cartID string, it *Item) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	UpdateTotals(ctx context.Context, c *Cart) error
	// Deactivate flips is_active off and reports whether this call won the
	// flip. A false return means the cart was already inactive.
	Deactivate(ctx context.Context, cartID string) (bool, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetByID(ctx context.Context, cartID string) (*Cart, error) {
	return r.get(ctx,
		`SELECT id, customer_id, total_item, total_price, is_active, created_at, updated_at
         FROM carts WHERE id = $1`, cartID)
}

func (r *repo) GetActiveByCustomer(ctx context.Context, customerID string) (*Cart, error) {
	c, err := r.get(ctx,
		`SELECT id, customer_id, total_item, total_price, is_active, created_at, updated_at
         FROM carts WHERE customer_id = $1 AND is_active ORDER BY created_at DESC LIMIT 1`,
		customerID)
	if err != nil || c == nil {
		return c, err
	}
	c.Items, err = r.GetItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) get(ctx context.Context, query string, arg any) (*Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&c.ID, &c.CustomerID, &c.TotalItem, &c.TotalPrice, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select cart: %w", err)
	}
	return &c, nil
}

func (r *repo) GetItems(ctx context.Context, cartID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, cart_id, product_id, product_name, product_image, qty, price, total_price, is_active
         FROM cart_items WHERE cart_id = $1`,
		cartID,
	)
	if err != nil {
		return nil, fmt.Errorf("select cart_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.ProductName, &it.ProductImage,
			&it.Qty, &it.Price, &it.TotalPrice, &it.IsActive); err != nil {
			return nil, fmt.Errorf("scan cart_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// CreateWithItems persists the cart and any items in one transaction.
func (r *repo) CreateWithItems(ctx context.Context, c *Cart) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO carts (id, customer_id, total_item, total_price, is_active, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
         RETURNING created_at, updated_at`,
		c.ID, c.CustomerID, c.TotalItem, c.TotalPrice, c.IsActive,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}

	for i := range c.Items {
		it := &c.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.CartID = c.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cart_items (id, cart_id, product_id, product_name, product_image,
                                     qty, price, total_price, is_active)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, it.CartID, it.ProductID, it.ProductName, it.ProductImage,
			it.Qty, it.Price, it.TotalPrice, it.IsActive,
		)
		if err != nil {
			return fmt.Errorf("insert cart_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) UpsertItem(ctx context.Context, cartID string, it *Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.CartID = cartID

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_items (id, cart_id, product_id, product_name, product_image,
                                 qty, price, total_price, is_active)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         ON CONFLICT (cart_id, product_id) DO UPDATE
         SET qty = EXCLUDED.qty, price = EXCLUDED.price,
             total_price = EXCLUDED.total_price, is_active = EXCLUDED.is_active`,
		it.ID, it.CartID, it.ProductID, it.ProductName, it.ProductImage,
		it.Qty, it.Price, it.TotalPrice, it.IsActive,
	)
	if err != nil {
		return fmt.Errorf("upsert cart_item: %w", err)
	}
	return nil
}

func (r *repo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	if err != nil {
		return fmt.Errorf("delete cart_item: %w", err)
	}
	return nil
}

func (r *repo) UpdateTotals(ctx context.Context, c *Cart) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE carts SET total_item = $2, total_price = $3, updated_at = NOW() WHERE id = $1`,
		c.ID, c.TotalItem, c.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("update cart totals: %w", err)
	}
	return nil
}

func (r *repo) Deactivate(ctx context.Context, cartID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE carts SET is_active = FALSE, updated_at = NOW()
         WHERE id = $1 AND is_active`,
		cartID,
	)
	if err != nil {
		return false, fmt.Errorf("deactivate cart: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}
