package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetItems(ctx context.Context, orderID string) ([]Item, error)
	List(ctx context.Context) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	UpdatePayment(ctx context.Context, orderID string, isPayment bool) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// Create persists the order and its items in one transaction.
func (r *repo) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, cart_id, customer_id, first_name, last_name, phone, email,
                             address, city, comment, total_item, total_price, status,
                             type_order, is_payment, is_active, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		o.ID, o.CartID, o.CustomerID, o.FirstName, o.LastName, o.Phone, o.Email,
		o.Address, o.City, o.Comment, o.TotalItem, o.TotalPrice, o.Status,
		o.TypeOrder, o.IsPayment, o.IsActive, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.OrderID = o.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, product_name, product_image,
                                      qty, price, total_price, is_active)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, it.OrderID, it.ProductID, it.ProductName, it.ProductImage,
			it.Qty, it.Price, it.TotalPrice, it.IsActive,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx,
		selectOrderColumns+` FROM orders WHERE id = $1`,
		orderID,
	).Scan(orderScanDest(&o)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	return &o, nil
}

func (r *repo) GetItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, product_name, product_image, qty, price, total_price, is_active
         FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductImage,
			&it.Qty, &it.Price, &it.TotalPrice, &it.IsActive); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

func (r *repo) List(ctx context.Context) ([]Order, error) {
	return r.list(ctx, selectOrderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *repo) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	return r.list(ctx, selectOrderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

func (r *repo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(orderScanDest(&o)...); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return orders, nil
}

func (r *repo) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return requireOneRow(res, "order", orderID)
}

func (r *repo) UpdatePayment(ctx context.Context, orderID string, isPayment bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET is_payment = $2 WHERE id = $1`,
		orderID, isPayment,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return requireOneRow(res, "order", orderID)
}

const selectOrderColumns = `SELECT id, cart_id, customer_id, first_name, last_name, phone, email,
       address, city, comment, total_item, total_price, status, type_order,
       is_payment, is_active, created_at`

func orderScanDest(o *Order) []any {
	return []any{
		&o.ID, &o.CartID, &o.CustomerID, &o.FirstName, &o.LastName, &o.Phone, &o.Email,
		&o.Address, &o.City, &o.Comment, &o.TotalItem, &o.TotalPrice, &o.Status, &o.TypeOrder,
		&o.IsPayment, &o.IsActive, &o.CreatedAt,
	}
}

func requireOneRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", entity, id)
	}
	return nil
}
