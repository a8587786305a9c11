package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, productID string) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, productID string) error
	ListProducts(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]Product, error)
	ListNewest(ctx context.Context, limit int) ([]Product, error)
	ListTopSell(ctx context.Context, limit int) ([]Product, error)
	Search(ctx context.Context, key string) ([]Product, error)
	Filter(ctx context.Context, categoryID string, minPrice, maxPrice decimal.Decimal) ([]Product, error)

	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, categoryID string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

const selectProduct = `SELECT id, category_id, name, description, image, price, quantity_sold, created_at, updated_at FROM products`

func (r *repo) CreateProduct(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (id, category_id, name, description, image, price, quantity_sold, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
         RETURNING created_at, updated_at`,
		p.ID, p.CategoryID, p.Name, p.Description, p.Image, p.Price, p.QuantitySold,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *repo) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, selectProduct+` WHERE id = $1`, productID).
		Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Image, &p.Price,
			&p.QuantitySold, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (r *repo) UpdateProduct(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products
         SET category_id = $2, name = $3, description = $4, image = $5, price = $6, updated_at = NOW()
         WHERE id = $1`,
		p.ID, p.CategoryID, p.Name, p.Description, p.Image, p.Price,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("product %s not found", p.ID)
	}
	return nil
}

func (r *repo) DeleteProduct(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *repo) ListProducts(ctx context.Context) ([]Product, error) {
	return r.listProducts(ctx, selectProduct+` ORDER BY created_at DESC`)
}

func (r *repo) ListByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	return r.listProducts(ctx, selectProduct+` WHERE category_id = $1 ORDER BY created_at DESC`, categoryID)
}

func (r *repo) ListNewest(ctx context.Context, limit int) ([]Product, error) {
	return r.listProducts(ctx, selectProduct+` ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *repo) ListTopSell(ctx context.Context, limit int) ([]Product, error) {
	return r.listProducts(ctx, selectProduct+` ORDER BY quantity_sold DESC LIMIT $1`, limit)
}

func (r *repo) Search(ctx context.Context, key string) ([]Product, error) {
	return r.listProducts(ctx, selectProduct+` WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at DESC`, key)
}

func (r *repo) Filter(ctx context.Context, categoryID string, minPrice, maxPrice decimal.Decimal) ([]Product, error) {
	return r.listProducts(ctx,
		selectProduct+` WHERE category_id = $1 AND price BETWEEN $2 AND $3 ORDER BY price`,
		categoryID, minPrice, maxPrice)
}

func (r *repo) listProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Image, &p.Price,
			&p.QuantitySold, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

func (r *repo) CreateCategory(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, NOW())
         RETURNING created_at`,
		c.ID, c.Name,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *repo) GetCategory(ctx context.Context, categoryID string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = $1`, categoryID,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &c, nil
}

func (r *repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return categories, nil
}

func (r *repo) DeleteCategory(ctx context.Context, categoryID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
