package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Directory resolves live listener addresses at call time. Addresses are
// never cached; a reconnect that rebinds the session is picked up by the
// next publish.
type Directory interface {
	CustomerAddress(ctx context.Context, customerID string) (string, error)
	AdminAddresses(ctx context.Context) ([]string, error)
}

type Repository interface {
	Directory

	GetByID(ctx context.Context, customerID string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	CreateAdmin(ctx context.Context, a *Admin) error
	SetCustomerSession(ctx context.Context, customerID, addr string) error
	SetAdminSession(ctx context.Context, adminID, addr string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetByID(ctx context.Context, customerID string) (*Customer, error) {
	var c Customer
	var addr sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, phone, session_addr, created_at
         FROM customers WHERE id = $1`,
		customerID,
	).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &addr, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select customer: %w", err)
	}
	c.SessionAddr = addr.String
	return &c, nil
}

func (r *repo) Create(ctx context.Context, c *Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO customers (id, first_name, last_name, email, phone, created_at)
         VALUES ($1, $2, $3, $4, $5, NOW())
         RETURNING created_at`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *repo) CreateAdmin(ctx context.Context, a *Admin) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO admins (id, name, created_at) VALUES ($1, $2, NOW())
         RETURNING created_at`,
		a.ID, a.Name,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// CustomerAddress returns "" when the customer is absent or not connected.
func (r *repo) CustomerAddress(ctx context.Context, customerID string) (string, error) {
	var addr sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT session_addr FROM customers WHERE id = $1`, customerID,
	).Scan(&addr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("select customer session: %w", err)
	}
	return addr.String, nil
}

// AdminAddresses returns the addresses of currently connected admins only.
func (r *repo) AdminAddresses(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_addr FROM admins WHERE session_addr IS NOT NULL AND session_addr <> ''`)
	if err != nil {
		return nil, fmt.Errorf("select admin sessions: %w", err)
	}
	defer rows.Close()

	var addrs []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("scan admin session: %w", err)
		}
		addrs = append(addrs, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return addrs, nil
}

func (r *repo) SetCustomerSession(ctx context.Context, customerID, addr string) error {
	return r.setSession(ctx, "customers", customerID, addr)
}

func (r *repo) SetAdminSession(ctx context.Context, adminID, addr string) error {
	return r.setSession(ctx, "admins", adminID, addr)
}

func (r *repo) setSession(ctx context.Context, table, id, addr string) error {
	var value any
	if addr != "" {
		value = addr
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE `+table+` SET session_addr = $2 WHERE id = $1`, id, value)
	if err != nil {
		return fmt.Errorf("update %s session: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", table[:len(table)-1], id)
	}
	return nil
}
