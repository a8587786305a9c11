package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, postID string) (*Post, error)
	List(ctx context.Context) ([]Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, postID string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, p *Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO blogs (id, title, content, author, image, is_published, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
         RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Content, p.Author, p.Image, p.IsPublished,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *repo) GetByID(ctx context.Context, postID string) (*Post, error) {
	var p Post
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, author, image, is_published, created_at, updated_at
         FROM blogs WHERE id = $1`,
		postID,
	).Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.Image, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select blog: %w", err)
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context) ([]Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, author, image, is_published, created_at, updated_at
         FROM blogs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select blogs: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.Image, &p.IsPublished,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return posts, nil
}

func (r *repo) Update(ctx context.Context, p *Post) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE blogs
         SET title = $2, content = $3, author = $4, image = $5, is_published = $6, updated_at = NOW()
         WHERE id = $1`,
		p.ID, p.Title, p.Content, p.Author, p.Image, p.IsPublished,
	)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("blog %s not found", p.ID)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, postID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}
