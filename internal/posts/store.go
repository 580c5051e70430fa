package posts

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var ErrPostNotFound = errors.New("post not found")

const postColumns = `id, title, content, author_id, is_hidden, created_at, updated_at`

func (s *Store) GetByID(ctx context.Context, id int64) (*Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := s.db.QueryRowContext(ctx, q, id)
	p := &Post{}
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.IsHidden, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns the posts visible under the scope. The non-admin case is a
// single disjunction so a post can never be returned twice.
func (s *Store) List(ctx context.Context, scope ListScope) ([]Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	args := []interface{}{}
	if !scope.All {
		query = `SELECT ` + postColumns + ` FROM posts WHERE is_hidden = false OR author_id = $1 ORDER BY created_at DESC`
		args = append(args, scope.ViewerID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.IsHidden, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Create inserts a new post. is_hidden is always false at creation; callers
// cannot override it.
func (s *Store) Create(ctx context.Context, title, content string, authorID int64) (*Post, error) {
	const q = `
		INSERT INTO posts (title, content, author_id, is_hidden, created_at, updated_at)
		VALUES ($1, $2, $3, false, $4, $4)
		RETURNING ` + postColumns + `
	`
	now := time.Now().UTC()
	p := &Post{}
	if err := s.db.QueryRowContext(ctx, q, title, content, authorID, now).
		Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.IsHidden, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id int64, title, content string) (*Post, error) {
	const q = `
		UPDATE posts SET title = $2, content = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + postColumns + `
	`
	row := s.db.QueryRowContext(ctx, q, id, title, content, time.Now().UTC())
	p := &Post{}
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.IsHidden, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Store) SetHidden(ctx context.Context, id int64, hidden bool) error {
	const q = `UPDATE posts SET is_hidden = $2, updated_at = $3 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, id, hidden, time.Now().UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM posts WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}
