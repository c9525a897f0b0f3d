// Package postgres implements repository.Store on a pgx connection pool.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/benedict-erwin/blog-service/internal/repository"
)

// Postgres SQLSTATE codes mapped onto repository errors
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Store struct {
	pool *pgxpool.Pool
}

// New wraps an open pool; Close releases it
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Users() repository.Users       { return &users{pool: s.pool} }
func (s *Store) Articles() repository.Articles { return &articles{pool: s.pool} }
func (s *Store) Driver() string                { return repository.DriverPostgres }

func (s *Store) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// mapError translates driver errors into repository sentinels
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return repository.ErrDuplicate
		case foreignKeyViolation:
			return repository.ErrNotFound
		}
	}
	return err
}

type users struct {
	pool *pgxpool.Pool
}

const userColumns = `id, username, email, password, created_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *users) Create(ctx context.Context, u *repository.User) error {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id, created_at`,
		u.Username, u.Email, u.Password)
	return mapError(row.Scan(&u.ID, &u.CreatedAt))
}

func (r *users) List(ctx context.Context) ([]repository.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]repository.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, mapError(rows.Err())
}

func (r *users) Get(ctx context.Context, id int64) (*repository.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *users) GetByUsername(ctx context.Context, username string) (*repository.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *users) Update(ctx context.Context, u *repository.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $2, email = $3, password = $4 WHERE id = $1`,
		u.ID, u.Username, u.Email, u.Password)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *users) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type articles struct {
	pool *pgxpool.Pool
}

const articleColumns = `id, title, content, published, user_id, created_at`

func scanArticle(row pgx.Row) (*repository.Article, error) {
	var a repository.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Published, &a.UserID, &a.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *articles) Create(ctx context.Context, a *repository.Article) error {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO articles (title, content, published, user_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		a.Title, a.Content, a.Published, a.UserID)
	return mapError(row.Scan(&a.ID, &a.CreatedAt))
}

func (r *articles) Get(ctx context.Context, id int64) (*repository.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
}

func (r *articles) ListByUser(ctx context.Context, userID int64) ([]repository.Article, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]repository.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, mapError(rows.Err())
}
