// Package repository defines the persistence contract for users and articles.
package repository

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Driver names accepted in database.driver
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type (
	User struct {
		ID        int64
		Username  string
		Email     string
		Password  string // bcrypt hash
		CreatedAt time.Time
	}

	Article struct {
		ID        int64
		Title     string
		Content   string
		Published bool
		UserID    int64
		CreatedAt time.Time
	}
)

// Users persists accounts. Create and Update return ErrDuplicate on a
// username clash; lookups return ErrNotFound.
type Users interface {
	Create(ctx context.Context, u *User) error
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}

// Articles persists articles; deleting a user removes their articles
type Articles interface {
	Create(ctx context.Context, a *Article) error
	Get(ctx context.Context, id int64) (*Article, error)
	ListByUser(ctx context.Context, userID int64) ([]Article, error)
}

// Store bundles both repositories behind one connection lifecycle
type Store interface {
	Users() Users
	Articles() Articles
	Driver() string
	Health(ctx context.Context) error
	Close() error
}
