// Package memory is a process-local Store used for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/benedict-erwin/blog-service/internal/repository"
)

type Store struct {
	mu            sync.RWMutex
	users         map[int64]repository.User
	articles      map[int64]repository.Article
	nextUserID    int64
	nextArticleID int64
}

// New returns an empty store; ids start at 1
func New() *Store {
	return &Store{
		users:    make(map[int64]repository.User),
		articles: make(map[int64]repository.Article),
	}
}

func (s *Store) Users() repository.Users       { return (*users)(s) }
func (s *Store) Articles() repository.Articles { return (*articles)(s) }
func (s *Store) Driver() string                { return repository.DriverMemory }
func (s *Store) Health(context.Context) error  { return nil }
func (s *Store) Close() error                  { return nil }

type users Store

func (r *users) Create(_ context.Context, u *repository.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.usernameTaken(u.Username, 0) {
		return repository.ErrDuplicate
	}
	r.nextUserID++
	u.ID = r.nextUserID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *users) List(_ context.Context) ([]repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *users) Get(_ context.Context, id int64) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *users) GetByUsername(_ context.Context, username string) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *users) Update(_ context.Context, u *repository.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.usernameTaken(u.Username, u.ID) {
		return repository.ErrDuplicate
	}
	u.CreatedAt = existing.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *users) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	for aid, a := range r.articles {
		if a.UserID == id {
			delete(r.articles, aid)
		}
	}
	return nil
}

// usernameTaken must be called with mu held
func (r *users) usernameTaken(username string, except int64) bool {
	for id, u := range r.users {
		if id != except && u.Username == username {
			return true
		}
	}
	return false
}

type articles Store

func (r *articles) Create(_ context.Context, a *repository.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[a.UserID]; !ok {
		return repository.ErrNotFound
	}
	r.nextArticleID++
	a.ID = r.nextArticleID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.articles[a.ID] = *a
	return nil
}

func (r *articles) Get(_ context.Context, id int64) (*repository.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *articles) ListByUser(_ context.Context, userID int64) ([]repository.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.Article, 0)
	for _, a := range r.articles {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
