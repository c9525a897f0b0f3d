package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/entities/user"
	"github.com/benedict-erwin/blog-service/internal/jobs/welcome"
	"github.com/benedict-erwin/blog-service/internal/repository"
	"github.com/benedict-erwin/blog-service/internal/storage"
	"github.com/benedict-erwin/blog-service/pkg/asynq"
	"github.com/benedict-erwin/blog-service/pkg/auth"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

const defaultCacheSize = 256

var (
	cache   *lru.Cache[int64, repository.User]
	cacheMu sync.Mutex

	dispatch asynq.Dispatcher = asynq.DispatchJob
)

// userCache lazily sizes the lookup cache from cache.user_size
func userCache() *lru.Cache[int64, repository.User] {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cache != nil {
		return cache
	}

	size := defaultCacheSize
	if cfg := config.Get(); cfg != nil && cfg.Cache.UserSize > 0 {
		size = cfg.Cache.UserSize
	}
	c, err := lru.New[int64, repository.User](size)
	if err != nil {
		logger.Error().Err(err).Int("size", size).Msg("Invalid user cache size, using default")
		c, _ = lru.New[int64, repository.User](defaultCacheSize)
	}
	cache = c
	return cache
}

// ResetCache drops every cached user, the next lookup rebuilds the cache
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = nil
}

// SetDispatcher replaces the job dispatcher and returns the previous one
func SetDispatcher(d asynq.Dispatcher) asynq.Dispatcher {
	prev := dispatch
	dispatch = d
	return prev
}

func store() (repository.Store, error) {
	s := storage.Get()
	if s == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	return s, nil
}

// Create stores a user with a hashed password and queues the welcome job
func Create(ctx context.Context, req *user.UserBase, requestID string) (*user.UserDisplay, error) {
	s, err := store()
	if err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(*req.Password)
	if err != nil {
		return nil, err
	}

	u := &repository.User{Username: *req.Username, Email: *req.Email, Password: hashed}
	if err := s.Users().Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user %s: %w", u.Username, err)
	}
	userCache().Add(u.ID, *u)

	queueWelcome(u, requestID)

	return &user.UserDisplay{Username: u.Username, Email: u.Email, Items: []user.Article{}}, nil
}

// queueWelcome is best effort, a failed enqueue never fails the signup
func queueWelcome(u *repository.User, requestID string) {
	err := dispatch(&asynq.Payload{
		TaskId:   uuid.NewString(),
		TaskType: welcome.TypeUserWelcome,
		Data: welcome.Payload{
			UserID:    u.ID,
			Username:  u.Username,
			Email:     u.Email,
			RequestID: requestID,
		},
	})
	if err != nil && !errors.Is(err, asynq.ErrDisabled) {
		logger.WithScope("UserService").Warn().Err(err).Int64("user_id", u.ID).Msg("Welcome job not queued")
	}
}

// List returns every user with their articles
func List(ctx context.Context) ([]user.UserDisplay, error) {
	s, err := store()
	if err != nil {
		return nil, err
	}

	users, err := s.Users().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]user.UserDisplay, 0, len(users))
	for i := range users {
		display, err := toDisplay(ctx, s, &users[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *display)
	}
	return out, nil
}

// Get returns one user with their articles
func Get(ctx context.Context, id int64) (*user.UserDisplay, error) {
	s, err := store()
	if err != nil {
		return nil, err
	}
	u, err := Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDisplay(ctx, s, u)
}

// Lookup fetches a user through the LRU cache
func Lookup(ctx context.Context, id int64) (*repository.User, error) {
	if u, ok := userCache().Get(id); ok {
		return &u, nil
	}

	s, err := store()
	if err != nil {
		return nil, err
	}
	u, err := s.Users().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	userCache().Add(id, *u)
	return u, nil
}

// Update replaces every field of user id
func Update(ctx context.Context, id int64, req *user.UserBase) error {
	s, err := store()
	if err != nil {
		return err
	}

	hashed, err := auth.HashPassword(*req.Password)
	if err != nil {
		return err
	}

	u := &repository.User{ID: id, Username: *req.Username, Email: *req.Email, Password: hashed}
	err = s.Users().Update(ctx, u)
	// Evict after the write so a concurrent Lookup cannot re-cache the old row
	userCache().Remove(id)
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

// Delete removes user id and, through the store, their articles
func Delete(ctx context.Context, id int64) error {
	s, err := store()
	if err != nil {
		return err
	}

	err = s.Users().Delete(ctx, id)
	userCache().Remove(id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func toDisplay(ctx context.Context, s repository.Store, u *repository.User) (*user.UserDisplay, error) {
	articles, err := s.Articles().ListByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list articles of user %d: %w", u.ID, err)
	}

	items := make([]user.Article, 0, len(articles))
	for _, a := range articles {
		items = append(items, user.Article{Title: a.Title, Content: a.Content, Published: a.Published})
	}
	return &user.UserDisplay{Username: u.Username, Email: u.Email, Items: items}, nil
}
