package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/blog-service/internal/repository"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := New()

	ada := &repository.User{Username: "ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, s.Users().Create(ctx, ada))
	assert.Equal(t, int64(1), ada.ID)
	assert.False(t, ada.CreatedAt.IsZero())

	bob := &repository.User{Username: "bob", Email: "bob@example.com", Password: "hash"}
	require.NoError(t, s.Users().Create(ctx, bob))
	assert.Equal(t, int64(2), bob.ID)

	err := s.Users().Create(ctx, &repository.User{Username: "ada"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	list, err := s.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ada", list[0].Username)
	assert.Equal(t, "bob", list[1].Username)

	got, err := s.Users().GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	_, err = s.Users().Get(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Users().GetByUsername(ctx, "eve")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserUpdate(t *testing.T) {
	ctx := context.Background()
	s := New()

	ada := &repository.User{Username: "ada", Email: "ada@example.com"}
	bob := &repository.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, s.Users().Create(ctx, ada))
	require.NoError(t, s.Users().Create(ctx, bob))

	created := ada.CreatedAt
	require.NoError(t, s.Users().Update(ctx, &repository.User{ID: ada.ID, Username: "ada2", Email: "new@example.com"}))
	got, err := s.Users().Get(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada2", got.Username)
	assert.Equal(t, created, got.CreatedAt)

	// Keeping one's own name is not a clash
	assert.NoError(t, s.Users().Update(ctx, &repository.User{ID: bob.ID, Username: "bob"}))
	assert.ErrorIs(t, s.Users().Update(ctx, &repository.User{ID: bob.ID, Username: "ada2"}), repository.ErrDuplicate)
	assert.ErrorIs(t, s.Users().Update(ctx, &repository.User{ID: 42, Username: "x"}), repository.ErrNotFound)
}

func TestDeleteCascadesArticles(t *testing.T) {
	ctx := context.Background()
	s := New()

	ada := &repository.User{Username: "ada"}
	bob := &repository.User{Username: "bob"}
	require.NoError(t, s.Users().Create(ctx, ada))
	require.NoError(t, s.Users().Create(ctx, bob))

	first := &repository.Article{Title: "one", UserID: ada.ID}
	second := &repository.Article{Title: "two", UserID: ada.ID, Published: true}
	other := &repository.Article{Title: "three", UserID: bob.ID}
	require.NoError(t, s.Articles().Create(ctx, first))
	require.NoError(t, s.Articles().Create(ctx, second))
	require.NoError(t, s.Articles().Create(ctx, other))

	list, err := s.Articles().ListByUser(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Title)
	assert.Equal(t, "two", list[1].Title)

	require.NoError(t, s.Users().Delete(ctx, ada.ID))
	assert.ErrorIs(t, s.Users().Delete(ctx, ada.ID), repository.ErrNotFound)

	_, err = s.Articles().Get(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	got, err := s.Articles().Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "three", got.Title)
}

func TestArticleNeedsCreator(t *testing.T) {
	s := New()
	err := s.Articles().Create(context.Background(), &repository.Article{Title: "orphan", UserID: 7})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStoreInfo(t *testing.T) {
	s := New()
	assert.Equal(t, repository.DriverMemory, s.Driver())
	assert.NoError(t, s.Health(context.Background()))
	assert.NoError(t, s.Close())
}
