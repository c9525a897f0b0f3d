package user

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/entities/user"
	"github.com/benedict-erwin/blog-service/internal/jobs/welcome"
	"github.com/benedict-erwin/blog-service/internal/repository"
	"github.com/benedict-erwin/blog-service/internal/repository/memory"
	"github.com/benedict-erwin/blog-service/internal/storage"
	"github.com/benedict-erwin/blog-service/pkg/asynq"
	"github.com/benedict-erwin/blog-service/pkg/auth"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

func setup(t *testing.T) (*memory.Store, *[]*asynq.Payload) {
	t.Helper()
	logger.SetOutput(io.Discard)
	config.Set(config.Default())

	mem := memory.New()
	storage.Set(mem)
	ResetCache()

	var sent []*asynq.Payload
	prev := SetDispatcher(func(p *asynq.Payload) error {
		sent = append(sent, p)
		return nil
	})
	t.Cleanup(func() {
		SetDispatcher(prev)
		storage.Set(nil)
		ResetCache()
	})
	return mem, &sent
}

func base(username, email, password string) *user.UserBase {
	return &user.UserBase{Username: &username, Email: &email, Password: &password}
}

func TestCreate(t *testing.T) {
	mem, sent := setup(t)
	ctx := context.Background()

	display, err := Create(ctx, base("ada", "ada@example.com", "secret"), "req-1")
	require.NoError(t, err)
	assert.Equal(t, &user.UserDisplay{Username: "ada", Email: "ada@example.com", Items: []user.Article{}}, display)

	stored, err := mem.Users().GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.Password)
	assert.True(t, auth.VerifyPassword(stored.Password, "secret"))

	require.Len(t, *sent, 1)
	job := (*sent)[0]
	assert.Equal(t, welcome.TypeUserWelcome, job.TaskType)
	assert.NotEmpty(t, job.TaskId)
	assert.Equal(t, welcome.Payload{UserID: stored.ID, Username: "ada", Email: "ada@example.com", RequestID: "req-1"}, job.Data)

	_, err = Create(ctx, base("ada", "other@example.com", "x"), "")
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateSurvivesDispatchFailure(t *testing.T) {
	setup(t)
	SetDispatcher(asynq.DispatchJob)

	_, err := Create(context.Background(), base("bob", "bob@example.com", "pw"), "")
	assert.NoError(t, err)
}

func TestGetIncludesArticles(t *testing.T) {
	mem, _ := setup(t)
	ctx := context.Background()

	_, err := Create(ctx, base("ada", "ada@example.com", "secret"), "")
	require.NoError(t, err)
	require.NoError(t, mem.Articles().Create(ctx, &repository.Article{Title: "Go", Content: "Types", Published: true, UserID: 1}))

	display, err := Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []user.Article{{Title: "Go", Content: "Types", Published: true}}, display.Items)

	all, err := List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Items, 1)

	_, err = Get(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	setup(t)
	ctx := context.Background()

	_, err := Create(ctx, base("ada", "ada@example.com", "secret"), "")
	require.NoError(t, err)

	u, err := Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)

	require.NoError(t, Update(ctx, 1, base("lovelace", "l@example.com", "new")))
	u, err = Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "lovelace", u.Username)
	assert.True(t, auth.VerifyPassword(u.Password, "new"))

	assert.ErrorIs(t, Update(ctx, 9, base("x", "x", "x")), repository.ErrNotFound)
}

func TestDelete(t *testing.T) {
	mem, _ := setup(t)
	ctx := context.Background()

	_, err := Create(ctx, base("ada", "ada@example.com", "secret"), "")
	require.NoError(t, err)
	require.NoError(t, mem.Articles().Create(ctx, &repository.Article{Title: "Go", Content: "Types", UserID: 1}))
	_, err = Lookup(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, Delete(ctx, 1))
	_, err = Lookup(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = mem.Articles().Get(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, Delete(ctx, 1), repository.ErrNotFound)
}

// racingStore reads a user through the cache while a write is in flight
type racingStore struct {
	*memory.Store
}

func (s racingStore) Users() repository.Users {
	return racingUsers{Users: s.Store.Users()}
}

type racingUsers struct {
	repository.Users
}

func (u racingUsers) Update(ctx context.Context, usr *repository.User) error {
	_, _ = Lookup(ctx, usr.ID)
	return u.Users.Update(ctx, usr)
}

func (u racingUsers) Delete(ctx context.Context, id int64) error {
	_, _ = Lookup(ctx, id)
	return u.Users.Delete(ctx, id)
}

func TestWritesEvictAfterStore(t *testing.T) {
	mem, _ := setup(t)
	storage.Set(racingStore{Store: mem})
	ctx := context.Background()

	_, err := Create(ctx, base("ada", "ada@example.com", "secret"), "")
	require.NoError(t, err)

	require.NoError(t, Update(ctx, 1, base("lovelace", "l@example.com", "new")))
	u, err := Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "lovelace", u.Username)

	require.NoError(t, Delete(ctx, 1))
	_, err = Lookup(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
