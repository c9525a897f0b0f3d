package article

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/internal/entities/article"
	"github.com/benedict-erwin/blog-service/internal/entities/user"
	"github.com/benedict-erwin/blog-service/internal/jobs/articlepublished"
	"github.com/benedict-erwin/blog-service/internal/repository"
	"github.com/benedict-erwin/blog-service/internal/repository/memory"
	userService "github.com/benedict-erwin/blog-service/internal/services/user"
	"github.com/benedict-erwin/blog-service/internal/storage"
	"github.com/benedict-erwin/blog-service/pkg/asynq"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

func setup(t *testing.T) (*memory.Store, *[]*asynq.Payload) {
	t.Helper()
	logger.SetOutput(io.Discard)
	config.Set(config.Default())

	mem := memory.New()
	storage.Set(mem)
	userService.ResetCache()
	require.NoError(t, mem.Users().Create(context.Background(), &repository.User{Username: "ada", Email: "ada@example.com"}))

	var sent []*asynq.Payload
	prev := SetDispatcher(func(p *asynq.Payload) error {
		sent = append(sent, p)
		return nil
	})
	t.Cleanup(func() {
		SetDispatcher(prev)
		storage.Set(nil)
		userService.ResetCache()
	})
	return mem, &sent
}

func base(title, content string, published bool, creator int64) *article.ArticleBase {
	return &article.ArticleBase{Title: &title, Content: &content, Published: &published, CreatorID: &creator}
}

func TestCreatePublished(t *testing.T) {
	_, sent := setup(t)

	display, err := Create(context.Background(), base("Go", "Interfaces", true, 1), "req-7")
	require.NoError(t, err)
	assert.Equal(t, &article.ArticleDisplay{
		Title:     "Go",
		Content:   "Interfaces",
		Published: true,
		User:      user.User{ID: 1, Username: "ada"},
	}, display)

	require.Len(t, *sent, 1)
	assert.Equal(t, articlepublished.TypeArticlePublished, (*sent)[0].TaskType)
	assert.Equal(t, articlepublished.Payload{ArticleID: 1, Title: "Go", UserID: 1, Username: "ada", RequestID: "req-7"}, (*sent)[0].Data)
}

func TestCreateDraftQueuesNothing(t *testing.T) {
	_, sent := setup(t)

	_, err := Create(context.Background(), base("Go", "Draft", false, 1), "")
	require.NoError(t, err)
	assert.Empty(t, *sent)
}

func TestCreateRejectsStories(t *testing.T) {
	mem, _ := setup(t)

	_, err := Create(context.Background(), base("Tale", "Once upon a time there was", true, 1), "")
	var story *StoryError
	require.ErrorAs(t, err, &story)
	assert.Equal(t, "No stories please", story.Name)

	_, err = mem.Articles().Get(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateUnknownCreator(t *testing.T) {
	setup(t)
	_, err := Create(context.Background(), base("Go", "x", true, 99), "")
	assert.ErrorIs(t, err, ErrCreatorNotFound)
}

func TestGet(t *testing.T) {
	setup(t)
	ctx := context.Background()

	_, err := Create(ctx, base("Go", "Channels", false, 1), "")
	require.NoError(t, err)

	display, err := Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Channels", display.Content)
	assert.Equal(t, "ada", display.User.Username)

	_, err = Get(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
