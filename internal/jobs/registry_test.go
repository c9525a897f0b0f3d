package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/jobs/articlepublished"
	"github.com/benedict-erwin/blog-service/internal/jobs/welcome"
)

func TestRegisteredJobs(t *testing.T) {
	registered, err := GetRegisteredJobs()
	require.NoError(t, err)
	require.Len(t, registered, 2)

	for _, job := range registered {
		assert.True(t, constants.IsValidQueue(job.Queue), job.TaskType)
		assert.NotNil(t, job.Handler, job.TaskType)
	}

	assert.Equal(t, constants.QueueDefault, QueueFor(welcome.TypeUserWelcome))
	assert.Equal(t, constants.QueueLow, QueueFor(articlepublished.TypeArticlePublished))
	assert.Equal(t, constants.QueueDefault, QueueFor("unknown:task"))
}

func TestRegisterHandlersOnMux(t *testing.T) {
	mux := asynq.NewServeMux()
	_, err := RegisterHandlers(mux)
	require.NoError(t, err)

	body, err := json.Marshal(welcome.Payload{UserID: 1, Username: "ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(welcome.TypeUserWelcome, body)))

	body, err = json.Marshal(articlepublished.Payload{ArticleID: 3, Title: "Go", UserID: 1})
	require.NoError(t, err)
	assert.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(articlepublished.TypeArticlePublished, body)))
}

func TestHandlersRejectBadPayload(t *testing.T) {
	err := welcome.HandleUserWelcome(context.Background(), asynq.NewTask(welcome.TypeUserWelcome, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = articlepublished.HandleArticlePublished(context.Background(), asynq.NewTask(articlepublished.TypeArticlePublished, []byte("[")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
