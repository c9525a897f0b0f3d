package articlepublished

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/utils"
)

// TypeArticlePublished is enqueued when an article is created as published
const TypeArticlePublished = "article:published"

// Payload is the task body
type Payload struct {
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	RequestID string `json:"request_id"`
}

// HandleArticlePublished records the publication
func HandleArticlePublished(ctx context.Context, t *asynq.Task) error {
	log := logger.WithScope(TypeArticlePublished)

	var payload Payload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal article payload")
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	select {
	case <-ctx.Done():
		log.Warn().Int64("article_id", payload.ArticleID).Msg("Article publication job cancelled")
		return ctx.Err()
	default:
	}

	log.Info().
		Int64("article_id", payload.ArticleID).
		Str("title", payload.Title).
		Int64("user_id", payload.UserID).
		Str("username", payload.Username).
		Str("request_id", payload.RequestID).
		Str("published_at", utils.NowFormatted()).
		Msg("Article published")
	return nil
}
