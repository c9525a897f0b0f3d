package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/benedict-erwin/blog-service/internal/entities/article"
	"github.com/benedict-erwin/blog-service/internal/entities/user"
	"github.com/benedict-erwin/blog-service/internal/jobs/articlepublished"
	"github.com/benedict-erwin/blog-service/internal/repository"
	userService "github.com/benedict-erwin/blog-service/internal/services/user"
	"github.com/benedict-erwin/blog-service/internal/storage"
	"github.com/benedict-erwin/blog-service/pkg/asynq"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

// storyOpening marks content the API refuses to publish
const storyOpening = "Once upon a time"

// StoryError rejects fairy tales, rendered as 418 by the server
type StoryError struct {
	Name string
}

func (e *StoryError) Error() string {
	return e.Name
}

// ErrCreatorNotFound is returned when creator_id names no user
var ErrCreatorNotFound = errors.New("creator not found")

var dispatch asynq.Dispatcher = asynq.DispatchJob

// SetDispatcher replaces the job dispatcher and returns the previous one
func SetDispatcher(d asynq.Dispatcher) asynq.Dispatcher {
	prev := dispatch
	dispatch = d
	return prev
}

// Create stores the article and queues article:published when published
func Create(ctx context.Context, req *article.ArticleBase, requestID string) (*article.ArticleDisplay, error) {
	if strings.HasPrefix(*req.Content, storyOpening) {
		return nil, &StoryError{Name: "No stories please"}
	}

	s := storage.Get()
	if s == nil {
		return nil, fmt.Errorf("storage not initialized")
	}

	creator, err := userService.Lookup(ctx, *req.CreatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", *req.CreatorID, ErrCreatorNotFound)
		}
		return nil, err
	}

	a := &repository.Article{
		Title:     *req.Title,
		Content:   *req.Content,
		Published: *req.Published,
		UserID:    creator.ID,
	}
	if err := s.Articles().Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", creator.ID, ErrCreatorNotFound)
		}
		return nil, fmt.Errorf("create article: %w", err)
	}

	if a.Published {
		queuePublished(a, creator, requestID)
	}
	return toDisplay(a, creator), nil
}

func queuePublished(a *repository.Article, creator *repository.User, requestID string) {
	err := dispatch(&asynq.Payload{
		TaskId:   uuid.NewString(),
		TaskType: articlepublished.TypeArticlePublished,
		Data: articlepublished.Payload{
			ArticleID: a.ID,
			Title:     a.Title,
			UserID:    creator.ID,
			Username:  creator.Username,
			RequestID: requestID,
		},
	})
	if err != nil && !errors.Is(err, asynq.ErrDisabled) {
		logger.WithScope("ArticleService").Warn().Err(err).Int64("article_id", a.ID).Msg("Publication job not queued")
	}
}

// Get returns the article with its author
func Get(ctx context.Context, id int64) (*article.ArticleDisplay, error) {
	s := storage.Get()
	if s == nil {
		return nil, fmt.Errorf("storage not initialized")
	}

	a, err := s.Articles().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	creator, err := userService.Lookup(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	return toDisplay(a, creator), nil
}

func toDisplay(a *repository.Article, creator *repository.User) *article.ArticleDisplay {
	return &article.ArticleDisplay{
		Title:     a.Title,
		Content:   a.Content,
		Published: a.Published,
		User:      user.User{ID: creator.ID, Username: creator.Username},
	}
}
