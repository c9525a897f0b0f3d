package welcome

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/utils"
)

// TypeUserWelcome is the task type enqueued after a user signs up
const TypeUserWelcome = "user:welcome"

// Payload is the task body
type Payload struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	RequestID string `json:"request_id"`
}

// HandleUserWelcome sends the welcome notification. Delivery is a log line
// until a mail transport exists.
func HandleUserWelcome(ctx context.Context, t *asynq.Task) error {
	log := logger.WithScope(TypeUserWelcome)

	var payload Payload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal welcome payload")
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Email == "" {
		log.Warn().Int64("user_id", payload.UserID).Msg("User has no email, skipping welcome")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info().
		Int64("user_id", payload.UserID).
		Str("username", payload.Username).
		Str("email", payload.Email).
		Str("request_id", payload.RequestID).
		Str("sent_at", utils.NowFormatted()).
		Msg("Welcome notification sent")
	return nil
}
