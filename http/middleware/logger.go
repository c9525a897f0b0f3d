package middleware

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/services/article"
	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/utils"
	"github.com/benedict-erwin/blog-service/pkg/validation"
)

// Logger assigns a request id, echoes it in X-Request-ID and logs every request
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		reqID := constants.GetRequestIDFromHeaders(c)
		if reqID == "" {
			reqID = generateRequestID()
		}
		c.Set(constants.RequestIDKey, reqID)
		c.Response().Header().Set(constants.HeaderRequestID, reqID)

		err := next(c)

		latency := time.Since(start).Microseconds()
		status := c.Response().Status
		if err != nil {
			status = statusOf(err)
		}

		log := logger.WithScope("accessLog")
		event := log.Info()
		if status >= 500 {
			event = log.Error().Err(err)
		}
		event.
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", status).
			Int64("latency", latency).
			Str("request-id", reqID).
			Msg("HTTP Request")

		return err
	}
}

// statusOf predicts the status the error handler will write
func statusOf(err error) int {
	var he *echo.HTTPError
	var ve *validation.Error
	var story *article.StoryError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.As(err, &story):
		return http.StatusTeapot
	}
	return http.StatusInternalServerError
}

// generateRequestID creates unique request identifier with timestamp and random component
func generateRequestID() string {
	return fmt.Sprintf("req-%d-%08x", utils.Now().Unix(), rand.Uint32())
}
