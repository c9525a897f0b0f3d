package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/http/middleware"
	"github.com/benedict-erwin/blog-service/http/registry"
	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/services/article"
	"github.com/benedict-erwin/blog-service/internal/storage"
	asynqPkg "github.com/benedict-erwin/blog-service/pkg/asynq"
	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/redis"
	"github.com/benedict-erwin/blog-service/pkg/response"
	"github.com/benedict-erwin/blog-service/pkg/validation"
)

// New builds the Echo instance with middleware, error handling and every
// registered route
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Add logger middleware
	e.Use(middleware.Logger)

	e.HTTPErrorHandler = errorHandler

	// Register routes
	registry.SetupAllRoutes(e)
	return e
}

// errorHandler renders every error returned by a handler as {"detail": ...}
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		verr  *validation.Error
		story *article.StoryError
		he    *echo.HTTPError
	)
	switch {
	case errors.As(err, &verr):
		_ = response.ValidationFailed(c, verr)
		return
	case errors.As(err, &story):
		_ = response.Detail(c, http.StatusTeapot, story.Name)
		return
	case errors.As(err, &he):
		message := http.StatusText(he.Code)
		if he.Message != nil {
			message = fmt.Sprintf("%v", he.Message)
		}
		_ = response.Detail(c, he.Code, message)
		return
	}

	logger.WithScope("HTTPErrorHandler").Error().
		Err(err).
		Str("path", c.Request().URL.Path).
		Str("method", c.Request().Method).
		Str("request_id", constants.GetRequestID(c)).
		Msg("Unhandled error")
	_ = response.FailWithCode(c, constants.CodeInternalError)
}

// Start initializes and starts the HTTP server
func Start(port int) error {
	e := New()

	// Setup logger scope
	log := logger.WithScope("startServer")
	log.Info().Int("routes", len(e.Routes())).Msg("Registered routes")

	// Start server with graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Info().Msg("Starting server on " + addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed to start")
		}
	}()

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	// Close resources
	asynqPkg.CloseClient()
	if err := redis.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close redis")
	}
	if err := storage.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close storage")
	}

	// Shutdown completed
	log.Info().Msg("Server gracefully stopped")
	return nil
}
