package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/services/authentication"
	"github.com/benedict-erwin/blog-service/pkg/auth"
	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/response"
)

// BearerUser requires "Authorization: Bearer <jwt>" naming an existing user
func BearerUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.WithScope("BearerUser")

		scheme, token, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
		if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			log.Debug().
				Str("path", c.Request().URL.Path).
				Str("method", c.Request().Method).
				Msg("Missing bearer token")
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return response.FailWithCode(c, constants.CodeMissingAuth)
		}

		u, err := authentication.CurrentUser(c.Request().Context(), strings.TrimSpace(token))
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, authentication.ErrUnknownSubject) {
				return err
			}
			log.Warn().
				Err(err).
				Str("path", c.Request().URL.Path).
				Str("method", c.Request().Method).
				Msg("Bearer token rejected")
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return response.FailWithCode(c, constants.CodeInvalidToken)
		}

		log.Debug().
			Int64("user_id", u.ID).
			Str("path", c.Request().URL.Path).
			Msg("Bearer user accepted")
		return next(c)
	}
}
