package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/entities/auth"
	"github.com/benedict-erwin/blog-service/internal/services/authentication"
	"github.com/benedict-erwin/blog-service/pkg/response"
	"github.com/benedict-erwin/blog-service/pkg/validation"
)

// Token exchanges form credentials for a bearer token
func Token(c echo.Context) error {
	p := validation.NewParams(c)
	var req auth.TokenRequest
	p.Form(&req)
	if err := p.Err(); err != nil {
		return err
	}

	token, err := authentication.Login(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, authentication.ErrInvalidCredentials) {
			return response.FailWithCode(c, constants.CodeInvalidCredentials)
		}
		return err
	}
	return response.OK(c, token)
}
