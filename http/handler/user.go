package handler

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/entities/user"
	"github.com/benedict-erwin/blog-service/internal/repository"
	userService "github.com/benedict-erwin/blog-service/internal/services/user"
	"github.com/benedict-erwin/blog-service/pkg/response"
	"github.com/benedict-erwin/blog-service/pkg/validation"
)

// UserCreate registers a user
func UserCreate(c echo.Context) error {
	p := validation.NewParams(c)
	var req user.UserBase
	p.Body(&req)
	if err := p.Err(); err != nil {
		return err
	}

	display, err := userService.Create(c.Request().Context(), &req, constants.GetRequestID(c))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return response.FailWithCodeAndMessage(c, constants.CodeDuplicateResource,
				fmt.Sprintf("Username %s already exists", *req.Username))
		}
		return err
	}
	return response.OK(c, display)
}

// UserList returns every user
func UserList(c echo.Context) error {
	users, err := userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, users)
}

// UserGet returns one user
func UserGet(c echo.Context) error {
	p := validation.NewParams(c)
	id := p.PathInt("id")
	if err := p.Err(); err != nil {
		return err
	}

	display, err := userService.Get(c.Request().Context(), int64(id))
	if err != nil {
		return userError(c, err, id)
	}
	return response.OK(c, display)
}

// UserUpdate replaces a user
func UserUpdate(c echo.Context) error {
	p := validation.NewParams(c)
	id := p.PathInt("id")
	var req user.UserBase
	p.Body(&req)
	if err := p.Err(); err != nil {
		return err
	}

	if err := userService.Update(c.Request().Context(), int64(id), &req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return response.FailWithCodeAndMessage(c, constants.CodeDuplicateResource,
				fmt.Sprintf("Username %s already exists", *req.Username))
		}
		return userError(c, err, id)
	}
	return response.OK(c, "ok")
}

// UserDelete removes a user
func UserDelete(c echo.Context) error {
	p := validation.NewParams(c)
	id := p.PathInt("id")
	if err := p.Err(); err != nil {
		return err
	}

	if err := userService.Delete(c.Request().Context(), int64(id)); err != nil {
		return userError(c, err, id)
	}
	return response.OK(c, "ok")
}

func userError(c echo.Context, err error, id int) error {
	if errors.Is(err, repository.ErrNotFound) {
		return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
			fmt.Sprintf("User with id %d not found", id))
	}
	return err
}
