package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/internal/entities/blog"
	"github.com/benedict-erwin/blog-service/pkg/response"
)

// Hello is the root greeting
func Hello(c echo.Context) error {
	return response.OK(c, blog.MessageResponse{Message: "Hello World!"})
}
