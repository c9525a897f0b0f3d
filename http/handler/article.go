package handler

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/entities/article"
	"github.com/benedict-erwin/blog-service/internal/repository"
	articleService "github.com/benedict-erwin/blog-service/internal/services/article"
	"github.com/benedict-erwin/blog-service/pkg/response"
	"github.com/benedict-erwin/blog-service/pkg/validation"
)

// ArticleCreate stores an article; stories surface as *article.StoryError
func ArticleCreate(c echo.Context) error {
	p := validation.NewParams(c)
	var req article.ArticleBase
	p.Body(&req)
	if err := p.Err(); err != nil {
		return err
	}

	display, err := articleService.Create(c.Request().Context(), &req, constants.GetRequestID(c))
	if err != nil {
		if errors.Is(err, articleService.ErrCreatorNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				fmt.Sprintf("User with id %d not found", *req.CreatorID))
		}
		return err
	}
	return response.OK(c, display)
}

// ArticleGet returns one article to an authenticated caller
func ArticleGet(c echo.Context) error {
	p := validation.NewParams(c)
	id := p.PathInt("id")
	if err := p.Err(); err != nil {
		return err
	}

	display, err := articleService.Get(c.Request().Context(), int64(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound,
				fmt.Sprintf("Article with id %d not found", id))
		}
		return err
	}
	return response.OK(c, display)
}
