package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/internal/entities/blog"
	blogService "github.com/benedict-erwin/blog-service/internal/services/blog"
	"github.com/benedict-erwin/blog-service/pkg/response"
	"github.com/benedict-erwin/blog-service/pkg/validation"
)

const requiredFunctionalityKey = "blog.required"

// DefaultCommentVersions is used when the v query key is absent
var DefaultCommentVersions = []string{"1.0", "1.1", "1,2"}

// RequiredFunctionality resolves the blog router dependency for every request
func RequiredFunctionality(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(requiredFunctionalityKey, blogService.RequiredFunctionality())
		return next(c)
	}
}

func requiredFunctionality(c echo.Context) blog.RequiredFunctionality {
	if v, ok := c.Get(requiredFunctionalityKey).(blog.RequiredFunctionality); ok {
		return v
	}
	return blogService.RequiredFunctionality()
}

// BlogAll lists one page of blogs
func BlogAll(c echo.Context) error {
	p := validation.NewParams(c)
	page := p.QueryString("page", "1")
	pageSize := p.QueryIntPtr("page_size")
	if err := p.Err(); err != nil {
		return err
	}
	return response.OK(c, blogService.AllBlogs(page, pageSize, requiredFunctionality(c)))
}

// BlogComment reads one comment of a blog
func BlogComment(c echo.Context) error {
	p := validation.NewParams(c)
	id := p.PathInt("id")
	commentID := p.PathInt("comment_id")
	valid := p.QueryBool("valid", true)
	username := p.QueryStringPtr("username")
	if err := p.Err(); err != nil {
		return err
	}
	return response.OK(c, blogService.Comment(id, commentID, valid, username))
}

// BlogByType echoes a blog category
func BlogByType(c echo.Context) error {
	p := validation.NewParams(c)
	t := p.PathEnum("type", blog.BlogTypes())
	if err := p.Err(); err != nil {
		return err
	}
	return response.OK(c, blogService.BlogType(blog.BlogType(t)))
}

// BlogGet returns one blog or 404 with an error body
func BlogGet(c echo.Context) error {
	p := validation.NewParams(c)
	id := p.PathInt("id")
	if err := p.Err(); err != nil {
		return err
	}

	msg, notFound, ok := blogService.GetBlog(id)
	if !ok {
		return response.JSON(c, http.StatusNotFound, notFound)
	}
	return response.OK(c, msg)
}

// BlogCreate echoes a new blog
func BlogCreate(c echo.Context) error {
	p := validation.NewParams(c)
	id := p.PathInt("id")
	version := p.QueryInt("version", 1)
	var model blog.BlogModel
	p.Body(&model)
	if err := p.Err(); err != nil {
		return err
	}
	return response.OK(c, blogService.CreateBlog(id, &model, version))
}

// BlogCommentCreate echoes a new comment on a blog
func BlogCommentCreate(c echo.Context) error {
	p := validation.NewParams(c)
	id := p.PathInt("id")
	commentID := p.PathInt("comment_id", validation.Gt(5), validation.Le(10))
	commentTitle := p.QueryIntPtr("commentTitle")
	versions := p.QueryStrings("v", DefaultCommentVersions)
	var req blog.CommentRequest
	p.EmbeddedBody(&req)
	if err := p.Err(); err != nil {
		return err
	}
	return response.OK(c, blogService.CreateComment(id, commentID, &req, commentTitle, versions))
}
