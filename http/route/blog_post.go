package route

import (
	"net/http"

	"github.com/benedict-erwin/blog-service/http/handler"
	"github.com/benedict-erwin/blog-service/http/registry"
	"github.com/benedict-erwin/blog-service/internal/entities/blog"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
)

func init() {
	registry.Register("/blog", []string{"blog"}, func(r *registry.Router) {
		r.Handle(openapi.Operation{
			Method:  http.MethodPost,
			Path:    "/new/:id",
			Summary: "Create Blog",
			Params: []openapi.Param{
				openapi.PathParam("id", openapi.Int()),
				openapi.QueryParam("version", openapi.WithDefault(openapi.Int(), 1)),
			},
			Body:     blog.BlogModel{},
			Response: blog.CreateBlogResponse{},
		}, handler.BlogCreate)

		commentTitle := openapi.QueryParam("commentTitle", openapi.Int())
		commentTitle.Title = "Title of the comment"
		commentTitle.Description = "Some description for comment_title"
		commentTitle.Deprecated = true

		r.Handle(openapi.Operation{
			Method:  http.MethodPost,
			Path:    "/new/:id/comment/:comment_id",
			Summary: "Create Comment",
			Params: []openapi.Param{
				openapi.PathParam("id", openapi.Int()),
				openapi.PathParam("comment_id", openapi.WithBounds(openapi.Int(),
					openapi.Float(5), openapi.Float(10), true, false)),
				commentTitle,
				openapi.QueryParam("v", openapi.WithDefault(openapi.StringList(), handler.DefaultCommentVersions)),
			},
			Body:     blog.CommentRequest{},
			Response: blog.CommentResponse{},
		}, handler.BlogCommentCreate)
	})
}
