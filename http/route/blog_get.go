package route

import (
	"net/http"

	"github.com/benedict-erwin/blog-service/http/handler"
	"github.com/benedict-erwin/blog-service/http/registry"
	"github.com/benedict-erwin/blog-service/internal/entities/blog"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
)

const commentDescription = `Simulates retrieving a comment of a blog

- **id** mandatory path parameter
- **comment_id** mandatory path parameter
- **valid** optional query parameter
- **username** optional query parameter`

func init() {
	registry.Register("/blog", []string{"blog"}, func(r *registry.Router) {
		r.Use(handler.RequiredFunctionality)

		r.Handle(openapi.Operation{
			Method:              http.MethodGet,
			Path:                "/all",
			Summary:             "Retrieve all blogs",
			Description:         "This api call simulates fetching all blogs",
			ResponseDescription: "The list of available blogs",
			Params: []openapi.Param{
				openapi.QueryParam("page", openapi.WithDefault(openapi.Any(), 1)),
				openapi.QueryParam("page_size", openapi.Int()),
			},
			Response: blog.AllBlogsResponse{},
		}, handler.BlogAll)

		r.Handle(openapi.Operation{
			Method:      http.MethodGet,
			Path:        "/:id/comments/:comment_id",
			Tags:        []string{"blog", "comment"},
			Summary:     "Get Comment",
			Description: commentDescription,
			Params: []openapi.Param{
				openapi.PathParam("id", openapi.Int()),
				openapi.PathParam("comment_id", openapi.Int()),
				openapi.QueryParam("valid", openapi.WithDefault(openapi.Bool(), true)),
				openapi.QueryParam("username", openapi.String()),
			},
			Response: blog.MessageResponse{},
		}, handler.BlogComment)

		r.Handle(openapi.Operation{
			Method:  http.MethodGet,
			Path:    "/type/:type",
			Summary: "Get Blog Type",
			Params: []openapi.Param{
				openapi.PathParam("type", openapi.Enum(blog.BlogTypes()...)),
			},
			Response: blog.MessageResponse{},
		}, handler.BlogByType)

		r.Handle(openapi.Operation{
			Method:  http.MethodGet,
			Path:    "/:id",
			Summary: "Get Blog",
			Params: []openapi.Param{
				openapi.PathParam("id", openapi.Int()),
			},
			Response: blog.MessageResponse{},
			Responses: []openapi.Response{
				{Status: http.StatusNotFound, Description: "Blog not found", Body: blog.NotFoundResponse{}},
			},
		}, handler.BlogGet)
	})
}
