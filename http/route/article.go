package route

import (
	"net/http"

	"github.com/benedict-erwin/blog-service/http/handler"
	"github.com/benedict-erwin/blog-service/http/middleware"
	"github.com/benedict-erwin/blog-service/http/registry"
	"github.com/benedict-erwin/blog-service/internal/entities/article"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
)

func init() {
	registry.Register("/article", []string{"article"}, func(r *registry.Router) {
		r.Handle(openapi.Operation{
			Method:   http.MethodPost,
			Path:     "/",
			Summary:  "Create Article",
			Body:     article.ArticleBase{},
			Response: article.ArticleDisplay{},
			Responses: []openapi.Response{
				{Status: http.StatusNotFound, Description: "Creator not found"},
				{Status: http.StatusTeapot, Description: "Stories are refused"},
			},
		}, handler.ArticleCreate)

		// bearer protected
		r.Handle(openapi.Operation{
			Method:   http.MethodGet,
			Path:     "/:id",
			Summary:  "Get Article",
			Params:   []openapi.Param{openapi.PathParam("id", openapi.Int())},
			Response: article.ArticleDisplay{},
			Secured:  true,
			Responses: []openapi.Response{
				{Status: http.StatusNotFound, Description: "Article not found"},
			},
		}, handler.ArticleGet, middleware.BearerUser)
	})
}
