package route

import (
	"net/http"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/http/handler"
	"github.com/benedict-erwin/blog-service/http/registry"
	"github.com/benedict-erwin/blog-service/internal/entities/blog"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
)

func init() {
	registry.Register("", nil, func(r *registry.Router) {
		r.Handle(openapi.Operation{
			Method:   http.MethodGet,
			Path:     "/hello",
			Summary:  "Index",
			Response: blog.MessageResponse{},
		}, handler.Hello)

		// API document, not part of itself
		r.Group().GET("/openapi.json", handler.OpenAPIJSON)
		r.Group().GET("/openapi.yaml", handler.OpenAPIYAML)

		r.Group().Static("/files", staticDir())
	})
}

func staticDir() string {
	if cfg := config.Get(); cfg != nil && cfg.App.StaticDir != "" {
		return cfg.App.StaticDir
	}
	return "files"
}
