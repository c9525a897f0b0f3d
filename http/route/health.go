package route

import (
	"net/http"

	"github.com/benedict-erwin/blog-service/http/handler"
	"github.com/benedict-erwin/blog-service/http/middleware"
	"github.com/benedict-erwin/blog-service/http/registry"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
)

// init registers health check routes with the registry
func init() {
	registry.Register("/health", []string{"health"}, func(r *registry.Router) {
		// public
		r.Handle(openapi.Operation{Method: http.MethodGet, Path: "/live", Summary: "Liveness probe"}, handler.HealthLive)
		r.Handle(openapi.Operation{Method: http.MethodGet, Path: "/ready", Summary: "Readiness probe"}, handler.HealthReady)

		// JWT protected
		r.Handle(openapi.Operation{
			Method:  http.MethodGet,
			Path:    "/",
			Summary: "Detailed health",
			Secured: true,
		}, handler.HealthDetailed, middleware.BearerUser)
	})
}
