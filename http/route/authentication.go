package route

import (
	"net/http"

	"github.com/benedict-erwin/blog-service/http/handler"
	"github.com/benedict-erwin/blog-service/http/registry"
	"github.com/benedict-erwin/blog-service/internal/entities/auth"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
)

func init() {
	registry.Register("/authentication", []string{"authentication"}, func(r *registry.Router) {
		r.Handle(openapi.Operation{
			Method:   http.MethodPost,
			Path:     "/token",
			Summary:  "Get Token",
			Form:     auth.TokenRequest{},
			Response: auth.TokenResponse{},
			Responses: []openapi.Response{
				{Status: http.StatusNotFound, Description: "Invalid credentials"},
			},
		}, handler.Token)
	})
}
