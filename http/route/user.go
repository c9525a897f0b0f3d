package route

import (
	"net/http"

	"github.com/benedict-erwin/blog-service/http/handler"
	"github.com/benedict-erwin/blog-service/http/registry"
	"github.com/benedict-erwin/blog-service/internal/entities/user"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
)

func init() {
	registry.Register("/user", []string{"user"}, func(r *registry.Router) {
		idParam := []openapi.Param{openapi.PathParam("id", openapi.Int())}

		r.Handle(openapi.Operation{
			Method:   http.MethodPost,
			Path:     "/",
			Summary:  "Create User",
			Body:     user.UserBase{},
			Response: user.UserDisplay{},
			Responses: []openapi.Response{
				{Status: http.StatusConflict, Description: "Username already exists"},
			},
		}, handler.UserCreate)

		r.Handle(openapi.Operation{
			Method:   http.MethodGet,
			Path:     "/",
			Summary:  "Get All Users",
			Response: []user.UserDisplay{},
		}, handler.UserList)

		r.Handle(openapi.Operation{
			Method:   http.MethodGet,
			Path:     "/:id",
			Summary:  "Get User",
			Params:   idParam,
			Response: user.UserDisplay{},
			Responses: []openapi.Response{
				{Status: http.StatusNotFound, Description: "User not found"},
			},
		}, handler.UserGet)

		r.Handle(openapi.Operation{
			Method:   http.MethodPost,
			Path:     "/:id/update",
			Summary:  "Update User",
			Params:   idParam,
			Body:     user.UserBase{},
			Response: "",
		}, handler.UserUpdate)

		r.Handle(openapi.Operation{
			Method:   http.MethodGet,
			Path:     "/delete/:id",
			Summary:  "Delete User",
			Params:   idParam,
			Response: "",
		}, handler.UserDelete)
	})
}
