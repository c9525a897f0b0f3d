package registry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/blog-service/pkg/logger"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
)

func withEmptyRegistry(t *testing.T) {
	t.Helper()
	logger.SetOutput(io.Discard)
	saved := routerRegistry
	routerRegistry = make(map[string]*routerEntry)
	t.Cleanup(func() {
		routerRegistry = saved
		openapi.Reset()
	})
}

func marker(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("X-Marker", "on")
		return next(c)
	}
}

func ok(c echo.Context) error {
	return c.String(http.StatusOK, c.Path())
}

func TestSetupAllRoutes(t *testing.T) {
	withEmptyRegistry(t)

	Register("/notes", []string{"notes"}, func(r *Router) {
		r.Use(marker)
		r.Handle(openapi.Operation{Path: "/", Summary: "List notes"}, ok)
		r.Handle(openapi.Operation{Method: "post", Path: "/:id", Tags: []string{"edit"}}, ok)
	})
	Register("/notes", nil, func(r *Router) {
		r.Handle(openapi.Operation{Path: "/plain"}, ok)
	})

	e := echo.New()
	SetupAllRoutes(e)
	require.NotNil(t, e.Validator)

	serve := func(method, target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
		return rec
	}

	rec := serve(http.MethodGet, "/notes/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "on", rec.Header().Get("X-Marker"))

	rec = serve(http.MethodGet, "/notes")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "on", rec.Header().Get("X-Marker"))

	rec = serve(http.MethodPost, "/notes/3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "on", rec.Header().Get("X-Marker"))

	rec = serve(http.MethodGet, "/notes/plain")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Marker"))

	ops := openapi.Operations()
	require.Len(t, ops, 3)
	assert.Equal(t, "/notes/", ops[0].Path)
	assert.Equal(t, http.MethodGet, ops[0].Method)
	assert.Equal(t, []string{"notes"}, ops[0].Tags)
	assert.Equal(t, "/notes/:id", ops[1].Path)
	assert.Equal(t, http.MethodPost, ops[1].Method)
	assert.Equal(t, []string{"edit"}, ops[1].Tags)
	assert.Equal(t, "/notes/plain", ops[2].Path)
}

func TestSetupAllRoutesResetsDocument(t *testing.T) {
	withEmptyRegistry(t)

	Register("", nil, func(r *Router) {
		r.Handle(openapi.Operation{Path: "/ping"}, ok)
	})

	SetupAllRoutes(echo.New())
	SetupAllRoutes(echo.New())
	assert.Len(t, openapi.Operations(), 1)
}

func TestSetupAllRoutesEmpty(t *testing.T) {
	withEmptyRegistry(t)

	e := echo.New()
	SetupAllRoutes(e)
	assert.Empty(t, e.Routes())
	assert.Empty(t, openapi.Operations())
}
