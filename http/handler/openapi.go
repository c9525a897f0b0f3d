package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/pkg/openapi"
)

// DocumentInfo describes this API in the generated document
func DocumentInfo() openapi.Info {
	info := openapi.Info{Title: "blog-service", Version: "1.0.0"}
	if cfg := config.Get(); cfg != nil {
		if cfg.App.Name != "" {
			info.Title = cfg.App.Name
		}
		if cfg.App.Version != "" {
			info.Version = cfg.App.Version
		}
	}
	return info
}

// OpenAPIJSON serves the generated document
func OpenAPIJSON(c echo.Context) error {
	doc, err := openapi.Build(c.Request().Context(), DocumentInfo())
	if err != nil {
		return err
	}
	body, err := openapi.JSON(doc)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
}

// OpenAPIYAML serves the generated document as YAML
func OpenAPIYAML(c echo.Context) error {
	doc, err := openapi.Build(c.Request().Context(), DocumentInfo())
	if err != nil {
		return err
	}
	body, err := openapi.YAML(doc)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/yaml", body)
}
