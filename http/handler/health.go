package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/blog-service/internal/constants"
	"github.com/benedict-erwin/blog-service/internal/services/health"
	"github.com/benedict-erwin/blog-service/pkg/response"
	"github.com/benedict-erwin/blog-service/pkg/utils"
)

// HealthLive returns basic liveness check
func HealthLive(c echo.Context) error {
	data := map[string]interface{}{
		"status":    "alive",
		"timestamp": utils.NowFormatted(),
	}
	return response.Success(c, data)
}

// HealthReady reports whether every enabled dependency answers
func HealthReady(c echo.Context) error {
	status := health.CheckReadiness(c.Request().Context())

	httpStatus := http.StatusOK
	code := constants.CodeSuccess
	if status.Status != "ready" {
		httpStatus = http.StatusServiceUnavailable
		code = constants.CodeServiceUnavailable
	}

	data := map[string]interface{}{
		"readiness": status,
	}
	return response.General(c, httpStatus, code, data, "Readiness check completed")
}

// HealthDetailed adds process metrics to the dependency report
func HealthDetailed(c echo.Context) error {
	status := health.CheckHealth(c.Request().Context())

	httpStatus := http.StatusOK
	code := constants.CodeSuccess
	if status.Status != health.StatusHealthy {
		httpStatus = http.StatusServiceUnavailable
		code = constants.CodeServiceUnavailable
	}

	data := map[string]interface{}{
		"health": status,
	}
	return response.General(c, httpStatus, code, data, "Health check completed")
}
