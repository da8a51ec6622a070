package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health reports liveness for load balancers and monitoring.
func Health(env string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"env":       env,
		})
	}
}

// Root serves the service banner at GET /.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "HackHub API Server",
		"version": "1.0.0",
		"status":  "Running",
	})
}
