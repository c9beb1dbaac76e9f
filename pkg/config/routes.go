package config

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the user-settings routes.
func RegisterRoutes(e *echo.Echo, cfg *Config) {
	h := &handler{cfg: cfg}

	configGroup := e.Group("/config")
	configGroup.GET("", h.retrieve)
	configGroup.PATCH("", h.update)
}
