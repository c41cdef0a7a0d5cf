package settings

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, settingsService *Service) {
	h := &handler{
		settingsService: settingsService,
	}

	e.GET("/settings", h.retrieve)
	e.PATCH("/settings", h.update)
	e.POST("/settings/reset", h.reset)
}
