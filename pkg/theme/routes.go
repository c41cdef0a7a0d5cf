package theme

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		themeService: NewService(db),
	}

	e.GET("/theme", h.retrieve)
	e.POST("/theme/toggle", h.toggle)
}
