package preferences

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		preferenceService: NewService(db),
	}

	e.GET("/documents/:id/preferences", h.retrieve)
	e.PUT("/documents/:id/preferences", h.update)
}
