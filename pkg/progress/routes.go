package progress

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		progressService: NewService(db),
	}

	e.GET("/documents/:id/progress", h.retrieve)
	e.PUT("/documents/:id/progress", h.update)
	e.POST("/documents/:id/progress/complete", h.complete)
	e.GET("/books/:id/progress", h.bookProgress)
}
