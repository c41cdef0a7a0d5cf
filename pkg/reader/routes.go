package reader

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, sessions *Sessions) {
	h := &handler{
		sessions: sessions,
	}

	e.POST("/reader/sessions", h.create)
	e.GET("/reader/sessions/:id", h.retrieve)
	e.DELETE("/reader/sessions/:id", h.close)
	e.POST("/reader/sessions/:id/load", h.loadDocument)
	e.POST("/reader/sessions/:id/next-page", h.nextPage)
	e.POST("/reader/sessions/:id/previous-page", h.previousPage)
	e.PUT("/reader/sessions/:id/reveal", h.setReveal)
	e.POST("/reader/sessions/:id/toggle-maintain-level", h.toggleMaintainLevel)
	e.POST("/reader/sessions/:id/set-progress", h.setProgress)
	e.POST("/reader/sessions/:id/next-chapter", h.nextChapter)
	e.POST("/reader/sessions/:id/key", h.key)
}
