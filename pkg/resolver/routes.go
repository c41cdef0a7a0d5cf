package resolver

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, resolverService *Service) {
	h := &handler{
		resolverService: resolverService,
	}

	e.GET("/documents/:id", h.retrieve)
	e.GET("/documents/:id/context", h.chapterContext)
}
