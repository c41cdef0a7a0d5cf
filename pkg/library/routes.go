package library

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, libraryService *Service) {
	h := &handler{
		libraryService: libraryService,
	}

	e.GET("/library", h.list)
	e.GET("/library/:id/chapters", h.chapters)
	e.GET("/library/:id/languages", h.languages)
	e.GET("/library/:id/progress", h.progress)
}
