package library

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	libraryService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.libraryService.Books(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"books": books,
	}))
}

func (h *handler) chapters(c echo.Context) error {
	ctx := c.Request().Context()

	var query ChaptersQuery
	if err := c.Bind(&query); err != nil {
		return errors.WithStack(err)
	}

	chapters, err := h.libraryService.Chapters(ctx, c.Param("id"), query.Language)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"chapters": chapters,
	}))
}

func (h *handler) languages(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.libraryService.Languages(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, view))
}

func (h *handler) progress(c echo.Context) error {
	ctx := c.Request().Context()

	var query ChaptersQuery
	if err := c.Bind(&query); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.libraryService.Progress(ctx, c.Param("id"), query.Language)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}
