package resolver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	resolverService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	documentID := c.Param("id")

	book, err := h.resolverService.ResolveDocument(ctx, documentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) chapterContext(c echo.Context) error {
	ctx := c.Request().Context()
	documentID := c.Param("id")

	chapterCtx, err := h.resolverService.ChapterContext(ctx, documentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, chapterCtx))
}
