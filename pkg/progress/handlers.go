package progress

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	progressService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	documentID := c.Param("id")

	stored, err := h.progressService.Retrieve(ctx, documentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"document_id": documentID,
		"progress":    stored,
	}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	documentID := c.Param("id")

	var payload SetProgressPayload
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	var err error
	if payload.Force {
		err = h.progressService.ForceProgressPoint(ctx, documentID, payload.CurrentPage, payload.TotalPages)
	} else {
		err = h.progressService.SetProgressPoint(ctx, documentID, payload.CurrentPage, payload.TotalPages)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return h.retrieve(c)
}

func (h *handler) complete(c echo.Context) error {
	ctx := c.Request().Context()
	documentID := c.Param("id")

	var payload CompleteChapterPayload
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	if err := h.progressService.CompleteChapter(ctx, documentID, payload.TotalPages); err != nil {
		return errors.WithStack(err)
	}

	return h.retrieve(c)
}

func (h *handler) bookProgress(c echo.Context) error {
	ctx := c.Request().Context()

	var payload BookProgressQuery
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.progressService.BookProgress(ctx, payload.ChapterIDs)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}
