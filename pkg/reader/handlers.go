package reader

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	sessions *Sessions
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	var payload CreateSessionPayload
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	s, err := h.sessions.Open(ctx, payload.DocumentID)
	if err != nil {
		return errors.WithStack(err)
	}

	view, err := s.View(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, view))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	view, err := s.View(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, view))
}

func (h *handler) loadDocument(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	var payload LoadDocumentPayload
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	if err := s.Load(ctx, payload.DocumentID); err != nil {
		return errors.WithStack(err)
	}

	return h.respond(c, s)
}

func (h *handler) nextPage(c echo.Context) error {
	return h.transition(c, (*Session).NextPage)
}

func (h *handler) previousPage(c echo.Context) error {
	return h.transition(c, (*Session).PreviousPage)
}

func (h *handler) setReveal(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	var payload SetRevealPayload
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	if _, err := s.SetRevealValue(ctx, payload.Value); err != nil {
		return errors.WithStack(err)
	}

	return h.respond(c, s)
}

func (h *handler) toggleMaintainLevel(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := s.ToggleMaintainLevel(ctx); err != nil {
		return errors.WithStack(err)
	}

	return h.respond(c, s)
}

func (h *handler) setProgress(c echo.Context) error {
	return h.transition(c, (*Session).ConfirmSetProgress)
}

func (h *handler) nextChapter(c echo.Context) error {
	return h.transition(c, (*Session).GoToNextChapter)
}

func (h *handler) key(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	var payload KeyPayload
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	if err := s.HandleKey(ctx, payload.Key); err != nil {
		return errors.WithStack(err)
	}

	return h.respond(c, s)
}

func (h *handler) close(c echo.Context) error {
	if _, err := h.sessions.Get(c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	h.sessions.Close(c.Param("id"))
	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) transition(c echo.Context, fn func(*Session, context.Context) error) error {
	ctx := c.Request().Context()

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := fn(s, ctx); err != nil {
		return errors.WithStack(err)
	}

	return h.respond(c, s)
}

func (h *handler) respond(c echo.Context, s *Session) error {
	view, err := s.View(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSON(http.StatusOK, view))
}
