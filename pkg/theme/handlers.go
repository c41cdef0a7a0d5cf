package theme

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	themeService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	current, err := h.themeService.Theme(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"theme": current}))
}

func (h *handler) toggle(c echo.Context) error {
	ctx := c.Request().Context()

	next, err := h.themeService.Toggle(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"theme": next}))
}
