package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	settingsService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	current, err := h.settingsService.Settings(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, current))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	var payload UpdateSettingsPayload
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.settingsService.Update(ctx, UpdateSettingsOptions{
		ShowProgressIndicator: payload.ShowProgressIndicator,
		ShowTranslationSlider: payload.ShowTranslationSlider,
		DarkMode:              payload.DarkMode,
		ShowTranslation:       payload.ShowTranslation,
		SentencesPerPage:      payload.SentencesPerPage,
		NativeLanguage:        payload.NativeLanguage,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, updated))
}

func (h *handler) reset(c echo.Context) error {
	ctx := c.Request().Context()

	restored, err := h.settingsService.Reset(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, restored))
}
