package preferences

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	preferenceService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	documentID := c.Param("id")

	value, err := h.preferenceService.SliderValue(ctx, documentID)
	if err != nil {
		return errors.WithStack(err)
	}

	maintain, err := h.preferenceService.MaintainLevel(ctx, documentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, PreferencesResponse{
		DocumentID:    documentID,
		RevealValue:   value,
		MaintainLevel: maintain,
	}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	documentID := c.Param("id")

	var payload UpdatePreferencesPayload
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	if payload.RevealValue != nil {
		if err := h.preferenceService.SaveSliderValue(ctx, documentID, *payload.RevealValue); err != nil {
			return errors.WithStack(err)
		}
	}

	if payload.MaintainLevel != nil {
		if err := h.preferenceService.SaveMaintainLevel(ctx, documentID, *payload.MaintainLevel); err != nil {
			return errors.WithStack(err)
		}
	}

	return h.retrieve(c)
}
