package catalog

import (
	"net/http"

	"github.com/blendbooks/blend/pkg/errcodes"
	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	client *Client
}

// cover proxies a cover image from the content host so the frontend only ever
// talks to this server. Content type is sniffed from the bytes because the
// content host may not set one.
func (h *handler) cover(c echo.Context) error {
	ctx := c.Request().Context()
	path := c.Param("*")
	if path == "" {
		return errcodes.NotFound("Cover image")
	}

	data, err := h.client.FetchBytes(ctx, path)
	if err != nil {
		logger.FromContext(ctx).Err(err).Warn("cover fetch failed", logger.Data{"path": path})
		return errcodes.FetchFailed("cover image")
	}

	mtype := mimetype.Detect(data)
	if !isImageType(mtype.String()) {
		return errcodes.NotFound("Cover image")
	}

	return errors.WithStack(c.Blob(http.StatusOK, mtype.String(), data))
}

func isImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif", "image/svg+xml":
		return true
	}
	return false
}
