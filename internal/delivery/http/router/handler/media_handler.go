package handler

import (
	"log/slog"
	"net/http"

	"civicreport/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MediaHandler streams stored issue attachments.
type MediaHandler struct {
	storage service.MediaStorage
	logger  *slog.Logger
}

// NewMediaHandler is the constructor for MediaHandler, injected by Fx.
func NewMediaHandler(storage service.MediaStorage, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		storage: storage,
		logger:  logger,
	}
}

// Serve streams one attachment by its storage key.
func (h *MediaHandler) Serve(c echo.Context) error {
	body, contentType, err := h.storage.Open(c.Request().Context(), c.Param("key"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer body.Close()

	return c.Stream(http.StatusOK, contentType, body)
}
