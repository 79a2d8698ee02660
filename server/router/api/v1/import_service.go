package v1

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinedex/dinedex/server/internal/observability"
)

type ImportResponse struct {
	Imported int `json:"imported"`
}

// importRestaurants ingests a CSV payload, either as a multipart "file"
// part or as the raw request body. Imports run one at a time; a second
// concurrent request is rejected rather than queued.
func (s *APIV1Service) importRestaurants(c echo.Context) error {
	ctx := c.Request().Context()

	if !s.importLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, errorResponse{Message: "too many import requests"})
	}
	if !s.importSemaphore.TryAcquire(1) {
		return c.JSON(http.StatusConflict, errorResponse{Message: "another import is in progress"})
	}
	defer s.importSemaphore.Release(1)

	reader, err := s.importPayload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}
	defer reader.Close()

	// Read one byte past the cap so an oversized payload is rejected
	// whole instead of imported as a truncated prefix.
	payload, err := io.ReadAll(io.LimitReader(reader, s.Profile.ImportMaxBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "failed to read import payload"})
	}
	if int64(len(payload)) > s.Profile.ImportMaxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Message: "import payload exceeds the size limit"})
	}

	requestID := observability.RequestID(c)
	imported, err := s.Importer.Import(ctx, bytes.NewReader(payload))
	if err != nil {
		slog.Warn("csv import failed", "request_id", requestID, "imported", imported, "error", err)
		return respondError(c, err)
	}
	slog.Info("csv import finished", "request_id", requestID, "imported", imported)
	return c.JSON(http.StatusOK, &ImportResponse{Imported: imported})
}

// importPayload picks the CSV source: the "file" multipart part when the
// request is a form upload, the request body otherwise.
func (s *APIV1Service) importPayload(c echo.Context) (io.ReadCloser, error) {
	file, err := c.FormFile("file")
	if err != nil {
		// Not a multipart upload, fall back to the raw body.
		return c.Request().Body, nil
	}
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	return src, nil
}
