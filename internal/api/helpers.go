package api

import (
	"errors"
	"net/http"
	"os"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/greenpointracing/lapcut/pkg/laps"
	"github.com/greenpointracing/lapcut/pkg/ld"
	"github.com/greenpointracing/lapcut/pkg/ldx"
)

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// writeJSON serializes with goccy rather than echo's default encoder
// so responses and requests go through the same JSON implementation.
func writeJSON(c *echo.Context, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

// writeDomainError maps codec and lap-selection failures to 422: the
// request was well-formed but the named telemetry cannot satisfy it.
func writeDomainError(c *echo.Context, err error) error {
	return writeError(c, http.StatusUnprocessableEntity, "telemetry_error", err.Error())
}

func writeFileError(c *echo.Context, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return writeError(c, http.StatusNotFound, "not_found_error", err.Error())
	}
	return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return writeJSON(c, status, map[string]any{
		"error": apiError{Message: msg, Type: errType},
	})
}

var domainSentinels = []error{
	ld.ErrInvalidMagic,
	ld.ErrUnsupportedVersion,
	ld.ErrTruncated,
	ld.ErrUnknownDataType,
	ld.ErrOverlappingRegions,
	ld.ErrCorruptContainer,
	ld.ErrInvalidWindow,
	ldx.ErrMalformedMarkerFile,
	ldx.ErrEmptyMarkerSet,
	laps.ErrLapIndexOutOfRange,
}

func isDomainError(err error) bool {
	for _, sentinel := range domainSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
