// Package api exposes the marker and container operations over HTTP
// for use from pit-wall tooling. Requests name files on the host the
// server runs on; the server never uploads telemetry anywhere.
package api

import (
	"errors"
	"io"
	"net/http"
	"os"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/greenpointracing/lapcut/internal/extract"
	"github.com/greenpointracing/lapcut/internal/logger"
	"github.com/greenpointracing/lapcut/pkg/laps"
	"github.com/greenpointracing/lapcut/pkg/ld"
	"github.com/greenpointracing/lapcut/pkg/ldx"
)

type Server struct {
	log    logger.Logger
	outDir string
}

// NewServer creates a Server. outDir is the default output directory
// for extractions when a request does not name one.
func NewServer(log logger.Logger, outDir string) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{log: log, outDir: outDir}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/health", s.handleHealth)
	e.POST("/v1/laps", s.handleLaps)
	e.POST("/v1/inspect", s.handleInspect)
	e.POST("/v1/extract", s.handleExtract)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLaps(c *echo.Context) error {
	req, err := decodeJSON[lapsRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	unit, err := parseUnit(req.Unit)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	data, err := os.ReadFile(req.MarkerPath)
	if err != nil {
		return writeFileError(c, err)
	}
	markers, err := ldx.Parse(data, ldx.WithTimeUnit(unit))
	if err != nil {
		return writeDomainError(c, err)
	}
	boundaries, err := laps.Compute(markers)
	if err != nil {
		return writeDomainError(c, err)
	}
	fastest, err := laps.Fastest(boundaries)
	if err != nil {
		return writeDomainError(c, err)
	}

	resp := lapsResponse{
		Laps:    make([]lapInfo, 0, len(boundaries)),
		Fastest: fastest.Index,
	}
	for _, b := range boundaries {
		resp.Laps = append(resp.Laps, lapInfo{
			Boundary: b,
			Duration: b.Duration(),
			LapTime:  laps.FormatClock(b.Duration()),
		})
	}
	return writeJSON(c, http.StatusOK, resp)
}

func (s *Server) handleInspect(c *echo.Context) error {
	req, err := decodeJSON[inspectRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	container, err := ld.Open(req.ContainerPath)
	if err != nil {
		if isDomainError(err) {
			return writeDomainError(c, err)
		}
		return writeFileError(c, err)
	}
	return writeJSON(c, http.StatusOK, describeContainer(container))
}

func (s *Server) handleExtract(c *echo.Context) error {
	req, err := decodeJSON[extractRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	unit, err := parseUnit(req.Unit)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = s.outDir
	}

	ctx := logger.WithContext(c.Request().Context(), s.log)
	res, err := extract.Run(ctx, extract.Request{
		ContainerPath: req.ContainerPath,
		MarkerPath:    req.MarkerPath,
		OutDir:        outDir,
		Fastest:       req.Fastest,
		LapIndex:      req.Lap,
		Unit:          unit,
	})
	if err != nil {
		if isDomainError(err) {
			return writeDomainError(c, err)
		}
		return writeFileError(c, err)
	}
	return writeJSON(c, http.StatusOK, res)
}

func parseUnit(s string) (ldx.TimeUnit, error) {
	switch s {
	case "", "seconds":
		return ldx.Seconds, nil
	case "microseconds":
		return ldx.Microseconds, nil
	default:
		return ldx.Seconds, errors.New(`unit must be "seconds" or "microseconds"`)
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
