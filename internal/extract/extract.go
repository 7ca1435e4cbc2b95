// Package extract runs the single-lap extraction pipeline: parse the
// marker file, compute lap boundaries, select a lap, slice the
// telemetry container to that lap's window and write the sliced
// container alongside a single-lap marker file.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/greenpointracing/lapcut/internal/logger"
	"github.com/greenpointracing/lapcut/pkg/laps"
	"github.com/greenpointracing/lapcut/pkg/ld"
	"github.com/greenpointracing/lapcut/pkg/ldx"
)

// Request describes one extraction: a container/marker input pair, an
// output directory and a lap selector. When Fastest is false, LapIndex
// picks the lap (zero-based).
type Request struct {
	ContainerPath string
	MarkerPath    string
	OutDir        string
	Fastest       bool
	LapIndex      int
	Unit          ldx.TimeUnit
}

// Result reports what an extraction produced.
type Result struct {
	OperationID   string        `json:"operation_id"`
	Lap           laps.Boundary `json:"lap"`
	LapTime       string        `json:"lap_time"`
	ContainerPath string        `json:"container_path"`
	MarkerPath    string        `json:"marker_path"`
	Channels      int           `json:"channels"`
	Records       uint32        `json:"records"`
}

// Run executes the pipeline for one request. Both output byte streams
// are built in memory before either file is created, so a failing run
// leaves no partial output.
func Run(ctx context.Context, req Request) (*Result, error) {
	opID := uuid.NewString()
	log := logger.FromContext(ctx).With("op", opID)

	markerData, err := os.ReadFile(req.MarkerPath)
	if err != nil {
		return nil, fmt.Errorf("read marker file: %w", err)
	}
	markers, err := ldx.Parse(markerData, ldx.WithTimeUnit(req.Unit))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.MarkerPath, err)
	}
	boundaries, err := laps.Compute(markers)
	if err != nil {
		return nil, err
	}

	var lap laps.Boundary
	if req.Fastest {
		lap, err = laps.Fastest(boundaries)
	} else {
		lap, err = laps.Select(boundaries, req.LapIndex)
	}
	if err != nil {
		return nil, err
	}
	log.Info("selected lap",
		"lap", lap.Index+1,
		"time", laps.FormatClock(lap.Duration()),
		"window_start", lap.Start,
		"window_end", lap.End)

	src, err := ld.Open(req.ContainerPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", req.ContainerPath, err)
	}
	sliced, err := src.Slice(lap.Start, lap.End)
	if err != nil {
		return nil, err
	}

	containerOut, err := sliced.Marshal()
	if err != nil {
		return nil, err
	}
	markerOut, err := ldx.MarshalLap(lap.Duration(), ldx.WithTimeUnit(req.Unit))
	if err != nil {
		return nil, err
	}

	base := outputBase(&src.Header, lap)
	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	ldPath := filepath.Join(req.OutDir, base+".ld")
	ldxPath := filepath.Join(req.OutDir, base+".ldx")
	if err := os.WriteFile(ldPath, containerOut, 0o644); err != nil {
		return nil, fmt.Errorf("write container: %w", err)
	}
	if err := os.WriteFile(ldxPath, markerOut, 0o644); err != nil {
		return nil, fmt.Errorf("write markers: %w", err)
	}

	res := &Result{
		OperationID:   opID,
		Lap:           lap,
		LapTime:       laps.FormatClock(lap.Duration()),
		ContainerPath: ldPath,
		MarkerPath:    ldxPath,
		Channels:      len(sliced.Channels),
		Records:       sliced.Header.RecordCount,
	}
	log.Info("extraction complete",
		"container", ldPath,
		"markers", ldxPath,
		"records", res.Records)
	return res, nil
}

// outputBase builds the output filename stem from the session header
// and the selected lap, e.g. "Barcelona_GT3-42_lap3_1m43.521s".
func outputBase(h *ld.Header, lap laps.Boundary) string {
	venue := sanitize(h.VenueName())
	vehicle := sanitize(h.VehicleID())
	return fmt.Sprintf("%s_%s_lap%d_%s",
		venue, vehicle, lap.Index+1, laps.FormatCompact(lap.Duration()))
}

// sanitize strips a header text field down to filename-safe
// characters. Spaces are dropped so multi-word venues stay one token.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "session"
	}
	return b.String()
}
