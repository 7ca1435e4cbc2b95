// Package laps derives lap boundaries from beacon markers.
//
// N markers define N-1 laps partitioning the timeline: lap i runs from
// marker i to marker i+1, so consecutive laps share a boundary instant with
// no gaps or overlaps by construction.
package laps

import (
	"errors"
	"fmt"

	"github.com/greenpointracing/lapcut/pkg/ldx"
)

var ErrLapIndexOutOfRange = errors.New("laps: lap index out of range")

// Boundary is one derived lap: a half-open time window [Start, End).
type Boundary struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (b Boundary) Duration() float64 { return b.End - b.Start }

// Compute converts an ordered marker sequence into lap boundaries.
// The markers must already be validated (ldx.Parse guarantees at least two,
// strictly increasing); Compute re-checks only the count so it is safe to
// call with a hand-built sequence.
func Compute(markers []ldx.Marker) ([]Boundary, error) {
	if len(markers) < 2 {
		return nil, fmt.Errorf("%w: found %d", ldx.ErrEmptyMarkerSet, len(markers))
	}
	bs := make([]Boundary, 0, len(markers)-1)
	for i := 1; i < len(markers); i++ {
		bs = append(bs, Boundary{
			Index: i - 1,
			Start: markers[i-1].Time,
			End:   markers[i].Time,
		})
	}
	return bs, nil
}

// Select returns the lap at the given index.
func Select(bs []Boundary, index int) (Boundary, error) {
	if index < 0 || index >= len(bs) {
		return Boundary{}, fmt.Errorf("%w: index %d, %d laps", ErrLapIndexOutOfRange, index, len(bs))
	}
	return bs[index], nil
}

// Fastest returns the boundary with the minimum duration. Ties go to the
// earliest start time, so repeated selection over the same set is stable.
func Fastest(bs []Boundary) (Boundary, error) {
	if len(bs) == 0 {
		return Boundary{}, fmt.Errorf("%w: no laps", ErrLapIndexOutOfRange)
	}
	best := bs[0]
	for _, b := range bs[1:] {
		if b.Duration() < best.Duration() {
			best = b
		}
	}
	return best, nil
}
