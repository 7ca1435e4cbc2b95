// Package ldx reads and writes the XML lap-marker companion file.
//
// A companion file carries an ordered list of beacon markers, each with a
// cumulative timestamp measured from session start. Only marker order and the
// Time attribute are semantic; the name and class attributes are cosmetic
// metadata and pass through untouched.
package ldx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	ErrMalformedMarkerFile = errors.New("ldx: malformed marker file")
	ErrEmptyMarkerSet      = errors.New("ldx: fewer than two markers, no lap definable")
)

// TimeUnit selects how Time attributes are interpreted and emitted. The
// format stores seconds; some vendor tools produced integer microseconds
// instead, so the conversion is an explicit option rather than a guess.
type TimeUnit int

const (
	Seconds TimeUnit = iota
	Microseconds
)

// Marker is one beacon event. Time is always in seconds regardless of the
// unit the source file used.
type Marker struct {
	Name string  `json:"name"`
	Time float64 `json:"time"`
}

type options struct {
	unit TimeUnit
}

type Option func(*options)

// WithTimeUnit overrides the Time attribute unit (default Seconds).
func WithTimeUnit(u TimeUnit) Option {
	return func(o *options) { o.unit = u }
}

// Parse extracts the markers from a companion file, preserving file order.
// It fails with ErrEmptyMarkerSet when fewer than two markers exist and with
// ErrMalformedMarkerFile when the XML is invalid, a Time attribute does not
// parse, or timestamps are not strictly increasing.
func Parse(data []byte, opts ...Option) ([]Marker, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Markers are collected from wherever they appear under the root; vendor
	// files vary in how deep the group nesting goes.
	var markers []Marker
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMarkerFile, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Marker" {
			continue
		}

		var m Marker
		seenTime := false
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "Time":
				t, err := strconv.ParseFloat(attr.Value, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: marker %d has time %q", ErrMalformedMarkerFile, len(markers), attr.Value)
				}
				m.Time = t
				seenTime = true
			case "Name":
				m.Name = attr.Value
			}
		}
		if !seenTime {
			return nil, fmt.Errorf("%w: marker %d has no Time attribute", ErrMalformedMarkerFile, len(markers))
		}
		if o.unit == Microseconds {
			m.Time /= 1e6
		}
		markers = append(markers, m)
	}

	if len(markers) < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrEmptyMarkerSet, len(markers))
	}
	for i := 1; i < len(markers); i++ {
		if markers[i].Time <= markers[i-1].Time {
			return nil, fmt.Errorf("%w: marker %d at %vs does not follow marker %d at %vs",
				ErrMalformedMarkerFile, i, markers[i].Time, i-1, markers[i-1].Time)
		}
	}
	return markers, nil
}
