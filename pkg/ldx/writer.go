package ldx

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
)

// On-disk document structure. The nesting depth matters to downstream tools
// even though the parser tolerates variations.
type ldxFile struct {
	XMLName xml.Name   `xml:"LDXFile"`
	Version string     `xml:"Version,attr"`
	Layers  []ldxLayer `xml:"Layers>Layer"`
}

type ldxLayer struct {
	Blocks []markerBlock `xml:"MarkerBlock"`
}

type markerBlock struct {
	Groups []markerGroup `xml:"MarkerGroup"`
}

type markerGroup struct {
	Name    string      `xml:"Name,attr"`
	Index   int         `xml:"Index,attr"`
	Markers []markerElt `xml:"Marker"`
}

type markerElt struct {
	Version   int    `xml:"Version,attr"`
	ClassName string `xml:"ClassName,attr"`
	Name      string `xml:"Name,attr"`
	Flags     int    `xml:"Flags,attr"`
	Time      string `xml:"Time,attr"`
}

// MarshalLap renders a companion file expressing a single lap: exactly two
// beacon markers, the first at time zero and the second at the lap duration.
func MarshalLap(duration float64, opts ...Option) ([]byte, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("ldx: lap duration must be positive, got %v", duration)
	}

	doc := ldxFile{
		Version: "1.6",
		Layers: []ldxLayer{{
			Blocks: []markerBlock{{
				Groups: []markerGroup{{
					Name:  "Beacons",
					Index: 0,
					Markers: []markerElt{
						beacon(0, 0, o.unit),
						beacon(1, duration, o.unit),
					},
				}},
			}},
		}},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	out := append([]byte(xml.Header), body...)
	return append(out, '\n'), nil
}

func beacon(ordinal int, t float64, unit TimeUnit) markerElt {
	return markerElt{
		Version:   100,
		ClassName: "BCN",
		Name:      fmt.Sprintf("Beacon.%d", ordinal),
		Flags:     0,
		Time:      formatTime(t, unit),
	}
}

func formatTime(t float64, unit TimeUnit) string {
	if unit == Microseconds {
		return strconv.FormatInt(int64(math.Round(t*1e6)), 10)
	}
	return strconv.FormatFloat(t, 'f', 6, 64)
}
