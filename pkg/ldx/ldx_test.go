package ldx

import (
	"errors"
	"strings"
	"testing"
)

const sampleLDX = `<?xml version="1.0" encoding="UTF-8"?>
<LDXFile Version="1.6">
  <Layers>
    <Layer>
      <MarkerBlock>
        <MarkerGroup Name="Beacons" Index="0">
          <Marker Version="100" ClassName="BCN" Name="Manual.0" Flags="0" Time="0.000000"></Marker>
          <Marker Version="100" ClassName="BCN" Name="Manual.1" Flags="0" Time="92.505000"></Marker>
          <Marker Version="100" ClassName="BCN" Name="Manual.2" Flags="0" Time="184.236000"></Marker>
        </MarkerGroup>
      </MarkerBlock>
    </Layer>
  </Layers>
</LDXFile>
`

func TestParsePreservesOrderAndNames(t *testing.T) {
	t.Parallel()

	ms, err := Parse([]byte(sampleLDX))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ms) != 3 {
		t.Fatalf("got %d markers, want 3", len(ms))
	}
	if ms[1].Time != 92.505 {
		t.Fatalf("marker 1 time: got %v want 92.505", ms[1].Time)
	}
	if ms[2].Name != "Manual.2" {
		t.Fatalf("marker 2 name: got %q", ms[2].Name)
	}
}

func TestParseMicrosecondUnit(t *testing.T) {
	t.Parallel()

	doc := `<LDXFile><Layers><Layer><MarkerBlock><MarkerGroup Name="Beacons" Index="0">` +
		`<Marker Name="Manual.0" Time="0"></Marker>` +
		`<Marker Name="Manual.1" Time="92505000"></Marker>` +
		`</MarkerGroup></MarkerBlock></Layer></Layers></LDXFile>`

	ms, err := Parse([]byte(doc), WithTimeUnit(Microseconds))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ms[1].Time != 92.505 {
		t.Fatalf("converted time: got %v want 92.505", ms[1].Time)
	}
}

func TestParseRejectsNonIncreasingTimes(t *testing.T) {
	t.Parallel()

	doc := `<LDXFile><Layers><Layer><MarkerBlock><MarkerGroup>` +
		`<Marker Time="5.0"></Marker><Marker Time="3.0"></Marker>` +
		`</MarkerGroup></MarkerBlock></Layer></Layers></LDXFile>`
	if _, err := Parse([]byte(doc)); !errors.Is(err, ErrMalformedMarkerFile) {
		t.Fatalf("got %v, want ErrMalformedMarkerFile", err)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"invalid xml", `<LDXFile><Layers>`, ErrMalformedMarkerFile},
		{"bad time attribute", `<LDXFile><Marker Time="abc"></Marker></LDXFile>`, ErrMalformedMarkerFile},
		{"missing time attribute", `<LDXFile><Marker Name="x"></Marker></LDXFile>`, ErrMalformedMarkerFile},
		{"no markers", `<LDXFile><Layers><Layer></Layer></Layers></LDXFile>`, ErrEmptyMarkerSet},
		{"single marker", `<LDXFile><Marker Time="1.0"></Marker></LDXFile>`, ErrEmptyMarkerSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(tt.doc)); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMarshalLapRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := MarshalLap(92.505)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `Time="92.505000"`) {
		t.Fatalf("missing lap end marker:\n%s", out)
	}

	ms, err := Parse(out)
	if err != nil {
		t.Fatalf("parse own output: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("got %d markers, want 2", len(ms))
	}
	if ms[0].Time != 0 || ms[1].Time != 92.505 {
		t.Fatalf("marker times: %v %v", ms[0].Time, ms[1].Time)
	}
}

func TestMarshalLapMicroseconds(t *testing.T) {
	t.Parallel()

	out, err := MarshalLap(92.505, WithTimeUnit(Microseconds))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `Time="92505000"`) {
		t.Fatalf("expected integer microseconds:\n%s", out)
	}
	ms, err := Parse(out, WithTimeUnit(Microseconds))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ms[1].Time != 92.505 {
		t.Fatalf("round trip time: got %v", ms[1].Time)
	}
}

func TestMarshalLapRejectsBadDuration(t *testing.T) {
	t.Parallel()

	for _, d := range []float64{0, -1.5} {
		if _, err := MarshalLap(d); err == nil {
			t.Fatalf("duration %v: expected error", d)
		}
	}
}
