package extract

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/greenpointracing/lapcut/pkg/laps"
	"github.com/greenpointracing/lapcut/pkg/ld"
	"github.com/greenpointracing/lapcut/pkg/ldx"
)

// writeFixtures lays down a 3-lap session: a 100Hz speed channel over
// 300 seconds and markers at 0 / 92.5 / 184.0 / 300.0.
func writeFixtures(t *testing.T, dir string) (ldPath, ldxPath string) {
	t.Helper()

	var c ld.Container
	c.Header.SetVenue("Mount Panorama")
	c.Header.SetVehicle("GT3-42")
	c.Header.SetDriver("A. Munro")

	var d ld.Descriptor
	d.Type = ld.TypeS16
	d.Frequency = 100
	d.Scale = 1
	d.SetName("Ground Speed")
	d.SetUnit("km/h")
	block := make([]byte, 2*30000)
	for i := 0; i < 30000; i++ {
		binary.LittleEndian.PutUint16(block[2*i:], uint16(i%1000))
	}
	c.Channels = []ld.Channel{{Descriptor: d, Block: block}}

	raw, err := c.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	ldPath = filepath.Join(dir, "session.ld")
	if err := os.WriteFile(ldPath, raw, 0o644); err != nil {
		t.Fatalf("write container: %v", err)
	}

	ldxPath = filepath.Join(dir, "session.ldx")
	markerXML := `<?xml version="1.0" encoding="UTF-8"?>
<LDXFile Version="1.6">
  <Layers>
    <Layer>
      <MarkerBlock>
        <MarkerGroup Name="Beacons" Index="0">
          <Marker Version="100" ClassName="BCN" Name="Beacon.0" Flags="0" Time="0.000000"/>
          <Marker Version="100" ClassName="BCN" Name="Beacon.1" Flags="0" Time="92.500000"/>
          <Marker Version="100" ClassName="BCN" Name="Beacon.2" Flags="0" Time="184.000000"/>
          <Marker Version="100" ClassName="BCN" Name="Beacon.3" Flags="0" Time="300.000000"/>
        </MarkerGroup>
      </MarkerBlock>
    </Layer>
  </Layers>
</LDXFile>
`
	if err := os.WriteFile(ldxPath, []byte(markerXML), 0o644); err != nil {
		t.Fatalf("write markers: %v", err)
	}
	return ldPath, ldxPath
}

func TestRunExtractsSelectedLap(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ldPath, ldxPath := writeFixtures(t, dir)
	outDir := filepath.Join(dir, "out")

	res, err := Run(context.Background(), Request{
		ContainerPath: ldPath,
		MarkerPath:    ldxPath,
		OutDir:        outDir,
		LapIndex:      1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.OperationID == "" {
		t.Fatal("expected non-empty operation id")
	}
	if res.Lap.Index != 1 || res.Lap.Start != 92.5 || res.Lap.End != 184.0 {
		t.Fatalf("unexpected lap: %+v", res.Lap)
	}
	if res.LapTime != "1:31.500" {
		t.Fatalf("expected lap time 1:31.500, got %q", res.LapTime)
	}

	wantBase := "MountPanorama_GT3-42_lap2_1m31.500s"
	if filepath.Base(res.ContainerPath) != wantBase+".ld" {
		t.Fatalf("unexpected container name: %s", res.ContainerPath)
	}
	if filepath.Base(res.MarkerPath) != wantBase+".ldx" {
		t.Fatalf("unexpected marker name: %s", res.MarkerPath)
	}

	// Sliced container: 100Hz window [92.5, 184.0) is 9150 samples
	// starting at sample 9250.
	out, err := ld.Open(res.ContainerPath)
	if err != nil {
		t.Fatalf("Open sliced output: %v", err)
	}
	ch, ok := out.Channel("Ground Speed")
	if !ok {
		t.Fatal("sliced output lost the channel")
	}
	if ch.SampleCount != 9150 {
		t.Fatalf("expected 9150 samples, got %d", ch.SampleCount)
	}
	first, err := ch.RawValue(0)
	if err != nil {
		t.Fatalf("RawValue: %v", err)
	}
	if first != float64(9250%1000) {
		t.Fatalf("expected first sample %d, got %v", 9250%1000, first)
	}
	if out.Header.VenueName() != "Mount Panorama" {
		t.Fatalf("venue not carried into output: %q", out.Header.VenueName())
	}
	if res.Records != 9150 || res.Channels != 1 {
		t.Fatalf("unexpected result stats: %+v", res)
	}

	// Marker output holds exactly the lap duration.
	markerOut, err := os.ReadFile(res.MarkerPath)
	if err != nil {
		t.Fatalf("read marker output: %v", err)
	}
	ms, err := ldx.Parse(markerOut)
	if err != nil {
		t.Fatalf("parse marker output: %v", err)
	}
	if len(ms) != 2 || ms[0].Time != 0 || ms[1].Time != 91.5 {
		t.Fatalf("unexpected output markers: %+v", ms)
	}
	if !bytes.HasPrefix(markerOut, []byte("<?xml")) {
		t.Fatal("marker output missing XML declaration")
	}
}

func TestRunFastestLap(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ldPath, ldxPath := writeFixtures(t, dir)

	res, err := Run(context.Background(), Request{
		ContainerPath: ldPath,
		MarkerPath:    ldxPath,
		OutDir:        filepath.Join(dir, "out"),
		Fastest:       true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Laps are 92.5 / 91.5 / 116.0 seconds; lap 2 is fastest.
	if res.Lap.Index != 1 {
		t.Fatalf("expected fastest lap index 1, got %d", res.Lap.Index)
	}
}

func TestRunLapIndexOutOfRange(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ldPath, ldxPath := writeFixtures(t, dir)
	outDir := filepath.Join(dir, "out")

	_, err := Run(context.Background(), Request{
		ContainerPath: ldPath,
		MarkerPath:    ldxPath,
		OutDir:        outDir,
		LapIndex:      5,
	})
	if !errors.Is(err, laps.ErrLapIndexOutOfRange) {
		t.Fatalf("expected ErrLapIndexOutOfRange, got %v", err)
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Fatal("failed run must not create output files")
	}
}

func TestRunMissingInputs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if _, err := Run(context.Background(), Request{
		ContainerPath: filepath.Join(dir, "absent.ld"),
		MarkerPath:    filepath.Join(dir, "absent.ldx"),
		OutDir:        dir,
	}); err == nil {
		t.Fatal("expected error for missing inputs")
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"Mount Panorama", "MountPanorama"},
		{"GT3-42", "GT3-42"},
		{"a/b\\c", "abc"},
		{"", "session"},
		{"###", "session"},
	}

	for _, tc := range tests {
		if got := sanitize(tc.input); got != tc.want {
			t.Errorf("sanitize(%q): expected %q, got %q", tc.input, tc.want, got)
		}
	}
}
