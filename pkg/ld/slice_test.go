package ld

import (
	"bytes"
	"errors"
	"testing"
)

func TestSliceWindowPerChannelIndexing(t *testing.T) {
	t.Parallel()

	c := &Container{}
	c.Header.Version = CurrentVersion
	c.Channels = []Channel{
		rampChannel(t, "Ground Speed", "km/h", TypeS16, 10, 1000),
		rampChannel(t, "Engine RPM", "rpm", TypeF32, 100, 10000),
	}
	c.Header.RecordCount = 10000

	// The same wall-clock lap selects a different index range per channel.
	out, err := c.Slice(10.0, 22.5)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}

	speed := out.Channels[0]
	if speed.SampleCount != 125 {
		t.Fatalf("10 Hz channel: got %d samples, want 125", speed.SampleCount)
	}
	v, err := speed.RawValue(0)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if v != 100 {
		t.Fatalf("10 Hz channel starts at sample %v, want 100", v)
	}

	rpm := out.Channels[1]
	if rpm.SampleCount != 1250 {
		t.Fatalf("100 Hz channel: got %d samples, want 1250", rpm.SampleCount)
	}
	v, err = rpm.RawValue(0)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if v != 1000 {
		t.Fatalf("100 Hz channel starts at sample %v, want 1000", v)
	}

	if out.Header.RecordCount != 1250 {
		t.Fatalf("record count: got %d want 1250", out.Header.RecordCount)
	}

	// The source container is never mutated.
	if c.Channels[0].SampleCount != 1000 || c.Header.RecordCount != 10000 {
		t.Fatalf("source container mutated by slice")
	}
}

func TestSliceClampsToChannelBounds(t *testing.T) {
	t.Parallel()

	c := &Container{}
	c.Header.Version = CurrentVersion
	c.Channels = []Channel{rampChannel(t, "Throttle", "%", TypeU16, 10, 50)}
	c.Header.RecordCount = 50

	out, err := c.Slice(3.0, 60.0)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	if got := out.Channels[0].SampleCount; got != 20 {
		t.Fatalf("clamped slice: got %d samples, want 20", got)
	}
}

func TestSliceKeepsEmptyChannels(t *testing.T) {
	t.Parallel()

	c := &Container{}
	c.Header.Version = CurrentVersion
	c.Channels = []Channel{
		// One sample per second: a sub-second window selects nothing.
		rampChannel(t, "Fuel Level", "l", TypeF32, 1, 100),
		rampChannel(t, "Steering", "deg", TypeS16, 100, 10000),
	}
	c.Header.RecordCount = 10000

	out, err := c.Slice(10.0, 10.4)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	if len(out.Channels) != 2 {
		t.Fatalf("empty channel was dropped")
	}
	fuel := out.Channels[0]
	if fuel.SampleCount != 0 || len(fuel.Block) != 0 {
		t.Fatalf("expected empty fuel channel, got %d samples", fuel.SampleCount)
	}
	if fuel.ChannelName() != "Fuel Level" || fuel.UnitText() != "l" {
		t.Fatalf("empty channel lost its descriptor")
	}
	if got := out.Channels[1].SampleCount; got != 40 {
		t.Fatalf("100 Hz channel: got %d samples, want 40", got)
	}

	// An empty channel still marshals and round-trips.
	data, err := out.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := Read(data)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	redata, err := back.Marshal()
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if !bytes.Equal(redata, data) {
		t.Fatalf("empty-channel round trip mismatch")
	}
}

func TestSliceInvalidWindow(t *testing.T) {
	t.Parallel()

	c := testContainer(t)
	if _, err := c.Slice(5.0, 5.0); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("zero window: got %v", err)
	}
	if _, err := c.Slice(8.0, 5.0); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("reversed window: got %v", err)
	}
}

func TestSliceSampleCountLaw(t *testing.T) {
	t.Parallel()

	freqs := []uint32{1, 10, 20, 50, 100, 200}
	c := &Container{}
	c.Header.Version = CurrentVersion
	for _, f := range freqs {
		c.Channels = append(c.Channels, rampChannel(t, "ch", "x", TypeS16, f, int(f)*120))
	}
	c.Header.RecordCount = c.recordCount()

	start, end := 31.7, 95.25
	out, err := c.Slice(start, end)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	for i, f := range freqs {
		lo := int(start * float64(f))
		hi := int(end * float64(f))
		want := hi - lo
		if got := int(out.Channels[i].SampleCount); got != want {
			t.Fatalf("freq %d: got %d samples, want %d", f, got, want)
		}
	}
}
