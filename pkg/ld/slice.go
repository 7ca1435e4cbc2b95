package ld

import (
	"fmt"
	"math"
)

// Slice returns a new container covering only samples whose nominal time
// falls in [start, end) seconds from session start. The receiver is never
// mutated.
//
// The index range is computed per channel, floor(t*frequency) clamped to the
// channel's bounds, because channels at different rates must each pick the
// range that covers the same wall-clock window. A channel whose window is
// shorter than one sample period keeps its descriptor with an empty block;
// downstream tools expect a stable channel list.
func (c *Container) Slice(start, end float64) (*Container, error) {
	if end <= start {
		return nil, fmt.Errorf("%w: [%v, %v)", ErrInvalidWindow, start, end)
	}

	out := &Container{
		Header:   c.Header,
		Channels: make([]Channel, 0, len(c.Channels)),
	}
	for i := range c.Channels {
		ch := &c.Channels[i]
		w := ch.Type.Width()
		if w == 0 {
			return nil, fmt.Errorf("%w: channel %q has code %d", ErrUnknownDataType, ch.ChannelName(), uint16(ch.Type))
		}

		n := int(ch.SampleCount)
		lo := clampIndex(start, ch.Frequency, n)
		hi := clampIndex(end, ch.Frequency, n)
		if hi < lo {
			hi = lo
		}

		d := ch.Descriptor
		d.SampleCount = uint32(hi - lo)
		block := append([]byte(nil), ch.Block[lo*w:hi*w]...)
		out.Channels = append(out.Channels, Channel{Descriptor: d, Block: block})
	}
	out.Header.RecordCount = out.recordCount()
	return out, nil
}

// clampIndex maps a time in seconds to a sample index at the given rate,
// clamped to [0, n].
func clampIndex(t float64, freq uint32, n int) int {
	i := int(math.Floor(t * float64(freq)))
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
