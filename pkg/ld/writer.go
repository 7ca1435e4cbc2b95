package ld

import "fmt"

// Marshal serializes the container into the canonical byte layout.
//
// Layout is a single deterministic pass: every offset is computed from the
// current buffer sizes before any byte is emitted, then header, catalog and
// data blocks are written in that one order. Every descriptor's chain and
// data pointers, its sample count, and the header's catalog/data pointers,
// channel count and record count are recomputed from the actual layout, so a
// container read from disk and marshalled unmodified reproduces its source
// bytes exactly.
func (c *Container) Marshal() ([]byte, error) {
	n := len(c.Channels)

	// Layout pass.
	catalogPtr := headerSize
	dataPtr := headerSize + n*descriptorSize
	blockPtrs := make([]int, n)
	total := dataPtr
	for i := range c.Channels {
		ch := &c.Channels[i]
		w := ch.Type.Width()
		if w == 0 {
			return nil, fmt.Errorf("%w: channel %q has code %d", ErrUnknownDataType, ch.ChannelName(), uint16(ch.Type))
		}
		if len(ch.Block)%w != 0 {
			return nil, fmt.Errorf("%w: channel %q block of %d bytes is not a multiple of sample width %d",
				ErrCorruptContainer, ch.ChannelName(), len(ch.Block), w)
		}
		blockPtrs[i] = total
		total += len(ch.Block)
	}

	out := make([]byte, total)

	h := c.Header
	h.Version = CurrentVersion
	h.CatalogPtr = uint32(catalogPtr)
	h.DataPtr = uint32(dataPtr)
	h.ChannelCount = uint32(n)

	var maxSamples uint32
	for i := range c.Channels {
		ch := &c.Channels[i]
		d := ch.Descriptor
		off := catalogPtr + i*descriptorSize

		d.PrevPtr = 0
		if i > 0 {
			d.PrevPtr = uint32(off - descriptorSize)
		}
		d.NextPtr = 0
		if i < n-1 {
			d.NextPtr = uint32(off + descriptorSize)
		}
		d.DataPtr = uint32(blockPtrs[i])
		d.SampleCount = uint32(len(ch.Block) / ch.Type.Width())
		if d.SampleCount > maxSamples {
			maxSamples = d.SampleCount
		}

		if !encodeDescriptor(out[off:off+descriptorSize], d) {
			return nil, ErrCorruptContainer
		}
		copy(out[blockPtrs[i]:blockPtrs[i]+len(ch.Block)], ch.Block)
	}

	h.RecordCount = maxSamples
	if !encodeHeader(out[:headerSize], h) {
		return nil, ErrCorruptContainer
	}
	return out, nil
}
