package ld

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Read parses a container byte stream. The input is never mutated and never
// retained: every channel block in the returned Container is a fresh copy.
//
// Read enforces the canonical layout in full. Pointers or block lengths past
// the end of the stream surface as ErrTruncated, blocks that intrude on an
// earlier region as ErrOverlappingRegions, a descriptor with an unsupported
// type code as ErrUnknownDataType, and any other structural violation
// (non-canonical pointers, broken catalog chain, gaps, trailing bytes, stale
// record count) as ErrCorruptContainer. This strictness is what makes the
// marshal round trip byte-exact over every accepted input.
func Read(data []byte) (*Container, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), headerSize)
	}
	if m := binary.LittleEndian.Uint32(data[0:4]); m != Magic {
		return nil, fmt.Errorf("%w: 0x%x", ErrInvalidMagic, m)
	}
	h, ok := decodeHeader(data[:headerSize])
	if !ok {
		return nil, ErrCorruptContainer
	}
	if h.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	n := int(h.ChannelCount)
	if h.CatalogPtr != headerSize {
		return nil, fmt.Errorf("%w: catalog pointer %d, want %d", ErrCorruptContainer, h.CatalogPtr, headerSize)
	}
	wantDataPtr := headerSize + n*descriptorSize
	if int(h.DataPtr) != wantDataPtr {
		return nil, fmt.Errorf("%w: data pointer %d, want %d", ErrCorruptContainer, h.DataPtr, wantDataPtr)
	}
	if wantDataPtr > len(data) {
		return nil, fmt.Errorf("%w: catalog ends at %d, file is %d bytes", ErrTruncated, wantDataPtr, len(data))
	}

	c := &Container{Header: h, Channels: make([]Channel, 0, n)}

	// Catalog pass. Descriptors are contiguous at CatalogPtr and chained with
	// prev/next pointers that must match their physical order.
	for i := 0; i < n; i++ {
		off := headerSize + i*descriptorSize
		d, ok := decodeDescriptor(data[off : off+descriptorSize])
		if !ok {
			return nil, ErrCorruptContainer
		}
		if d.Type.Width() == 0 {
			return nil, fmt.Errorf("%w: channel %d has code %d", ErrUnknownDataType, i, uint16(d.Type))
		}
		wantPrev := uint32(0)
		if i > 0 {
			wantPrev = uint32(off - descriptorSize)
		}
		wantNext := uint32(0)
		if i < n-1 {
			wantNext = uint32(off + descriptorSize)
		}
		if d.PrevPtr != wantPrev || d.NextPtr != wantNext {
			return nil, fmt.Errorf("%w: channel %d chain pointers (%d,%d), want (%d,%d)",
				ErrCorruptContainer, i, d.PrevPtr, d.NextPtr, wantPrev, wantNext)
		}
		c.Channels = append(c.Channels, Channel{Descriptor: d})
	}

	// Data pass. Blocks tile [DataPtr, EOF) exactly, in catalog order.
	cursor := wantDataPtr
	for i := range c.Channels {
		ch := &c.Channels[i]
		blockLen := ch.BlockLen()
		start := int(ch.DataPtr)
		end := start + blockLen
		if end > len(data) {
			return nil, fmt.Errorf("%w: channel %q block [%d,%d) past end of file (%d bytes)",
				ErrTruncated, ch.ChannelName(), start, end, len(data))
		}
		if start < cursor {
			return nil, fmt.Errorf("%w: channel %q block starts at %d inside preceding region ending at %d",
				ErrOverlappingRegions, ch.ChannelName(), start, cursor)
		}
		if start > cursor {
			return nil, fmt.Errorf("%w: %d-byte gap before channel %q block", ErrCorruptContainer, start-cursor, ch.ChannelName())
		}
		ch.Block = append([]byte(nil), data[start:end]...)
		cursor = end
	}
	if cursor != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes after data region", ErrCorruptContainer, len(data)-cursor)
	}
	if got := c.recordCount(); h.RecordCount != got {
		return nil, fmt.Errorf("%w: record count %d, densest channel has %d samples", ErrCorruptContainer, h.RecordCount, got)
	}
	return c, nil
}

// Open reads and parses the container at path. Where mmap is available the
// file is mapped read-only for the duration of the parse; Read copies every
// block, so the mapping is released before Open returns either way.
func Open(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := stat.Size()
	if size <= 0 || size > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: file size %d", ErrTruncated, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		c, parseErr := Read(data)
		_ = unix.Munmap(data)
		return c, parseErr
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data)
}
