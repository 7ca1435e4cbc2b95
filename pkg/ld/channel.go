package ld

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Descriptor is one fixed-size catalog record.
//
// PrevPtr, NextPtr and DataPtr reflect the file the descriptor was read from
// and are recomputed on Marshal. Scale and Offset convert a raw sample v to
// its physical value v*Scale + Offset.
type Descriptor struct {
	PrevPtr     uint32
	NextPtr     uint32
	DataPtr     uint32
	SampleCount uint32
	Type        TypeCode
	Frequency   uint32
	Scale       float32
	Offset      float32
	Name        [32]byte
	ShortName   [8]byte
	Unit        [12]byte

	reserved1 [2]byte
	reserved2 [44]byte
}

func (d *Descriptor) ChannelName() string   { return cstr(d.Name[:]) }
func (d *Descriptor) ShortLabel() string    { return cstr(d.ShortName[:]) }
func (d *Descriptor) UnitText() string      { return cstr(d.Unit[:]) }
func (d *Descriptor) SetName(s string)      { setPadded(d.Name[:], s) }
func (d *Descriptor) SetShortName(s string) { setPadded(d.ShortName[:], s) }
func (d *Descriptor) SetUnit(s string)      { setPadded(d.Unit[:], s) }

// BlockLen returns the byte length of the channel's data block.
func (d *Descriptor) BlockLen() int {
	return int(d.SampleCount) * d.Type.Width()
}

func decodeDescriptor(b []byte) (Descriptor, bool) {
	if len(b) < descriptorSize {
		return Descriptor{}, false
	}
	var d Descriptor
	d.PrevPtr = binary.LittleEndian.Uint32(b[0:4])
	d.NextPtr = binary.LittleEndian.Uint32(b[4:8])
	d.DataPtr = binary.LittleEndian.Uint32(b[8:12])
	d.SampleCount = binary.LittleEndian.Uint32(b[12:16])
	d.Type = TypeCode(binary.LittleEndian.Uint16(b[16:18]))
	copy(d.reserved1[:], b[18:20])
	d.Frequency = binary.LittleEndian.Uint32(b[20:24])
	d.Scale = math.Float32frombits(binary.LittleEndian.Uint32(b[24:28]))
	d.Offset = math.Float32frombits(binary.LittleEndian.Uint32(b[28:32]))
	copy(d.Name[:], b[32:64])
	copy(d.ShortName[:], b[64:72])
	copy(d.Unit[:], b[72:84])
	copy(d.reserved2[:], b[84:128])
	return d, true
}

func encodeDescriptor(dst []byte, d Descriptor) bool {
	if len(dst) < descriptorSize {
		return false
	}
	binary.LittleEndian.PutUint32(dst[0:4], d.PrevPtr)
	binary.LittleEndian.PutUint32(dst[4:8], d.NextPtr)
	binary.LittleEndian.PutUint32(dst[8:12], d.DataPtr)
	binary.LittleEndian.PutUint32(dst[12:16], d.SampleCount)
	binary.LittleEndian.PutUint16(dst[16:18], uint16(d.Type))
	copy(dst[18:20], d.reserved1[:])
	binary.LittleEndian.PutUint32(dst[20:24], d.Frequency)
	binary.LittleEndian.PutUint32(dst[24:28], math.Float32bits(d.Scale))
	binary.LittleEndian.PutUint32(dst[28:32], math.Float32bits(d.Offset))
	copy(dst[32:64], d.Name[:])
	copy(dst[64:72], d.ShortName[:])
	copy(dst[72:84], d.Unit[:])
	copy(dst[84:128], d.reserved2[:])
	return true
}

// Channel pairs a descriptor with its raw sample block. The block is owned by
// the containing Container and holds SampleCount samples of the descriptor's
// type, sample i covering elapsed time i/Frequency seconds.
type Channel struct {
	Descriptor
	Block []byte
}

// RawValue returns sample i as read from the block, before scaling.
func (c *Channel) RawValue(i int) (float64, error) {
	w := c.Type.Width()
	if w == 0 {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownDataType, uint16(c.Type))
	}
	off := i * w
	if i < 0 || off+w > len(c.Block) {
		return 0, fmt.Errorf("ld: sample %d out of range (channel %q has %d samples)",
			i, c.ChannelName(), c.SampleCount)
	}
	b := c.Block[off : off+w]
	switch c.Type {
	case TypeS16:
		return float64(int16(binary.LittleEndian.Uint16(b))), nil
	case TypeU16:
		return float64(binary.LittleEndian.Uint16(b)), nil
	case TypeS32:
		return float64(int32(binary.LittleEndian.Uint32(b))), nil
	case TypeU32:
		return float64(binary.LittleEndian.Uint32(b)), nil
	case TypeF32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	case TypeF64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	default:
		return 0, fmt.Errorf("%w: code %d", ErrUnknownDataType, uint16(c.Type))
	}
}

// Value returns sample i converted to physical units.
func (c *Channel) Value(i int) (float64, error) {
	raw, err := c.RawValue(i)
	if err != nil {
		return 0, err
	}
	return raw*float64(c.Scale) + float64(c.Offset), nil
}
