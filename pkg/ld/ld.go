// Package ld implements the binary telemetry container format.
//
// A container holds a fixed 512-byte header, a catalog of fixed-size channel
// descriptors, and one raw sample block per channel. All multi-byte fields
// are little-endian and all pointers are byte offsets from the start of the
// file. The layout is canonical: header, catalog, then data blocks in catalog
// order with no gaps, so an unmodified read-then-marshal round trip is
// byte-identical.
package ld

// Format constants. These are the on-disk contract and must never change.
const (
	// Magic is the marker value at offset 0 of every container.
	Magic uint32 = 0x40

	// CurrentVersion is the single structural layout this package supports.
	CurrentVersion uint32 = 1

	headerSize     = 512
	descriptorSize = 128
)

// TypeCode identifies the element encoding of a channel's sample block.
// Keep these stable forever; add new values only.
type TypeCode uint16

const (
	TypeInvalid TypeCode = iota
	TypeS16
	TypeU16
	TypeS32
	TypeU32
	TypeF32
	TypeF64
)

// Width returns the byte width of one sample, or 0 for an unknown code.
func (t TypeCode) Width() int {
	switch t {
	case TypeS16, TypeU16:
		return 2
	case TypeS32, TypeU32, TypeF32:
		return 4
	case TypeF64:
		return 8
	default:
		return 0
	}
}

func (t TypeCode) String() string {
	switch t {
	case TypeS16:
		return "s16"
	case TypeU16:
		return "u16"
	case TypeS32:
		return "s32"
	case TypeU32:
		return "u32"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	default:
		return "invalid"
	}
}
