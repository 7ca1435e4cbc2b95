package ld

import (
	"bytes"
	"encoding/binary"
)

// Header is the fixed 512-byte region at the start of a container.
//
// CatalogPtr, DataPtr, ChannelCount and RecordCount reflect the file the
// header was read from; Marshal recomputes all four from the actual channel
// layout, so a stale value can never leak into an output file. Free-text
// fields keep their raw NUL-padded bytes so that a read-then-marshal round
// trip reproduces the source bytes exactly.
type Header struct {
	Version       uint32
	CatalogPtr    uint32
	DataPtr       uint32
	ChannelCount  uint32
	RecordCount   uint32
	DeviceSerial  uint32
	DeviceType    [8]byte
	DeviceVersion uint16
	Date          [16]byte
	Time          [16]byte
	Driver        [64]byte
	Vehicle       [64]byte
	Venue         [64]byte
	Comment       [64]byte

	// Reserved regions, preserved verbatim.
	reserved1 [2]byte
	reserved2 [184]byte
}

// Text accessors. Each returns the field up to the first NUL.

func (h *Header) DeviceTypeName() string { return cstr(h.DeviceType[:]) }
func (h *Header) DateText() string       { return cstr(h.Date[:]) }
func (h *Header) TimeText() string       { return cstr(h.Time[:]) }
func (h *Header) DriverName() string     { return cstr(h.Driver[:]) }
func (h *Header) VehicleID() string      { return cstr(h.Vehicle[:]) }
func (h *Header) VenueName() string      { return cstr(h.Venue[:]) }
func (h *Header) CommentText() string    { return cstr(h.Comment[:]) }

func (h *Header) SetDriver(s string)  { setPadded(h.Driver[:], s) }
func (h *Header) SetVehicle(s string) { setPadded(h.Vehicle[:], s) }
func (h *Header) SetVenue(s string)   { setPadded(h.Venue[:], s) }
func (h *Header) SetComment(s string) { setPadded(h.Comment[:], s) }

func decodeHeader(b []byte) (Header, bool) {
	if len(b) < headerSize {
		return Header{}, false
	}
	var h Header
	magic := binary.LittleEndian.Uint32(b[0:4])
	if magic != Magic {
		return Header{}, false
	}
	h.Version = binary.LittleEndian.Uint32(b[4:8])
	h.CatalogPtr = binary.LittleEndian.Uint32(b[8:12])
	h.DataPtr = binary.LittleEndian.Uint32(b[12:16])
	h.ChannelCount = binary.LittleEndian.Uint32(b[16:20])
	h.RecordCount = binary.LittleEndian.Uint32(b[20:24])
	h.DeviceSerial = binary.LittleEndian.Uint32(b[24:28])
	copy(h.DeviceType[:], b[28:36])
	h.DeviceVersion = binary.LittleEndian.Uint16(b[36:38])
	copy(h.reserved1[:], b[38:40])
	copy(h.Date[:], b[40:56])
	copy(h.Time[:], b[56:72])
	copy(h.Driver[:], b[72:136])
	copy(h.Vehicle[:], b[136:200])
	copy(h.Venue[:], b[200:264])
	copy(h.Comment[:], b[264:328])
	copy(h.reserved2[:], b[328:512])
	return h, true
}

func encodeHeader(dst []byte, h Header) bool {
	if len(dst) < headerSize {
		return false
	}
	binary.LittleEndian.PutUint32(dst[0:4], Magic)
	binary.LittleEndian.PutUint32(dst[4:8], h.Version)
	binary.LittleEndian.PutUint32(dst[8:12], h.CatalogPtr)
	binary.LittleEndian.PutUint32(dst[12:16], h.DataPtr)
	binary.LittleEndian.PutUint32(dst[16:20], h.ChannelCount)
	binary.LittleEndian.PutUint32(dst[20:24], h.RecordCount)
	binary.LittleEndian.PutUint32(dst[24:28], h.DeviceSerial)
	copy(dst[28:36], h.DeviceType[:])
	binary.LittleEndian.PutUint16(dst[36:38], h.DeviceVersion)
	copy(dst[38:40], h.reserved1[:])
	copy(dst[40:56], h.Date[:])
	copy(dst[56:72], h.Time[:])
	copy(dst[72:136], h.Driver[:])
	copy(dst[136:200], h.Vehicle[:])
	copy(dst[200:264], h.Venue[:])
	copy(dst[264:328], h.Comment[:])
	copy(dst[328:512], h.reserved2[:])
	return true
}

// cstr returns the text content of a NUL-padded field.
func cstr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// setPadded writes s into the fixed field, truncating if needed and zeroing
// the remainder. A full-width string leaves no terminating NUL, matching the
// on-disk convention.
func setPadded(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}
