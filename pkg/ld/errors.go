package ld

import "errors"

var (
	ErrInvalidMagic       = errors.New("ld: invalid container magic")
	ErrUnsupportedVersion = errors.New("ld: unsupported container version")
	ErrTruncated          = errors.New("ld: truncated file")
	ErrUnknownDataType    = errors.New("ld: unknown data type")
	ErrOverlappingRegions = errors.New("ld: overlapping regions")
	ErrCorruptContainer   = errors.New("ld: corrupt container")
	ErrInvalidWindow      = errors.New("ld: invalid time window")
)
