package olink

import "errors"

var (
	// ErrUnsupportedFormat is returned by Encode/Decode for any Format
	// other than FormatJSON. Only JSON semantics are pinned down
	// bit-exactly by the protocol; the other enum values are reserved.
	ErrUnsupportedFormat = errors.New("olink: unsupported wire format")

	// ErrDecode wraps any failure to parse a raw frame into a Message.
	ErrDecode = errors.New("olink: decode failed")

	// ErrNoWriter is logged (not returned) whenever an outbound message
	// is produced with no write callback set. It is exported so callers
	// of BaseNode can match on it in tests.
	ErrNoWriter = errors.New("no writer set, can not write")
)
