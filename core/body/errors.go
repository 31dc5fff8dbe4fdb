package body

import "errors"

var (
	// ErrDecompressorExists is returned when registering a second decompressor for a name.
	ErrDecompressorExists = errors.New("decompressor already registered")
	// ErrNilDecompressor is returned when registering a nil decompressor.
	ErrNilDecompressor = errors.New("decompressor is nil")
)
