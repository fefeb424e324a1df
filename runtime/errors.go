package runtime

import "errors"

// ErrOutOfBounds is returned when a read or write would cross a buffer
// limit. Bounds violations are errors, never silent truncations.
var ErrOutOfBounds = errors.New("buffer access out of bounds")

// ErrMalformedVarint is returned when a varint does not terminate within
// ten bytes.
var ErrMalformedVarint = errors.New("malformed varint")
