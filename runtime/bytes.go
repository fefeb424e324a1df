package runtime

import (
	"bytes"
	"encoding/binary"
)

// Bytes is an immutable, shareable byte sequence. Slices of a Bytes share
// the underlying storage without copying, so a Bytes may be handed across
// goroutines freely.
//
// The zero value is an empty sequence.
type Bytes struct {
	data []byte
}

// WrapBytes wraps data without copying. The caller must not mutate data
// afterwards; ownership transfers to the returned Bytes.
func WrapBytes(data []byte) Bytes {
	return Bytes{data: data}
}

// CopyBytes copies data into a freshly owned Bytes.
func CopyBytes(data []byte) Bytes {
	dup := make([]byte, len(data))
	copy(dup, data)
	return Bytes{data: dup}
}

// EmptyBytes is the canonical zero-length sequence.
var EmptyBytes = Bytes{}

// Length returns the number of bytes.
func (b Bytes) Length() int {
	return len(b.data)
}

// GetByte returns the byte at offset. Panics when offset is out of range.
func (b Bytes) GetByte(offset int) byte {
	return b.data[offset]
}

// GetBytes copies min(length, Length()-srcOffset) bytes starting at
// srcOffset into dst starting at dstOffset and returns the count copied.
// Returns ErrOutOfBounds when dstOffset+length exceeds len(dst).
func (b Bytes) GetBytes(srcOffset int, dst []byte, dstOffset, length int) (int, error) {
	if srcOffset < 0 || dstOffset < 0 || length < 0 || srcOffset > len(b.data) {
		return 0, ErrOutOfBounds
	}
	if dstOffset+length > len(dst) {
		return 0, ErrOutOfBounds
	}
	n := copy(dst[dstOffset:dstOffset+length], b.data[srcOffset:])
	return n, nil
}

// GetInt returns the big-endian 32-bit value at offset.
func (b Bytes) GetInt(offset int) int32 {
	return int32(binary.BigEndian.Uint32(b.data[offset:]))
}

// GetLong returns the big-endian 64-bit value at offset.
func (b Bytes) GetLong(offset int) int64 {
	return int64(binary.BigEndian.Uint64(b.data[offset:]))
}

// Slice returns a zero-copy view of length bytes starting at offset. The
// view shares storage with b. Panics when the range is out of bounds.
func (b Bytes) Slice(offset, length int) RandomAccessData {
	return Bytes{data: b.data[offset : offset+length]}
}

// AsUTF8String decodes the full range as UTF-8. Go strings carry raw bytes,
// so the decode is a copy.
func (b Bytes) AsUTF8String() string {
	return string(b.data)
}

// MatchesPrefix reports whether b starts with exactly the bytes of prefix.
// An empty prefix matches anything, including empty data.
func (b Bytes) MatchesPrefix(prefix []byte) bool {
	return bytes.HasPrefix(b.data, prefix)
}

// Contains reports whether needle occurs at offset, entirely within the
// current length.
func (b Bytes) Contains(offset int, needle []byte) bool {
	if offset < 0 || offset+len(needle) > len(b.data) {
		return false
	}
	return bytes.Equal(b.data[offset:offset+len(needle)], needle)
}

// Equal reports whether two sequences hold the same bytes.
func (b Bytes) Equal(other Bytes) bool {
	return bytes.Equal(b.data, other.data)
}

// ToReader returns a readable cursor over the full sequence. The cursor
// shares storage with b and must not be written through.
func (b Bytes) ToReader() ReadableSequentialData {
	return &BufferedData{data: b.data, limit: len(b.data)}
}

// HashCode mixes every byte with the polynomial-31 scheme the generated
// models use for their byte fields.
func (b Bytes) HashCode() int32 {
	var h int32 = 1
	for _, v := range b.data {
		h = 31*h + int32(v)
	}
	return h
}
