package runtime

import (
	"bytes"
	"encoding/binary"
	"io"
)

// BufferedData is a mutable buffer implementing both the readable and the
// writable cursor over a single backing array, plus absolute-offset random
// access. A BufferedData is exclusively owned by its current user; it is
// not safe for concurrent use.
//
// The usual lifecycle is: Allocate, write, Flip, read.
type BufferedData struct {
	data     []byte
	position int
	limit    int
}

// Allocate returns a buffer of the given capacity with position 0 and the
// limit at capacity, ready for writing.
func Allocate(n int) *BufferedData {
	return &BufferedData{data: make([]byte, n), limit: n}
}

// WrapBuffer wraps data for reading: position 0, limit len(data).
// Ownership of data transfers to the buffer.
func WrapBuffer(data []byte) *BufferedData {
	return &BufferedData{data: data, limit: len(data)}
}

// Capacity returns the size of the backing array.
func (d *BufferedData) Capacity() int {
	return len(d.data)
}

// Position returns the next index to be read or written.
func (d *BufferedData) Position() int {
	return d.position
}

// Limit returns the first index that may not be read or written.
func (d *BufferedData) Limit() int {
	return d.limit
}

// SetLimit moves the limit, clamped to [position, capacity].
func (d *BufferedData) SetLimit(limit int) {
	switch {
	case limit < d.position:
		d.limit = d.position
	case limit > len(d.data):
		d.limit = len(d.data)
	default:
		d.limit = limit
	}
}

// Remaining returns limit - position.
func (d *BufferedData) Remaining() int {
	return d.limit - d.position
}

// HasRemaining reports whether at least one byte can be read or written.
func (d *BufferedData) HasRemaining() bool {
	return d.position < d.limit
}

// Skip advances the position by up to n bytes, clamped to [0, remaining],
// and returns the number of bytes skipped.
func (d *BufferedData) Skip(n int) int {
	if n < 0 {
		n = 0
	}
	if r := d.Remaining(); n > r {
		n = r
	}
	d.position += n
	return n
}

// Flip swaps the buffer from write mode to read mode: the limit moves to
// the current position and the position resets to zero.
func (d *BufferedData) Flip() *BufferedData {
	d.limit = d.position
	d.position = 0
	return d
}

// Reset rewinds the buffer for rewriting: position 0, limit at capacity.
func (d *BufferedData) Reset() *BufferedData {
	d.position = 0
	d.limit = len(d.data)
	return d
}

// ReadByte reads the byte at the current position. Returns io.EOF when no
// bytes remain.
func (d *BufferedData) ReadByte() (byte, error) {
	if d.position >= d.limit {
		return 0, io.EOF
	}
	b := d.data[d.position]
	d.position++
	return b, nil
}

// ReadBytes fills dst completely and returns len(dst). Returns
// io.ErrUnexpectedEOF without advancing when fewer bytes remain.
func (d *BufferedData) ReadBytes(dst []byte) (int, error) {
	if len(dst) > d.Remaining() {
		return 0, io.ErrUnexpectedEOF
	}
	n := copy(dst, d.data[d.position:d.limit])
	d.position += n
	return n, nil
}

// WriteByte writes one byte at the current position. Returns ErrOutOfBounds
// when the limit has been reached.
func (d *BufferedData) WriteByte(b byte) error {
	if d.position >= d.limit {
		return ErrOutOfBounds
	}
	d.data[d.position] = b
	d.position++
	return nil
}

// WriteBytes writes all of src. Returns ErrOutOfBounds without advancing
// when src does not fit before the limit.
func (d *BufferedData) WriteBytes(src []byte) (int, error) {
	if len(src) > d.Remaining() {
		return 0, ErrOutOfBounds
	}
	n := copy(d.data[d.position:d.limit], src)
	d.position += n
	return n, nil
}

// Length returns the limit: random access addresses [0, limit), which after
// a Flip is exactly the written region.
func (d *BufferedData) Length() int {
	return d.limit
}

// GetByte returns the byte at offset. Panics when offset is at or past the
// limit.
func (d *BufferedData) GetByte(offset int) byte {
	if offset >= d.limit {
		panic(ErrOutOfBounds)
	}
	return d.data[offset]
}

// GetBytes copies min(length, Length()-srcOffset) bytes into dst at
// dstOffset without touching the position. Returns ErrOutOfBounds when
// dstOffset+length exceeds len(dst).
func (d *BufferedData) GetBytes(srcOffset int, dst []byte, dstOffset, length int) (int, error) {
	if srcOffset < 0 || dstOffset < 0 || length < 0 || srcOffset > d.limit {
		return 0, ErrOutOfBounds
	}
	if dstOffset+length > len(dst) {
		return 0, ErrOutOfBounds
	}
	n := copy(dst[dstOffset:dstOffset+length], d.data[srcOffset:d.limit])
	return n, nil
}

// GetInt returns the big-endian 32-bit value at offset.
func (d *BufferedData) GetInt(offset int) int32 {
	if offset+4 > d.limit {
		panic(ErrOutOfBounds)
	}
	return int32(binary.BigEndian.Uint32(d.data[offset:]))
}

// GetLong returns the big-endian 64-bit value at offset.
func (d *BufferedData) GetLong(offset int) int64 {
	if offset+8 > d.limit {
		panic(ErrOutOfBounds)
	}
	return int64(binary.BigEndian.Uint64(d.data[offset:]))
}

// Slice returns an immutable zero-copy view of length bytes at offset. The
// view shares the backing array; mutating the buffer afterwards is visible
// through it, so slice only buffers you own.
func (d *BufferedData) Slice(offset, length int) RandomAccessData {
	if offset < 0 || length < 0 || offset+length > d.limit {
		panic(ErrOutOfBounds)
	}
	return Bytes{data: d.data[offset : offset+length]}
}

// AsUTF8String decodes [0, limit) as UTF-8.
func (d *BufferedData) AsUTF8String() string {
	return string(d.data[:d.limit])
}

// MatchesPrefix reports whether [0, limit) starts with exactly prefix.
func (d *BufferedData) MatchesPrefix(prefix []byte) bool {
	return bytes.HasPrefix(d.data[:d.limit], prefix)
}

// Contains reports whether needle occurs at offset within [0, limit).
func (d *BufferedData) Contains(offset int, needle []byte) bool {
	if offset < 0 || offset+len(needle) > d.limit {
		return false
	}
	return bytes.Equal(d.data[offset:offset+len(needle)], needle)
}

// WrittenBytes copies [0, position) into an immutable Bytes. Useful after
// writing without flipping.
func (d *BufferedData) WrittenBytes() Bytes {
	return CopyBytes(d.data[:d.position])
}
