package runtime

import (
	"encoding/binary"
	"io"
)

// Protobuf wire types.
const (
	WireVarint    = 0
	WireFixed64   = 1
	WireDelimited = 2
	WireFixed32   = 5
)

const maxVarintBytes = 10

// ReadVarint reads a base-128 varint. Returns ErrMalformedVarint when the
// continuation bit never clears within ten bytes, io.EOF when the cursor is
// already exhausted and io.ErrUnexpectedEOF when it runs dry mid-value.
func ReadVarint(r ReadableSequentialData) (uint64, error) {
	var v uint64
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i > 0 && err == io.EOF {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		v |= uint64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, ErrMalformedVarint
}

// WriteVarint writes v as a base-128 varint.
func WriteVarint(w WritableSequentialData, v uint64) error {
	for v >= 0x80 {
		if err := w.WriteByte(byte(v) | 0x80); err != nil {
			return err
		}
		v >>= 7
	}
	return w.WriteByte(byte(v))
}

// SizeOfVarint returns the encoded length of v, 1 to 10 bytes.
func SizeOfVarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// ZigZagEncode32 maps a signed 32-bit value onto the unsigned zig-zag
// spiral: 0, -1, 1, -2, ...
func ZigZagEncode32(v int32) uint64 {
	return uint64(uint32(v<<1) ^ uint32(v>>31))
}

// ZigZagDecode32 undoes ZigZagEncode32.
func ZigZagDecode32(v uint64) int32 {
	u := uint32(v)
	return int32(u>>1) ^ -int32(u&1)
}

// ZigZagEncode64 maps a signed 64-bit value onto the unsigned zig-zag
// spiral.
func ZigZagEncode64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// ZigZagDecode64 undoes ZigZagEncode64.
func ZigZagDecode64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// ReadFixed32 reads a little-endian 32-bit value.
func ReadFixed32(r ReadableSequentialData) (uint32, error) {
	var buf [4]byte
	if _, err := r.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteFixed32 writes v little-endian.
func WriteFixed32(w WritableSequentialData, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.WriteBytes(buf[:])
	return err
}

// ReadFixed64 reads a little-endian 64-bit value.
func ReadFixed64(r ReadableSequentialData) (uint64, error) {
	var buf [8]byte
	if _, err := r.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteFixed64 writes v little-endian.
func WriteFixed64(w WritableSequentialData, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.WriteBytes(buf[:])
	return err
}
