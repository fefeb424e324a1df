package runtime

import (
	"fmt"
	"io"
	"math"
)

// Field-level read helpers used by generated parsers. Wire errors are
// returned to the caller of parse, never swallowed: ErrMalformedVarint for
// a varint that does not terminate, io.ErrUnexpectedEOF for truncation
// mid-field.

// ReadTag reads the next field tag and splits it into field number and
// wire type. Returns io.EOF at a clean end of input.
func ReadTag(r ReadableSequentialData) (fieldNum int32, wireType int, err error) {
	v, err := ReadVarint(r)
	if err != nil {
		return 0, 0, err
	}
	return int32(v >> 3), int(v & 7), nil
}

// ReadInt32 reads an int32 varint value.
func ReadInt32(r ReadableSequentialData) (int32, error) {
	v, err := ReadVarint(r)
	return int32(v), err
}

// ReadUint32 reads a uint32 varint value.
func ReadUint32(r ReadableSequentialData) (uint32, error) {
	v, err := ReadVarint(r)
	return uint32(v), err
}

// ReadInt64 reads an int64 varint value.
func ReadInt64(r ReadableSequentialData) (int64, error) {
	v, err := ReadVarint(r)
	return int64(v), err
}

// ReadUint64 reads a uint64 varint value.
func ReadUint64(r ReadableSequentialData) (uint64, error) {
	return ReadVarint(r)
}

// ReadSint32 reads a zig-zag encoded sint32 value.
func ReadSint32(r ReadableSequentialData) (int32, error) {
	v, err := ReadVarint(r)
	return ZigZagDecode32(v), err
}

// ReadSint64 reads a zig-zag encoded sint64 value.
func ReadSint64(r ReadableSequentialData) (int64, error) {
	v, err := ReadVarint(r)
	return ZigZagDecode64(v), err
}

// ReadBool reads a bool value. Any nonzero varint is true.
func ReadBool(r ReadableSequentialData) (bool, error) {
	v, err := ReadVarint(r)
	return v != 0, err
}

// ReadEnum reads an enum number.
func ReadEnum(r ReadableSequentialData) (int32, error) {
	v, err := ReadVarint(r)
	return int32(v), err
}

// ReadSfixed32 reads a little-endian sfixed32 value.
func ReadSfixed32(r ReadableSequentialData) (int32, error) {
	v, err := ReadFixed32(r)
	return int32(v), err
}

// ReadSfixed64 reads a little-endian sfixed64 value.
func ReadSfixed64(r ReadableSequentialData) (int64, error) {
	v, err := ReadFixed64(r)
	return int64(v), err
}

// ReadFloat reads a little-endian float value.
func ReadFloat(r ReadableSequentialData) (float32, error) {
	v, err := ReadFixed32(r)
	return math.Float32frombits(v), err
}

// ReadDouble reads a little-endian double value.
func ReadDouble(r ReadableSequentialData) (float64, error) {
	v, err := ReadFixed64(r)
	return math.Float64frombits(v), err
}

// ReadLength reads a length prefix and validates it against the remaining
// input, so a lying length surfaces as io.ErrUnexpectedEOF before any
// allocation happens.
func ReadLength(r ReadableSequentialData) (int, error) {
	v, err := ReadVarint(r)
	if err != nil {
		return 0, err
	}
	if v > uint64(r.Remaining()) {
		return 0, io.ErrUnexpectedEOF
	}
	return int(v), nil
}

// ReadStringField reads a length-prefixed UTF-8 string.
func ReadStringField(r ReadableSequentialData) (string, error) {
	n, err := ReadLength(r)
	if err != nil {
		return "", err
	}
	return ReadUtf8(r, n)
}

// ReadBytesField reads a length-prefixed byte sequence into an immutable
// Bytes.
func ReadBytesField(r ReadableSequentialData) (Bytes, error) {
	n, err := ReadLength(r)
	if err != nil {
		return Bytes{}, err
	}
	buf := make([]byte, n)
	if _, err := r.ReadBytes(buf); err != nil {
		return Bytes{}, err
	}
	return Bytes{data: buf}, nil
}

// ReadMessage reads a length-prefixed sub-message by clamping the limit to
// the message body, running the sub-parser, then restoring the limit. The
// sub-parser consumes up to its limit, so no bytes leak between messages.
func ReadMessage[T any](r ReadableSequentialData, parse func(ReadableSequentialData) (T, error)) (T, error) {
	var zero T
	n, err := ReadLength(r)
	if err != nil {
		return zero, err
	}
	oldLimit := r.Limit()
	r.SetLimit(r.Position() + n)
	v, err := parse(r)
	r.Skip(r.Remaining())
	r.SetLimit(oldLimit)
	if err != nil {
		return zero, err
	}
	return v, nil
}

// ReadWrapper reads the body of a google.protobuf wrapper message: the
// inner value lives in field 1, anything else is skipped. An empty body
// yields the inner type's default, which is how a present-but-default
// wrapper is encoded.
func ReadWrapper[T any](r ReadableSequentialData, readValue func(ReadableSequentialData) (T, error)) (T, error) {
	var v T
	for r.HasRemaining() {
		num, wireType, err := ReadTag(r)
		if err != nil {
			return v, err
		}
		if num == 1 {
			v, err = readValue(r)
		} else {
			err = SkipField(r, wireType)
		}
		if err != nil {
			return v, err
		}
	}
	return v, nil
}

// ReadWrapperField reads a length-prefixed wrapper message field.
func ReadWrapperField[T any](r ReadableSequentialData, readValue func(ReadableSequentialData) (T, error)) (T, error) {
	return ReadMessage(r, func(r ReadableSequentialData) (T, error) {
		return ReadWrapper(r, readValue)
	})
}

// ReadPackedVarint reads a packed varint-family payload as raw wire values.
// The caller narrows each value to the field's element type.
func ReadPackedVarint(r ReadableSequentialData) ([]uint64, error) {
	n, err := ReadLength(r)
	if err != nil {
		return nil, err
	}
	oldLimit := r.Limit()
	r.SetLimit(r.Position() + n)
	defer r.SetLimit(oldLimit)
	var vs []uint64
	for r.HasRemaining() {
		v, err := ReadVarint(r)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// ReadPackedFixed32 reads a packed fixed32-family payload.
func ReadPackedFixed32(r ReadableSequentialData) ([]uint32, error) {
	n, err := ReadLength(r)
	if err != nil {
		return nil, err
	}
	if n%4 != 0 {
		return nil, io.ErrUnexpectedEOF
	}
	vs := make([]uint32, 0, n/4)
	for i := 0; i < n/4; i++ {
		v, err := ReadFixed32(r)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// ReadPackedFixed64 reads a packed fixed64-family payload.
func ReadPackedFixed64(r ReadableSequentialData) ([]uint64, error) {
	n, err := ReadLength(r)
	if err != nil {
		return nil, err
	}
	if n%8 != 0 {
		return nil, io.ErrUnexpectedEOF
	}
	vs := make([]uint64, 0, n/8)
	for i := 0; i < n/8; i++ {
		v, err := ReadFixed64(r)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// SkipField reads and discards one field value of the given wire type.
// Unknown fields in generated parsers go through here.
func SkipField(r ReadableSequentialData, wireType int) error {
	switch wireType {
	case WireVarint:
		_, err := ReadVarint(r)
		return err
	case WireFixed64:
		if r.Skip(8) != 8 {
			return io.ErrUnexpectedEOF
		}
		return nil
	case WireDelimited:
		n, err := ReadLength(r)
		if err != nil {
			return err
		}
		if r.Skip(n) != n {
			return io.ErrUnexpectedEOF
		}
		return nil
	case WireFixed32:
		if r.Skip(4) != 4 {
			return io.ErrUnexpectedEOF
		}
		return nil
	default:
		return fmt.Errorf("unsupported wire type %d", wireType)
	}
}
