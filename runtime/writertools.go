package runtime

import "math"

// Field-level write helpers used by generated writers. Each helper writes
// tag + value in canonical proto3 form. skipDefault elides the field when
// the value equals the proto3 default; writers pass false for
// wrapper-optional fields and live oneof branches, which are written even
// when zero.

// WriteTag writes the varint tag for a field number and wire type.
func WriteTag(w WritableSequentialData, fieldNum int32, wireType int) error {
	return WriteVarint(w, uint64(fieldNum)<<3|uint64(wireType))
}

// SizeOfTag returns the encoded length of a field's tag.
func SizeOfTag(fieldNum int32, wireType int) int {
	return SizeOfVarint(uint64(fieldNum)<<3 | uint64(wireType))
}

func writeVarintField(w WritableSequentialData, fieldNum int32, v uint64, skipDefault bool) error {
	if skipDefault && v == 0 {
		return nil
	}
	if err := WriteTag(w, fieldNum, WireVarint); err != nil {
		return err
	}
	return WriteVarint(w, v)
}

func sizeOfVarintField(fieldNum int32, v uint64, skipDefault bool) int {
	if skipDefault && v == 0 {
		return 0
	}
	return SizeOfTag(fieldNum, WireVarint) + SizeOfVarint(v)
}

// WriteInt32Field writes an int32 field. Negative values sign-extend to ten
// bytes, per the wire format.
func WriteInt32Field(w WritableSequentialData, fieldNum, v int32, skipDefault bool) error {
	return writeVarintField(w, fieldNum, uint64(int64(v)), skipDefault)
}

// WriteUint32Field writes a uint32 field.
func WriteUint32Field(w WritableSequentialData, fieldNum int32, v uint32, skipDefault bool) error {
	return writeVarintField(w, fieldNum, uint64(v), skipDefault)
}

// WriteInt64Field writes an int64 field.
func WriteInt64Field(w WritableSequentialData, fieldNum int32, v int64, skipDefault bool) error {
	return writeVarintField(w, fieldNum, uint64(v), skipDefault)
}

// WriteUint64Field writes a uint64 field.
func WriteUint64Field(w WritableSequentialData, fieldNum int32, v uint64, skipDefault bool) error {
	return writeVarintField(w, fieldNum, v, skipDefault)
}

// WriteSint32Field writes a sint32 field with zig-zag encoding.
func WriteSint32Field(w WritableSequentialData, fieldNum, v int32, skipDefault bool) error {
	return writeVarintField(w, fieldNum, ZigZagEncode32(v), skipDefault)
}

// WriteSint64Field writes a sint64 field with zig-zag encoding.
func WriteSint64Field(w WritableSequentialData, fieldNum int32, v int64, skipDefault bool) error {
	return writeVarintField(w, fieldNum, ZigZagEncode64(v), skipDefault)
}

// WriteBoolField writes a bool field.
func WriteBoolField(w WritableSequentialData, fieldNum int32, v, skipDefault bool) error {
	var u uint64
	if v {
		u = 1
	}
	return writeVarintField(w, fieldNum, u, skipDefault)
}

// WriteEnumField writes an enum field by its number.
func WriteEnumField(w WritableSequentialData, fieldNum, v int32, skipDefault bool) error {
	return writeVarintField(w, fieldNum, uint64(int64(v)), skipDefault)
}

// WriteFixed32Field writes a fixed32 field.
func WriteFixed32Field(w WritableSequentialData, fieldNum int32, v uint32, skipDefault bool) error {
	if skipDefault && v == 0 {
		return nil
	}
	if err := WriteTag(w, fieldNum, WireFixed32); err != nil {
		return err
	}
	return WriteFixed32(w, v)
}

// WriteSfixed32Field writes an sfixed32 field.
func WriteSfixed32Field(w WritableSequentialData, fieldNum, v int32, skipDefault bool) error {
	return WriteFixed32Field(w, fieldNum, uint32(v), skipDefault)
}

// WriteFloatField writes a float field. A zero float is elided only when
// its bits are exactly +0.0, so -0.0 and NaN survive.
func WriteFloatField(w WritableSequentialData, fieldNum int32, v float32, skipDefault bool) error {
	return WriteFixed32Field(w, fieldNum, math.Float32bits(v), skipDefault)
}

// WriteFixed64Field writes a fixed64 field.
func WriteFixed64Field(w WritableSequentialData, fieldNum int32, v uint64, skipDefault bool) error {
	if skipDefault && v == 0 {
		return nil
	}
	if err := WriteTag(w, fieldNum, WireFixed64); err != nil {
		return err
	}
	return WriteFixed64(w, v)
}

// WriteSfixed64Field writes an sfixed64 field.
func WriteSfixed64Field(w WritableSequentialData, fieldNum int32, v int64, skipDefault bool) error {
	return WriteFixed64Field(w, fieldNum, uint64(v), skipDefault)
}

// WriteDoubleField writes a double field.
func WriteDoubleField(w WritableSequentialData, fieldNum int32, v float64, skipDefault bool) error {
	return WriteFixed64Field(w, fieldNum, math.Float64bits(v), skipDefault)
}

// WriteStringField writes a string field as length-prefixed UTF-8.
func WriteStringField(w WritableSequentialData, fieldNum int32, v string, skipDefault bool) error {
	if skipDefault && v == "" {
		return nil
	}
	if err := WriteTag(w, fieldNum, WireDelimited); err != nil {
		return err
	}
	if err := WriteVarint(w, uint64(Utf8Length(v))); err != nil {
		return err
	}
	return WriteUtf8(w, v)
}

// WriteBytesField writes a bytes field as a length-prefixed sequence.
func WriteBytesField(w WritableSequentialData, fieldNum int32, v Bytes, skipDefault bool) error {
	if skipDefault && v.Length() == 0 {
		return nil
	}
	if err := WriteTag(w, fieldNum, WireDelimited); err != nil {
		return err
	}
	if err := WriteVarint(w, uint64(v.Length())); err != nil {
		return err
	}
	_, err := w.WriteBytes(v.data)
	return err
}

// WriteMessageField writes tag + length prefix, then lets the caller write
// size bytes of message body. The size comes from the generated writer's
// pre-pass Size calculation.
func WriteMessageField(w WritableSequentialData, fieldNum int32, size int, body func(WritableSequentialData) error) error {
	if err := WriteTag(w, fieldNum, WireDelimited); err != nil {
		return err
	}
	if err := WriteVarint(w, uint64(size)); err != nil {
		return err
	}
	return body(w)
}

// Scalar field sizes. Each mirrors the corresponding Write*Field helper.

// SizeOfInt32Field returns the encoded size of an int32 field.
func SizeOfInt32Field(fieldNum, v int32, skipDefault bool) int {
	return sizeOfVarintField(fieldNum, uint64(int64(v)), skipDefault)
}

// SizeOfUint32Field returns the encoded size of a uint32 field.
func SizeOfUint32Field(fieldNum int32, v uint32, skipDefault bool) int {
	return sizeOfVarintField(fieldNum, uint64(v), skipDefault)
}

// SizeOfInt64Field returns the encoded size of an int64 field.
func SizeOfInt64Field(fieldNum int32, v int64, skipDefault bool) int {
	return sizeOfVarintField(fieldNum, uint64(v), skipDefault)
}

// SizeOfUint64Field returns the encoded size of a uint64 field.
func SizeOfUint64Field(fieldNum int32, v uint64, skipDefault bool) int {
	return sizeOfVarintField(fieldNum, v, skipDefault)
}

// SizeOfSint32Field returns the encoded size of a sint32 field.
func SizeOfSint32Field(fieldNum, v int32, skipDefault bool) int {
	return sizeOfVarintField(fieldNum, ZigZagEncode32(v), skipDefault)
}

// SizeOfSint64Field returns the encoded size of a sint64 field.
func SizeOfSint64Field(fieldNum int32, v int64, skipDefault bool) int {
	return sizeOfVarintField(fieldNum, ZigZagEncode64(v), skipDefault)
}

// SizeOfBoolField returns the encoded size of a bool field.
func SizeOfBoolField(fieldNum int32, v, skipDefault bool) int {
	var u uint64
	if v {
		u = 1
	}
	return sizeOfVarintField(fieldNum, u, skipDefault)
}

// SizeOfEnumField returns the encoded size of an enum field.
func SizeOfEnumField(fieldNum, v int32, skipDefault bool) int {
	return sizeOfVarintField(fieldNum, uint64(int64(v)), skipDefault)
}

// SizeOfFixed32Field returns the encoded size of any 4-byte fixed field.
func SizeOfFixed32Field(fieldNum int32, bits uint32, skipDefault bool) int {
	if skipDefault && bits == 0 {
		return 0
	}
	return SizeOfTag(fieldNum, WireFixed32) + 4
}

// SizeOfFixed64Field returns the encoded size of any 8-byte fixed field.
func SizeOfFixed64Field(fieldNum int32, bits uint64, skipDefault bool) int {
	if skipDefault && bits == 0 {
		return 0
	}
	return SizeOfTag(fieldNum, WireFixed64) + 8
}

// SizeOfFloatField returns the encoded size of a float field.
func SizeOfFloatField(fieldNum int32, v float32, skipDefault bool) int {
	return SizeOfFixed32Field(fieldNum, math.Float32bits(v), skipDefault)
}

// SizeOfDoubleField returns the encoded size of a double field.
func SizeOfDoubleField(fieldNum int32, v float64, skipDefault bool) int {
	return SizeOfFixed64Field(fieldNum, math.Float64bits(v), skipDefault)
}

// SizeOfStringField returns the encoded size of a string field.
func SizeOfStringField(fieldNum int32, v string, skipDefault bool) int {
	if skipDefault && v == "" {
		return 0
	}
	n := Utf8Length(v)
	return SizeOfTag(fieldNum, WireDelimited) + SizeOfVarint(uint64(n)) + n
}

// SizeOfBytesField returns the encoded size of a bytes field.
func SizeOfBytesField(fieldNum int32, v Bytes, skipDefault bool) int {
	if skipDefault && v.Length() == 0 {
		return 0
	}
	n := v.Length()
	return SizeOfTag(fieldNum, WireDelimited) + SizeOfVarint(uint64(n)) + n
}

// SizeOfMessageField returns tag + length prefix + body for a message field
// whose body measures size bytes.
func SizeOfMessageField(fieldNum int32, size int) int {
	return SizeOfTag(fieldNum, WireDelimited) + SizeOfVarint(uint64(size)) + size
}
