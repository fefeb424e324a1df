package runtime

// Packed-encoding helpers for repeated scalar fields. Packed is the proto3
// default: one tag, one length, then the concatenated values. An empty
// slice writes nothing at all.

// WritePackedVarintField writes a varint-family repeated field. enc maps an
// element to its wire value (identity widening, zig-zag, bool bit).
func WritePackedVarintField[T any](w WritableSequentialData, fieldNum int32, vs []T, enc func(T) uint64) error {
	if len(vs) == 0 {
		return nil
	}
	var body int
	for _, v := range vs {
		body += SizeOfVarint(enc(v))
	}
	if err := WriteTag(w, fieldNum, WireDelimited); err != nil {
		return err
	}
	if err := WriteVarint(w, uint64(body)); err != nil {
		return err
	}
	for _, v := range vs {
		if err := WriteVarint(w, enc(v)); err != nil {
			return err
		}
	}
	return nil
}

// SizeOfPackedVarintField mirrors WritePackedVarintField.
func SizeOfPackedVarintField[T any](fieldNum int32, vs []T, enc func(T) uint64) int {
	if len(vs) == 0 {
		return 0
	}
	var body int
	for _, v := range vs {
		body += SizeOfVarint(enc(v))
	}
	return SizeOfTag(fieldNum, WireDelimited) + SizeOfVarint(uint64(body)) + body
}

// WritePackedFixed32Field writes a fixed32-family repeated field. bits maps
// an element to its 4-byte wire value.
func WritePackedFixed32Field[T any](w WritableSequentialData, fieldNum int32, vs []T, bits func(T) uint32) error {
	if len(vs) == 0 {
		return nil
	}
	if err := WriteTag(w, fieldNum, WireDelimited); err != nil {
		return err
	}
	if err := WriteVarint(w, uint64(4*len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := WriteFixed32(w, bits(v)); err != nil {
			return err
		}
	}
	return nil
}

// SizeOfPackedFixed32Field mirrors WritePackedFixed32Field.
func SizeOfPackedFixed32Field(fieldNum int32, count int) int {
	if count == 0 {
		return 0
	}
	body := 4 * count
	return SizeOfTag(fieldNum, WireDelimited) + SizeOfVarint(uint64(body)) + body
}

// WritePackedFixed64Field writes a fixed64-family repeated field. bits maps
// an element to its 8-byte wire value.
func WritePackedFixed64Field[T any](w WritableSequentialData, fieldNum int32, vs []T, bits func(T) uint64) error {
	if len(vs) == 0 {
		return nil
	}
	if err := WriteTag(w, fieldNum, WireDelimited); err != nil {
		return err
	}
	if err := WriteVarint(w, uint64(8*len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := WriteFixed64(w, bits(v)); err != nil {
			return err
		}
	}
	return nil
}

// SizeOfPackedFixed64Field mirrors WritePackedFixed64Field.
func SizeOfPackedFixed64Field(fieldNum int32, count int) int {
	if count == 0 {
		return 0
	}
	body := 8 * count
	return SizeOfTag(fieldNum, WireDelimited) + SizeOfVarint(uint64(body)) + body
}
