package runtime

import "encoding/json"

// Codec converts between a model value and its protobuf wire form. Each
// generated model exposes a package-level Codec wired to its generated
// parser and writer.
type Codec[T any] interface {
	// Parse decodes one message from the cursor, consuming up to its limit.
	Parse(r ReadableSequentialData) (T, error)

	// Write encodes the value in canonical proto3 form.
	Write(v T, w WritableSequentialData) error

	// Size returns the exact number of bytes Write will produce.
	Size(v T) int
}

type funcCodec[T any] struct {
	parse func(ReadableSequentialData) (T, error)
	write func(T, WritableSequentialData) error
	size  func(T) int
}

func (c funcCodec[T]) Parse(r ReadableSequentialData) (T, error) { return c.parse(r) }
func (c funcCodec[T]) Write(v T, w WritableSequentialData) error { return c.write(v, w) }
func (c funcCodec[T]) Size(v T) int                              { return c.size(v) }

// NewCodec assembles a Codec from a parse/write/size function triple.
func NewCodec[T any](
	parse func(ReadableSequentialData) (T, error),
	write func(T, WritableSequentialData) error,
	size func(T) int,
) Codec[T] {
	return funcCodec[T]{parse: parse, write: write, size: size}
}

// ParseBytes decodes one message from an immutable byte sequence.
func ParseBytes[T any](c Codec[T], b Bytes) (T, error) {
	return c.Parse(b.ToReader())
}

// WriteBytes encodes a value into a freshly sized immutable byte sequence.
func WriteBytes[T any](c Codec[T], v T) (Bytes, error) {
	buf := Allocate(c.Size(v))
	if err := c.Write(v, buf); err != nil {
		return Bytes{}, err
	}
	return buf.WrittenBytes(), nil
}

// JSONCodec reads and writes a model value in JSON form. Generated models
// expose a package-level JSONCodec next to the protobuf one.
type JSONCodec[T any] struct{}

// NewJSONCodec returns the JSON codec for T.
func NewJSONCodec[T any]() JSONCodec[T] {
	return JSONCodec[T]{}
}

// Marshal renders v as JSON.
func (JSONCodec[T]) Marshal(v T) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON into a T.
func (JSONCodec[T]) Unmarshal(data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
