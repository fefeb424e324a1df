package sample_test

import (
	"bytes"
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
	_ "google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/protorec/protorec/example/gen/sample"
	"github.com/protorec/protorec/runtime"
)

func writeModel(t *testing.T, m sample.Everything) []byte {
	t.Helper()
	buf := runtime.Allocate(sample.EverythingWriter{}.Size(m))
	if err := (sample.EverythingWriter{}).Write(m, buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	raw := make([]byte, buf.Position())
	if _, err := buf.GetBytes(0, raw, 0, len(raw)); err != nil {
		t.Fatalf("GetBytes() error = %v", err)
	}
	return raw
}

// A message with every field at its proto3 default encodes to zero bytes,
// and parsing zero bytes yields the default instance.
func TestDefaultInstanceEncodesToZeroBytes(t *testing.T) {
	t.Parallel()

	if size := (sample.TimestampWriter{}).Size(sample.DefaultTimestamp); size != 0 {
		t.Errorf("default Timestamp sizes to %d bytes", size)
	}
	if size := (sample.EverythingWriter{}).Size(sample.DefaultEverything); size != 0 {
		t.Errorf("default Everything sizes to %d bytes", size)
	}

	parsed, err := sample.TimestampParser{}.Parse(runtime.WrapBuffer(nil))
	if err != nil {
		t.Fatalf("Parse() of zero bytes error = %v", err)
	}
	if !parsed.Equal(sample.DefaultTimestamp) {
		t.Errorf("zero bytes parsed to %+v", parsed)
	}
}

// An unset oneof writes nothing; a live branch carrying the scalar zero is
// written explicitly, because oneof presence is visible on the wire.
func TestOneOfPresenceOnTheWire(t *testing.T) {
	t.Parallel()

	unset := sample.NewEverythingBuilder().Build()
	if raw := writeModel(t, unset); len(raw) != 0 {
		t.Errorf("unset oneof wrote %d bytes", len(raw))
	}

	zeroBranch := sample.NewEverythingBuilder().Number(0).Build()
	raw := writeModel(t, zeroBranch)
	if len(raw) == 0 {
		t.Fatal("live zero branch wrote no bytes; presence is lost")
	}
	parsed, err := sample.EverythingParser{}.Parse(runtime.WrapBuffer(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !parsed.HasNumber() || parsed.Number() != 0 {
		t.Errorf("zero branch did not round trip: %+v", parsed.Choice)
	}
}

// A present wrapper with the default inner value writes an empty wrapper
// message, which stays distinguishable from an absent field.
func TestWrapperPresenceOnTheWire(t *testing.T) {
	t.Parallel()

	present := sample.NewEverythingBuilder().Memo(runtime.Ptr("")).Build()
	raw := writeModel(t, present)
	if len(raw) == 0 {
		t.Fatal("present empty wrapper wrote no bytes")
	}
	parsed, err := sample.EverythingParser{}.Parse(runtime.WrapBuffer(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if parsed.Memo == nil || *parsed.Memo != "" {
		t.Errorf("present empty wrapper parsed to %v", parsed.Memo)
	}
}

// The writer's output is byte-identical to the canonical encoding built
// directly with the reference wire package.
func TestWriterMatchesCanonicalBytes(t *testing.T) {
	t.Parallel()

	ts := sample.NewTimestampBuilder().Seconds(1686843909).Nanos(13).Build()
	model := sample.NewEverythingBuilder().
		Count(7).
		Delta(-3).
		Checksum(9).
		Ratio(2.5).
		Flag(true).
		Label("Dude").
		Payload(runtime.WrapBytes([]byte{1, 2})).
		Suit(sample.Suit_HEARTS).
		Created(&ts).
		Amounts(3, 270, -1).
		Memo(runtime.Ptr("ok")).
		Word("hi").
		Build()

	var want []byte
	want = protowire.AppendVarint(protowire.AppendTag(want, 1, protowire.VarintType), 7)
	want = protowire.AppendVarint(protowire.AppendTag(want, 2, protowire.VarintType), protowire.EncodeZigZag(-3))
	want = protowire.AppendFixed32(protowire.AppendTag(want, 3, protowire.Fixed32Type), 9)
	want = protowire.AppendFixed64(protowire.AppendTag(want, 4, protowire.Fixed64Type), math.Float64bits(2.5))
	want = protowire.AppendVarint(protowire.AppendTag(want, 5, protowire.VarintType), 1)
	want = protowire.AppendString(protowire.AppendTag(want, 6, protowire.BytesType), "Dude")
	want = protowire.AppendBytes(protowire.AppendTag(want, 7, protowire.BytesType), []byte{1, 2})
	want = protowire.AppendVarint(protowire.AppendTag(want, 8, protowire.VarintType), 1)

	var created []byte
	created = protowire.AppendVarint(protowire.AppendTag(created, 1, protowire.VarintType), 1686843909)
	created = protowire.AppendVarint(protowire.AppendTag(created, 2, protowire.VarintType), 13)
	want = protowire.AppendBytes(protowire.AppendTag(want, 9, protowire.BytesType), created)

	var packed []byte
	packed = protowire.AppendVarint(packed, 3)
	packed = protowire.AppendVarint(packed, 270)
	negOne := int64(-1)
	packed = protowire.AppendVarint(packed, uint64(negOne))
	want = protowire.AppendBytes(protowire.AppendTag(want, 10, protowire.BytesType), packed)

	var memo []byte
	memo = protowire.AppendString(protowire.AppendTag(memo, 1, protowire.BytesType), "ok")
	want = protowire.AppendBytes(protowire.AppendTag(want, 11, protowire.BytesType), memo)

	want = protowire.AppendString(protowire.AppendTag(want, 13, protowire.BytesType), "hi")

	got := writeModel(t, model)
	if !bytes.Equal(got, want) {
		t.Errorf("writer bytes differ from canonical encoding:\ngot:  %x\nwant: %x", got, want)
	}
}

// sampleFileDescriptor rebuilds the sample schema as a descriptor so the
// reference implementation can decode generated-writer bytes dynamically.
func sampleFileDescriptor(t *testing.T) protoreflect.FileDescriptor {
	t.Helper()

	opt := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	rep := descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	typ := func(k descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto_Type {
		return k.Enum()
	}

	fdp := &descriptorpb.FileDescriptorProto{
		Name:       proto.String("sample.proto"),
		Package:    proto.String("sample"),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"google/protobuf/wrappers.proto"},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Timestamp"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: proto.String("seconds"), Number: proto.Int32(1), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_INT64)},
					{Name: proto.String("nanos"), Number: proto.Int32(2), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_INT32)},
				},
			},
			{
				Name: proto.String("Everything"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: proto.String("count"), Number: proto.Int32(1), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_INT32)},
					{Name: proto.String("delta"), Number: proto.Int32(2), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_SINT64)},
					{Name: proto.String("checksum"), Number: proto.Int32(3), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_FIXED32)},
					{Name: proto.String("ratio"), Number: proto.Int32(4), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_DOUBLE)},
					{Name: proto.String("flag"), Number: proto.Int32(5), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_BOOL)},
					{Name: proto.String("label"), Number: proto.Int32(6), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_STRING)},
					{Name: proto.String("payload"), Number: proto.Int32(7), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_BYTES)},
					{Name: proto.String("suit"), Number: proto.Int32(8), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_ENUM), TypeName: proto.String(".sample.Suit")},
					{Name: proto.String("created"), Number: proto.Int32(9), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE), TypeName: proto.String(".sample.Timestamp")},
					{Name: proto.String("amounts"), Number: proto.Int32(10), Label: rep, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_INT64)},
					{Name: proto.String("memo"), Number: proto.Int32(11), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE), TypeName: proto.String(".google.protobuf.StringValue")},
					{Name: proto.String("number"), Number: proto.Int32(12), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_INT32), OneofIndex: proto.Int32(0)},
					{Name: proto.String("word"), Number: proto.Int32(13), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_STRING), OneofIndex: proto.Int32(0)},
					{Name: proto.String("moment"), Number: proto.Int32(14), Label: opt, Type: typ(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE), TypeName: proto.String(".sample.Timestamp"), OneofIndex: proto.Int32(0)},
				},
				OneofDecl: []*descriptorpb.OneofDescriptorProto{{Name: proto.String("choice")}},
			},
		},
		EnumType: []*descriptorpb.EnumDescriptorProto{
			{
				Name: proto.String("Suit"),
				Value: []*descriptorpb.EnumValueDescriptorProto{
					{Name: proto.String("SPADES"), Number: proto.Int32(0)},
					{Name: proto.String("HEARTS"), Number: proto.Int32(1)},
					{Name: proto.String("DIAMONDS"), Number: proto.Int32(2)},
					{Name: proto.String("CLUBS"), Number: proto.Int32(3)},
				},
			},
		},
	}

	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	if err != nil {
		t.Fatalf("protodesc.NewFile() error = %v", err)
	}
	return fd
}

// Every generated-writer output must decode under the reference protobuf
// implementation, and the reference re-encoding must parse back to an
// equal model.
func TestReferenceImplementationRoundTrip(t *testing.T) {
	t.Parallel()

	md := sampleFileDescriptor(t).Messages().ByName("Everything")
	if md == nil {
		t.Fatal("Everything descriptor not found")
	}

	for i, model := range createEverythingTestArguments() {
		raw := writeModel(t, model)

		dyn := dynamicpb.NewMessage(md)
		if err := proto.Unmarshal(raw, dyn); err != nil {
			t.Fatalf("case %d: reference Unmarshal() error = %v", i, err)
		}
		refBytes, err := proto.Marshal(dyn)
		if err != nil {
			t.Fatalf("case %d: reference Marshal() error = %v", i, err)
		}

		reparsed, err := sample.EverythingParser{}.Parse(runtime.WrapBuffer(refBytes))
		if err != nil {
			t.Fatalf("case %d: Parse() of reference bytes error = %v", i, err)
		}
		if !model.Equal(reparsed) {
			t.Errorf("case %d: reference re-encode mismatch:\nwrote:    %+v\nreparsed: %+v", i, model, reparsed)
		}
	}
}
