package gen

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/protorec/protorec/parser"
	"github.com/protorec/protorec/schema"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalized collapses whitespace so assertions survive gofmt's column
// alignment.
func normalized(content []byte) string {
	return whitespaceRun.ReplaceAllString(string(content), " ")
}

const sampleSrc = `syntax = "proto3";
package sample;

// An instant in consensus time.
message Timestamp {
    // Seconds since the epoch
    int64 seconds = 1;
    int32 nanos = 2;
}

message Everything {
    int32 count = 1;
    sint64 delta = 2;
    fixed32 checksum = 3;
    double ratio = 4;
    bool flag = 5;
    string label = 6;
    bytes payload = 7;
    Suit suit = 8;
    Timestamp created = 9;
    repeated int64 amounts = 10;
    google.protobuf.StringValue memo = 11;

    oneof choice {
        int32 number = 12;
        string word = 13;
        Timestamp moment = 14;
    }
}

enum Suit {
    SPADES = 0;
    HEARTS = 1;
}
`

func buildSchema(t *testing.T, src, bucket string) (*Config, *schema.File) {
	t.Helper()
	pf, err := parser.Parse("sample.proto", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f, err := schema.BuildFile(pf, bucket)
	if err != nil {
		t.Fatalf("BuildFile() error = %v", err)
	}
	base := "github.com/example/gen/models"
	lookup, err := schema.NewLookup(schema.Config{
		ModelBase:     base,
		ParserBase:    base,
		WriterBase:    base,
		TestBase:      base,
		CodecBase:     base,
		JSONCodecBase: base,
	}, []*schema.File{f})
	if err != nil {
		t.Fatalf("NewLookup() error = %v", err)
	}
	return &Config{Lookup: lookup, CycleBreak: DefaultCycleBreak()}, f
}

func mustContain(t *testing.T, content []byte, wants ...string) {
	t.Helper()
	haystack := normalized(content)
	for _, want := range wants {
		if !strings.Contains(haystack, whitespaceRun.ReplaceAllString(want, " ")) {
			t.Errorf("generated code missing %q", want)
		}
	}
}

func findMessage(t *testing.T, f *schema.File, name string) *schema.Message {
	t.Helper()
	for _, m := range f.Messages {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("message %s not found", name)
	return nil
}

func TestModelEmitter_Everything(t *testing.T) {
	t.Parallel()

	cfg, f := buildSchema(t, sampleSrc, "sample")
	artifact, err := NewModelEmitter(cfg).Emit(findMessage(t, f, "Everything"))
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if artifact.Package != "github.com/example/gen/models/sample" {
		t.Errorf("Package = %q", artifact.Package)
	}
	if artifact.Name != "Everything.go" {
		t.Errorf("Name = %q", artifact.Name)
	}

	mustContain(t, artifact.Content,
		"package sample",
		"type Everything struct {",
		"Count int32",
		"Payload runtime.Bytes",
		"Created *Timestamp",
		"Amounts []int64",
		"Memo *string",
		"Choice runtime.OneOf[Everything_ChoiceOneOfType]",
		"type Everything_ChoiceOneOfType int32",
		"Everything_ChoiceOneOfType_UNSET Everything_ChoiceOneOfType = 0",
		"Everything_ChoiceOneOfType_NUMBER Everything_ChoiceOneOfType = 12",
		"Everything_ChoiceOneOfType_WORD Everything_ChoiceOneOfType = 13",
		"var EverythingProtobuf = runtime.NewCodec(EverythingParser{}.Parse, EverythingWriter{}.Write, EverythingWriter{}.Size)",
		"var EverythingJSON = runtime.NewJSONCodec[Everything]()",
		"var DefaultEverything = NewEverythingBuilder().Build()",
		"func (m Everything) Equal(o Everything) bool {",
		"func (m Everything) HashCode() int32 {",
		"runtime.FinalizeHash(h)",
		"func (m Everything) HasCreated() bool {",
		"func (m Everything) CreatedOrElse(defaultValue Timestamp) Timestamp {",
		"func (m Everything) MustCreated() Timestamp {",
		"func (m Everything) IfCreated(f func(Timestamp)) {",
		"func (m Everything) Number() int32 {",
		"func (m Everything) HasNumber() bool {",
		"func (m Everything) NumberOrElse(defaultValue int32) int32 {",
		"func (m Everything) MustNumber() int32 {",
		"type EverythingBuilder struct {",
		"func NewEverythingBuilder() *EverythingBuilder {",
		"func (b *EverythingBuilder) Amounts(values ...int64) *EverythingBuilder {",
		"func (b *EverythingBuilder) CreatedBuilder(sub *TimestampBuilder) *EverythingBuilder {",
		"func (b *EverythingBuilder) Build() Everything {",
		"func (m Everything) CopyBuilder() *EverythingBuilder {",
	)
}

func TestModelEmitter_DocCommentsSurvive(t *testing.T) {
	t.Parallel()

	cfg, f := buildSchema(t, sampleSrc, "sample")
	artifact, err := NewModelEmitter(cfg).Emit(findMessage(t, f, "Timestamp"))
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	mustContain(t, artifact.Content,
		"// An instant in consensus time.",
		"// Seconds since the epoch",
	)
}

func TestModelEmitter_Deterministic(t *testing.T) {
	t.Parallel()

	cfg, f := buildSchema(t, sampleSrc, "sample")
	msg := findMessage(t, f, "Everything")
	first, err := NewModelEmitter(cfg).Emit(msg)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	second, err := NewModelEmitter(cfg).Emit(msg)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if !bytes.Equal(first.Content, second.Content) {
		t.Error("two emissions of the same message differ")
	}
}

func TestParserEmitter_Everything(t *testing.T) {
	t.Parallel()

	cfg, f := buildSchema(t, sampleSrc, "sample")
	artifact, err := NewParserEmitter(cfg).Emit(findMessage(t, f, "Everything"))
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if artifact.Name != "EverythingParser.go" {
		t.Errorf("Name = %q", artifact.Name)
	}
	mustContain(t, artifact.Content,
		"type EverythingParser struct{}",
		"func (EverythingParser) Parse(r runtime.ReadableSequentialData) (Everything, error) {",
		"b := NewEverythingBuilder()",
		"for r.HasRemaining() {",
		"runtime.ReadTag(r)",
		"case 1: // count",
		"runtime.ReadMessage(r, TimestampParser{}.Parse)",
		"case 10: // amounts",
		"runtime.ReadPackedVarint(r)",
		"runtime.ReadWrapperField(r, runtime.ReadStringField)",
		"runtime.SkipField(r, wireType)",
		"return b.Build(), nil",
	)
}

func TestWriterEmitter_Everything(t *testing.T) {
	t.Parallel()

	cfg, f := buildSchema(t, sampleSrc, "sample")
	artifact, err := NewWriterEmitter(cfg).Emit(findMessage(t, f, "Everything"))
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if artifact.Name != "EverythingWriter.go" {
		t.Errorf("Name = %q", artifact.Name)
	}
	content := normalized(artifact.Content)
	mustContain(t, artifact.Content,
		"type EverythingWriter struct{}",
		"func (wr EverythingWriter) Write(m Everything, w runtime.WritableSequentialData) error {",
		"func (wr EverythingWriter) Size(m Everything) int {",
		"runtime.WriteInt32Field(w, 1, m.Count, true)",
		"runtime.WriteSint64Field(w, 2, m.Delta, true)",
		"runtime.WritePackedVarintField(w, 10, m.Amounts,",
		"runtime.WriteMessageField(w, 9, TimestampWriter{}.Size((*m.Created)),",
		"runtime.SizeOfMessageField(9, TimestampWriter{}.Size(*m.Created))",
	)

	// a present wrapper stays a nested message on the wire, and live oneof
	// branches are written even at their defaults
	mustContain(t, artifact.Content,
		"runtime.WriteMessageField(w, 11, runtime.SizeOfStringField(1, *m.Memo, true),",
		"runtime.WriteStringField(w, 1, *m.Memo, true)",
		"runtime.WriteInt32Field(w, 12, m.Number(), false)",
	)

	// ascending field-number order in Write
	if strings.Index(content, "WriteInt32Field(w, 1,") > strings.Index(content, "WriteSint64Field(w, 2,") {
		t.Error("fields are not written in ascending number order")
	}
}

func TestTestEmitter_Everything(t *testing.T) {
	t.Parallel()

	cfg, f := buildSchema(t, sampleSrc, "sample")
	artifact, err := NewTestEmitter(cfg).Emit(findMessage(t, f, "Everything"))
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if artifact.Name != "Everything_test.go" {
		t.Errorf("Name = %q", artifact.Name)
	}
	mustContain(t, artifact.Content,
		"package sample_test",
		"func createEverythingTestArguments() []sample.Everything {",
		"[]int32{math.MinInt32, -42, -21, 0, 21, 42, math.MaxInt32}",
		`[]string{"", "Dude"}`,
		"createTimestampTestArguments()",
		"runtime.NewOneOf[sample.Everything_ChoiceOneOfType](sample.Everything_ChoiceOneOfType_UNSET, nil)",
		"min(i, len(",
		"func TestEverythingAgainstProtoC(t *testing.T) {",
		"if !model.Equal(parsed) {",
		"if model.HashCode() != parsed.HashCode() {",
	)

	// without a Go import path override there is no reference section
	if strings.Contains(string(artifact.Content), "proto.Unmarshal") {
		t.Error("reference section emitted without a go_package override")
	}
}

func TestTestEmitter_ReferenceSection(t *testing.T) {
	t.Parallel()

	src := `syntax = "proto3";
option go_package = "github.com/example/refpb";
message Tiny {
    int32 x = 1;
}
`
	cfg, f := buildSchema(t, src, "sample")
	artifact, err := NewTestEmitter(cfg).Emit(findMessage(t, f, "Tiny"))
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	mustContain(t, artifact.Content,
		"google.golang.org/protobuf/proto",
		"proto.Unmarshal(raw, refMsg)",
		"proto.Marshal(refMsg)",
		"refpb.Tiny{}",
	)
}

func TestTestEmitter_CycleBreak(t *testing.T) {
	t.Parallel()

	src := `syntax = "proto3";
message Key {
    oneof key {
        bytes ed25519 = 1;
        ThresholdKey threshold_key = 2;
    }
}
message ThresholdKey {
    uint32 threshold = 1;
    Key key = 2;
}
`
	cfg, f := buildSchema(t, src, "sample")
	artifact, err := NewTestEmitter(cfg).Emit(findMessage(t, f, "Key"))
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	content := string(artifact.Content)
	if strings.Contains(content, "createThresholdKeyTestArguments()") {
		t.Error("cycle-break branch still recurses into ThresholdKey samples")
	}
	if !strings.Contains(content, "ED25519") {
		t.Error("non-broken branch missing from sample list")
	}
}

func TestEnumEmitter(t *testing.T) {
	t.Parallel()

	cfg, f := buildSchema(t, sampleSrc, "sample")
	artifact, err := NewEnumEmitter(cfg).Emit(f.Enums[0])
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if artifact.Name != "Suit.go" {
		t.Errorf("Name = %q", artifact.Name)
	}
	mustContain(t, artifact.Content,
		"type Suit int32",
		"Suit_SPADES Suit = 0",
		"Suit_HEARTS Suit = 1",
		"func (v Suit) String() string {",
		"func SuitValues() []Suit {",
	)
}

func TestNestedMessage_FlattenedNames(t *testing.T) {
	t.Parallel()

	src := `syntax = "proto3";
message Outer {
    Inner inner = 1;
    message Inner {
        int32 x = 1;
    }
}
`
	cfg, f := buildSchema(t, src, "sample")
	outer := findMessage(t, f, "Outer")

	artifact, err := NewModelEmitter(cfg).Emit(outer.Messages[0])
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if artifact.Name != "Outer_Inner.go" {
		t.Errorf("Name = %q", artifact.Name)
	}
	mustContain(t, artifact.Content, "type Outer_Inner struct {")

	parent, err := NewModelEmitter(cfg).Emit(outer)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	mustContain(t, parent.Content, "Inner *Outer_Inner")
}
