package schema

import "github.com/protorec/protorec/internal/strcase"

// FieldType is the wire-level type of a single field.
type FieldType int

const (
	TypeInt32 FieldType = iota
	TypeSint32
	TypeUint32
	TypeInt64
	TypeSint64
	TypeUint64
	TypeFixed32
	TypeSfixed32
	TypeFixed64
	TypeSfixed64
	TypeFloat
	TypeDouble
	TypeBool
	TypeString
	TypeBytes
	TypeEnum
	TypeMessage
)

var fieldTypeNames = map[FieldType]string{
	TypeInt32:    "int32",
	TypeSint32:   "sint32",
	TypeUint32:   "uint32",
	TypeInt64:    "int64",
	TypeSint64:   "sint64",
	TypeUint64:   "uint64",
	TypeFixed32:  "fixed32",
	TypeSfixed32: "sfixed32",
	TypeFixed64:  "fixed64",
	TypeSfixed64: "sfixed64",
	TypeFloat:    "float",
	TypeDouble:   "double",
	TypeBool:     "bool",
	TypeString:   "string",
	TypeBytes:    "bytes",
	TypeEnum:     "enum",
	TypeMessage:  "message",
}

func (t FieldType) String() string {
	return fieldTypeNames[t]
}

// scalarTypes maps proto3 scalar type names onto FieldType.
var scalarTypes = map[string]FieldType{
	"int32":    TypeInt32,
	"sint32":   TypeSint32,
	"uint32":   TypeUint32,
	"int64":    TypeInt64,
	"sint64":   TypeSint64,
	"uint64":   TypeUint64,
	"fixed32":  TypeFixed32,
	"sfixed32": TypeSfixed32,
	"fixed64":  TypeFixed64,
	"sfixed64": TypeSfixed64,
	"float":    TypeFloat,
	"double":   TypeDouble,
	"bool":     TypeBool,
	"string":   TypeString,
	"bytes":    TypeBytes,
}

// wrapperTypes maps the known google.protobuf wrapper messages onto the
// scalar type they wrap. A field declared with one of these is modeled as
// optional over the inner scalar, never as a MESSAGE.
var wrapperTypes = map[string]FieldType{
	"StringValue": TypeString,
	"Int32Value":  TypeInt32,
	"UInt32Value": TypeUint32,
	"SInt32Value": TypeSint32,
	"Int64Value":  TypeInt64,
	"UInt64Value": TypeUint64,
	"SInt64Value": TypeSint64,
	"FloatValue":  TypeFloat,
	"DoubleValue": TypeDouble,
	"BoolValue":   TypeBool,
	"BytesValue":  TypeBytes,
}

// Field is the sum type over SingleField and OneOfField. Emitters walk
// fields exclusively through this interface and the concrete types; they
// never go back to the parse tree.
type Field interface {
	// Name returns the proto field name as declared (snake_case).
	Name() string

	// NameCamel returns the camelCase form of the name.
	NameCamel() string

	// NamePascal returns the PascalCase form, used for exported Go
	// identifiers.
	NamePascal() string

	// Doc returns the attached documentation comment, possibly empty.
	Doc() string

	// Deprecated reports whether the field is marked deprecated.
	Deprecated() bool

	// IsOneOf reports whether this is a OneOfField.
	IsOneOf() bool
}

// SingleField is a plain field: a scalar, enum reference or message
// reference, possibly repeated or optional.
type SingleField struct {
	name       string
	doc        string
	deprecated bool

	// Number is the field number, unique within the message.
	Number int32

	// Type is the wire type. Wrapper-optional fields carry the wrapped
	// scalar type here, not TypeMessage.
	Type FieldType

	// Repeated marks a repeated field.
	Repeated bool

	// Optional marks a proto3 optional field or a recognized
	// google.protobuf wrapper. Optional fields are always written, even
	// with a default value, and are nil-able in the model.
	Optional bool

	// Wrapper marks a recognized google.protobuf wrapper type. The model
	// holds the inner scalar, but on the wire the field stays a nested
	// wrapper message.
	Wrapper bool

	// MessageType is the referenced type name for TypeMessage and TypeEnum
	// fields, as written in the schema (possibly qualified). Empty for
	// scalars.
	MessageType string

	// Parent is the enclosing oneof, or nil.
	Parent *OneOfField
}

func (f *SingleField) Name() string       { return f.name }
func (f *SingleField) NameCamel() string  { return strcase.ToCamelCase(strcase.ToPascalCase(f.name)) }
func (f *SingleField) NamePascal() string { return strcase.ToPascalCase(f.name) }
func (f *SingleField) Doc() string        { return f.doc }
func (f *SingleField) Deprecated() bool   { return f.deprecated }
func (f *SingleField) IsOneOf() bool      { return false }

// UpperSnakeName returns the UPPER_SNAKE form of the name, the derivation
// used for oneof discriminant values and the cycle-break set.
func (f *SingleField) UpperSnakeName() string {
	return strcase.ToUpperSnakeCase(f.name)
}

// OneOfField is a oneof: an ordered set of child fields of which at most
// one is live.
type OneOfField struct {
	name string
	doc  string

	// Fields are the children in declaration order. Each child's Parent
	// points back at this OneOfField.
	Fields []*SingleField
}

func (f *OneOfField) Name() string       { return f.name }
func (f *OneOfField) NameCamel() string  { return strcase.ToCamelCase(strcase.ToPascalCase(f.name)) }
func (f *OneOfField) NamePascal() string { return strcase.ToPascalCase(f.name) }
func (f *OneOfField) Doc() string        { return f.doc }
func (f *OneOfField) Deprecated() bool   { return false }
func (f *OneOfField) IsOneOf() bool      { return true }

// EnumName returns the name of the synthesized discriminant enum,
// <Name>OneOfType. The generated type is additionally prefixed with the
// enclosing message name.
func (f *OneOfField) EnumName() string {
	return f.NamePascal() + "OneOfType"
}
