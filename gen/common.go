// Package gen holds the four emitters that turn a resolved schema into Go
// source: model, parser, writer and test, one file each per message. All
// emitters walk fields through the schema introspection interface and
// render deterministically: fields in declaration order (writers in
// field-number order), imports sorted.
package gen

import (
	"fmt"
	"go/format"
	"path"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/protorec/protorec/schema"
)

// runtimePkg is the import path of the wire-format runtime every generated
// file depends on.
const runtimePkg = "github.com/protorec/protorec/runtime"

// Config is shared by all emitters.
type Config struct {
	// Lookup resolves packages and type names.
	Lookup *schema.Lookup

	// CycleBreak holds UPPER_SNAKE oneof branch names whose message
	// references would make generated test data recurse forever. Branches
	// named here are omitted from test sample lists.
	CycleBreak map[string]bool
}

// DefaultCycleBreak returns the default cycle-break set: the recursive
// cryptographic key structures.
func DefaultCycleBreak() map[string]bool {
	return map[string]bool{
		"THRESHOLD_KEY":       true,
		"KEY_LIST":            true,
		"THRESHOLD_SIGNATURE": true,
		"SIGNATURE_LIST":      true,
	}
}

// Artifact is one generated file: the package it belongs to and its
// rendered content.
type Artifact struct {
	// Package is the import path of the package the file belongs to. The
	// file's directory is this path relative to the destination root.
	Package string

	// Name is the file name.
	Name string

	// Content is the formatted Go source.
	Content []byte
}

// formatSource runs the rendered file through the imports fixer, which
// both gofmt-formats and prunes/sorts the import block. The unformatted
// source is returned alongside the error so a broken template stays
// debuggable.
func formatSource(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, nil)
	if err == nil {
		return out, nil
	}
	if out, ferr := format.Source(src); ferr == nil {
		return out, nil
	}
	return src, fmt.Errorf("failed to format generated code for %s: %w", filename, err)
}

// pkgIdent returns the identifier a package path is referenced by.
func pkgIdent(pkgPath string) string {
	return path.Base(pkgPath)
}

// importSet accumulates the imports of one generated file and renders them
// sorted, std imports first.
type importSet struct {
	paths map[string]bool
}

func newImportSet() *importSet {
	return &importSet{paths: map[string]bool{}}
}

func (s *importSet) add(pkgPath string) {
	if pkgPath != "" {
		s.paths[pkgPath] = true
	}
}

func (s *importSet) render() string {
	if len(s.paths) == 0 {
		return ""
	}
	var std, rest []string
	for p := range s.paths {
		if strings.Contains(strings.SplitN(p, "/", 2)[0], ".") {
			rest = append(rest, p)
		} else {
			std = append(std, p)
		}
	}
	sort.Strings(std)
	sort.Strings(rest)

	var b strings.Builder
	b.WriteString("import (\n")
	for _, p := range std {
		fmt.Fprintf(&b, "\t%q\n", p)
	}
	if len(std) > 0 && len(rest) > 0 {
		b.WriteString("\n")
	}
	for _, p := range rest {
		fmt.Fprintf(&b, "\t%q\n", p)
	}
	b.WriteString(")\n")
	return b.String()
}

// header renders the generated-file banner.
func header(f *schema.File) string {
	return fmt.Sprintf("// Code generated by protorec from %s. DO NOT EDIT.\n\n", path.Base(f.Path))
}

// docComment renders documentation as a Go comment block at the given
// indent. Deprecated declarations get the standard notice appended.
func docComment(doc string, deprecated bool, indent string) string {
	var b strings.Builder
	if doc != "" {
		for _, line := range strings.Split(doc, "\n") {
			if line == "" {
				fmt.Fprintf(&b, "%s//\n", indent)
			} else {
				fmt.Fprintf(&b, "%s// %s\n", indent, line)
			}
		}
	}
	if deprecated {
		if doc != "" {
			fmt.Fprintf(&b, "%s//\n", indent)
		}
		fmt.Fprintf(&b, "%s// Deprecated: marked deprecated in the schema.\n", indent)
	}
	return b.String()
}

// scalarGoType maps a scalar field type onto its Go type. TypeBytes maps
// onto the runtime's immutable Bytes.
func scalarGoType(t schema.FieldType) string {
	switch t {
	case schema.TypeInt32, schema.TypeSint32, schema.TypeSfixed32:
		return "int32"
	case schema.TypeUint32, schema.TypeFixed32:
		return "uint32"
	case schema.TypeInt64, schema.TypeSint64, schema.TypeSfixed64:
		return "int64"
	case schema.TypeUint64, schema.TypeFixed64:
		return "uint64"
	case schema.TypeFloat:
		return "float32"
	case schema.TypeDouble:
		return "float64"
	case schema.TypeBool:
		return "bool"
	case schema.TypeString:
		return "string"
	case schema.TypeBytes:
		return "runtime.Bytes"
	default:
		return ""
	}
}

// readCall returns the runtime read expression for a scalar field.
func readCall(t schema.FieldType) string {
	switch t {
	case schema.TypeInt32:
		return "runtime.ReadInt32(r)"
	case schema.TypeSint32:
		return "runtime.ReadSint32(r)"
	case schema.TypeUint32:
		return "runtime.ReadUint32(r)"
	case schema.TypeInt64:
		return "runtime.ReadInt64(r)"
	case schema.TypeSint64:
		return "runtime.ReadSint64(r)"
	case schema.TypeUint64:
		return "runtime.ReadUint64(r)"
	case schema.TypeFixed32:
		return "runtime.ReadFixed32(r)"
	case schema.TypeSfixed32:
		return "runtime.ReadSfixed32(r)"
	case schema.TypeFixed64:
		return "runtime.ReadFixed64(r)"
	case schema.TypeSfixed64:
		return "runtime.ReadSfixed64(r)"
	case schema.TypeFloat:
		return "runtime.ReadFloat(r)"
	case schema.TypeDouble:
		return "runtime.ReadDouble(r)"
	case schema.TypeBool:
		return "runtime.ReadBool(r)"
	case schema.TypeString:
		return "runtime.ReadStringField(r)"
	case schema.TypeBytes:
		return "runtime.ReadBytesField(r)"
	case schema.TypeEnum:
		return "runtime.ReadEnum(r)"
	default:
		return ""
	}
}

// readFuncName returns the runtime read function value for a scalar type,
// for call sites that pass the reader as a function rather than invoking
// it.
func readFuncName(t schema.FieldType) string {
	return strings.TrimSuffix(readCall(t), "(r)")
}

// writeFieldCall returns the runtime write statement for one scalar value.
func writeFieldCall(t schema.FieldType, num int32, valueExpr string, skipDefault bool) string {
	skip := fmt.Sprintf("%v", skipDefault)
	switch t {
	case schema.TypeInt32:
		return fmt.Sprintf("runtime.WriteInt32Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeSint32:
		return fmt.Sprintf("runtime.WriteSint32Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeUint32:
		return fmt.Sprintf("runtime.WriteUint32Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeInt64:
		return fmt.Sprintf("runtime.WriteInt64Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeSint64:
		return fmt.Sprintf("runtime.WriteSint64Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeUint64:
		return fmt.Sprintf("runtime.WriteUint64Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeFixed32:
		return fmt.Sprintf("runtime.WriteFixed32Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeSfixed32:
		return fmt.Sprintf("runtime.WriteSfixed32Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeFixed64:
		return fmt.Sprintf("runtime.WriteFixed64Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeSfixed64:
		return fmt.Sprintf("runtime.WriteSfixed64Field(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeFloat:
		return fmt.Sprintf("runtime.WriteFloatField(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeDouble:
		return fmt.Sprintf("runtime.WriteDoubleField(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeBool:
		return fmt.Sprintf("runtime.WriteBoolField(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeString:
		return fmt.Sprintf("runtime.WriteStringField(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeBytes:
		return fmt.Sprintf("runtime.WriteBytesField(w, %d, %s, %s)", num, valueExpr, skip)
	case schema.TypeEnum:
		return fmt.Sprintf("runtime.WriteEnumField(w, %d, int32(%s), %s)", num, valueExpr, skip)
	default:
		return ""
	}
}

// sizeFieldCall returns the runtime size expression for one scalar value.
func sizeFieldCall(t schema.FieldType, num int32, valueExpr string, skipDefault bool) string {
	skip := fmt.Sprintf("%v", skipDefault)
	switch t {
	case schema.TypeInt32:
		return fmt.Sprintf("runtime.SizeOfInt32Field(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeSint32:
		return fmt.Sprintf("runtime.SizeOfSint32Field(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeUint32:
		return fmt.Sprintf("runtime.SizeOfUint32Field(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeInt64:
		return fmt.Sprintf("runtime.SizeOfInt64Field(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeSint64:
		return fmt.Sprintf("runtime.SizeOfSint64Field(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeUint64:
		return fmt.Sprintf("runtime.SizeOfUint64Field(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeFixed32:
		return fmt.Sprintf("runtime.SizeOfFixed32Field(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeSfixed32:
		return fmt.Sprintf("runtime.SizeOfFixed32Field(%d, uint32(%s), %s)", num, valueExpr, skip)
	case schema.TypeFixed64:
		return fmt.Sprintf("runtime.SizeOfFixed64Field(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeSfixed64:
		return fmt.Sprintf("runtime.SizeOfFixed64Field(%d, uint64(%s), %s)", num, valueExpr, skip)
	case schema.TypeFloat:
		return fmt.Sprintf("runtime.SizeOfFloatField(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeDouble:
		return fmt.Sprintf("runtime.SizeOfDoubleField(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeBool:
		return fmt.Sprintf("runtime.SizeOfBoolField(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeString:
		return fmt.Sprintf("runtime.SizeOfStringField(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeBytes:
		return fmt.Sprintf("runtime.SizeOfBytesField(%d, %s, %s)", num, valueExpr, skip)
	case schema.TypeEnum:
		return fmt.Sprintf("runtime.SizeOfEnumField(%d, int32(%s), %s)", num, valueExpr, skip)
	default:
		return ""
	}
}

// packedFamily classifies a scalar for packed encoding: "varint",
// "fixed32", "fixed64", or "" for length-delimited types that never pack.
func packedFamily(t schema.FieldType) string {
	switch t {
	case schema.TypeInt32, schema.TypeSint32, schema.TypeUint32,
		schema.TypeInt64, schema.TypeSint64, schema.TypeUint64,
		schema.TypeBool, schema.TypeEnum:
		return "varint"
	case schema.TypeFixed32, schema.TypeSfixed32, schema.TypeFloat:
		return "fixed32"
	case schema.TypeFixed64, schema.TypeSfixed64, schema.TypeDouble:
		return "fixed64"
	default:
		return ""
	}
}

// packedEncFunc returns the element-to-wire-value function literal for a
// packed write of the given scalar type.
func packedEncFunc(t schema.FieldType, elemType string) string {
	switch t {
	case schema.TypeInt32:
		return fmt.Sprintf("func(v %s) uint64 { return uint64(int64(v)) }", elemType)
	case schema.TypeSint32:
		return fmt.Sprintf("func(v %s) uint64 { return runtime.ZigZagEncode32(v) }", elemType)
	case schema.TypeUint32:
		return fmt.Sprintf("func(v %s) uint64 { return uint64(v) }", elemType)
	case schema.TypeInt64:
		return fmt.Sprintf("func(v %s) uint64 { return uint64(v) }", elemType)
	case schema.TypeSint64:
		return fmt.Sprintf("func(v %s) uint64 { return runtime.ZigZagEncode64(v) }", elemType)
	case schema.TypeUint64:
		return fmt.Sprintf("func(v %s) uint64 { return v }", elemType)
	case schema.TypeBool:
		return fmt.Sprintf("func(v %s) uint64 { if v { return 1 }; return 0 }", elemType)
	case schema.TypeEnum:
		return fmt.Sprintf("func(v %s) uint64 { return uint64(int64(v)) }", elemType)
	case schema.TypeFixed32:
		return fmt.Sprintf("func(v %s) uint32 { return v }", elemType)
	case schema.TypeSfixed32:
		return fmt.Sprintf("func(v %s) uint32 { return uint32(v) }", elemType)
	case schema.TypeFloat:
		return "math.Float32bits"
	case schema.TypeFixed64:
		return fmt.Sprintf("func(v %s) uint64 { return v }", elemType)
	case schema.TypeSfixed64:
		return fmt.Sprintf("func(v %s) uint64 { return uint64(v) }", elemType)
	case schema.TypeDouble:
		return "math.Float64bits"
	default:
		return ""
	}
}

// packedDecExpr converts a raw packed wire value (uint64 for varints,
// uint32/uint64 for fixed) back to the element type.
func packedDecExpr(t schema.FieldType, raw string) string {
	switch t {
	case schema.TypeInt32:
		return fmt.Sprintf("int32(%s)", raw)
	case schema.TypeSint32:
		return fmt.Sprintf("runtime.ZigZagDecode32(%s)", raw)
	case schema.TypeUint32:
		return fmt.Sprintf("uint32(%s)", raw)
	case schema.TypeInt64:
		return fmt.Sprintf("int64(%s)", raw)
	case schema.TypeSint64:
		return fmt.Sprintf("runtime.ZigZagDecode64(%s)", raw)
	case schema.TypeUint64:
		return raw
	case schema.TypeBool:
		return fmt.Sprintf("%s != 0", raw)
	case schema.TypeFixed32:
		return raw
	case schema.TypeSfixed32:
		return fmt.Sprintf("int32(%s)", raw)
	case schema.TypeFloat:
		return fmt.Sprintf("math.Float32frombits(%s)", raw)
	case schema.TypeFixed64:
		return raw
	case schema.TypeSfixed64:
		return fmt.Sprintf("int64(%s)", raw)
	case schema.TypeDouble:
		return fmt.Sprintf("math.Float64frombits(%s)", raw)
	default:
		return raw
	}
}

// mixStmt returns the hash-mix statement for one present scalar value.
func mixStmt(t schema.FieldType, valueExpr string) string {
	switch t {
	case schema.TypeInt32, schema.TypeSint32, schema.TypeSfixed32:
		return fmt.Sprintf("h = runtime.MixInt32(h, %s)", valueExpr)
	case schema.TypeUint32, schema.TypeFixed32:
		return fmt.Sprintf("h = runtime.MixUint32(h, %s)", valueExpr)
	case schema.TypeInt64, schema.TypeSint64, schema.TypeSfixed64:
		return fmt.Sprintf("h = runtime.MixInt64(h, %s)", valueExpr)
	case schema.TypeUint64, schema.TypeFixed64:
		return fmt.Sprintf("h = runtime.MixUint64(h, %s)", valueExpr)
	case schema.TypeFloat:
		return fmt.Sprintf("h = runtime.MixFloat(h, %s)", valueExpr)
	case schema.TypeDouble:
		return fmt.Sprintf("h = runtime.MixDouble(h, %s)", valueExpr)
	case schema.TypeBool:
		return fmt.Sprintf("h = runtime.MixBool(h, %s)", valueExpr)
	case schema.TypeString:
		return fmt.Sprintf("h = runtime.MixString(h, %s)", valueExpr)
	case schema.TypeBytes:
		return fmt.Sprintf("h = runtime.MixBytes(h, %s)", valueExpr)
	case schema.TypeEnum:
		return fmt.Sprintf("h = runtime.MixInt32(h, int32(%s))", valueExpr)
	default:
		return ""
	}
}

// equalExpr returns a boolean expression comparing two scalar values.
func equalExpr(t schema.FieldType, a, b string) string {
	switch t {
	case schema.TypeFloat:
		return fmt.Sprintf("runtime.Float32Equal(%s, %s)", a, b)
	case schema.TypeDouble:
		return fmt.Sprintf("runtime.Float64Equal(%s, %s)", a, b)
	case schema.TypeBytes:
		return fmt.Sprintf("%s.Equal(%s)", a, b)
	default:
		return fmt.Sprintf("%s == %s", a, b)
	}
}

// fieldContext resolves names the emitters share for one message.
type fieldContext struct {
	cfg *Config
	msg *schema.Message
	pkg string // import path of the package being emitted into
}

// typeRef renders a reference to a generated type that lives in pkgPath,
// qualifying and importing it when it is foreign.
func (c *fieldContext) typeRef(pkgPath, ident string, imp *importSet) string {
	if pkgPath == c.pkg {
		return ident
	}
	imp.add(pkgPath)
	return pkgIdent(pkgPath) + "." + ident
}

// resolved returns the symbol a message-or-enum field refers to. Lookup
// already guaranteed resolution, so a miss is a programming error.
func (c *fieldContext) resolved(sf *schema.SingleField) *schema.Symbol {
	sym, ok := c.cfg.Lookup.Resolve(sf.MessageType, c.msg.File())
	if !ok {
		panic(fmt.Sprintf("unresolved reference %q survived lookup", sf.MessageType))
	}
	return sym
}

// messageTypeRef renders the generated model type of a referenced message.
func (c *fieldContext) messageTypeRef(sf *schema.SingleField, imp *importSet) string {
	sym := c.resolved(sf)
	return c.typeRef(c.cfg.Lookup.PackageForMessage(schema.KindModel, sym.Message), sym.Message.GeneratedName(), imp)
}

// enumTypeRef renders the generated enum type of a referenced enum.
func (c *fieldContext) enumTypeRef(sf *schema.SingleField, imp *importSet) string {
	sym := c.resolved(sf)
	pkgPath := joinedEnumPackage(c.cfg.Lookup, sym)
	return c.typeRef(pkgPath, sym.Enum.GeneratedName(), imp)
}

// parserRef renders the generated parser type of a referenced message.
func (c *fieldContext) parserRef(sf *schema.SingleField, imp *importSet) string {
	sym := c.resolved(sf)
	return c.typeRef(c.cfg.Lookup.PackageForMessage(schema.KindParser, sym.Message), sym.Message.GeneratedName()+"Parser", imp)
}

// writerRef renders the generated writer type of a referenced message.
func (c *fieldContext) writerRef(sf *schema.SingleField, imp *importSet) string {
	sym := c.resolved(sf)
	return c.typeRef(c.cfg.Lookup.PackageForMessage(schema.KindWriter, sym.Message), sym.Message.GeneratedName()+"Writer", imp)
}

// joinedEnumPackage computes the model package of an enum symbol. Enums
// always live beside the models of their file.
func joinedEnumPackage(l *schema.Lookup, sym *schema.Symbol) string {
	return l.ModelPackage(sym.File.Bucket)
}

// goFieldType renders the Go type of a single field, including optional
// pointers, repeated slices and cross-package qualification.
func (c *fieldContext) goFieldType(sf *schema.SingleField, imp *importSet) string {
	var base string
	switch sf.Type {
	case schema.TypeMessage:
		base = c.messageTypeRef(sf, imp)
	case schema.TypeEnum:
		base = c.enumTypeRef(sf, imp)
	default:
		base = scalarGoType(sf.Type)
		if sf.Type == schema.TypeBytes {
			imp.add(runtimePkg)
		}
	}

	switch {
	case sf.Repeated:
		return "[]" + base
	case sf.Type == schema.TypeMessage:
		return "*" + base
	case sf.Optional:
		return "*" + base
	default:
		return base
	}
}

// oneOfEnumType renders the discriminant enum type name for a oneof within
// its message: <Message>_<Name>OneOfType.
func oneOfEnumType(msg *schema.Message, of *schema.OneOfField) string {
	return msg.GeneratedName() + "_" + of.EnumName()
}

// oneOfConst renders a discriminant constant name.
func oneOfConst(msg *schema.Message, of *schema.OneOfField, valueName string) string {
	return oneOfEnumType(msg, of) + "_" + valueName
}

// sortedWriteUnits returns the message's writable units (plain fields and
// oneofs) ordered by field number, a oneof keyed by its first branch.
// Canonical output writes fields in ascending number order.
func sortedWriteUnits(msg *schema.Message) []schema.Field {
	units := make([]schema.Field, len(msg.Fields))
	copy(units, msg.Fields)
	sort.SliceStable(units, func(i, j int) bool {
		return firstNumber(units[i]) < firstNumber(units[j])
	})
	return units
}

func firstNumber(f schema.Field) int32 {
	switch fv := f.(type) {
	case *schema.SingleField:
		return fv.Number
	case *schema.OneOfField:
		return fv.Fields[0].Number
	}
	return 0
}
