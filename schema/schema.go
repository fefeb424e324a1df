// Package schema builds the normalized model the emitters consume: one
// File per input, immutable Message / Enum / Field values, and the Lookup
// symbol table that resolves cross-file type references.
//
// Entities are built once per compile. NewLookup narrows enum references
// from TypeMessage to TypeEnum during symbol resolution; nothing mutates
// them after that.
package schema

import (
	"fmt"
	"strings"

	"github.com/protorec/protorec/parser"
)

// File is the schema model of one parsed input.
type File struct {
	// Path is the source file path, for diagnostics.
	Path string

	// Bucket is the lowercased name of the directory holding the source
	// file. It becomes the final element of every emitted package path.
	Bucket string

	// Package is the declared proto package.
	Package string

	// PackageOverride is the emitted-package override from the go_package
	// option (or java_package, for schemas written against the JVM
	// implementation). Empty when neither is present.
	PackageOverride string

	// Messages and Enums are the top-level declarations in source order.
	Messages []*Message
	Enums    []*Enum

	// Warnings are forwarded from the parser.
	Warnings []string
}

// Message is an immutable message model.
type Message struct {
	Name       string
	Doc        string
	Deprecated bool

	// Fields holds SingleField and OneOfField values in declaration order.
	Fields []Field

	// Messages and Enums are nested declarations.
	Messages []*Message
	Enums    []*Enum

	file   *File
	parent *Message
}

// File returns the file the message was declared in.
func (m *Message) File() *File {
	return m.file
}

// Parent returns the enclosing message, or nil for a top-level message.
func (m *Message) Parent() *Message {
	return m.parent
}

// GeneratedName returns the flattened type name used in generated code:
// the message name prefixed with its parent chain, underscore-joined, the
// way protoc's Go plugin flattens nested types.
func (m *Message) GeneratedName() string {
	if m.parent != nil {
		return m.parent.GeneratedName() + "_" + m.Name
	}
	return m.Name
}

// Enum is an immutable enum model.
type Enum struct {
	Name   string
	Doc    string
	Values []EnumValue

	file   *File
	parent *Message
}

// File returns the file the enum was declared in.
func (e *Enum) File() *File {
	return e.file
}

// GeneratedName returns the flattened type name used in generated code.
func (e *Enum) GeneratedName() string {
	if e.parent != nil {
		return e.parent.GeneratedName() + "_" + e.Name
	}
	return e.Name
}

// EnumValue is one enum constant.
type EnumValue struct {
	Name       string
	Number     int32
	Doc        string
	Deprecated bool
}

// BuildFile constructs the schema model for one parse tree. bucket is the
// lowercased source-directory name. Map fields are rejected here with
// UnsupportedMapError; invariant violations (duplicate field numbers,
// missing enum zero) surface as InvalidSchemaError.
func BuildFile(pf *parser.File, bucket string) (*File, error) {
	f := &File{
		Path:     pf.Path,
		Bucket:   strings.ToLower(bucket),
		Package:  pf.Package,
		Warnings: pf.Warnings,
	}
	if v, ok := pf.Option("go_package"); ok {
		f.PackageOverride = v
	} else if v, ok := pf.Option("java_package"); ok {
		f.PackageOverride = v
	}

	for _, pm := range pf.Messages {
		m, err := buildMessage(f, nil, pm)
		if err != nil {
			return nil, err
		}
		f.Messages = append(f.Messages, m)
	}
	for _, pe := range pf.Enums {
		e, err := buildEnum(f, nil, pe)
		if err != nil {
			return nil, err
		}
		f.Enums = append(f.Enums, e)
	}
	return f, nil
}

func buildMessage(f *File, parent *Message, pm *parser.Message) (*Message, error) {
	if len(pm.MapFields) > 0 {
		return nil, &UnsupportedMapError{Message: pm.Name, Field: pm.MapFields[0].Name}
	}

	m := &Message{
		Name:       pm.Name,
		Doc:        pm.Doc,
		Deprecated: hasDeprecatedOption(pm.Options),
		file:       f,
		parent:     parent,
	}

	numbers := map[int32]string{}
	takeNumber := func(n int32, name string) error {
		if prev, ok := numbers[n]; ok {
			return &InvalidSchemaError{
				Message: pm.Name,
				Detail:  fmt.Sprintf("field number %d used by both %q and %q", n, prev, name),
			}
		}
		numbers[n] = name
		return nil
	}

	for _, decl := range pm.Decls() {
		switch {
		case decl.Field != nil:
			sf := newSingleField(*decl.Field, nil)
			if err := takeNumber(sf.Number, sf.name); err != nil {
				return nil, err
			}
			m.Fields = append(m.Fields, sf)
		case decl.OneOf != nil:
			of := &OneOfField{name: decl.OneOf.Name, doc: decl.OneOf.Doc}
			for _, child := range decl.OneOf.Fields {
				sf := newSingleField(child, of)
				if err := takeNumber(sf.Number, sf.name); err != nil {
					return nil, err
				}
				of.Fields = append(of.Fields, sf)
			}
			if len(of.Fields) == 0 {
				return nil, &InvalidSchemaError{Message: pm.Name, Detail: fmt.Sprintf("oneof %q has no fields", of.name)}
			}
			m.Fields = append(m.Fields, of)
		}
	}

	for _, nested := range pm.Messages {
		nm, err := buildMessage(f, m, nested)
		if err != nil {
			return nil, err
		}
		m.Messages = append(m.Messages, nm)
	}
	for _, nested := range pm.Enums {
		ne, err := buildEnum(f, m, nested)
		if err != nil {
			return nil, err
		}
		m.Enums = append(m.Enums, ne)
	}
	return m, nil
}

func buildEnum(f *File, parent *Message, pe *parser.Enum) (*Enum, error) {
	e := &Enum{Name: pe.Name, Doc: pe.Doc, file: f, parent: parent}

	numbers := map[int32]string{}
	hasZero := false
	for _, v := range pe.Values {
		if prev, ok := numbers[v.Number]; ok {
			return nil, &InvalidSchemaError{
				Message: pe.Name,
				Detail:  fmt.Sprintf("enum number %d used by both %q and %q", v.Number, prev, v.Name),
			}
		}
		numbers[v.Number] = v.Name
		if v.Number == 0 {
			hasZero = true
		}
		e.Values = append(e.Values, EnumValue{
			Name:       v.Name,
			Number:     v.Number,
			Doc:        v.Doc,
			Deprecated: v.Deprecated(),
		})
	}
	if !hasZero {
		return nil, &InvalidSchemaError{Message: pe.Name, Detail: "proto3 enums require a value numbered 0"}
	}
	return e, nil
}

// newSingleField classifies one parsed field. The known google.protobuf
// wrapper types become optional over the wrapped scalar; any other named
// type starts out as TypeMessage and is narrowed to TypeEnum during symbol
// resolution.
func newSingleField(pf parser.Field, parent *OneOfField) *SingleField {
	sf := &SingleField{
		name:       pf.Name,
		doc:        pf.Doc,
		deprecated: pf.Deprecated(),
		Number:     pf.Number,
		Repeated:   pf.Repeated,
		Optional:   pf.Optional,
		Parent:     parent,
	}

	typeName := strings.TrimPrefix(pf.Type, ".")
	if t, ok := scalarTypes[typeName]; ok {
		sf.Type = t
		return sf
	}
	if t, ok := wrapperTypes[strings.TrimPrefix(typeName, "google.protobuf.")]; ok {
		sf.Type = t
		sf.Optional = true
		sf.Wrapper = true
		return sf
	}
	sf.Type = TypeMessage
	sf.MessageType = typeName
	return sf
}

func hasDeprecatedOption(opts []parser.Option) bool {
	for _, o := range opts {
		if o.Name == "deprecated" && o.Value == "true" {
			return true
		}
	}
	return false
}
