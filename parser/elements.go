package parser

// File is the parse tree of one .proto input. It retains every construct
// the schema layer consumes: file options, top-level messages and enums,
// and, inside message bodies, nested messages, enums, fields, oneofs, map
// fields, options and reserved blocks.
type File struct {
	Path     string
	Syntax   string
	Package  string
	Imports  []string
	Options  []Option
	Messages []*Message
	Enums    []*Enum

	// Warnings collects non-fatal findings (unknown elements, skipped
	// constructs). The generator forwards them to its diagnostic sink.
	Warnings []string
}

// Option is a name/value pair from an option statement or a bracketed
// field option list.
type Option struct {
	Name  string
	Value string
}

// Message models a message construct, possibly nested.
type Message struct {
	Name           string
	Doc            string
	Fields         []Field
	OneOfs         []OneOf
	MapFields      []MapField
	Messages       []*Message
	Enums          []*Enum
	Options        []Option
	ReservedRanges []ReservedRange
	ReservedNames  []string

	// order interleaves fields and oneofs as declared, so downstream
	// layers can walk the body in source order.
	order []declRef
}

type declRef struct {
	oneOf bool
	index int
}

// Decl is one body declaration: exactly one of Field or OneOf is set.
type Decl struct {
	Field *Field
	OneOf *OneOf
}

// Decls returns the message's fields and oneofs in declaration order.
func (m *Message) Decls() []Decl {
	decls := make([]Decl, 0, len(m.order))
	for _, ref := range m.order {
		if ref.oneOf {
			decls = append(decls, Decl{OneOf: &m.OneOfs[ref.index]})
		} else {
			decls = append(decls, Decl{Field: &m.Fields[ref.index]})
		}
	}
	return decls
}

// Field is a single (non-oneof, non-map) field declaration. Type holds the
// declared type name as written; scalar recognition happens in the schema
// layer.
type Field struct {
	Name     string
	Doc      string
	Type     string
	Number   int32
	Repeated bool
	Optional bool
	Options  []Option
}

// Deprecated reports whether the field carries [deprecated = true].
func (f Field) Deprecated() bool {
	for _, o := range f.Options {
		if o.Name == "deprecated" && o.Value == "true" {
			return true
		}
	}
	return false
}

// OneOf is a oneof construct with its child fields in declaration order.
type OneOf struct {
	Name    string
	Doc     string
	Fields  []Field
	Options []Option
}

// MapField is a map<K,V> declaration. The parser retains it; the schema
// builder rejects it.
type MapField struct {
	Name      string
	Doc       string
	KeyType   string
	ValueType string
	Number    int32
}

// Enum models an enum construct with its constants in declaration order.
type Enum struct {
	Name    string
	Doc     string
	Values  []EnumValue
	Options []Option
}

// EnumValue is one enum constant.
type EnumValue struct {
	Name    string
	Doc     string
	Number  int32
	Options []Option
}

// Deprecated reports whether the value carries [deprecated = true].
func (v EnumValue) Deprecated() bool {
	for _, o := range v.Options {
		if o.Name == "deprecated" && o.Value == "true" {
			return true
		}
	}
	return false
}

// ReservedRange is a reserved number range; single numbers have Start equal
// to End.
type ReservedRange struct {
	Start int32
	End   int32
}

// Option returns the value of the named file option and whether it was
// present.
func (f *File) Option(name string) (string, bool) {
	for _, o := range f.Options {
		if o.Name == name {
			return o.Value, true
		}
	}
	return "", false
}
