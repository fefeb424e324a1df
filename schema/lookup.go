package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Kind selects which generated artifact a lookup operation refers to.
type Kind int

const (
	KindModel Kind = iota
	KindParser
	KindWriter
	KindTest
	KindCodec
	KindJSONCodec
)

// SymbolKind distinguishes message from enum symbols.
type SymbolKind int

const (
	SymbolMessage SymbolKind = iota
	SymbolEnum
)

// Symbol is one resolved type name.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	File    *File
	Message *Message
	Enum    *Enum
}

// Config holds the base package path for each artifact kind. A message's
// full package is its kind's base joined with the file's bucket.
//
// Go cannot express the cycle the JVM implementation uses (model classes
// referencing parser/writer classes in packages that import the model), so
// the default layout points model, parser, writer and both codec kinds at
// the same base; tests always land in an external _test package alongside
// the model.
type Config struct {
	ModelBase     string
	ParserBase    string
	WriterBase    string
	TestBase      string
	CodecBase     string
	JSONCodecBase string
}

// Lookup aggregates all schema files into a symbol table and answers the
// package and type-name questions the emitters ask. It is immutable after
// NewLookup returns and therefore safe to share across emitter goroutines.
type Lookup struct {
	cfg     Config
	symbols map[string]*Symbol
}

// NewLookup registers every message and enum of every file, then verifies
// that all message-type references resolve, narrowing enum references to
// TypeEnum along the way. A reference that is still unknown after all
// files have loaded fails with UnresolvedReferenceError.
func NewLookup(cfg Config, files []*File) (*Lookup, error) {
	l := &Lookup{cfg: cfg, symbols: map[string]*Symbol{}}

	for _, f := range files {
		for _, m := range f.Messages {
			if err := l.registerMessage(f, "", m); err != nil {
				return nil, err
			}
		}
		for _, e := range f.Enums {
			if err := l.registerEnum(f, "", e); err != nil {
				return nil, err
			}
		}
	}

	for _, f := range files {
		for _, m := range f.Messages {
			if err := l.resolveMessage(f, m); err != nil {
				return nil, err
			}
		}
	}
	return l, nil
}

func (l *Lookup) registerMessage(f *File, prefix string, m *Message) error {
	sym := &Symbol{Name: m.Name, Kind: SymbolMessage, File: f, Message: m}
	if err := l.register(f, prefix, m.Name, sym); err != nil {
		return err
	}
	nested := prefix + m.Name + "."
	for _, nm := range m.Messages {
		if err := l.registerMessage(f, nested, nm); err != nil {
			return err
		}
	}
	for _, ne := range m.Enums {
		if err := l.registerEnum(f, nested, ne); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lookup) registerEnum(f *File, prefix string, e *Enum) error {
	return l.register(f, prefix, e.Name, &Symbol{Name: e.Name, Kind: SymbolEnum, File: f, Enum: e})
}

// ambiguous marks a bare name shared by nested types of different parents.
// Such names only resolve through their qualified forms.
var ambiguous = &Symbol{}

func (l *Lookup) register(f *File, prefix, name string, sym *Symbol) error {
	keys := []string{prefix + name}
	if f.Package != "" {
		keys = append(keys, f.Package+"."+prefix+name)
	}
	for _, key := range keys {
		if existing, ok := l.symbols[key]; ok && existing != sym && existing != ambiguous && existing.File != f {
			return &InvalidSchemaError{
				Message: name,
				Detail:  fmt.Sprintf("type name %q declared in both %s and %s", key, existing.File.Path, f.Path),
			}
		}
		l.symbols[key] = sym
	}
	if prefix != "" {
		// nested types also answer to their bare name when it is unique
		l.registerAlias(name, sym)
		if f.Package != "" {
			l.registerAlias(f.Package+"."+name, sym)
		}
	}
	return nil
}

func (l *Lookup) registerAlias(key string, sym *Symbol) {
	if existing, ok := l.symbols[key]; ok && existing != sym {
		l.symbols[key] = ambiguous
		return
	}
	l.symbols[key] = sym
}

func (l *Lookup) resolveMessage(f *File, m *Message) error {
	for _, field := range m.Fields {
		switch fv := field.(type) {
		case *SingleField:
			if err := l.resolveField(f, m, fv); err != nil {
				return err
			}
		case *OneOfField:
			for _, child := range fv.Fields {
				if err := l.resolveField(f, m, child); err != nil {
					return err
				}
			}
		}
	}
	for _, nested := range m.Messages {
		if err := l.resolveMessage(f, nested); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lookup) resolveField(f *File, m *Message, sf *SingleField) error {
	if sf.Type != TypeMessage || sf.MessageType == "" {
		return nil
	}
	sym, ok := l.Resolve(sf.MessageType, f)
	if !ok {
		return &UnresolvedReferenceError{Name: sf.MessageType, Message: m.Name, Field: sf.Name()}
	}
	if sym.Kind == SymbolEnum {
		sf.Type = TypeEnum
	}
	return nil
}

// Resolve finds the symbol a type reference names, trying the reference as
// written and then prefixed with the referencing file's package. Nested
// types answer to their bare name only while that name is unique; the
// enclosing scope of the reference is not searched.
func (l *Lookup) Resolve(name string, from *File) (*Symbol, bool) {
	name = strings.TrimPrefix(name, ".")
	if sym, ok := l.symbols[name]; ok && sym != ambiguous {
		return sym, true
	}
	if from != nil && from.Package != "" {
		if sym, ok := l.symbols[from.Package+"."+name]; ok && sym != ambiguous {
			return sym, true
		}
	}
	return nil, false
}

// Symbols returns all registered symbol names in sorted order. Emitters
// iterate this, never the underlying map.
func (l *Lookup) Symbols() []string {
	names := make([]string, 0, len(l.symbols))
	for name := range l.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Lookup) base(kind Kind) string {
	switch kind {
	case KindParser:
		return l.cfg.ParserBase
	case KindWriter:
		return l.cfg.WriterBase
	case KindTest:
		return l.cfg.TestBase
	case KindCodec:
		return l.cfg.CodecBase
	case KindJSONCodec:
		return l.cfg.JSONCodecBase
	default:
		return l.cfg.ModelBase
	}
}

func joinPackage(base, bucket string) string {
	if bucket == "" {
		return base
	}
	return base + "/" + strings.ToLower(bucket)
}

// ModelPackage returns the model package for a source-directory bucket.
func (l *Lookup) ModelPackage(bucket string) string {
	return joinPackage(l.cfg.ModelBase, bucket)
}

// ParserPackage returns the parser package for a bucket.
func (l *Lookup) ParserPackage(bucket string) string {
	return joinPackage(l.cfg.ParserBase, bucket)
}

// WriterPackage returns the writer package for a bucket.
func (l *Lookup) WriterPackage(bucket string) string {
	return joinPackage(l.cfg.WriterBase, bucket)
}

// TestPackage returns the test package for a bucket.
func (l *Lookup) TestPackage(bucket string) string {
	return joinPackage(l.cfg.TestBase, bucket)
}

// PackageForMessage returns the package path the given artifact kind for
// msg lives in.
func (l *Lookup) PackageForMessage(kind Kind, msg *Message) string {
	return joinPackage(l.base(kind), msg.file.Bucket)
}

// UnqualifiedTypeForMessage returns the bare generated identifier for the
// given artifact kind.
func (l *Lookup) UnqualifiedTypeForMessage(kind Kind, msg *Message) string {
	name := msg.GeneratedName()
	switch kind {
	case KindParser:
		return name + "Parser"
	case KindWriter:
		return name + "Writer"
	case KindTest:
		return name + "Test"
	case KindCodec:
		return name + "Protobuf"
	case KindJSONCodec:
		return name + "JSON"
	default:
		return name
	}
}

// FullyQualifiedMessageType returns package path and identifier joined
// with a dot, the form cross-package references are rendered from.
func (l *Lookup) FullyQualifiedMessageType(kind Kind, msg *Message) string {
	return l.PackageForMessage(kind, msg) + "." + l.UnqualifiedTypeForMessage(kind, msg)
}
