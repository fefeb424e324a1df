package gen

import (
	"fmt"
	"strings"

	"github.com/protorec/protorec/schema"
)

// EnumEmitter renders a standalone file for a top-level enum. Nested enums
// are rendered into their enclosing message's model file with the same
// shape.
type EnumEmitter struct {
	cfg *Config
}

// NewEnumEmitter returns an enum emitter over the shared config.
func NewEnumEmitter(cfg *Config) *EnumEmitter {
	return &EnumEmitter{cfg: cfg}
}

// Emit renders the Go enum for e.
func (g *EnumEmitter) Emit(e *schema.Enum) (*Artifact, error) {
	pkgPath := g.cfg.Lookup.ModelPackage(e.File().Bucket)

	var b strings.Builder
	b.WriteString(header(e.File()))
	fmt.Fprintf(&b, "package %s\n\n", pkgIdent(pkgPath))
	b.WriteString("import \"fmt\"\n\n")
	renderEnum(&b, e)

	name := e.GeneratedName() + ".go"
	content, err := formatSource(name, []byte(b.String()))
	if err != nil {
		return nil, err
	}
	return &Artifact{Package: pkgPath, Name: name, Content: content}, nil
}

// renderEnum writes the enum type, its constants in declaration order, a
// String method and a <E>Values lister used by generated test data.
func renderEnum(b *strings.Builder, e *schema.Enum) {
	name := e.GeneratedName()

	b.WriteString(docComment(e.Doc, false, ""))
	fmt.Fprintf(b, "type %s int32\n\n", name)

	b.WriteString("const (\n")
	for _, v := range e.Values {
		b.WriteString(docComment(v.Doc, v.Deprecated, "\t"))
		fmt.Fprintf(b, "\t%s_%s %s = %d\n", name, v.Name, name, v.Number)
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(b, "// String returns the schema name of the value, or its number when the\n// value is unknown.\n")
	fmt.Fprintf(b, "func (v %s) String() string {\n", name)
	b.WriteString("\tswitch v {\n")
	for _, v := range e.Values {
		fmt.Fprintf(b, "\tcase %s_%s:\n\t\treturn %q\n", name, v.Name, v.Name)
	}
	b.WriteString("\t}\n")
	fmt.Fprintf(b, "\treturn fmt.Sprintf(\"%s(%%d)\", int32(v))\n", name)
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "// %sValues lists every declared value in schema order.\n", name)
	fmt.Fprintf(b, "func %sValues() []%s {\n\treturn []%s{", name, name, name)
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = fmt.Sprintf("%s_%s", name, v.Name)
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("}\n}\n\n")
}
