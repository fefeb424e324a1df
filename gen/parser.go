package gen

import (
	"fmt"
	"strings"

	"github.com/protorec/protorec/schema"
)

// ParserEmitter renders the type that decodes wire bytes into a model
// value: a tag loop dispatching on field number, sub-parser recursion for
// message fields, packed support for repeated scalars and skip-per-wire-
// type for unknown fields.
type ParserEmitter struct {
	cfg *Config
}

// NewParserEmitter returns a parser emitter over the shared config.
func NewParserEmitter(cfg *Config) *ParserEmitter {
	return &ParserEmitter{cfg: cfg}
}

// Emit renders the parser file for msg.
func (g *ParserEmitter) Emit(msg *schema.Message) (*Artifact, error) {
	pkgPath := g.cfg.Lookup.PackageForMessage(schema.KindParser, msg)
	ctx := &fieldContext{cfg: g.cfg, msg: msg, pkg: pkgPath}
	imp := newImportSet()
	imp.add(runtimePkg)

	name := msg.GeneratedName()
	parserName := g.cfg.Lookup.UnqualifiedTypeForMessage(schema.KindParser, msg)
	modelRef := ctx.typeRef(g.cfg.Lookup.PackageForMessage(schema.KindModel, msg), name, imp)

	var body strings.Builder

	fmt.Fprintf(&body, "// %s decodes %s from protobuf bytes.\n", parserName, name)
	fmt.Fprintf(&body, "type %s struct{}\n\n", parserName)

	fmt.Fprintf(&body, "// Parse reads one %s, consuming the reader up to its limit. Unknown\n// fields are skipped by wire type; wire errors are returned unchanged.\n", name)
	fmt.Fprintf(&body, "func (%s) Parse(r runtime.ReadableSequentialData) (%s, error) {\n", parserName, modelRef)
	fmt.Fprintf(&body, "\tb := %s\n", g.builderCall(ctx, msg, imp))

	// repeated fields accumulate locally and land in the builder at EOF
	for _, field := range msg.Fields {
		sf, ok := field.(*schema.SingleField)
		if !ok || !sf.Repeated {
			continue
		}
		fmt.Fprintf(&body, "\tvar %sAcc %s\n", sf.NameCamel(), ctx.goFieldType(sf, imp))
	}

	body.WriteString("\tfor r.HasRemaining() {\n")
	body.WriteString("\t\tfieldNum, wireType, err := runtime.ReadTag(r)\n")
	fmt.Fprintf(&body, "\t\tif err != nil {\n\t\t\treturn %s{}, err\n\t\t}\n", modelRef)
	body.WriteString("\t\tswitch fieldNum {\n")

	for _, field := range msg.Fields {
		switch fv := field.(type) {
		case *schema.SingleField:
			g.renderFieldCase(&body, ctx, msg, fv, modelRef, imp)
		case *schema.OneOfField:
			for _, child := range fv.Fields {
				g.renderFieldCase(&body, ctx, msg, child, modelRef, imp)
			}
		}
	}

	body.WriteString("\t\tdefault:\n")
	fmt.Fprintf(&body, "\t\t\tif err := runtime.SkipField(r, wireType); err != nil {\n\t\t\t\treturn %s{}, err\n\t\t\t}\n", modelRef)
	body.WriteString("\t\t}\n\t}\n")

	for _, field := range msg.Fields {
		sf, ok := field.(*schema.SingleField)
		if !ok || !sf.Repeated {
			continue
		}
		fmt.Fprintf(&body, "\tb.%s(%sAcc...)\n", sf.NamePascal(), sf.NameCamel())
	}
	body.WriteString("\treturn b.Build(), nil\n}\n")

	var file strings.Builder
	file.WriteString(header(msg.File()))
	fmt.Fprintf(&file, "package %s\n\n", pkgIdent(pkgPath))
	file.WriteString(imp.render())
	file.WriteString("\n")
	file.WriteString(body.String())

	fileName := parserName + ".go"
	content, err := formatSource(fileName, []byte(file.String()))
	if err != nil {
		return nil, err
	}
	return &Artifact{Package: pkgPath, Name: fileName, Content: content}, nil
}

// builderCall renders the model-builder constructor call, qualified when
// parsers are emitted into a different package than models.
func (g *ParserEmitter) builderCall(ctx *fieldContext, msg *schema.Message, imp *importSet) string {
	ctor := "New" + msg.GeneratedName() + "Builder()"
	modelPkg := g.cfg.Lookup.PackageForMessage(schema.KindModel, msg)
	if modelPkg == ctx.pkg {
		return ctor
	}
	imp.add(modelPkg)
	return pkgIdent(modelPkg) + "." + ctor
}

func (g *ParserEmitter) renderFieldCase(b *strings.Builder, ctx *fieldContext, msg *schema.Message, sf *schema.SingleField, modelRef string, imp *importSet) {
	fmt.Fprintf(b, "\t\tcase %d: // %s\n", sf.Number, sf.Name())

	fail := fmt.Sprintf("return %s{}, err", modelRef)

	switch {
	case sf.Repeated:
		g.renderRepeatedCase(b, ctx, sf, fail, imp)
	case sf.Type == schema.TypeMessage:
		parserRef := ctx.parserRef(sf, imp)
		fmt.Fprintf(b, "\t\t\tv, err := runtime.ReadMessage(r, %s{}.Parse)\n", parserRef)
		fmt.Fprintf(b, "\t\t\tif err != nil {\n\t\t\t\t%s\n\t\t\t}\n", fail)
		fmt.Fprintf(b, "\t\t\tb.%s(&v)\n", sf.NamePascal())
	case sf.Type == schema.TypeEnum:
		enumRef := ctx.enumTypeRef(sf, imp)
		fmt.Fprintf(b, "\t\t\tv, err := runtime.ReadEnum(r)\n")
		fmt.Fprintf(b, "\t\t\tif err != nil {\n\t\t\t\t%s\n\t\t\t}\n", fail)
		fmt.Fprintf(b, "\t\t\tb.%s(%s(v))\n", sf.NamePascal(), enumRef)
	case sf.Wrapper:
		fmt.Fprintf(b, "\t\t\tv, err := runtime.ReadWrapperField(r, %s)\n", readFuncName(sf.Type))
		fmt.Fprintf(b, "\t\t\tif err != nil {\n\t\t\t\t%s\n\t\t\t}\n", fail)
		fmt.Fprintf(b, "\t\t\tb.%s(&v)\n", sf.NamePascal())
	case sf.Optional:
		fmt.Fprintf(b, "\t\t\tv, err := %s\n", readCall(sf.Type))
		fmt.Fprintf(b, "\t\t\tif err != nil {\n\t\t\t\t%s\n\t\t\t}\n", fail)
		fmt.Fprintf(b, "\t\t\tb.%s(&v)\n", sf.NamePascal())
	default:
		fmt.Fprintf(b, "\t\t\tv, err := %s\n", readCall(sf.Type))
		fmt.Fprintf(b, "\t\t\tif err != nil {\n\t\t\t\t%s\n\t\t\t}\n", fail)
		fmt.Fprintf(b, "\t\t\tb.%s(v)\n", sf.NamePascal())
	}
}

func (g *ParserEmitter) renderRepeatedCase(b *strings.Builder, ctx *fieldContext, sf *schema.SingleField, fail string, imp *importSet) {
	acc := sf.NameCamel() + "Acc"

	switch sf.Type {
	case schema.TypeMessage:
		parserRef := ctx.parserRef(sf, imp)
		fmt.Fprintf(b, "\t\t\tv, err := runtime.ReadMessage(r, %s{}.Parse)\n", parserRef)
		fmt.Fprintf(b, "\t\t\tif err != nil {\n\t\t\t\t%s\n\t\t\t}\n", fail)
		fmt.Fprintf(b, "\t\t\t%s = append(%s, v)\n", acc, acc)
		return
	case schema.TypeString, schema.TypeBytes:
		fmt.Fprintf(b, "\t\t\tv, err := %s\n", readCall(sf.Type))
		fmt.Fprintf(b, "\t\t\tif err != nil {\n\t\t\t\t%s\n\t\t\t}\n", fail)
		fmt.Fprintf(b, "\t\t\t%s = append(%s, v)\n", acc, acc)
		return
	}

	family := packedFamily(sf.Type)
	elemExpr := func(raw string) string {
		expr := packedDecExpr(sf.Type, raw)
		if sf.Type == schema.TypeEnum {
			expr = fmt.Sprintf("%s(int32(%s))", ctx.enumTypeRef(sf, imp), raw)
		}
		if strings.Contains(expr, "math.") {
			imp.add("math")
		}
		return expr
	}

	var packedRead string
	switch family {
	case "varint":
		packedRead = "runtime.ReadPackedVarint(r)"
	case "fixed32":
		packedRead = "runtime.ReadPackedFixed32(r)"
	case "fixed64":
		packedRead = "runtime.ReadPackedFixed64(r)"
	}

	fmt.Fprintf(b, "\t\t\tif wireType == runtime.WireDelimited {\n")
	fmt.Fprintf(b, "\t\t\t\tvs, err := %s\n", packedRead)
	fmt.Fprintf(b, "\t\t\t\tif err != nil {\n\t\t\t\t\t%s\n\t\t\t\t}\n", fail)
	fmt.Fprintf(b, "\t\t\t\tfor _, raw := range vs {\n\t\t\t\t\t%s = append(%s, %s)\n\t\t\t\t}\n", acc, acc, elemExpr("raw"))
	fmt.Fprintf(b, "\t\t\t} else {\n")
	if sf.Type == schema.TypeEnum {
		fmt.Fprintf(b, "\t\t\t\tv, err := runtime.ReadEnum(r)\n")
		fmt.Fprintf(b, "\t\t\t\tif err != nil {\n\t\t\t\t\t%s\n\t\t\t\t}\n", fail)
		fmt.Fprintf(b, "\t\t\t\t%s = append(%s, %s(v))\n", acc, acc, ctx.enumTypeRef(sf, imp))
	} else {
		fmt.Fprintf(b, "\t\t\t\tv, err := %s\n", readCall(sf.Type))
		fmt.Fprintf(b, "\t\t\t\tif err != nil {\n\t\t\t\t\t%s\n\t\t\t\t}\n", fail)
		fmt.Fprintf(b, "\t\t\t\t%s = append(%s, v)\n", acc, acc)
	}
	fmt.Fprintf(b, "\t\t\t}\n")
}
