package gen

import (
	"fmt"
	"strings"

	"github.com/protorec/protorec/schema"
)

// WriterEmitter renders the type that serializes a model value in
// canonical proto3 form: fields in ascending field-number order, scalar
// defaults elided except for wrapper-optionals and live oneof branches,
// packed repeated scalars, and a pre-pass Size used for length prefixes.
type WriterEmitter struct {
	cfg *Config
}

// NewWriterEmitter returns a writer emitter over the shared config.
func NewWriterEmitter(cfg *Config) *WriterEmitter {
	return &WriterEmitter{cfg: cfg}
}

// Emit renders the writer file for msg.
func (g *WriterEmitter) Emit(msg *schema.Message) (*Artifact, error) {
	pkgPath := g.cfg.Lookup.PackageForMessage(schema.KindWriter, msg)
	ctx := &fieldContext{cfg: g.cfg, msg: msg, pkg: pkgPath}
	imp := newImportSet()
	imp.add(runtimePkg)

	name := msg.GeneratedName()
	writerName := g.cfg.Lookup.UnqualifiedTypeForMessage(schema.KindWriter, msg)
	modelRef := ctx.typeRef(g.cfg.Lookup.PackageForMessage(schema.KindModel, msg), name, imp)

	var body strings.Builder

	fmt.Fprintf(&body, "// %s serializes %s to the protobuf wire format.\n", writerName, name)
	fmt.Fprintf(&body, "type %s struct{}\n\n", writerName)

	fmt.Fprintf(&body, "// Write encodes m in canonical form: ascending field numbers, defaults\n// elided, packed repeated scalars.\n")
	fmt.Fprintf(&body, "func (wr %s) Write(m %s, w runtime.WritableSequentialData) error {\n", writerName, modelRef)
	for _, field := range sortedWriteUnits(msg) {
		switch fv := field.(type) {
		case *schema.SingleField:
			g.renderSingleWrite(&body, ctx, fv, imp)
		case *schema.OneOfField:
			g.renderOneOfWrite(&body, ctx, msg, fv, imp)
		}
	}
	body.WriteString("\treturn nil\n}\n\n")

	fmt.Fprintf(&body, "// Size returns the exact number of bytes Write will produce for m.\n")
	fmt.Fprintf(&body, "func (wr %s) Size(m %s) int {\n\tsize := 0\n", writerName, modelRef)
	for _, field := range sortedWriteUnits(msg) {
		switch fv := field.(type) {
		case *schema.SingleField:
			g.renderSingleSize(&body, ctx, fv, imp)
		case *schema.OneOfField:
			g.renderOneOfSize(&body, ctx, msg, fv, imp)
		}
	}
	body.WriteString("\treturn size\n}\n")

	var file strings.Builder
	file.WriteString(header(msg.File()))
	fmt.Fprintf(&file, "package %s\n\n", pkgIdent(pkgPath))
	file.WriteString(imp.render())
	file.WriteString("\n")
	file.WriteString(body.String())

	fileName := writerName + ".go"
	content, err := formatSource(fileName, []byte(file.String()))
	if err != nil {
		return nil, err
	}
	return &Artifact{Package: pkgPath, Name: fileName, Content: content}, nil
}

func (g *WriterEmitter) packedCall(ctx *fieldContext, sf *schema.SingleField, imp *importSet, sizeOnly bool) string {
	elemType := scalarGoType(sf.Type)
	if sf.Type == schema.TypeEnum {
		elemType = ctx.enumTypeRef(sf, imp)
	}
	enc := packedEncFunc(sf.Type, elemType)
	if strings.HasPrefix(enc, "math.") {
		imp.add("math")
	}
	fieldExpr := "m." + sf.NamePascal()

	switch packedFamily(sf.Type) {
	case "varint":
		if sizeOnly {
			return fmt.Sprintf("runtime.SizeOfPackedVarintField(%d, %s, %s)", sf.Number, fieldExpr, enc)
		}
		return fmt.Sprintf("runtime.WritePackedVarintField(w, %d, %s, %s)", sf.Number, fieldExpr, enc)
	case "fixed32":
		if sizeOnly {
			return fmt.Sprintf("runtime.SizeOfPackedFixed32Field(%d, len(%s))", sf.Number, fieldExpr)
		}
		return fmt.Sprintf("runtime.WritePackedFixed32Field(w, %d, %s, %s)", sf.Number, fieldExpr, enc)
	case "fixed64":
		if sizeOnly {
			return fmt.Sprintf("runtime.SizeOfPackedFixed64Field(%d, len(%s))", sf.Number, fieldExpr)
		}
		return fmt.Sprintf("runtime.WritePackedFixed64Field(w, %d, %s, %s)", sf.Number, fieldExpr, enc)
	}
	return ""
}

func (g *WriterEmitter) renderSingleWrite(b *strings.Builder, ctx *fieldContext, sf *schema.SingleField, imp *importSet) {
	fieldExpr := "m." + sf.NamePascal()

	switch {
	case sf.Repeated && packedFamily(sf.Type) != "":
		fmt.Fprintf(b, "\tif err := %s; err != nil {\n\t\treturn err\n\t}\n", g.packedCall(ctx, sf, imp, false))
	case sf.Repeated && sf.Type == schema.TypeMessage:
		writerRef := ctx.writerRef(sf, imp)
		fmt.Fprintf(b, "\tfor i := range %s {\n", fieldExpr)
		fmt.Fprintf(b, "\t\tv := %s[i]\n", fieldExpr)
		g.renderMessageWrite(b, writerRef, sf.Number, "v", "\t\t")
		b.WriteString("\t}\n")
	case sf.Repeated:
		// repeated string/bytes stay length-delimited per element
		fmt.Fprintf(b, "\tfor _, v := range %s {\n", fieldExpr)
		fmt.Fprintf(b, "\t\tif err := %s; err != nil {\n\t\t\treturn err\n\t\t}\n", writeFieldCall(sf.Type, sf.Number, "v", false))
		b.WriteString("\t}\n")
	case sf.Type == schema.TypeMessage:
		writerRef := ctx.writerRef(sf, imp)
		fmt.Fprintf(b, "\tif %s != nil {\n", fieldExpr)
		g.renderMessageWrite(b, writerRef, sf.Number, "(*"+fieldExpr+")", "\t\t")
		b.WriteString("\t}\n")
	case sf.Wrapper:
		// on the wire the wrapper stays a nested message; a present
		// default value becomes an empty wrapper body
		fmt.Fprintf(b, "\tif %s != nil {\n", fieldExpr)
		g.renderWrapperWrite(b, sf, "*"+fieldExpr, "\t\t")
		b.WriteString("\t}\n")
	case sf.Optional:
		// proto3 optional fields are written even at their default value
		fmt.Fprintf(b, "\tif %s != nil {\n", fieldExpr)
		fmt.Fprintf(b, "\t\tif err := %s; err != nil {\n\t\t\treturn err\n\t\t}\n", writeFieldCall(sf.Type, sf.Number, "*"+fieldExpr, false))
		b.WriteString("\t}\n")
	default:
		fmt.Fprintf(b, "\tif err := %s; err != nil {\n\t\treturn err\n\t}\n", writeFieldCall(sf.Type, sf.Number, fieldExpr, true))
	}
}

func (g *WriterEmitter) renderWrapperWrite(b *strings.Builder, sf *schema.SingleField, valueExpr, indent string) {
	fmt.Fprintf(b, "%sif err := runtime.WriteMessageField(w, %d, %s, func(w runtime.WritableSequentialData) error {\n",
		indent, sf.Number, sizeFieldCall(sf.Type, 1, valueExpr, true))
	fmt.Fprintf(b, "%s\treturn %s\n", indent, writeFieldCall(sf.Type, 1, valueExpr, true))
	fmt.Fprintf(b, "%s}); err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
}

func (g *WriterEmitter) renderMessageWrite(b *strings.Builder, writerRef string, num int32, valueExpr, indent string) {
	fmt.Fprintf(b, "%sif err := runtime.WriteMessageField(w, %d, %s{}.Size(%s), func(w runtime.WritableSequentialData) error {\n",
		indent, num, writerRef, valueExpr)
	fmt.Fprintf(b, "%s\treturn %s{}.Write(%s, w)\n", indent, writerRef, valueExpr)
	fmt.Fprintf(b, "%s}); err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
}

func (g *WriterEmitter) renderOneOfWrite(b *strings.Builder, ctx *fieldContext, msg *schema.Message, of *schema.OneOfField, imp *importSet) {
	fmt.Fprintf(b, "\tswitch m.%s.Kind() {\n", of.NamePascal())
	for _, child := range of.Fields {
		getter := "m." + child.NamePascal() + "()"
		fmt.Fprintf(b, "\tcase %s:\n", oneOfConst(msg, of, child.UpperSnakeName()))
		switch {
		case child.Type == schema.TypeMessage:
			writerRef := ctx.writerRef(child, imp)
			fmt.Fprintf(b, "\t\tif v := %s; v != nil {\n", getter)
			g.renderMessageWrite(b, writerRef, child.Number, "(*v)", "\t\t\t")
			b.WriteString("\t\t}\n")
		case child.Wrapper:
			fmt.Fprintf(b, "\t\tif v := %s; v != nil {\n", getter)
			g.renderWrapperWrite(b, child, "*v", "\t\t\t")
			b.WriteString("\t\t}\n")
		case child.Optional:
			fmt.Fprintf(b, "\t\tif v := %s; v != nil {\n", getter)
			fmt.Fprintf(b, "\t\t\tif err := %s; err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", writeFieldCall(child.Type, child.Number, "*v", false))
			b.WriteString("\t\t}\n")
		default:
			// live branches are written even at the scalar default: oneof
			// presence is explicit on the wire
			fmt.Fprintf(b, "\t\tif err := %s; err != nil {\n\t\t\treturn err\n\t\t}\n", writeFieldCall(child.Type, child.Number, getter, false))
		}
	}
	b.WriteString("\t}\n")
}

func (g *WriterEmitter) renderSingleSize(b *strings.Builder, ctx *fieldContext, sf *schema.SingleField, imp *importSet) {
	fieldExpr := "m." + sf.NamePascal()

	switch {
	case sf.Repeated && packedFamily(sf.Type) != "":
		fmt.Fprintf(b, "\tsize += %s\n", g.packedCall(ctx, sf, imp, true))
	case sf.Repeated && sf.Type == schema.TypeMessage:
		writerRef := ctx.writerRef(sf, imp)
		fmt.Fprintf(b, "\tfor i := range %s {\n", fieldExpr)
		fmt.Fprintf(b, "\t\tsize += runtime.SizeOfMessageField(%d, %s{}.Size(%s[i]))\n", sf.Number, writerRef, fieldExpr)
		b.WriteString("\t}\n")
	case sf.Repeated:
		fmt.Fprintf(b, "\tfor _, v := range %s {\n", fieldExpr)
		fmt.Fprintf(b, "\t\tsize += %s\n", sizeFieldCall(sf.Type, sf.Number, "v", false))
		b.WriteString("\t}\n")
	case sf.Type == schema.TypeMessage:
		writerRef := ctx.writerRef(sf, imp)
		fmt.Fprintf(b, "\tif %s != nil {\n\t\tsize += runtime.SizeOfMessageField(%d, %s{}.Size(*%s))\n\t}\n",
			fieldExpr, sf.Number, writerRef, fieldExpr)
	case sf.Wrapper:
		fmt.Fprintf(b, "\tif %s != nil {\n\t\tsize += runtime.SizeOfMessageField(%d, %s)\n\t}\n",
			fieldExpr, sf.Number, sizeFieldCall(sf.Type, 1, "*"+fieldExpr, true))
	case sf.Optional:
		fmt.Fprintf(b, "\tif %s != nil {\n\t\tsize += %s\n\t}\n", fieldExpr, sizeFieldCall(sf.Type, sf.Number, "*"+fieldExpr, false))
	default:
		fmt.Fprintf(b, "\tsize += %s\n", sizeFieldCall(sf.Type, sf.Number, fieldExpr, true))
	}
}

func (g *WriterEmitter) renderOneOfSize(b *strings.Builder, ctx *fieldContext, msg *schema.Message, of *schema.OneOfField, imp *importSet) {
	fmt.Fprintf(b, "\tswitch m.%s.Kind() {\n", of.NamePascal())
	for _, child := range of.Fields {
		getter := "m." + child.NamePascal() + "()"
		fmt.Fprintf(b, "\tcase %s:\n", oneOfConst(msg, of, child.UpperSnakeName()))
		switch {
		case child.Type == schema.TypeMessage:
			writerRef := ctx.writerRef(child, imp)
			fmt.Fprintf(b, "\t\tif v := %s; v != nil {\n\t\t\tsize += runtime.SizeOfMessageField(%d, %s{}.Size(*v))\n\t\t}\n",
				getter, child.Number, writerRef)
		case child.Wrapper:
			fmt.Fprintf(b, "\t\tif v := %s; v != nil {\n\t\t\tsize += runtime.SizeOfMessageField(%d, %s)\n\t\t}\n",
				getter, child.Number, sizeFieldCall(child.Type, 1, "*v", true))
		case child.Optional:
			fmt.Fprintf(b, "\t\tif v := %s; v != nil {\n\t\t\tsize += %s\n\t\t}\n", getter, sizeFieldCall(child.Type, child.Number, "*v", false))
		default:
			fmt.Fprintf(b, "\t\tsize += %s\n", sizeFieldCall(child.Type, child.Number, getter, false))
		}
	}
	b.WriteString("\t}\n")
}
