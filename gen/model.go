package gen

import (
	"fmt"
	"strings"

	"github.com/protorec/protorec/schema"
)

// ModelEmitter renders the immutable record type for a message: the struct,
// oneof discriminant enums, nested enum types, Equal and HashCode, the
// codec references, convenience accessors and the builder.
type ModelEmitter struct {
	cfg *Config
}

// NewModelEmitter returns a model emitter over the shared config.
func NewModelEmitter(cfg *Config) *ModelEmitter {
	return &ModelEmitter{cfg: cfg}
}

// Emit renders the model file for msg.
func (g *ModelEmitter) Emit(msg *schema.Message) (*Artifact, error) {
	pkgPath := g.cfg.Lookup.PackageForMessage(schema.KindModel, msg)
	ctx := &fieldContext{cfg: g.cfg, msg: msg, pkg: pkgPath}
	imp := newImportSet()
	imp.add(runtimePkg)
	if len(msg.Enums) > 0 {
		// nested enum String methods format unknown numbers
		imp.add("fmt")
	}

	name := msg.GeneratedName()
	var body strings.Builder

	g.renderStruct(&body, ctx, msg, imp)
	g.renderOneOfEnums(&body, msg)
	for _, e := range msg.Enums {
		renderEnum(&body, e)
		body.WriteString("\n")
	}
	g.renderCodecs(&body, ctx, msg, imp)
	g.renderEqual(&body, ctx, msg, imp)
	g.renderHashCode(&body, ctx, msg, imp)
	g.renderHasAccessors(&body, ctx, msg, imp)
	g.renderOneOfAccessors(&body, ctx, msg, imp)
	g.renderBuilder(&body, ctx, msg, imp)

	var file strings.Builder
	file.WriteString(header(msg.File()))
	fmt.Fprintf(&file, "package %s\n\n", pkgIdent(pkgPath))
	file.WriteString(imp.render())
	file.WriteString("\n")
	file.WriteString(body.String())

	fileName := name + ".go"
	content, err := formatSource(fileName, []byte(file.String()))
	if err != nil {
		return nil, err
	}
	return &Artifact{Package: pkgPath, Name: fileName, Content: content}, nil
}

func (g *ModelEmitter) renderStruct(b *strings.Builder, ctx *fieldContext, msg *schema.Message, imp *importSet) {
	name := msg.GeneratedName()

	doc := msg.Doc
	if doc == "" {
		doc = name + " is the " + msg.Name + " message."
	}
	b.WriteString(docComment(doc, msg.Deprecated, ""))
	fmt.Fprintf(b, "type %s struct {\n", name)
	for _, field := range msg.Fields {
		switch fv := field.(type) {
		case *schema.SingleField:
			b.WriteString(docComment(fv.Doc(), fv.Deprecated(), "\t"))
			fmt.Fprintf(b, "\t%s %s\n", fv.NamePascal(), ctx.goFieldType(fv, imp))
		case *schema.OneOfField:
			b.WriteString(docComment(fv.Doc(), false, "\t"))
			fmt.Fprintf(b, "\t%s runtime.OneOf[%s]\n", fv.NamePascal(), oneOfEnumType(msg, fv))
		}
	}
	b.WriteString("}\n\n")
}

func (g *ModelEmitter) renderOneOfEnums(b *strings.Builder, msg *schema.Message) {
	for _, field := range msg.Fields {
		of, ok := field.(*schema.OneOfField)
		if !ok {
			continue
		}
		enumType := oneOfEnumType(msg, of)

		fmt.Fprintf(b, "// %s identifies the live branch of the %q oneof.\n", enumType, of.Name())
		fmt.Fprintf(b, "type %s int32\n\n", enumType)
		b.WriteString("const (\n")
		fmt.Fprintf(b, "\t%s_UNSET %s = 0\n", enumType, enumType)
		for _, child := range of.Fields {
			fmt.Fprintf(b, "\t%s_%s %s = %d\n", enumType, child.UpperSnakeName(), enumType, child.Number)
		}
		b.WriteString(")\n\n")

		fmt.Fprintf(b, "// String returns the schema name of the discriminant.\n")
		fmt.Fprintf(b, "func (v %s) String() string {\n\tswitch v {\n", enumType)
		for _, child := range of.Fields {
			fmt.Fprintf(b, "\tcase %s_%s:\n\t\treturn %q\n", enumType, child.UpperSnakeName(), child.UpperSnakeName())
		}
		fmt.Fprintf(b, "\t}\n\treturn \"UNSET\"\n}\n\n")
	}
}

func (g *ModelEmitter) renderCodecs(b *strings.Builder, ctx *fieldContext, msg *schema.Message, imp *importSet) {
	name := msg.GeneratedName()
	l := g.cfg.Lookup

	parserRef := ctx.typeRef(l.PackageForMessage(schema.KindParser, msg), name+"Parser", imp)
	writerRef := ctx.typeRef(l.PackageForMessage(schema.KindWriter, msg), name+"Writer", imp)

	fmt.Fprintf(b, "// %s is the protobuf codec for %s.\n", l.UnqualifiedTypeForMessage(schema.KindCodec, msg), name)
	fmt.Fprintf(b, "var %s = runtime.NewCodec(%s{}.Parse, %s{}.Write, %s{}.Size)\n\n",
		l.UnqualifiedTypeForMessage(schema.KindCodec, msg), parserRef, writerRef, writerRef)

	fmt.Fprintf(b, "// %s is the JSON codec for %s.\n", l.UnqualifiedTypeForMessage(schema.KindJSONCodec, msg), name)
	fmt.Fprintf(b, "var %s = runtime.NewJSONCodec[%s]()\n\n", l.UnqualifiedTypeForMessage(schema.KindJSONCodec, msg), name)

	fmt.Fprintf(b, "// Default%s is the shared instance with every field at its default.\n", name)
	fmt.Fprintf(b, "var Default%s = New%sBuilder().Build()\n\n", name, name)
}

func (g *ModelEmitter) renderEqual(b *strings.Builder, ctx *fieldContext, msg *schema.Message, imp *importSet) {
	name := msg.GeneratedName()

	fmt.Fprintf(b, "// Equal reports field-wise equality. Floats compare by bit pattern, so\n// NaN values compare equal to themselves.\n")
	fmt.Fprintf(b, "func (m %s) Equal(o %s) bool {\n", name, name)
	for _, field := range msg.Fields {
		switch fv := field.(type) {
		case *schema.SingleField:
			g.renderSingleEqual(b, ctx, fv, imp)
		case *schema.OneOfField:
			g.renderOneOfEqual(b, ctx, msg, fv, imp)
		}
	}
	b.WriteString("\treturn true\n}\n\n")
}

func (g *ModelEmitter) renderSingleEqual(b *strings.Builder, ctx *fieldContext, sf *schema.SingleField, imp *importSet) {
	fname := "m." + sf.NamePascal()
	oname := "o." + sf.NamePascal()

	switch {
	case sf.Repeated:
		switch sf.Type {
		case schema.TypeMessage:
			elem := ctx.messageTypeRef(sf, imp)
			imp.add("slices")
			fmt.Fprintf(b, "\tif !slices.EqualFunc(%s, %s, %s.Equal) {\n\t\treturn false\n\t}\n", fname, oname, elem)
		case schema.TypeBytes:
			imp.add("slices")
			fmt.Fprintf(b, "\tif !slices.EqualFunc(%s, %s, runtime.Bytes.Equal) {\n\t\treturn false\n\t}\n", fname, oname)
		case schema.TypeFloat:
			imp.add("slices")
			fmt.Fprintf(b, "\tif !slices.EqualFunc(%s, %s, runtime.Float32Equal) {\n\t\treturn false\n\t}\n", fname, oname)
		case schema.TypeDouble:
			imp.add("slices")
			fmt.Fprintf(b, "\tif !slices.EqualFunc(%s, %s, runtime.Float64Equal) {\n\t\treturn false\n\t}\n", fname, oname)
		default:
			imp.add("slices")
			fmt.Fprintf(b, "\tif !slices.Equal(%s, %s) {\n\t\treturn false\n\t}\n", fname, oname)
		}
	case sf.Type == schema.TypeMessage:
		elem := ctx.messageTypeRef(sf, imp)
		fmt.Fprintf(b, "\tif !runtime.PtrEqualFunc(%s, %s, %s.Equal) {\n\t\treturn false\n\t}\n", fname, oname, elem)
	case sf.Optional:
		switch sf.Type {
		case schema.TypeBytes:
			fmt.Fprintf(b, "\tif !runtime.PtrEqualFunc(%s, %s, runtime.Bytes.Equal) {\n\t\treturn false\n\t}\n", fname, oname)
		case schema.TypeFloat:
			fmt.Fprintf(b, "\tif !runtime.PtrEqualFunc(%s, %s, runtime.Float32Equal) {\n\t\treturn false\n\t}\n", fname, oname)
		case schema.TypeDouble:
			fmt.Fprintf(b, "\tif !runtime.PtrEqualFunc(%s, %s, runtime.Float64Equal) {\n\t\treturn false\n\t}\n", fname, oname)
		default:
			fmt.Fprintf(b, "\tif !runtime.PtrEqual(%s, %s) {\n\t\treturn false\n\t}\n", fname, oname)
		}
	default:
		fmt.Fprintf(b, "\tif !(%s) {\n\t\treturn false\n\t}\n", equalExpr(sf.Type, fname, oname))
	}
}

func (g *ModelEmitter) renderOneOfEqual(b *strings.Builder, ctx *fieldContext, msg *schema.Message, of *schema.OneOfField, imp *importSet) {
	fname := "m." + of.NamePascal()
	oname := "o." + of.NamePascal()

	fmt.Fprintf(b, "\tif %s.Kind() != %s.Kind() {\n\t\treturn false\n\t}\n", fname, oname)
	fmt.Fprintf(b, "\tswitch %s.Kind() {\n", fname)
	for _, child := range of.Fields {
		getter := child.NamePascal()
		fmt.Fprintf(b, "\tcase %s:\n", oneOfConst(msg, of, child.UpperSnakeName()))
		switch {
		case child.Type == schema.TypeMessage:
			elem := ctx.messageTypeRef(child, imp)
			fmt.Fprintf(b, "\t\tif !runtime.PtrEqualFunc(m.%s(), o.%s(), %s.Equal) {\n\t\t\treturn false\n\t\t}\n", getter, getter, elem)
		case child.Optional:
			switch child.Type {
			case schema.TypeBytes:
				fmt.Fprintf(b, "\t\tif !runtime.PtrEqualFunc(m.%s(), o.%s(), runtime.Bytes.Equal) {\n\t\t\treturn false\n\t\t}\n", getter, getter)
			case schema.TypeFloat:
				fmt.Fprintf(b, "\t\tif !runtime.PtrEqualFunc(m.%s(), o.%s(), runtime.Float32Equal) {\n\t\t\treturn false\n\t\t}\n", getter, getter)
			case schema.TypeDouble:
				fmt.Fprintf(b, "\t\tif !runtime.PtrEqualFunc(m.%s(), o.%s(), runtime.Float64Equal) {\n\t\t\treturn false\n\t\t}\n", getter, getter)
			default:
				fmt.Fprintf(b, "\t\tif !runtime.PtrEqual(m.%s(), o.%s()) {\n\t\t\treturn false\n\t\t}\n", getter, getter)
			}
		default:
			fmt.Fprintf(b, "\t\tif !(%s) {\n\t\t\treturn false\n\t\t}\n", equalExpr(child.Type, "m."+getter+"()", "o."+getter+"()"))
		}
	}
	b.WriteString("\t}\n")
}

func (g *ModelEmitter) renderHashCode(b *strings.Builder, ctx *fieldContext, msg *schema.Message, imp *importSet) {
	name := msg.GeneratedName()

	fmt.Fprintf(b, "// HashCode mixes every field in declaration order and applies the fixed\n// avalanche finalizer. Equal values hash identically across processes.\n")
	fmt.Fprintf(b, "func (m %s) HashCode() int32 {\n\th := int32(1)\n", name)
	for _, field := range msg.Fields {
		switch fv := field.(type) {
		case *schema.SingleField:
			g.renderSingleMix(b, ctx, fv, imp)
		case *schema.OneOfField:
			g.renderOneOfMix(b, ctx, msg, fv)
		}
	}
	b.WriteString("\treturn runtime.FinalizeHash(h)\n}\n\n")
}

func (g *ModelEmitter) renderSingleMix(b *strings.Builder, ctx *fieldContext, sf *schema.SingleField, imp *importSet) {
	fname := "m." + sf.NamePascal()

	switch {
	case sf.Repeated:
		fmt.Fprintf(b, "\tfor _, v := range %s {\n", fname)
		if sf.Type == schema.TypeMessage {
			fmt.Fprintf(b, "\t\th = runtime.MixInt32(h, v.HashCode())\n")
		} else if sf.Type == schema.TypeEnum {
			fmt.Fprintf(b, "\t\th = runtime.MixInt32(h, int32(v))\n")
		} else {
			fmt.Fprintf(b, "\t\t%s\n", mixStmt(sf.Type, "v"))
		}
		b.WriteString("\t}\n")
	case sf.Type == schema.TypeMessage:
		fmt.Fprintf(b, "\tif %s != nil {\n\t\th = runtime.MixInt32(h, %s.HashCode())\n\t} else {\n\t\th = runtime.MixNil(h)\n\t}\n", fname, fname)
	case sf.Optional:
		fmt.Fprintf(b, "\tif %s != nil {\n\t\t%s\n\t} else {\n\t\th = runtime.MixNil(h)\n\t}\n", fname, mixStmt(sf.Type, "*"+fname))
	default:
		fmt.Fprintf(b, "\t%s\n", mixStmt(sf.Type, fname))
	}
}

func (g *ModelEmitter) renderOneOfMix(b *strings.Builder, ctx *fieldContext, msg *schema.Message, of *schema.OneOfField) {
	fname := "m." + of.NamePascal()

	fmt.Fprintf(b, "\th = runtime.MixInt32(h, int32(%s.Kind()))\n", fname)
	fmt.Fprintf(b, "\tswitch %s.Kind() {\n", fname)
	for _, child := range of.Fields {
		getter := "m." + child.NamePascal() + "()"
		fmt.Fprintf(b, "\tcase %s:\n", oneOfConst(msg, of, child.UpperSnakeName()))
		switch {
		case child.Type == schema.TypeMessage:
			fmt.Fprintf(b, "\t\tif v := %s; v != nil {\n\t\t\th = runtime.MixInt32(h, v.HashCode())\n\t\t} else {\n\t\t\th = runtime.MixNil(h)\n\t\t}\n", getter)
		case child.Optional:
			fmt.Fprintf(b, "\t\tif v := %s; v != nil {\n\t\t\t%s\n\t\t} else {\n\t\t\th = runtime.MixNil(h)\n\t\t}\n", getter, mixStmt(child.Type, "*v"))
		default:
			fmt.Fprintf(b, "\t\t%s\n", mixStmt(child.Type, getter))
		}
	}
	b.WriteString("\t}\n")
}

func (g *ModelEmitter) renderHasAccessors(b *strings.Builder, ctx *fieldContext, msg *schema.Message, imp *importSet) {
	name := msg.GeneratedName()

	for _, field := range msg.Fields {
		sf, ok := field.(*schema.SingleField)
		if !ok || sf.Type != schema.TypeMessage || sf.Repeated {
			continue
		}
		fieldName := sf.NamePascal()
		elem := ctx.messageTypeRef(sf, imp)

		fmt.Fprintf(b, "// Has%s reports whether %s holds a value.\n", fieldName, fieldName)
		fmt.Fprintf(b, "func (m %s) Has%s() bool {\n\treturn m.%s != nil\n}\n\n", name, fieldName, fieldName)

		fmt.Fprintf(b, "// %sOrElse returns %s, or defaultValue when it is absent.\n", fieldName, fieldName)
		fmt.Fprintf(b, "func (m %s) %sOrElse(defaultValue %s) %s {\n\tif m.%s != nil {\n\t\treturn *m.%s\n\t}\n\treturn defaultValue\n}\n\n",
			name, fieldName, elem, elem, fieldName, fieldName)

		fmt.Fprintf(b, "// Must%s returns %s and panics when it is absent.\n", fieldName, fieldName)
		fmt.Fprintf(b, "func (m %s) Must%s() %s {\n\tif m.%s == nil {\n\t\tpanic(\"field %s is not set\")\n\t}\n\treturn *m.%s\n}\n\n",
			name, fieldName, elem, fieldName, fieldName, fieldName)

		fmt.Fprintf(b, "// If%s calls f with %s when it holds a value.\n", fieldName, fieldName)
		fmt.Fprintf(b, "func (m %s) If%s(f func(%s)) {\n\tif m.%s != nil {\n\t\tf(*m.%s)\n\t}\n}\n\n",
			name, fieldName, elem, fieldName, fieldName)
	}
}

func (g *ModelEmitter) renderOneOfAccessors(b *strings.Builder, ctx *fieldContext, msg *schema.Message, imp *importSet) {
	name := msg.GeneratedName()

	for _, field := range msg.Fields {
		of, ok := field.(*schema.OneOfField)
		if !ok {
			continue
		}
		for _, child := range of.Fields {
			branch := child.NamePascal()
			konst := oneOfConst(msg, of, child.UpperSnakeName())
			valueType := g.oneOfValueType(ctx, child, imp)
			zero := g.oneOfZeroExpr(child, valueType)

			fmt.Fprintf(b, "// %s returns the %q branch, or the zero value when a different\n// branch is live.\n", branch, child.Name())
			fmt.Fprintf(b, "func (m %s) %s() %s {\n\tif m.%s.Kind() == %s {\n\t\tv, _ := runtime.As[%s](m.%s)\n\t\treturn v\n\t}\n\treturn %s\n}\n\n",
				name, branch, valueType, of.NamePascal(), konst, valueType, of.NamePascal(), zero)

			fmt.Fprintf(b, "// Has%s reports whether the %q branch is live.\n", branch, child.Name())
			fmt.Fprintf(b, "func (m %s) Has%s() bool {\n\treturn m.%s.Kind() == %s\n}\n\n", name, branch, of.NamePascal(), konst)

			fmt.Fprintf(b, "// %sOrElse returns the branch value, or defaultValue when the branch\n// is not live.\n", branch)
			fmt.Fprintf(b, "func (m %s) %sOrElse(defaultValue %s) %s {\n\tif m.Has%s() {\n\t\treturn m.%s()\n\t}\n\treturn defaultValue\n}\n\n",
				name, branch, valueType, valueType, branch, branch)

			fmt.Fprintf(b, "// Must%s returns the branch value and panics when the branch is not live.\n", branch)
			fmt.Fprintf(b, "func (m %s) Must%s() %s {\n\tif !m.Has%s() {\n\t\tpanic(\"oneof branch %s is not set\")\n\t}\n\treturn m.%s()\n}\n\n",
				name, branch, valueType, branch, child.Name(), branch)
		}
	}
}

// oneOfValueType is the Go type a oneof branch's value is stored as inside
// the union: pointers for messages and wrapper-optionals, plain values
// otherwise.
func (g *ModelEmitter) oneOfValueType(ctx *fieldContext, child *schema.SingleField, imp *importSet) string {
	switch {
	case child.Type == schema.TypeMessage:
		return "*" + ctx.messageTypeRef(child, imp)
	case child.Optional:
		return "*" + scalarGoType(child.Type)
	case child.Type == schema.TypeEnum:
		return ctx.enumTypeRef(child, imp)
	default:
		return scalarGoType(child.Type)
	}
}

func (g *ModelEmitter) oneOfZeroExpr(child *schema.SingleField, valueType string) string {
	if strings.HasPrefix(valueType, "*") {
		return "nil"
	}
	switch child.Type {
	case schema.TypeString:
		return `""`
	case schema.TypeBool:
		return "false"
	case schema.TypeBytes:
		return "runtime.Bytes{}"
	case schema.TypeEnum:
		return valueType + "(0)"
	default:
		return "0"
	}
}

func (g *ModelEmitter) renderBuilder(b *strings.Builder, ctx *fieldContext, msg *schema.Message, imp *importSet) {
	name := msg.GeneratedName()
	builder := name + "Builder"

	fmt.Fprintf(b, "// %s assembles a %s value. Build normalizes the edge cases the\n// wire format cannot represent.\n", builder, name)
	fmt.Fprintf(b, "type %s struct {\n", builder)
	for _, field := range msg.Fields {
		switch fv := field.(type) {
		case *schema.SingleField:
			fmt.Fprintf(b, "\t%s %s\n", fv.NameCamel(), ctx.goFieldType(fv, imp))
		case *schema.OneOfField:
			fmt.Fprintf(b, "\t%s runtime.OneOf[%s]\n", fv.NameCamel(), oneOfEnumType(msg, fv))
		}
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "// New%s returns an empty builder.\n", builder)
	fmt.Fprintf(b, "func New%s() *%s {\n\treturn &%s{}\n}\n\n", builder, builder, builder)

	// setters
	for _, field := range msg.Fields {
		switch fv := field.(type) {
		case *schema.SingleField:
			g.renderSingleSetter(b, ctx, msg, fv, imp)
		case *schema.OneOfField:
			fmt.Fprintf(b, "// %s sets the whole %q oneof.\n", fv.NamePascal(), fv.Name())
			fmt.Fprintf(b, "func (b *%s) %s(v runtime.OneOf[%s]) *%s {\n\tb.%s = v\n\treturn b\n}\n\n",
				builder, fv.NamePascal(), oneOfEnumType(msg, fv), builder, fv.NameCamel())
			for _, child := range fv.Fields {
				valueType := g.oneOfValueType(ctx, child, imp)
				fmt.Fprintf(b, "// %s selects the %q branch.\n", child.NamePascal(), child.Name())
				fmt.Fprintf(b, "func (b *%s) %s(v %s) *%s {\n\tb.%s = runtime.NewOneOf(%s, v)\n\treturn b\n}\n\n",
					builder, child.NamePascal(), valueType, builder, fv.NameCamel(), oneOfConst(msg, fv, child.UpperSnakeName()))
			}
		}
	}

	g.renderBuild(b, ctx, msg)
	g.renderCopyBuilder(b, msg)
}

func (g *ModelEmitter) renderSingleSetter(b *strings.Builder, ctx *fieldContext, msg *schema.Message, sf *schema.SingleField, imp *importSet) {
	builder := msg.GeneratedName() + "Builder"
	fieldName := sf.NamePascal()
	goType := ctx.goFieldType(sf, imp)

	if sf.Repeated {
		fmt.Fprintf(b, "// %s sets the %q list.\n", fieldName, sf.Name())
		fmt.Fprintf(b, "func (b *%s) %s(values ...%s) *%s {\n\tb.%s = values\n\treturn b\n}\n\n",
			builder, fieldName, strings.TrimPrefix(goType, "[]"), builder, sf.NameCamel())
		return
	}

	fmt.Fprintf(b, "// %s sets the %q field.\n", fieldName, sf.Name())
	fmt.Fprintf(b, "func (b *%s) %s(v %s) *%s {\n\tb.%s = v\n\treturn b\n}\n\n",
		builder, fieldName, goType, builder, sf.NameCamel())

	if sf.Type == schema.TypeMessage && !sf.Optional {
		sub := ctx.resolved(sf).Message
		subBuilder := ctx.typeRef(g.cfg.Lookup.PackageForMessage(schema.KindModel, sub), sub.GeneratedName()+"Builder", imp)
		fmt.Fprintf(b, "// %sBuilder builds the %q field in place.\n", fieldName, sf.Name())
		fmt.Fprintf(b, "func (b *%s) %sBuilder(sub *%s) *%s {\n\tv := sub.Build()\n\tb.%s = &v\n\treturn b\n}\n\n",
			builder, fieldName, subBuilder, builder, sf.NameCamel())
	}
}

func (g *ModelEmitter) renderBuild(b *strings.Builder, ctx *fieldContext, msg *schema.Message) {
	name := msg.GeneratedName()
	builder := name + "Builder"

	fmt.Fprintf(b, "// Build assembles the value. A oneof whose live branch is a\n// wrapper-optional holding nil normalizes to UNSET: the wire format\n// cannot tell those apart.\n")
	fmt.Fprintf(b, "func (b *%s) Build() %s {\n", builder, name)

	for _, field := range msg.Fields {
		of, ok := field.(*schema.OneOfField)
		if !ok {
			continue
		}
		local := of.NameCamel()
		fmt.Fprintf(b, "\t%s := b.%s\n", local, local)
		for _, child := range of.Fields {
			if !child.Optional || child.Type == schema.TypeMessage {
				continue
			}
			fmt.Fprintf(b, "\tif %s.Kind() == %s {\n", local, oneOfConst(msg, of, child.UpperSnakeName()))
			fmt.Fprintf(b, "\t\tif v, _ := runtime.As[*%s](%s); v == nil {\n", scalarGoType(child.Type), local)
			fmt.Fprintf(b, "\t\t\t%s = runtime.OneOf[%s]{}\n\t\t}\n\t}\n", local, oneOfEnumType(msg, of))
		}
	}

	fmt.Fprintf(b, "\treturn %s{\n", name)
	for _, field := range msg.Fields {
		switch fv := field.(type) {
		case *schema.SingleField:
			fmt.Fprintf(b, "\t\t%s: b.%s,\n", fv.NamePascal(), fv.NameCamel())
		case *schema.OneOfField:
			fmt.Fprintf(b, "\t\t%s: %s,\n", fv.NamePascal(), fv.NameCamel())
		}
	}
	b.WriteString("\t}\n}\n\n")
}

func (g *ModelEmitter) renderCopyBuilder(b *strings.Builder, msg *schema.Message) {
	name := msg.GeneratedName()
	builder := name + "Builder"

	fmt.Fprintf(b, "// CopyBuilder returns a builder pre-populated with the current values.\n")
	fmt.Fprintf(b, "func (m %s) CopyBuilder() *%s {\n\treturn &%s{\n", name, builder, builder)
	for _, field := range msg.Fields {
		fmt.Fprintf(b, "\t\t%s: m.%s,\n", fieldCamel(field), fieldPascal(field))
	}
	b.WriteString("\t}\n}\n\n")
}

func fieldCamel(f schema.Field) string {
	return f.NameCamel()
}

func fieldPascal(f schema.Field) string {
	return f.NamePascal()
}
