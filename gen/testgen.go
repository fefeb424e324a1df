package gen

import (
	"fmt"
	"strings"

	"github.com/protorec/protorec/schema"
)

// TestEmitter renders the generated unit test for a message: a
// createXTestArguments function building representative model permutations
// per field type, and a round-trip test that writes, re-parses and
// compares every permutation, optionally against the reference protobuf
// implementation.
type TestEmitter struct {
	cfg *Config
}

// NewTestEmitter returns a test emitter over the shared config.
func NewTestEmitter(cfg *Config) *TestEmitter {
	return &TestEmitter{cfg: cfg}
}

// Emit renders the test file for msg.
func (g *TestEmitter) Emit(msg *schema.Message) (*Artifact, error) {
	modelPkg := g.cfg.Lookup.PackageForMessage(schema.KindModel, msg)
	testPkg := g.cfg.Lookup.PackageForMessage(schema.KindTest, msg)
	ctx := &fieldContext{cfg: g.cfg, msg: msg, pkg: testPkg}
	imp := newImportSet()
	imp.add(runtimePkg)
	imp.add(modelPkg)
	imp.add("testing")
	imp.add("fmt")

	name := msg.GeneratedName()
	model := pkgIdent(modelPkg)

	var body strings.Builder
	g.renderArguments(&body, ctx, msg, model, imp)
	g.renderRoundTripTest(&body, ctx, msg, model, imp)

	var file strings.Builder
	file.WriteString(header(msg.File()))
	fmt.Fprintf(&file, "package %s_test\n\n", pkgIdent(testPkg))
	file.WriteString(imp.render())
	file.WriteString("\n")
	file.WriteString(body.String())

	fileName := name + "_test.go"
	content, err := formatSource(fileName, []byte(file.String()))
	if err != nil {
		return nil, err
	}
	return &Artifact{Package: testPkg, Name: fileName, Content: content}, nil
}

// scalarSampleList renders the representative value list for a scalar
// type. The shapes follow the reference tables: full signed ranges for
// varints, sub-normal to infinity to NaN for floats.
func scalarSampleList(t schema.FieldType) string {
	switch t {
	case schema.TypeInt32, schema.TypeSint32, schema.TypeSfixed32:
		return "[]int32{math.MinInt32, -42, -21, 0, 21, 42, math.MaxInt32}"
	case schema.TypeUint32, schema.TypeFixed32:
		return "[]uint32{0, 1, 2, math.MaxUint32}"
	case schema.TypeInt64, schema.TypeSint64, schema.TypeSfixed64:
		return "[]int64{math.MinInt64, -42, -21, 0, 21, 42, math.MaxInt64}"
	case schema.TypeUint64, schema.TypeFixed64:
		return "[]uint64{0, 21, 42, math.MaxUint64}"
	case schema.TypeFloat:
		return "[]float32{float32(math.Inf(-1)), math.SmallestNonzeroFloat32, -102.7, -5, 1.7, 0, 3, 5.2, 42.1, math.MaxFloat32, float32(math.Inf(1)), float32(math.NaN())}"
	case schema.TypeDouble:
		return "[]float64{math.Inf(-1), math.SmallestNonzeroFloat64, -102.7, -5, 1.7, 0, 3, 5.2, 42.1, math.MaxFloat64, math.Inf(1), math.NaN()}"
	case schema.TypeBool:
		return "[]bool{true, false}"
	case schema.TypeString:
		return `[]string{"", "Dude"}`
	case schema.TypeBytes:
		return "[]runtime.Bytes{runtime.EmptyBytes, runtime.WrapBytes([]byte{0b001}), runtime.WrapBytes([]byte{0b001, 0b010, 0b011})}"
	default:
		return ""
	}
}

func usesMath(t schema.FieldType) bool {
	switch t {
	case schema.TypeBool, schema.TypeString, schema.TypeBytes:
		return false
	default:
		return true
	}
}

func (g *TestEmitter) renderArguments(b *strings.Builder, ctx *fieldContext, msg *schema.Message, model string, imp *importSet) {
	name := msg.GeneratedName()

	fmt.Fprintf(b, "// create%sTestArguments builds the representative permutations of %s.\n", name, name)
	fmt.Fprintf(b, "// The longest per-field sample list decides the permutation count; the\n// i-th value clamps into every list.\n")
	fmt.Fprintf(b, "func create%sTestArguments() []%s.%s {\n", name, model, name)

	var listVars []string
	for _, field := range msg.Fields {
		switch fv := field.(type) {
		case *schema.SingleField:
			listVar := fv.NameCamel() + "List"
			listVars = append(listVars, listVar)
			g.renderSingleList(b, ctx, fv, listVar, model, imp)
		case *schema.OneOfField:
			listVar := fv.NameCamel() + "List"
			listVars = append(listVars, listVar)
			g.renderOneOfList(b, ctx, msg, fv, listVar, model, imp)
		}
	}

	fmt.Fprintf(b, "\tmaxValues := 1\n\tfor _, n := range []int{")
	lens := make([]string, len(listVars))
	for i, v := range listVars {
		lens[i] = "len(" + v + ")"
	}
	b.WriteString(strings.Join(lens, ", "))
	b.WriteString("} {\n\t\tif n > maxValues {\n\t\t\tmaxValues = n\n\t\t}\n\t}\n")

	fmt.Fprintf(b, "\tout := make([]%s.%s, 0, maxValues)\n", model, name)
	b.WriteString("\tfor i := 0; i < maxValues; i++ {\n")
	fmt.Fprintf(b, "\t\tout = append(out, %s.New%sBuilder().\n", model, name)
	for _, field := range msg.Fields {
		listVar := field.NameCamel() + "List"
		clamp := fmt.Sprintf("%s[min(i, len(%s)-1)]", listVar, listVar)
		switch fv := field.(type) {
		case *schema.SingleField:
			switch {
			case fv.Repeated:
				fmt.Fprintf(b, "\t\t\t%s(%s...).\n", fv.NamePascal(), clamp)
			case fv.Type == schema.TypeMessage:
				fmt.Fprintf(b, "\t\t\t%s(&%s).\n", fv.NamePascal(), clamp)
			default:
				fmt.Fprintf(b, "\t\t\t%s(%s).\n", fv.NamePascal(), clamp)
			}
		case *schema.OneOfField:
			fmt.Fprintf(b, "\t\t\t%s(%s).\n", fv.NamePascal(), clamp)
		}
	}
	b.WriteString("\t\t\tBuild())\n\t}\n\treturn out\n}\n\n")
}

func (g *TestEmitter) renderSingleList(b *strings.Builder, ctx *fieldContext, sf *schema.SingleField, listVar, model string, imp *importSet) {
	switch {
	case sf.Repeated:
		elemList, elemType := g.elementList(ctx, sf, model, imp)
		baseVar := sf.NameCamel() + "Base"
		fmt.Fprintf(b, "\t%s := %s\n", baseVar, elemList)
		fmt.Fprintf(b, "\t%s := [][]%s{nil, {%s[0]}, %s}\n", listVar, elemType, baseVar, baseVar)
	case sf.Type == schema.TypeMessage:
		fmt.Fprintf(b, "\t%s := %s\n", listVar, g.messageArgsExpr(ctx, sf, imp))
	case sf.Type == schema.TypeEnum:
		enumRef := ctx.enumTypeRef(sf, imp)
		fmt.Fprintf(b, "\t%s := %sValues()\n", listVar, enumRef)
	case sf.Optional:
		elemList := scalarSampleList(sf.Type)
		if usesMath(sf.Type) {
			imp.add("math")
		}
		baseVar := sf.NameCamel() + "Base"
		elemType := scalarGoType(sf.Type)
		fmt.Fprintf(b, "\t%s := %s\n", baseVar, elemList)
		fmt.Fprintf(b, "\t%s := []*%s{nil}\n", listVar, elemType)
		fmt.Fprintf(b, "\tfor i := range %s {\n\t\t%s = append(%s, &%s[i])\n\t}\n", baseVar, listVar, listVar, baseVar)
	default:
		if usesMath(sf.Type) {
			imp.add("math")
		}
		fmt.Fprintf(b, "\t%s := %s\n", listVar, scalarSampleList(sf.Type))
	}
}

// elementList renders the sample list and element type for a repeated
// field's elements.
func (g *TestEmitter) elementList(ctx *fieldContext, sf *schema.SingleField, model string, imp *importSet) (expr, elemType string) {
	switch sf.Type {
	case schema.TypeMessage:
		return g.messageArgsExpr(ctx, sf, imp), ctx.messageTypeRef(sf, imp)
	case schema.TypeEnum:
		enumRef := ctx.enumTypeRef(sf, imp)
		return enumRef + "Values()", enumRef
	default:
		if usesMath(sf.Type) {
			imp.add("math")
		}
		return scalarSampleList(sf.Type), scalarGoType(sf.Type)
	}
}

// messageArgsExpr yields sample models for a message-typed field: the
// referenced message's own argument stream when it lives in the same test
// package, its default instance otherwise.
func (g *TestEmitter) messageArgsExpr(ctx *fieldContext, sf *schema.SingleField, imp *importSet) string {
	sym := ctx.resolved(sf)
	subModelPkg := g.cfg.Lookup.PackageForMessage(schema.KindModel, sym.Message)
	thisModelPkg := g.cfg.Lookup.PackageForMessage(schema.KindModel, ctx.msg)
	subName := sym.Message.GeneratedName()
	if subModelPkg == thisModelPkg {
		return fmt.Sprintf("create%sTestArguments()", subName)
	}
	imp.add(subModelPkg)
	qual := pkgIdent(subModelPkg)
	return fmt.Sprintf("[]%s.%s{%s.Default%s}", qual, subName, qual, subName)
}

func (g *TestEmitter) renderOneOfList(b *strings.Builder, ctx *fieldContext, msg *schema.Message, of *schema.OneOfField, listVar, model string, imp *importSet) {
	enumType := fmt.Sprintf("%s.%s", model, oneOfEnumType(msg, of))

	fmt.Fprintf(b, "\t%s := []runtime.OneOf[%s]{runtime.NewOneOf[%s](%s.%s_UNSET, nil)}\n",
		listVar, enumType, enumType, model, oneOfEnumType(msg, of))

	for _, child := range of.Fields {
		konst := fmt.Sprintf("%s.%s", model, oneOfConst(msg, of, child.UpperSnakeName()))
		if child.Type == schema.TypeMessage && g.cfg.CycleBreak[child.UpperSnakeName()] {
			// cycle-break: recursing into this branch's sample stream
			// would never terminate
			continue
		}
		switch {
		case child.Type == schema.TypeMessage:
			fmt.Fprintf(b, "\tfor _, v := range %s {\n\t\t%s = append(%s, runtime.NewOneOf(%s, runtime.Ptr(v)))\n\t}\n",
				g.messageArgsExpr(ctx, child, imp), listVar, listVar, konst)
		case child.Optional:
			if usesMath(child.Type) {
				imp.add("math")
			}
			fmt.Fprintf(b, "\t%s = append(%s, runtime.NewOneOf(%s, (*%s)(nil)))\n", listVar, listVar, konst, scalarGoType(child.Type))
			fmt.Fprintf(b, "\tfor _, v := range %s {\n\t\t%s = append(%s, runtime.NewOneOf(%s, runtime.Ptr(v)))\n\t}\n",
				scalarSampleList(child.Type), listVar, listVar, konst)
		case child.Type == schema.TypeEnum:
			fmt.Fprintf(b, "\tfor _, v := range %sValues() {\n\t\t%s = append(%s, runtime.NewOneOf(%s, v))\n\t}\n",
				ctx.enumTypeRef(child, imp), listVar, listVar, konst)
		default:
			if usesMath(child.Type) {
				imp.add("math")
			}
			fmt.Fprintf(b, "\tfor _, v := range %s {\n\t\t%s = append(%s, runtime.NewOneOf(%s, v))\n\t}\n",
				scalarSampleList(child.Type), listVar, listVar, konst)
		}
	}
}

func (g *TestEmitter) renderRoundTripTest(b *strings.Builder, ctx *fieldContext, msg *schema.Message, model string, imp *importSet) {
	name := msg.GeneratedName()
	refPkg := g.referencePackage(msg)

	fmt.Fprintf(b, "// Test%sAgainstProtoC writes every permutation, parses it back and\n// checks equality and hash stability", name)
	if refPkg != "" {
		b.WriteString(", then cross-checks against the\n// reference protobuf implementation")
	}
	b.WriteString(".\n")
	fmt.Fprintf(b, "func Test%sAgainstProtoC(t *testing.T) {\n", name)
	fmt.Fprintf(b, "\tfor i, model := range create%sTestArguments() {\n", name)
	b.WriteString("\t\tt.Run(fmt.Sprintf(\"case_%d\", i), func(t *testing.T) {\n")
	fmt.Fprintf(b, "\t\t\tsize := %s.%sWriter{}.Size(model)\n", model, name)
	b.WriteString("\t\t\tbuf := runtime.Allocate(size)\n")
	fmt.Fprintf(b, "\t\t\tif err := (%s.%sWriter{}).Write(model, buf); err != nil {\n\t\t\t\tt.Fatalf(\"Write() error = %%v\", err)\n\t\t\t}\n", model, name)
	b.WriteString("\t\t\tif buf.Position() != size {\n\t\t\t\tt.Fatalf(\"Size() = %d but Write produced %d bytes\", size, buf.Position())\n\t\t\t}\n")
	b.WriteString("\t\t\traw := make([]byte, buf.Position())\n")
	b.WriteString("\t\t\tif _, err := buf.GetBytes(0, raw, 0, len(raw)); err != nil {\n\t\t\t\tt.Fatalf(\"GetBytes() error = %v\", err)\n\t\t\t}\n")
	fmt.Fprintf(b, "\t\t\tparsed, err := %s.%sParser{}.Parse(buf.Flip())\n", model, name)
	b.WriteString("\t\t\tif err != nil {\n\t\t\t\tt.Fatalf(\"Parse() error = %v\", err)\n\t\t\t}\n")
	b.WriteString("\t\t\tif !model.Equal(parsed) {\n\t\t\t\tt.Errorf(\"round trip mismatch:\\nwrote:  %+v\\nparsed: %+v\", model, parsed)\n\t\t\t}\n")
	b.WriteString("\t\t\tif model.HashCode() != parsed.HashCode() {\n\t\t\t\tt.Errorf(\"equal values hash differently: %d vs %d\", model.HashCode(), parsed.HashCode())\n\t\t\t}\n")

	if refPkg != "" {
		imp.add(refPkg)
		imp.add("google.golang.org/protobuf/proto")
		ref := pkgIdent(refPkg)
		fmt.Fprintf(b, "\t\t\trefMsg := &%s.%s{}\n", ref, name)
		b.WriteString("\t\t\tif err := proto.Unmarshal(raw, refMsg); err != nil {\n\t\t\t\tt.Fatalf(\"reference Unmarshal() error = %v\", err)\n\t\t\t}\n")
		b.WriteString("\t\t\trefBytes, err := proto.Marshal(refMsg)\n")
		b.WriteString("\t\t\tif err != nil {\n\t\t\t\tt.Fatalf(\"reference Marshal() error = %v\", err)\n\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\treparsed, err := %s.%sParser{}.Parse(runtime.WrapBuffer(refBytes))\n", model, name)
		b.WriteString("\t\t\tif err != nil {\n\t\t\t\tt.Fatalf(\"Parse() of reference bytes error = %v\", err)\n\t\t\t}\n")
		b.WriteString("\t\t\tif !model.Equal(reparsed) {\n\t\t\t\tt.Errorf(\"reference re-encode mismatch:\\nwrote:    %+v\\nreparsed: %+v\", model, reparsed)\n\t\t\t}\n")
	} else {
		b.WriteString("\t\t\t_ = raw\n")
	}

	b.WriteString("\t\t})\n\t}\n}\n")
}

// referencePackage returns the protoc-generated Go package holding
// reference types for this message's file, when the schema names one via
// its package override option. Java-style overrides (dotted, no slash) are
// not Go import paths and yield no reference section.
func (g *TestEmitter) referencePackage(msg *schema.Message) string {
	override := msg.File().PackageOverride
	if strings.Contains(override, "/") {
		return strings.SplitN(override, ";", 2)[0]
	}
	return ""
}
