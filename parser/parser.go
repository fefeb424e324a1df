// Package parser reads proto3 source into a parse tree. It is a
// hand-written LL parser; comments preceding a declaration are attached to
// it as documentation so they survive into generated output.
//
// Any syntactic error is fatal for the file and reported as a ParseError
// with path, line and column. No artifact is produced from a file that
// fails to parse.
package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseError is a fatal syntax error at a known source location.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
}

// ParseFile parses the proto3 file at path.
func ParseFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, raw)
}

// Parse parses proto3 source. path is used for error reporting only.
func Parse(path string, src []byte) (*File, error) {
	p := &parser{
		br:   bufio.NewReader(bytes.NewReader(src)),
		path: path,
		line: 1,
	}
	f := &File{Path: path}
	for {
		doc, err := p.readDocumentationIfFound()
		if err != nil {
			return nil, err
		}
		if p.eof {
			break
		}
		p.skipWhitespace()
		if p.eof {
			break
		}
		if err := p.readDeclaration(f, doc, parseCtx{ctxType: fileCtx}); err != nil {
			return nil, err
		}
		if p.eof {
			break
		}
	}
	if f.Syntax != "proto3" {
		return nil, &ParseError{Path: path, Line: 1, Column: 1, Msg: "missing or unsupported syntax declaration, expected 'proto3'"}
	}
	return f, nil
}

const eof = rune(0)

type parser struct {
	br     *bufio.Reader
	path   string
	line   int
	column int
	eof    bool

	// lastRune and prevColumn let unread restore the position across a
	// newline.
	lastRune   rune
	prevColumn int
}

func (p *parser) errf(format string, args ...any) error {
	return &ParseError{Path: p.path, Line: p.line, Column: p.column, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) readDeclaration(f *File, doc string, ctx parseCtx) error {
	// stray semicolons are legal separators
	c := p.read()
	if c == ';' {
		return nil
	}
	p.unread()

	label := p.readWord()
	switch {
	case label == "syntax":
		if !ctx.permitsSyntax() {
			return p.errf("unexpected 'syntax' in %v context", ctx.ctxType)
		}
		return p.readSyntax(f)
	case label == "package":
		if !ctx.permitsPackage() {
			return p.errf("unexpected 'package' in %v context", ctx.ctxType)
		}
		p.skipWhitespace()
		f.Package = p.readWord()
		return p.expect(';')
	case label == "import":
		if !ctx.permitsImport() {
			return p.errf("unexpected 'import' in %v context", ctx.ctxType)
		}
		return p.readImport(f)
	case label == "option":
		return p.readOption(f, ctx)
	case label == "message":
		return p.readMessage(f, doc, ctx)
	case label == "enum":
		return p.readEnum(f, doc, ctx)
	case label == "oneof":
		if !ctx.permitsOneOf() {
			return p.errf("unexpected 'oneof' in %v context", ctx.ctxType)
		}
		return p.readOneOf(f, doc, ctx)
	case label == "reserved":
		if !ctx.permitsReserved() {
			return p.errf("unexpected 'reserved' in %v context", ctx.ctxType)
		}
		return p.readReserved(ctx.msg)
	case ctx.ctxType == enumCtx:
		return p.readEnumConstant(ctx.enum, label, doc)
	case ctx.ctxType == msgCtx || ctx.ctxType == oneOfCtx:
		if !ctx.permitsField() {
			return p.errf("fields must be declared inside a message")
		}
		return p.readField(f, ctx, label, doc)
	default:
		// service, extend and anything else the grammar does not retain:
		// record a warning and skip the whole construct.
		f.Warnings = append(f.Warnings, fmt.Sprintf("%s:%d: unknown element '%s' skipped", p.path, p.line, label))
		return p.skipStatementOrBlock()
	}
}

func (p *parser) readSyntax(f *File) error {
	p.skipWhitespace()
	if err := p.expect('='); err != nil {
		return err
	}
	p.skipWhitespace()
	syntax, err := p.readQuotedString()
	if err != nil {
		return err
	}
	if syntax != "proto3" {
		return p.errf("syntax must be 'proto3', found %q", syntax)
	}
	f.Syntax = syntax
	return p.expect(';')
}

func (p *parser) readImport(f *File) error {
	p.skipWhitespace()
	c := p.read()
	p.unread()
	if c != '"' {
		// "import public" and "import weak" both carry a path we keep.
		modifier := p.readWord()
		if modifier != "public" && modifier != "weak" {
			return p.errf("expected import path, 'public' or 'weak', found %q", modifier)
		}
		p.skipWhitespace()
	}
	path, err := p.readQuotedString()
	if err != nil {
		return err
	}
	f.Imports = append(f.Imports, path)
	return p.expect(';')
}

func (p *parser) readOption(f *File, ctx parseCtx) error {
	p.skipWhitespace()
	name, err := p.readOptionName()
	if err != nil {
		return err
	}
	p.skipWhitespace()
	if err := p.expect('='); err != nil {
		return err
	}
	p.skipWhitespace()

	var value string
	if c := p.read(); c == '"' {
		p.unread()
		value, err = p.readQuotedString()
		if err != nil {
			return err
		}
	} else {
		p.unread()
		value = p.readWord()
	}
	if err := p.expect(';'); err != nil {
		return err
	}

	opt := Option{Name: name, Value: value}
	switch ctx.ctxType {
	case fileCtx:
		f.Options = append(f.Options, opt)
	case msgCtx:
		ctx.msg.Options = append(ctx.msg.Options, opt)
	case enumCtx:
		ctx.enum.Options = append(ctx.enum.Options, opt)
	case oneOfCtx:
		ctx.oneOf.Options = append(ctx.oneOf.Options, opt)
	}
	return nil
}

func (p *parser) readMessage(f *File, doc string, parent parseCtx) error {
	p.skipWhitespace()
	name := p.readWord()
	if name == "" {
		return p.errf("expected message name")
	}
	p.skipWhitespace()
	if err := p.expect('{'); err != nil {
		return err
	}

	msg := &Message{Name: name, Doc: doc}
	if err := p.readBody(f, parseCtx{ctxType: msgCtx, msg: msg}); err != nil {
		return err
	}

	switch parent.ctxType {
	case msgCtx:
		parent.msg.Messages = append(parent.msg.Messages, msg)
	default:
		f.Messages = append(f.Messages, msg)
	}
	return nil
}

func (p *parser) readEnum(f *File, doc string, parent parseCtx) error {
	p.skipWhitespace()
	name := p.readWord()
	if name == "" {
		return p.errf("expected enum name")
	}
	p.skipWhitespace()
	if err := p.expect('{'); err != nil {
		return err
	}

	enum := &Enum{Name: name, Doc: doc}
	if err := p.readBody(f, parseCtx{ctxType: enumCtx, enum: enum}); err != nil {
		return err
	}

	switch parent.ctxType {
	case msgCtx:
		parent.msg.Enums = append(parent.msg.Enums, enum)
	default:
		f.Enums = append(f.Enums, enum)
	}
	return nil
}

func (p *parser) readOneOf(f *File, doc string, parent parseCtx) error {
	p.skipWhitespace()
	name := p.readWord()
	if name == "" {
		return p.errf("expected oneof name")
	}
	p.skipWhitespace()
	if err := p.expect('{'); err != nil {
		return err
	}

	oneOf := OneOf{Name: name, Doc: doc}
	if err := p.readBody(f, parseCtx{ctxType: oneOfCtx, oneOf: &oneOf}); err != nil {
		return err
	}
	parent.msg.OneOfs = append(parent.msg.OneOfs, oneOf)
	parent.msg.order = append(parent.msg.order, declRef{oneOf: true, index: len(parent.msg.OneOfs) - 1})
	return nil
}

// readBody reads declarations until the closing brace of the current
// construct.
func (p *parser) readBody(f *File, ctx parseCtx) error {
	for {
		doc, err := p.readDocumentationIfFound()
		if err != nil {
			return err
		}
		if p.eof {
			return p.errf("unexpected end of file inside %v", ctx.ctxType)
		}
		if c := p.read(); c == '}' {
			return nil
		}
		p.unread()

		if err := p.readDeclaration(f, doc, ctx); err != nil {
			return err
		}
	}
}

func (p *parser) readField(f *File, ctx parseCtx, label, doc string) error {
	var repeated, optional bool
	typeName := label

	switch label {
	case "required":
		return p.errf("'required' fields are proto2 and not supported")
	case "repeated", "optional":
		if ctx.ctxType == oneOfCtx {
			return p.errf("label %q is not allowed on a oneof field", label)
		}
		repeated = label == "repeated"
		optional = label == "optional"
		p.skipWhitespace()
		typeName = p.readWord()
	}

	if typeName == "map" {
		if ctx.ctxType == oneOfCtx {
			return p.errf("map fields are not allowed inside a oneof")
		}
		return p.readMapField(ctx.msg, doc)
	}
	if typeName == "" {
		return p.errf("expected field type")
	}

	p.skipWhitespace()
	name := p.readWord()
	if name == "" {
		return p.errf("expected field name")
	}
	p.skipWhitespace()
	if err := p.expect('='); err != nil {
		return err
	}
	p.skipWhitespace()
	number, err := p.readInt()
	if err != nil {
		return err
	}

	field := Field{
		Name:     name,
		Doc:      doc,
		Type:     typeName,
		Number:   int32(number),
		Repeated: repeated,
		Optional: optional,
	}

	p.skipWhitespace()
	c := p.read()
	if c == '[' {
		opts, err := p.readFieldOptions()
		if err != nil {
			return err
		}
		field.Options = opts
		if err := p.expect(';'); err != nil {
			return err
		}
	} else if c != ';' {
		return p.errf("expected ';', found %q", c)
	}

	if ctx.ctxType == oneOfCtx {
		ctx.oneOf.Fields = append(ctx.oneOf.Fields, field)
	} else {
		ctx.msg.Fields = append(ctx.msg.Fields, field)
		ctx.msg.order = append(ctx.msg.order, declRef{index: len(ctx.msg.Fields) - 1})
	}
	return nil
}

func (p *parser) readMapField(msg *Message, doc string) error {
	if err := p.expect('<'); err != nil {
		return err
	}
	p.skipWhitespace()
	keyType := p.readWord()
	p.skipWhitespace()
	if err := p.expect(','); err != nil {
		return err
	}
	p.skipWhitespace()
	valueType := p.readWord()
	p.skipWhitespace()
	if err := p.expect('>'); err != nil {
		return err
	}
	p.skipWhitespace()
	name := p.readWord()
	p.skipWhitespace()
	if err := p.expect('='); err != nil {
		return err
	}
	p.skipWhitespace()
	number, err := p.readInt()
	if err != nil {
		return err
	}
	p.skipWhitespace()
	if c := p.read(); c == '[' {
		if _, err := p.readFieldOptions(); err != nil {
			return err
		}
		if err := p.expect(';'); err != nil {
			return err
		}
	} else if c != ';' {
		return p.errf("expected ';', found %q", c)
	}

	msg.MapFields = append(msg.MapFields, MapField{
		Name:      name,
		Doc:       doc,
		KeyType:   keyType,
		ValueType: valueType,
		Number:    int32(number),
	})
	return nil
}

func (p *parser) readEnumConstant(enum *Enum, name, doc string) error {
	p.skipWhitespace()
	if err := p.expect('='); err != nil {
		return err
	}
	p.skipWhitespace()
	number, err := p.readInt()
	if err != nil {
		return err
	}

	value := EnumValue{Name: name, Doc: doc, Number: int32(number)}

	p.skipWhitespace()
	c := p.read()
	if c == '[' {
		opts, err := p.readFieldOptions()
		if err != nil {
			return err
		}
		value.Options = opts
		if err := p.expect(';'); err != nil {
			return err
		}
	} else if c != ';' {
		return p.errf("expected ';', found %q", c)
	}

	enum.Values = append(enum.Values, value)
	return nil
}

func (p *parser) readReserved(msg *Message) error {
	p.skipWhitespace()
	c := p.read()
	p.unread()
	if c == '"' {
		return p.readReservedNames(msg)
	}
	return p.readReservedRanges(msg)
}

func (p *parser) readReservedRanges(msg *Message) error {
	for {
		start, err := p.readInt()
		if err != nil {
			return err
		}
		rr := ReservedRange{Start: int32(start), End: int32(start)}

		p.skipWhitespace()
		c := p.read()
		if c != ';' && c != ',' {
			p.unread()
			if w := p.readWord(); w != "to" {
				return p.errf("expected 'to', ',' or ';', found %q", w)
			}
			p.skipWhitespace()
			if endWord := p.peekWord(); endWord == "max" {
				p.readWord()
				rr.End = 536870911
			} else {
				end, err := p.readInt()
				if err != nil {
					return err
				}
				rr.End = int32(end)
			}
			p.skipWhitespace()
			c = p.read()
		}

		msg.ReservedRanges = append(msg.ReservedRanges, rr)
		switch c {
		case ';':
			return nil
		case ',':
			p.skipWhitespace()
		default:
			return p.errf("expected ',' or ';', found %q", c)
		}
	}
}

func (p *parser) readReservedNames(msg *Message) error {
	for {
		name, err := p.readQuotedString()
		if err != nil {
			return err
		}
		msg.ReservedNames = append(msg.ReservedNames, name)

		p.skipWhitespace()
		switch c := p.read(); c {
		case ';':
			return nil
		case ',':
			p.skipWhitespace()
		default:
			return p.errf("expected ',' or ';', found %q", c)
		}
	}
}

func (p *parser) readFieldOptions() ([]Option, error) {
	raw := p.readUntil(']')
	var options []Option
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, p.errf("field option %q is not name = value", strings.TrimSpace(pair))
		}
		name := strings.Trim(strings.TrimSpace(parts[0]), "()")
		value := strings.Trim(strings.TrimSpace(parts[1]), `"`)
		options = append(options, Option{Name: name, Value: value})
	}
	return options, nil
}

func (p *parser) readOptionName() (string, error) {
	c := p.read()
	if c == '(' {
		name := p.readWord()
		if p.read() != ')' {
			return "", p.errf("expected ')' after option name")
		}
		// custom options may have a dotted suffix
		return name + p.readWord(), nil
	}
	p.unread()
	name := p.readWord()
	if name == "" {
		return "", p.errf("expected option name")
	}
	return name, nil
}

// skipStatementOrBlock consumes a construct the grammar does not retain:
// everything up to the first ';' at depth zero, or a balanced brace block.
func (p *parser) skipStatementOrBlock() error {
	depth := 0
	for {
		c := p.read()
		switch c {
		case eof:
			return p.errf("unexpected end of file while skipping element")
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return nil
			}
			if depth < 0 {
				return p.errf("unbalanced '}'")
			}
		case ';':
			if depth == 0 {
				return nil
			}
		}
	}
}

// readDocumentationIfFound collects the run of comments immediately
// preceding the next declaration. Consecutive line comments merge into one
// documentation block.
func (p *parser) readDocumentationIfFound() (string, error) {
	var docs []string
	for {
		c := p.read()
		switch {
		case c == eof:
			p.eof = true
			return strings.Join(docs, "\n"), nil
		case isWhitespace(c):
			p.skipWhitespace()
		case c == '/':
			doc, err := p.readComment()
			if err != nil {
				return "", err
			}
			docs = append(docs, doc)
		default:
			p.unread()
			return strings.Join(docs, "\n"), nil
		}
	}
}

func (p *parser) readComment() (string, error) {
	switch c := p.read(); c {
	case '/':
		return strings.TrimSpace(p.readUntilNewline()), nil
	case '*':
		return p.readMultiLineComment(), nil
	default:
		return "", p.errf("expected '/' or '*' after '/', found %q", c)
	}
}

func (p *parser) readMultiLineComment() string {
	var buf bytes.Buffer
	for {
		c := p.read()
		if c == eof {
			p.eof = true
			break
		}
		if c == '*' {
			if c2 := p.read(); c2 == '/' {
				break
			}
			buf.WriteRune(c)
			p.unread()
			continue
		}
		buf.WriteRune(c)
	}
	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (p *parser) readQuotedString() (string, error) {
	if c := p.read(); c != '"' {
		return "", p.errf("expected '\"', found %q", c)
	}
	str := p.readUntil('"')
	if p.eof {
		return "", p.errf("unterminated string literal")
	}
	return str, nil
}

func (p *parser) readWord() string {
	var buf bytes.Buffer
	for {
		c := p.read()
		if isWordChar(c) {
			buf.WriteRune(c)
		} else {
			p.unread()
			break
		}
	}
	return buf.String()
}

// peekWord reads a word and pushes it back. Only safe for single-rune
// lookahead plus buffered re-reads, so it re-reads through a small buffer.
func (p *parser) peekWord() string {
	// bufio.Reader only guarantees one UnreadRune, so peek byte-wise.
	b, err := p.br.Peek(8)
	if err != nil && len(b) == 0 {
		return ""
	}
	var word []byte
	for _, c := range b {
		if !isWordChar(rune(c)) {
			break
		}
		word = append(word, c)
	}
	return string(word)
}

func (p *parser) readInt() (int, error) {
	var buf bytes.Buffer
	if c := p.read(); c == '-' {
		buf.WriteRune(c)
	} else {
		p.unread()
	}
	for {
		c := p.read()
		if isDigit(c) {
			buf.WriteRune(c)
		} else {
			p.unread()
			break
		}
	}
	v, err := strconv.Atoi(buf.String())
	if err != nil {
		return 0, p.errf("expected a number, found %q", buf.String())
	}
	return v, nil
}

func (p *parser) readUntil(terminator rune) string {
	var buf bytes.Buffer
	for {
		c := p.read()
		if c == terminator {
			break
		}
		if c == eof {
			p.eof = true
			break
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

func (p *parser) readUntilNewline() string {
	return p.readUntil('\n')
}

func (p *parser) expect(want rune) error {
	p.skipWhitespace()
	if c := p.read(); c != want {
		return p.errf("expected %q, found %q", want, c)
	}
	return nil
}

func (p *parser) skipWhitespace() {
	for {
		c := p.read()
		if c == eof {
			p.eof = true
			return
		}
		if !isWhitespace(c) {
			p.unread()
			return
		}
	}
}

func (p *parser) read() rune {
	c, _, err := p.br.ReadRune()
	if err != nil {
		return eof
	}
	p.lastRune = c
	if c == '\n' {
		p.line++
		p.prevColumn = p.column
		p.column = 0
	} else {
		p.column++
	}
	return c
}

func (p *parser) unread() {
	if p.br.UnreadRune() == nil {
		if p.lastRune == '\n' {
			p.line--
			p.column = p.prevColumn
		} else {
			p.column--
		}
	}
}

func isWordChar(c rune) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '.'
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
