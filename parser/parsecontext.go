package parser

// ctxType identifies the construct a declaration is being read inside of.
// Which labels a context permits drives the dispatch in readDeclaration.
type ctxType int

const (
	fileCtx ctxType = iota
	msgCtx
	enumCtx
	oneOfCtx
)

func (c ctxType) String() string {
	switch c {
	case fileCtx:
		return "file"
	case msgCtx:
		return "message"
	case enumCtx:
		return "enum"
	case oneOfCtx:
		return "oneof"
	}
	return "unknown"
}

// parseCtx carries the context type and the element under construction.
type parseCtx struct {
	ctxType ctxType
	msg     *Message
	enum    *Enum
	oneOf   *OneOf
}

func (c parseCtx) permitsSyntax() bool  { return c.ctxType == fileCtx }
func (c parseCtx) permitsPackage() bool { return c.ctxType == fileCtx }
func (c parseCtx) permitsImport() bool  { return c.ctxType == fileCtx }
func (c parseCtx) permitsOneOf() bool   { return c.ctxType == msgCtx }
func (c parseCtx) permitsField() bool   { return c.ctxType == msgCtx || c.ctxType == oneOfCtx }
func (c parseCtx) permitsReserved() bool {
	return c.ctxType == msgCtx
}
