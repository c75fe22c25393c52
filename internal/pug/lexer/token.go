package lexer

// TokenType identifies the structural kind of a token.
type TokenType int

const (
	// TokenIndent and TokenDedent mark block boundaries. The lexer emits one
	// per indentation level crossed, never a combined jump.
	TokenIndent TokenType = iota
	TokenDedent

	TokenTag   // element name, e.g. "div"
	TokenClass // ".name" shorthand, Value holds "name"
	TokenID    // "#name" shorthand, Value holds "name"
	TokenText  // free text, split into Parts

	TokenIf        // "if <var>", Value holds the condition variable
	TokenElse      // "else"
	TokenMixinDef  // "mixin <name>", Value holds the mixin name
	TokenMixinCall // "+<name>", Value holds the mixin name

	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenIndent:
		return "INDENT"
	case TokenDedent:
		return "DEDENT"
	case TokenTag:
		return "TAG"
	case TokenClass:
		return "CLASS"
	case TokenID:
		return "ID"
	case TokenText:
		return "TEXT"
	case TokenIf:
		return "IF"
	case TokenElse:
		return "ELSE"
	case TokenMixinDef:
		return "MIXIN"
	case TokenMixinCall:
		return "MIXINCALL"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// PartKind distinguishes literal text from a #{...} interpolation span.
type PartKind int

const (
	PartLiteral PartKind = iota
	PartInterp
)

// TextPart is one run of a text segment: either literal characters or the raw
// variable name of an interpolation span. Parts preserve source order, so
// concatenating them reconstructs the line's text verbatim.
type TextPart struct {
	Kind  PartKind
	Value string
}

// Token is one lexical token. Line and Column are 1-based and point at the
// token's first character in the source.
type Token struct {
	Type   TokenType
	Value  string     // tag/class/id name or keyword argument
	Parts  []TextPart // populated for TokenText only
	Line   int
	Column int
}
