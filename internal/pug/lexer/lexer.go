package lexer

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a lexing failure.
type ErrorKind int

const (
	BadIndent ErrorKind = iota
	UnterminatedInterpolation
)

// Error is a terminal lexing failure. Line and Column are 1-based.
type Error struct {
	Kind   ErrorKind
	Msg    string
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// lexer holds the per-call state: the token accumulator and the stack of
// indentation depths seen so far, starting at depth 0.
type lexer struct {
	toks  []Token
	stack []int
}

// Tokenize converts template source into a flat token sequence. Indentation
// changes become explicit Indent/Dedent tokens; blank lines are skipped
// without affecting indentation tracking. The sequence always ends with the
// dedents that close any open levels, then a single EOF token.
func Tokenize(source string) ([]Token, error) {
	lx := &lexer{stack: []int{0}}

	lines := strings.Split(source, "\n")
	for i, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := lx.lexLine(i+1, line); err != nil {
			return nil, err
		}
	}

	endLine := len(lines) + 1
	for len(lx.stack) > 1 {
		lx.stack = lx.stack[:len(lx.stack)-1]
		lx.emit(Token{Type: TokenDedent, Line: endLine, Column: 1})
	}
	lx.emit(Token{Type: TokenEOF, Line: endLine, Column: 1})
	return lx.toks, nil
}

func (lx *lexer) emit(tok Token) {
	lx.toks = append(lx.toks, tok)
}

func (lx *lexer) lexLine(line int, text string) error {
	depth := 0
	for depth < len(text) && text[depth] == ' ' {
		depth++
	}
	if depth < len(text) && text[depth] == '\t' {
		return &Error{Kind: BadIndent, Msg: "tab in indentation", Line: line, Column: depth + 1}
	}

	if err := lx.trackIndent(line, depth); err != nil {
		return err
	}

	rest := text[depth:]
	col := depth + 1

	switch {
	case strings.HasPrefix(rest, "if "):
		lx.emit(Token{Type: TokenIf, Value: strings.TrimSpace(rest[len("if "):]), Line: line, Column: col})
		return nil
	case strings.TrimRight(rest, " ") == "else":
		lx.emit(Token{Type: TokenElse, Line: line, Column: col})
		return nil
	case strings.HasPrefix(rest, "mixin "):
		lx.emit(Token{Type: TokenMixinDef, Value: strings.TrimSpace(rest[len("mixin "):]), Line: line, Column: col})
		return nil
	case strings.HasPrefix(rest, "+"):
		lx.emit(Token{Type: TokenMixinCall, Value: strings.TrimSpace(rest[1:]), Line: line, Column: col})
		return nil
	}

	return lx.lexElementLine(line, col, rest)
}

// trackIndent reconciles a line's depth against the indentation stack,
// emitting one Indent or one Dedent per level crossed.
func (lx *lexer) trackIndent(line, depth int) error {
	top := lx.stack[len(lx.stack)-1]
	if depth > top {
		lx.stack = append(lx.stack, depth)
		lx.emit(Token{Type: TokenIndent, Line: line, Column: 1})
		return nil
	}
	for depth < lx.stack[len(lx.stack)-1] {
		lx.stack = lx.stack[:len(lx.stack)-1]
		lx.emit(Token{Type: TokenDedent, Line: line, Column: 1})
	}
	if depth != lx.stack[len(lx.stack)-1] {
		return &Error{
			Kind:   BadIndent,
			Msg:    fmt.Sprintf("indentation of %d spaces matches no open block", depth),
			Line:   line,
			Column: 1,
		}
	}
	return nil
}

// lexElementLine handles a tag head with optional .class/#id shorthand and an
// optional trailing text segment. A line that opens with shorthand and no tag
// name is legal; the parser supplies the implicit div.
func (lx *lexer) lexElementLine(line, col int, rest string) error {
	i := 0
	if i < len(rest) && isNameStart(rune(rest[i])) {
		j := i
		for j < len(rest) && isNamePart(rune(rest[j])) {
			j++
		}
		lx.emit(Token{Type: TokenTag, Value: rest[i:j], Line: line, Column: col + i})
		i = j
	}

	for i < len(rest) && (rest[i] == '.' || rest[i] == '#') {
		marker := rest[i]
		j := i + 1
		for j < len(rest) && isNamePart(rune(rest[j])) {
			j++
		}
		if j == i+1 {
			// bare "." or "#" with no name: the rest of the line is text
			break
		}
		typ := TokenClass
		if marker == '#' {
			typ = TokenID
		}
		lx.emit(Token{Type: typ, Value: rest[i+1 : j], Line: line, Column: col + i})
		i = j
	}

	if i >= len(rest) {
		return nil
	}
	// one separating space between the head and inline text is not part of
	// the text itself
	if rest[i] == ' ' {
		i++
	}
	if i >= len(rest) {
		return nil
	}

	parts, err := scanParts(rest[i:], line, col+i)
	if err != nil {
		return err
	}
	lx.emit(Token{Type: TokenText, Parts: parts, Line: line, Column: col + i})
	return nil
}

// scanParts splits a text segment into literal runs and #{...} interpolation
// spans, preserving order.
func scanParts(text string, line, col int) ([]TextPart, error) {
	var parts []TextPart
	for len(text) > 0 {
		open := strings.Index(text, "#{")
		if open < 0 {
			parts = append(parts, TextPart{Kind: PartLiteral, Value: text})
			break
		}
		if open > 0 {
			parts = append(parts, TextPart{Kind: PartLiteral, Value: text[:open]})
		}
		end := strings.Index(text[open:], "}")
		if end < 0 {
			return nil, &Error{
				Kind:   UnterminatedInterpolation,
				Msg:    "unterminated #{ interpolation",
				Line:   line,
				Column: col + open,
			}
		}
		parts = append(parts, TextPart{Kind: PartInterp, Value: text[open+2 : open+end]})
		col += open + end + 1
		text = text[open+end+1:]
	}
	return parts, nil
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNamePart(r rune) bool {
	return isNameStart(r) || r == '-' || (r >= '0' && r <= '9')
}
