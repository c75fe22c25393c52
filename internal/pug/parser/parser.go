package parser

import (
	"fmt"

	"github.com/carlos-sweb/gopug/internal/pug/ast"
	"github.com/carlos-sweb/gopug/internal/pug/lexer"
)

// ErrorKind classifies a parsing failure.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	DanglingElse
	UnclosedBlock
)

// Error is a terminal parsing failure at a source position.
type Error struct {
	Kind   ErrorKind
	Msg    string
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Parser is a recursive-descent parser over the lexer's token sequence with a
// single token of lookahead. Indent/Dedent are ordinary tokens: Indent opens
// the child block of the preceding block-introducing node, Dedent closes it.
type Parser struct {
	toks []lexer.Token
	pos  int
	doc  *ast.Document
}

// Parse builds a Document from a token sequence. Mixin definitions are
// registered in the document's mixin table as they are parsed; mixin calls
// are not resolved here, so forward references across the document are legal.
func Parse(toks []lexer.Token) (*ast.Document, error) {
	p := &Parser{
		toks: toks,
		doc:  &ast.Document{Mixins: make(map[string]*ast.MixinDef)},
	}

	nodes, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if tok := p.cur(); tok.Type != lexer.TokenEOF {
		return nil, p.errUnexpected(tok)
	}
	p.doc.Nodes = nodes
	return p.doc, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

// parseBlock consumes a maximal run of sibling nodes at the current depth.
// It stops, without consuming, at the Dedent that closes the block or at EOF.
func (p *Parser) parseBlock() ([]ast.Node, error) {
	var nodes []ast.Node
	for {
		switch p.cur().Type {
		case lexer.TokenDedent, lexer.TokenEOF:
			return nodes, nil
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

func (p *Parser) parseNode() (ast.Node, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenTag, lexer.TokenClass, lexer.TokenID:
		return p.parseElement()
	case lexer.TokenText:
		p.advance()
		return &ast.Text{Parts: tok.Parts}, nil
	case lexer.TokenIf:
		return p.parseConditional()
	case lexer.TokenElse:
		return nil, &Error{
			Kind:   DanglingElse,
			Msg:    "else without a matching if",
			Line:   tok.Line,
			Column: tok.Column,
		}
	case lexer.TokenMixinDef:
		return p.parseMixinDef()
	case lexer.TokenMixinCall:
		p.advance()
		return &ast.MixinCall{Name: tok.Value}, nil
	default:
		return nil, p.errUnexpected(tok)
	}
}

// parseElement handles a tag head with shorthand, optional inline text, and
// an optional nested block. A head that opens with .class/#id and no tag name
// gets the implicit div tag.
func (p *Parser) parseElement() (ast.Node, error) {
	el := &ast.Element{Tag: "div"}
	if tok := p.cur(); tok.Type == lexer.TokenTag {
		el.Tag = tok.Value
		p.advance()
	}

	for {
		tok := p.cur()
		if tok.Type == lexer.TokenClass {
			el.Classes = append(el.Classes, tok.Value)
			p.advance()
			continue
		}
		if tok.Type == lexer.TokenID {
			el.ID = tok.Value
			p.advance()
			continue
		}
		break
	}

	if tok := p.cur(); tok.Type == lexer.TokenText {
		el.Children = append(el.Children, &ast.Text{Parts: tok.Parts})
		p.advance()
	}

	if p.cur().Type == lexer.TokenIndent {
		children, err := p.parseIndentedBlock()
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, children...)
	}
	return el, nil
}

func (p *Parser) parseConditional() (ast.Node, error) {
	tok := p.advance()
	cond := &ast.Conditional{Var: tok.Value}

	then, err := p.requireIndentedBlock(tok, "if")
	if err != nil {
		return nil, err
	}
	cond.Then = then

	if next := p.cur(); next.Type == lexer.TokenElse {
		p.advance()
		els, err := p.requireIndentedBlock(next, "else")
		if err != nil {
			return nil, err
		}
		cond.Else = els
	}
	return cond, nil
}

func (p *Parser) parseMixinDef() (ast.Node, error) {
	tok := p.advance()
	body, err := p.requireIndentedBlock(tok, "mixin")
	if err != nil {
		return nil, err
	}
	def := &ast.MixinDef{Name: tok.Value, Body: body}
	// last definition wins
	p.doc.Mixins[def.Name] = def
	return def, nil
}

// requireIndentedBlock consumes Indent, a block, and the closing Dedent,
// reporting a missing body against the introducing keyword.
func (p *Parser) requireIndentedBlock(at lexer.Token, what string) ([]ast.Node, error) {
	if p.cur().Type != lexer.TokenIndent {
		return nil, &Error{
			Kind:   UnclosedBlock,
			Msg:    fmt.Sprintf("%s requires an indented block", what),
			Line:   at.Line,
			Column: at.Column,
		}
	}
	p.advance()
	nodes, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if tok := p.cur(); tok.Type != lexer.TokenDedent {
		return nil, &Error{
			Kind:   UnclosedBlock,
			Msg:    fmt.Sprintf("%s block is not closed", what),
			Line:   tok.Line,
			Column: tok.Column,
		}
	}
	p.advance()
	return nodes, nil
}

func (p *Parser) parseIndentedBlock() ([]ast.Node, error) {
	open := p.advance()
	nodes, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if tok := p.cur(); tok.Type != lexer.TokenDedent {
		return nil, &Error{
			Kind:   UnclosedBlock,
			Msg:    "block is not closed",
			Line:   open.Line,
			Column: open.Column,
		}
	}
	p.advance()
	return nodes, nil
}

func (p *Parser) errUnexpected(tok lexer.Token) *Error {
	return &Error{
		Kind:   UnexpectedToken,
		Msg:    fmt.Sprintf("unexpected %s token", tok.Type),
		Line:   tok.Line,
		Column: tok.Column,
	}
}
