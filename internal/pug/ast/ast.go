package ast

import "github.com/carlos-sweb/gopug/internal/pug/lexer"

type Node interface {
	node()
}

// Text is one line's literal/interpolated content, rendered as a child of the
// nearest enclosing element or at document top level.
type Text struct {
	Parts []lexer.TextPart
}

func (*Text) node() {}

// Element is a markup tag with shorthand attributes and nested children.
// Classes may repeat and keep their written order; they are never deduplicated.
type Element struct {
	Tag      string
	ID       string
	Classes  []string
	Children []Node
}

func (*Element) node() {}

// Conditional selects Then or Else by the boolean value of Var at render time.
// An absent variable selects Else.
type Conditional struct {
	Var  string
	Then []Node
	Else []Node
}

func (*Conditional) node() {}

// MixinDef declares a named reusable block. It renders nothing where it
// appears; the parser registers it in the document's mixin table.
type MixinDef struct {
	Name string
	Body []Node
}

func (*MixinDef) node() {}

// MixinCall expands the named mixin's body in place at render time. It holds
// a name, not a copy of the body, so definitions may follow their call sites.
type MixinCall struct {
	Name string
}

func (*MixinCall) node() {}

// Document is the parse result: the ordered top-level nodes plus the mixin
// table built during parsing and consulted during rendering. A later mixin
// definition with an already-registered name overwrites the earlier one.
type Document struct {
	Nodes  []Node
	Mixins map[string]*MixinDef
}
