package render

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/carlos-sweb/gopug/internal/pug/ast"
	"github.com/carlos-sweb/gopug/internal/pug/lexer"
	"github.com/carlos-sweb/gopug/internal/pug/vars"
)

// maxMixinDepth bounds nested mixin expansion so a self-referential mixin
// fails instead of recursing forever.
const maxMixinDepth = 64

// ErrorKind classifies a rendering failure.
type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	UndefinedMixin
	TypeMismatch
	MixinDepthExceeded
)

// Error is a terminal rendering failure. Name is the variable or mixin name
// involved.
type Error struct {
	Kind ErrorKind
	Name string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("render error: undefined variable %q", e.Name)
	case UndefinedMixin:
		return fmt.Sprintf("render error: undefined mixin %q", e.Name)
	case TypeMismatch:
		return fmt.Sprintf("render error: variable %q is not a boolean", e.Name)
	case MixinDepthExceeded:
		return fmt.Sprintf("render error: mixin %q exceeds expansion depth %d", e.Name, maxMixinDepth)
	default:
		return "render error"
	}
}

// Render walks the document against the context and serializes HTML. The
// walk lowers each node to a gomponents node, resolving interpolations,
// conditionals, and mixin expansions up front, so a failure anywhere aborts
// the call before any output is produced. The context is read, never mutated.
func Render(doc *ast.Document, ctx *vars.Context) (string, error) {
	lw := &lowerer{doc: doc, ctx: ctx}
	root, err := lw.lowerNodes(doc.Nodes)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := root.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type lowerer struct {
	doc   *ast.Document
	ctx   *vars.Context
	depth int // current mixin expansion depth
}

func (lw *lowerer) lowerNodes(nodes []ast.Node) (g.Group, error) {
	var out g.Group
	for _, n := range nodes {
		ex, err := lw.lowerNode(n)
		if err != nil {
			return nil, err
		}
		if ex != nil {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (lw *lowerer) lowerNode(n ast.Node) (g.Node, error) {
	switch t := n.(type) {
	case *ast.Text:
		s, err := lw.resolveText(t.Parts)
		if err != nil {
			return nil, err
		}
		return g.Text(s), nil
	case *ast.Element:
		return lw.lowerElement(t)
	case *ast.Conditional:
		return lw.lowerConditional(t)
	case *ast.MixinDef:
		// registered in the document's mixin table; renders nothing in place
		return nil, nil
	case *ast.MixinCall:
		return lw.lowerMixinCall(t)
	default:
		return nil, fmt.Errorf("unsupported node type %T", n)
	}
}

// lowerElement emits the id attribute before class, with repeated classes
// space-joined in written order. Void elements (img, br, ...) are handled by
// gomponents: no closing tag is emitted and child nodes are dropped.
func (lw *lowerer) lowerElement(el *ast.Element) (g.Node, error) {
	var args []g.Node
	if el.ID != "" {
		args = append(args, html.ID(el.ID))
	}
	if len(el.Classes) > 0 {
		args = append(args, html.Class(strings.Join(el.Classes, " ")))
	}
	for _, c := range el.Children {
		cx, err := lw.lowerNode(c)
		if err != nil {
			return nil, err
		}
		if cx != nil {
			args = append(args, cx)
		}
	}
	return g.El(el.Tag, args...), nil
}

// lowerConditional treats an absent condition variable as false; a variable
// of any non-boolean type is an error. This is deliberately laxer than text
// interpolation, which fails on absent variables.
func (lw *lowerer) lowerConditional(cond *ast.Conditional) (g.Node, error) {
	branch := cond.Else
	if v, ok := lw.ctx.Lookup(cond.Var); ok {
		if v.Kind != vars.KindBool {
			return nil, &Error{Kind: TypeMismatch, Name: cond.Var}
		}
		if v.Bool {
			branch = cond.Then
		}
	}
	return lw.lowerNodes(branch)
}

// lowerMixinCall expands the named mixin's body in place, closing over the
// caller's context rather than a separate scope.
func (lw *lowerer) lowerMixinCall(call *ast.MixinCall) (g.Node, error) {
	def, ok := lw.doc.Mixins[call.Name]
	if !ok {
		return nil, &Error{Kind: UndefinedMixin, Name: call.Name}
	}
	if lw.depth >= maxMixinDepth {
		return nil, &Error{Kind: MixinDepthExceeded, Name: call.Name}
	}
	lw.depth++
	body, err := lw.lowerNodes(def.Body)
	lw.depth--
	if err != nil {
		return nil, err
	}
	return body, nil
}

// resolveText concatenates a text segment's parts, substituting interpolation
// spans with the named variable's text form. An absent variable fails the
// whole render. The assembled string is HTML-escaped on output by g.Text.
func (lw *lowerer) resolveText(parts []lexer.TextPart) (string, error) {
	var b strings.Builder
	for _, part := range parts {
		if part.Kind == lexer.PartLiteral {
			b.WriteString(part.Value)
			continue
		}
		v, ok := lw.ctx.Lookup(part.Value)
		if !ok {
			return "", &Error{Kind: UndefinedVariable, Name: part.Value}
		}
		b.WriteString(v.Text())
	}
	return b.String(), nil
}
