package compile

import (
	"github.com/carlos-sweb/gopug/internal/pug/lexer"
	"github.com/carlos-sweb/gopug/internal/pug/parser"
	"github.com/carlos-sweb/gopug/internal/pug/render"
	"github.com/carlos-sweb/gopug/internal/pug/vars"
)

// Compile runs the full pipeline over one template: tokenize, parse, render.
// It is a pure function of the source text and the context's contents at call
// time; any stage failure aborts the call with that stage's error and no
// partial output.
func Compile(source string, ctx *vars.Context) (string, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return "", err
	}
	doc, err := parser.Parse(toks)
	if err != nil {
		return "", err
	}
	return render.Render(doc, ctx)
}
