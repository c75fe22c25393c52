package pug

import (
	"github.com/carlos-sweb/gopug/internal/pug/compile"
	"github.com/carlos-sweb/gopug/internal/pug/vars"
)

// Version is the engine's static build identifier.
const Version = "0.1.0"

// Context maps variable names to typed values (string, int64, bool) consulted
// during rendering. Create one with NewContext, populate it with the typed
// setters, and pass it to Compile. Independent contexts may be used from
// different goroutines; a single context must not be mutated concurrently.
type Context = vars.Context

// NewContext returns a fresh, empty variable mapping.
func NewContext() *Context {
	return vars.NewContext()
}

// Compile compiles a Pug-style template to HTML against the context's current
// variables. A nil context behaves like an empty one.
//
// Output is compact: sibling elements render back-to-back with no injected
// whitespace, and all literal and interpolated text is HTML-escaped.
func Compile(ctx *Context, source string) (string, error) {
	return compile.Compile(source, ctx)
}
