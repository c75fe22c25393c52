package vars

import (
	"sort"
	"strconv"
)

// Kind tags the runtime type of a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the three variable types the engine supports.
type Value struct {
	Kind Kind
	Str  string
	Int  int64
	Bool bool
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Int(n int64) Value     { return Value{Kind: KindInt, Int: n} }
func Bool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }

// Text returns the value's rendered text form: strings as-is, integers in
// base-10 decimal, booleans as "true"/"false".
func (v Value) Text() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Context is a mutable mapping from variable name to Value, supplied by the
// caller before compilation. Keys are case-sensitive; setting an existing key
// overwrites its value and may change its type. A Context is not safe for
// concurrent mutation, but independent contexts may be used concurrently.
type Context struct {
	vals map[string]Value
}

func NewContext() *Context {
	return &Context{vals: make(map[string]Value)}
}

func (c *Context) SetString(key, val string) { c.set(key, String(val)) }
func (c *Context) SetInt(key string, val int64) {
	c.set(key, Int(val))
}
func (c *Context) SetBool(key string, val bool) { c.set(key, Bool(val)) }

func (c *Context) set(key string, val Value) {
	if c.vals == nil {
		c.vals = make(map[string]Value)
	}
	c.vals[key] = val
}

// Lookup resolves a variable. It is nil-receiver safe so a nil Context reads
// as an empty one.
func (c *Context) Lookup(key string) (Value, bool) {
	if c == nil || c.vals == nil {
		return Value{}, false
	}
	v, ok := c.vals[key]
	return v, ok
}

// Names returns the defined variable names in sorted order.
func (c *Context) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.vals))
	for k := range c.vals {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Reset removes every variable from the context.
func (c *Context) Reset() {
	if c != nil {
		c.vals = make(map[string]Value)
	}
}
