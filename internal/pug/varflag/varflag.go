// Package varflag provides repeatable flag.Value adapters that populate a
// compile context from -var/-int/-bool command-line flags.
package varflag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carlos-sweb/gopug/internal/pug/vars"
)

// StringVar parses "key=value" and sets a string variable.
type StringVar struct {
	Ctx *vars.Context
}

func (f StringVar) String() string { return "" }

func (f StringVar) Set(s string) error {
	key, val, err := split(s)
	if err != nil {
		return err
	}
	f.Ctx.SetString(key, val)
	return nil
}

// IntVar parses "key=value" with a base-10 signed 64-bit value.
type IntVar struct {
	Ctx *vars.Context
}

func (f IntVar) String() string { return "" }

func (f IntVar) Set(s string) error {
	key, val, err := split(s)
	if err != nil {
		return err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer for %q: %q", key, val)
	}
	f.Ctx.SetInt(key, n)
	return nil
}

// BoolVar parses "key=true" / "key=false".
type BoolVar struct {
	Ctx *vars.Context
}

func (f BoolVar) String() string { return "" }

func (f BoolVar) Set(s string) error {
	key, val, err := split(s)
	if err != nil {
		return err
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fmt.Errorf("invalid boolean for %q: %q", key, val)
	}
	f.Ctx.SetBool(key, b)
	return nil
}

func split(s string) (key, val string, err error) {
	key, val, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", s)
	}
	return key, val, nil
}
