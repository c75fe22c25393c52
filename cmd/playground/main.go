package main

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/carlos-sweb/gopug/internal/pug/outfile"
	"github.com/carlos-sweb/gopug/internal/pug/varflag"
	"github.com/carlos-sweb/gopug/pkg/pug"
)

func main() {
	flag.Usage = func() {
		_, _ = fmt.Fprintln(os.Stderr, "Usage: playground [flags]")
		_, _ = fmt.Fprintln(os.Stderr, "")
		_, _ = fmt.Fprintln(os.Stderr, "Watches a .pug template and recompiles it to a sibling .html on changes.")
		flag.PrintDefaults()
	}

	ctx := pug.NewContext()
	flag.Var(varflag.StringVar{Ctx: ctx}, "var", "set a string variable, key=value (repeatable)")
	flag.Var(varflag.IntVar{Ctx: ctx}, "int", "set an integer variable, key=value (repeatable)")
	flag.Var(varflag.BoolVar{Ctx: ctx}, "bool", "set a boolean variable, key=true|false (repeatable)")
	target := flag.String("file", "playground/page.pug", "template file to watch")
	interval := flag.Duration("interval", 300*time.Millisecond, "watch polling interval")
	flag.Parse()

	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	watchAndCompile(ctx, *target, *interval)
}

func watchAndCompile(ctx *pug.Context, target string, interval time.Duration) {
	var lastHash [32]byte
	var have bool

	for {
		src, err := os.ReadFile(target)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "playground: read error: %v\n", err)
			time.Sleep(interval)
			continue
		}
		// polling on a content hash is enough here; no need for fsnotify
		h := sha256.Sum256(src)
		if !have || h != lastHash {
			lastHash = h
			have = true

			html, err := pug.Compile(ctx, string(src))
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "playground: %v\n", err)
			} else if err := outfile.WriteHTMLFile(target+".html", []byte(html)); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "playground: write error: %v\n", err)
			} else {
				_, _ = fmt.Fprintf(os.Stderr, "playground: compiled %s\n", target)
			}
		}

		time.Sleep(interval)
	}
}
