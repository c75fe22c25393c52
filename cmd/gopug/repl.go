package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/carlos-sweb/gopug/pkg/pug"
)

const (
	historyFile = ".gopug_history"
	promptMain  = "pug> "
	promptCont  = "...  "
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

var replHelp = `Template lines accumulate until a blank line, then compile.

Commands:
  :var <key> <value>    Set a string variable
  :int <key> <value>    Set an integer variable
  :bool <key> <value>   Set a boolean variable
  :vars                 List the current variables
  :reset                Clear all variables
  :help                 Show this help
  :quit                 Exit
`

func runREPL(ctx *pug.Context) int {
	fmt.Printf("gopug %s. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", pug.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		src, ok := readTemplate(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			if quit := replCommand(ctx, trimmed); quit {
				return 0
			}
			ln.AppendHistory(trimmed)
			continue
		}

		html, err := pug.Compile(ctx, src)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(html)
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readTemplate accumulates template lines until a blank line terminates the
// input. A single line starting with ":" is returned immediately as a
// command. The second return is false on EOF.
func readTemplate(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(promptMain)
		} else {
			line, err = ln.Prompt(promptCont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return b.String(), true
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if strings.TrimSpace(line) == "" {
			return b.String(), true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
}

// replCommand executes one colon command. It returns true when the session
// should end.
func replCommand(ctx *pug.Context, cmd string) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(replHelp)
	case ":vars":
		for _, name := range ctx.Names() {
			v, _ := ctx.Lookup(name)
			fmt.Printf("%s %s = %s\n", v.Kind, name, v.Text())
		}
	case ":reset":
		ctx.Reset()
	case ":var":
		if len(fields) < 3 {
			fmt.Fprintln(os.Stderr, red("usage: :var <key> <value>"))
			break
		}
		ctx.SetString(fields[1], strings.Join(fields[2:], " "))
	case ":int":
		if len(fields) != 3 {
			fmt.Fprintln(os.Stderr, red("usage: :int <key> <value>"))
			break
		}
		n, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, red("not an integer: "+fields[2]))
			break
		}
		ctx.SetInt(fields[1], n)
	case ":bool":
		if len(fields) != 3 {
			fmt.Fprintln(os.Stderr, red("usage: :bool <key> true|false"))
			break
		}
		b, err := strconv.ParseBool(fields[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, red("not a boolean: "+fields[2]))
			break
		}
		ctx.SetBool(fields[1], b)
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}
