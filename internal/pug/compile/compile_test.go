package compile

import (
	"strings"
	"sync"
	"testing"

	"golang.org/x/net/html"

	"github.com/carlos-sweb/gopug/internal/pug/vars"
)

func TestCompile_Idempotent(t *testing.T) {
	ctx := vars.NewContext()
	ctx.SetString("name", "John Doe")

	const input = "div.container\n  p Hello #{name}!"
	first, err := Compile(input, ctx)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	second, err := Compile(input, ctx)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if first != second {
		t.Fatalf("re-compiling identical input diverged: %q vs %q", first, second)
	}
}

func TestCompile_PipelineErrorsPropagate(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"lex", "div\n    p deep\n  p shallow"},
		{"parse", "else\n  p hi"},
		{"render", "p #{missing}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Compile(tc.input, nil)
			if err == nil {
				t.Fatal("expected an error")
			}
			if out != "" {
				t.Fatalf("failed compile must not return partial output, got %q", out)
			}
		})
	}
}

func TestCompile_ContextReadOnly(t *testing.T) {
	ctx := vars.NewContext()
	ctx.SetString("name", "Alice")
	ctx.SetBool("loggedIn", true)

	if _, err := Compile("if loggedIn\n  p #{name}", ctx); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if names := ctx.Names(); len(names) != 2 {
		t.Fatalf("render must not mutate the context, got variables %v", names)
	}
	if v, _ := ctx.Lookup("name"); v.Str != "Alice" {
		t.Fatalf("render must not mutate the context, name became %q", v.Str)
	}
}

func TestCompile_OutputParsesAsHTML(t *testing.T) {
	ctx := vars.NewContext()
	ctx.SetString("title", "Welcome Page")
	ctx.SetBool("loggedIn", true)

	const input = "div#page.layout\n" +
		"  h1 #{title}\n" +
		"  if loggedIn\n" +
		"    p.greeting Hello!\n" +
		"  img\n" +
		"  ul.nav\n" +
		"    li one\n" +
		"    li two"

	out, err := Compile(input, ctx)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	root, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("output is not parseable HTML: %v", err)
	}

	var page *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == "page" {
					page = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if page == nil {
		t.Fatalf("div#page not found in parsed output: %q", out)
	}
	var tags []string
	for c := page.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			tags = append(tags, c.Data)
		}
	}
	want := []string{"h1", "p", "img", "ul"}
	if len(tags) != len(want) {
		t.Fatalf("expected children %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected children %v, got %v", want, tags)
		}
	}
}

func TestCompile_IndependentContextsConcurrently(t *testing.T) {
	const input = "p Hello #{name}!"

	var wg sync.WaitGroup
	for _, name := range []string{"Alice", "Bob", "Carol", "Dave"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			ctx := vars.NewContext()
			ctx.SetString("name", name)
			for i := 0; i < 50; i++ {
				out, err := Compile(input, ctx)
				if err != nil {
					t.Errorf("Compile failed: %v", err)
					return
				}
				if out != "<p>Hello "+name+"!</p>" {
					t.Errorf("wrong output for %s: %q", name, out)
					return
				}
			}
		}(name)
	}
	wg.Wait()
}
