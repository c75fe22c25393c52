package lexer

import (
	"errors"
	"testing"
)

func expectTokens(t *testing.T, input string, expected []Token) {
	t.Helper()

	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(toks) != len(expected) {
		t.Fatalf("token count wrong. expected=%d, got=%d (%v)", len(expected), len(toks), toks)
	}
	for i, want := range expected {
		got := toks[i]
		if got.Type != want.Type {
			t.Fatalf("tokens[%d] - type wrong. expected=%s, got=%s", i, want.Type, got.Type)
		}
		if got.Value != want.Value {
			t.Fatalf("tokens[%d] - value wrong. expected=%q, got=%q", i, want.Value, got.Value)
		}
	}
}

func TestTokenize_TagWithShorthand(t *testing.T) {
	expectTokens(t, "div#main.a.b Hello World", []Token{
		{Type: TokenTag, Value: "div"},
		{Type: TokenID, Value: "main"},
		{Type: TokenClass, Value: "a"},
		{Type: TokenClass, Value: "b"},
		{Type: TokenText},
		{Type: TokenEOF},
	})
}

func TestTokenize_ImplicitDivShorthand(t *testing.T) {
	expectTokens(t, ".box hi", []Token{
		{Type: TokenClass, Value: "box"},
		{Type: TokenText},
		{Type: TokenEOF},
	})
}

func TestTokenize_IndentDedent(t *testing.T) {
	input := "div\n  p\n    span deep\n  p two\nbr"

	expectTokens(t, input, []Token{
		{Type: TokenTag, Value: "div"},
		{Type: TokenIndent},
		{Type: TokenTag, Value: "p"},
		{Type: TokenIndent},
		{Type: TokenTag, Value: "span"},
		{Type: TokenText},
		{Type: TokenDedent},
		{Type: TokenTag, Value: "p"},
		{Type: TokenText},
		{Type: TokenDedent},
		{Type: TokenTag, Value: "br"},
		{Type: TokenEOF},
	})
}

func TestTokenize_ClosesAllLevelsAtEOF(t *testing.T) {
	expectTokens(t, "div\n  p\n    span", []Token{
		{Type: TokenTag, Value: "div"},
		{Type: TokenIndent},
		{Type: TokenTag, Value: "p"},
		{Type: TokenIndent},
		{Type: TokenTag, Value: "span"},
		{Type: TokenDedent},
		{Type: TokenDedent},
		{Type: TokenEOF},
	})
}

func TestTokenize_BlankLinesSkipped(t *testing.T) {
	expectTokens(t, "div\n\n   \n  p hi\n", []Token{
		{Type: TokenTag, Value: "div"},
		{Type: TokenIndent},
		{Type: TokenTag, Value: "p"},
		{Type: TokenText},
		{Type: TokenDedent},
		{Type: TokenEOF},
	})
}

func TestTokenize_Keywords(t *testing.T) {
	input := "if loggedIn\n  p yes\nelse\n  p no\nmixin button\n  button.btn hi\n+button"

	expectTokens(t, input, []Token{
		{Type: TokenIf, Value: "loggedIn"},
		{Type: TokenIndent},
		{Type: TokenTag, Value: "p"},
		{Type: TokenText},
		{Type: TokenDedent},
		{Type: TokenElse},
		{Type: TokenIndent},
		{Type: TokenTag, Value: "p"},
		{Type: TokenText},
		{Type: TokenDedent},
		{Type: TokenMixinDef, Value: "button"},
		{Type: TokenIndent},
		{Type: TokenTag, Value: "button"},
		{Type: TokenClass, Value: "btn"},
		{Type: TokenText},
		{Type: TokenDedent},
		{Type: TokenMixinCall, Value: "button"},
		{Type: TokenEOF},
	})
}

func TestTokenize_InterpolationParts(t *testing.T) {
	toks, err := Tokenize("p Hello #{name}, you are #{age}!")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	var text *Token
	for i := range toks {
		if toks[i].Type == TokenText {
			text = &toks[i]
			break
		}
	}
	if text == nil {
		t.Fatal("no text token produced")
	}

	expected := []TextPart{
		{Kind: PartLiteral, Value: "Hello "},
		{Kind: PartInterp, Value: "name"},
		{Kind: PartLiteral, Value: ", you are "},
		{Kind: PartInterp, Value: "age"},
		{Kind: PartLiteral, Value: "!"},
	}
	if len(text.Parts) != len(expected) {
		t.Fatalf("part count wrong. expected=%d, got=%d (%v)", len(expected), len(text.Parts), text.Parts)
	}
	for i, want := range expected {
		if text.Parts[i] != want {
			t.Fatalf("parts[%d] wrong. expected=%+v, got=%+v", i, want, text.Parts[i])
		}
	}
}

func TestTokenize_UnterminatedInterpolation(t *testing.T) {
	_, err := Tokenize("p Hello #{name")
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if lexErr.Kind != UnterminatedInterpolation {
		t.Fatalf("expected UnterminatedInterpolation, got %v", lexErr.Kind)
	}
}

func TestTokenize_BadIndentUnknownDepth(t *testing.T) {
	_, err := Tokenize("div\n    p deep\n  p shallow")
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if lexErr.Kind != BadIndent {
		t.Fatalf("expected BadIndent, got %v", lexErr.Kind)
	}
	if lexErr.Line != 3 {
		t.Fatalf("expected error on line 3, got %d", lexErr.Line)
	}
}

func TestTokenize_TabIndent(t *testing.T) {
	_, err := Tokenize("div\n\tp hi")
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if lexErr.Kind != BadIndent {
		t.Fatalf("expected BadIndent, got %v", lexErr.Kind)
	}
}

func TestTokenize_CRLFInput(t *testing.T) {
	expectTokens(t, "div\r\n  p hi\r\n", []Token{
		{Type: TokenTag, Value: "div"},
		{Type: TokenIndent},
		{Type: TokenTag, Value: "p"},
		{Type: TokenText},
		{Type: TokenDedent},
		{Type: TokenEOF},
	})
}

func TestTokenize_TextReconstructsVerbatim(t *testing.T) {
	toks, err := Tokenize("p a#{x}b #{y} c")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	var got string
	for _, tok := range toks {
		if tok.Type != TokenText {
			continue
		}
		for _, part := range tok.Parts {
			if part.Kind == PartInterp {
				got += "#{" + part.Value + "}"
			} else {
				got += part.Value
			}
		}
	}
	if got != "a#{x}b #{y} c" {
		t.Fatalf("parts do not reconstruct the line, got %q", got)
	}
}
