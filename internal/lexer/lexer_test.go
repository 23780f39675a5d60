package lexer

import (
	"testing"

	"github.com/cwbudde/glox/pkg/token"
)

func TestScanTokensBasicOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"single chars", "(){},.-+;*^%", []token.Kind{
			token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
			token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
			token.STAR, token.CARET, token.PERCENT, token.EOF,
		}},
		{"one or two char", "! != = == < <= > >=", []token.Kind{
			token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
			token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL, token.EOF,
		}},
		{"comment to end of line", "1 // ignored\n2", []token.Kind{token.NUMBER, token.NUMBER, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.input).ScanTokens()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(got), len(tt.want), got)
			}
			for i, k := range tt.want {
				if got[i].Kind != k {
					t.Errorf("token %d: got %s, want %s", i, got[i].Kind, k)
				}
			}
		})
	}
}

func TestScanTokensKeywordsAndIdentifiers(t *testing.T) {
	toks := New("var answer = clock").ScanTokens()
	want := []token.Kind{token.VAR, token.IDENTIFIER, token.EQUAL, token.IDENTIFIER, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestScanTokensStringLiteralMultiline(t *testing.T) {
	toks := New("\"a\nb\"").ScanTokens()
	if toks[0].Kind != token.STRING || toks[0].Literal != "a\nb" {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[1].Line != 2 {
		t.Fatalf("expected EOF on line 2 after embedded newline, got line %d", toks[1].Line)
	}
}

func TestScanTokensUnterminatedString(t *testing.T) {
	s := New("\"unterminated")
	s.ScanTokens()
	errs := s.Errors()
	if len(errs) != 1 || errs[0].Message != "Unterminated string." {
		t.Fatalf("got %v", errs)
	}
}

func TestScanTokensNumberLiteral(t *testing.T) {
	toks := New("123.45 .5 5.").ScanTokens()
	if toks[0].Literal.(float64) != 123.45 {
		t.Fatalf("got %v", toks[0].Literal)
	}
	// leading dot is not part of a number: DOT then NUMBER
	if toks[1].Kind != token.DOT {
		t.Fatalf("expected leading dot to be its own token, got %s", toks[1].Kind)
	}
	// trailing dot is not part of the number either
	foundDot := false
	for _, tk := range toks {
		if tk.Kind == token.DOT {
			foundDot = true
		}
	}
	if !foundDot {
		t.Fatalf("expected a standalone DOT token somewhere, got %v", toks)
	}
}

func TestScanTokensUnexpectedCharacter(t *testing.T) {
	s := New("@")
	s.ScanTokens()
	if len(s.Errors()) != 1 || s.Errors()[0].Message != "Unexpected character." {
		t.Fatalf("got %v", s.Errors())
	}
}

func TestScanTokensEndsWithEOF(t *testing.T) {
	toks := New("var x;").ScanTokens()
	last := toks[len(toks)-1]
	if last.Kind != token.EOF {
		t.Fatalf("last token should be EOF, got %s", last.Kind)
	}
	for _, tk := range toks {
		if tk.Line < 1 {
			t.Fatalf("token has line < 1: %+v", tk)
		}
	}
}
