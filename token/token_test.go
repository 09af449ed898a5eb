package token_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/dotgraph/token"
)

func TestLookup(t *testing.T) {
	tests := map[string]token.Kind{
		"graph":   token.Graph,
		"digraph": token.Digraph,
		"{":       token.LeftBrace,
		"}":       token.RightBrace,
		";":       token.Semicolon,
		"--":      token.UndirectedEdge,
		"->":      token.DirectedEdge,
		"a":       token.ID,
		"Graph":   token.ID, // keywords are case-sensitive
		"strict":  token.ID,
		"a;":      token.ID,
		"---":     token.ID,
		"{}":      token.ID,
		"node_1":  token.ID,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.EqualValues(t, token.Lookup(in), want, "Lookup(%q)", in)
		})
	}
}

func TestKindString(t *testing.T) {
	tests := map[string]struct {
		in   token.Kind
		want string
	}{
		"Single": {
			in:   token.UndirectedEdge,
			want: "--",
		},
		"Two": {
			in:   token.ID | token.RightBrace,
			want: "} or ID",
		},
		"Three": {
			in:   token.Graph | token.Digraph | token.LeftBrace,
			want: "{, digraph or graph",
		},
		"Zero": {
			in:   0,
			want: "ILLEGAL",
		},
		"OutOfRange": {
			in:   token.Graph << 1,
			want: "ILLEGAL",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.EqualValues(t, test.in.String(), test.want, "String()")
		})
	}
}

func TestKinds(t *testing.T) {
	got := (token.Semicolon | token.EOF | token.DirectedEdge).Kinds()

	assert.EqualValues(t, got, []token.Kind{token.EOF, token.Semicolon, token.DirectedEdge}, "Kinds()")
}

func TestTokenString(t *testing.T) {
	assert.EqualValues(t, token.Token{Kind: token.ID, Literal: "a"}.String(), "a", "ID token")
	assert.EqualValues(t, token.Token{Kind: token.Semicolon, Literal: ";"}.String(), ";", "semicolon token")
	assert.EqualValues(t, token.Token{Kind: token.EOF}.String(), "EOF", "EOF token")
	assert.True(t, token.Token{Kind: token.Digraph}.IsKeyword(), "digraph is a keyword")
	assert.False(t, token.Token{Kind: token.ID, Literal: "x"}.IsKeyword(), "ID is not a keyword")
}

func TestPosition(t *testing.T) {
	tests := map[string]struct {
		in        token.Position
		wantStr   string
		wantValid bool
	}{
		"Valid":      {in: token.Position{Line: 2, Column: 3}, wantStr: "2:3", wantValid: true},
		"Zero":       {in: token.Position{}, wantStr: "0:0", wantValid: false},
		"ZeroColumn": {in: token.Position{Line: 1}, wantStr: "1:0", wantValid: false},
		"ZeroLine":   {in: token.Position{Column: 1}, wantStr: "0:1", wantValid: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.EqualValues(t, test.in.String(), test.wantStr, "String()")
			assert.Equals(t, test.in.IsValid(), test.wantValid, "IsValid()")
		})
	}
}
