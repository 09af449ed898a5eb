// Package token defines the lexical tokens of the graph description language together with
// operations like printing and classifying words.
package token

import (
	"math/bits"
	"strings"
)

// Kind represents the kinds of lexical tokens. Kinds are bit flags so that a set of kinds, for
// example the tokens a parser state accepts, can be expressed as a single Kind.
type Kind uint

const (
	// EOF is not part of the language and is used to indicate the end of the input. No token
	// follows the EOF token.
	EOF Kind = 1 << iota

	LeftBrace      // {
	RightBrace     // }
	Semicolon      // ;
	UndirectedEdge // --
	DirectedEdge   // ->
	ID             // any other word like a or node_1

	// Keywords
	Digraph // digraph
	Graph   // graph
)

// maxKind is the highest Kind.
const maxKind = Graph

var kindStrings = map[Kind]string{
	EOF:            "EOF",
	LeftBrace:      "{",
	RightBrace:     "}",
	Semicolon:      ";",
	UndirectedEdge: "--",
	DirectedEdge:   "->",
	ID:             "ID",
	Digraph:        "digraph",
	Graph:          "graph",
}

// words maps the reserved words to their Kind. Matching is exact and case-sensitive.
var words = map[string]Kind{
	"{":       LeftBrace,
	"}":       RightBrace,
	";":       Semicolon,
	"--":      UndirectedEdge,
	"->":      DirectedEdge,
	"digraph": Digraph,
	"graph":   Graph,
}

// String returns the string representation of the kind. A set of kinds is rendered as "a, b or
// c" in ascending bit order.
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	if k == 0 || k > maxKind<<1-1 {
		return "ILLEGAL"
	}

	var sb strings.Builder
	kinds := k.Kinds()
	for i, kind := range kinds {
		if i > 0 {
			if i == len(kinds)-1 {
				sb.WriteString(" or ")
			} else {
				sb.WriteString(", ")
			}
		}
		sb.WriteString(kindStrings[kind])
	}
	return sb.String()
}

// Kinds returns the individual kinds contained in the set k in ascending order.
func (k Kind) Kinds() []Kind {
	kinds := make([]Kind, 0, bits.OnesCount(uint(k)))
	for remaining := k; remaining != 0; {
		bit := remaining & -remaining
		remaining &^= bit
		kinds = append(kinds, bit)
	}
	return kinds
}

// Token represents a token of the language.
type Token struct {
	Kind Kind
	// Literal is the raw word the token was classified from. It is empty for EOF.
	Literal string
	// Start and End are the positions of the first and last rune of the token.
	Start, End Position
}

// String returns the literal of an ID and the kind otherwise.
func (t Token) String() string {
	if t.Kind == ID {
		return t.Literal
	}
	return t.Kind.String()
}

// IsKeyword reports whether the token is one of the graph keywords.
func (t Token) IsKeyword() bool {
	return t.Kind&(Graph|Digraph) != 0
}

// Lookup classifies word by exact match against the reserved words. Any word that is not
// reserved is an [ID]. A node literally named graph is therefore always the keyword.
func Lookup(word string) Kind {
	if k, ok := words[word]; ok {
		return k
	}
	return ID
}
