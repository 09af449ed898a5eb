// Package dotgraph parses a small subset of the [DOT language] into an adjacency representation.
//
// Parsing is split into a [Scanner] that turns source into tokens and a [Parser] that is a finite
// state machine consuming one token at a time. The parser fails on the first token that has no
// transition from its current [State].
//
// # Grammar
//
//	graph : ( 'graph' | 'digraph' ) [ ID ] '{' stmt* '}'
//	stmt  : chain ';'
//	chain : ID ( edgeop ID )*
//
// Where edgeop is '--' for undirected graphs and '->' for directed graphs. The [Base] variant
// only accepts named undirected graphs. The [Extended] variant also accepts 'digraph' and
// anonymous graphs.
//
// [DOT language]: https://graphviz.org/doc/info/lang.html
package dotgraph

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/teleivo/dotgraph/internal/assert"
	"github.com/teleivo/dotgraph/token"
)

// Variant selects the grammar accepted by the [Parser].
type Variant int

const (
	// Base accepts 'graph' ID '{' stmt* '}' with '--' edges. Tokens following the closing brace
	// are never consumed.
	Base Variant = iota
	// Extended additionally accepts 'digraph' with '->' edges and anonymous graphs. The edge
	// operator must match the graph kind and nothing but EOF may follow the closing brace.
	Extended
)

var variantStrings = map[Variant]string{
	Base:     "base",
	Extended: "extended",
}

func (v Variant) String() string {
	if s, ok := variantStrings[v]; ok {
		return s
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// NewVariant converts the string representation of a variant into a [Variant].
func NewVariant(s string) (Variant, error) {
	for v, name := range variantStrings {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("invalid variant %q: valid ones are %q or %q", s, Base, Extended)
}

// State is the state of the [Parser].
type State int

const (
	Start State = iota
	ExpectGraphName
	// ExpectGraphNameOrLeftBrace is only reachable in the [Extended] variant.
	ExpectGraphNameOrLeftBrace
	ExpectLeftBrace
	ExpectNodeName
	ExpectEdgeOrSemicolon
	ExpectNodeNameOrRightBrace
	End
)

var stateStrings = [...]string{
	Start:                      "Start",
	ExpectGraphName:            "ExpectGraphName",
	ExpectGraphNameOrLeftBrace: "ExpectGraphNameOrLeftBrace",
	ExpectLeftBrace:            "ExpectLeftBrace",
	ExpectNodeName:             "ExpectNodeName",
	ExpectEdgeOrSemicolon:      "ExpectEdgeOrSemicolon",
	ExpectNodeNameOrRightBrace: "ExpectNodeNameOrRightBrace",
	End:                        "End",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateStrings) {
		return stateStrings[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Expected returns the set of token kinds that have a transition out of state s. The edge
// operator accepted in [ExpectEdgeOrSemicolon] depends on whether the graph is directed.
func (s State) Expected(v Variant, directed bool) token.Kind {
	switch s {
	case Start:
		if v == Extended {
			return token.Graph | token.Digraph
		}
		return token.Graph
	case ExpectGraphName, ExpectNodeName:
		return token.ID
	case ExpectGraphNameOrLeftBrace:
		if v == Extended {
			return token.ID | token.LeftBrace
		}
	case ExpectLeftBrace:
		return token.LeftBrace
	case ExpectEdgeOrSemicolon:
		return edgeOperator(v, directed) | token.Semicolon
	case ExpectNodeNameOrRightBrace:
		return token.ID | token.RightBrace
	case End:
		if v == Extended {
			return token.EOF
		}
	}
	return 0
}

func edgeOperator(v Variant, directed bool) token.Kind {
	if v == Extended && directed {
		return token.DirectedEdge
	}
	return token.UndirectedEdge
}

// SyntaxError describes a token that has no transition from the parser's current state.
type SyntaxError struct {
	Token    token.Token // Token is the offending token.
	State    State       // State is the parser state the token was encountered in.
	Expected token.Kind  // Expected is the set of token kinds State has transitions for.
	Msg      string      // Msg optionally adds detail.
}

// Error formats the error as "line:column: unexpected token in state, expected kinds".
func (e *SyntaxError) Error() string {
	var sb strings.Builder
	if e.Token.Start.IsValid() {
		sb.WriteString(e.Token.Start.String())
		sb.WriteString(": ")
	}
	sb.WriteString("unexpected ")
	writeToken(e.Token, &sb)
	sb.WriteString(" in state ")
	sb.WriteString(e.State.String())
	if e.Expected != 0 {
		sb.WriteString(", expected ")
		sb.WriteString(e.Expected.String())
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	return sb.String()
}

func writeToken(tok token.Token, sb *strings.Builder) {
	switch tok.Kind {
	case token.EOF:
		sb.WriteString("EOF")
	case token.ID:
		sb.WriteString("ID '")
		sb.WriteString(tok.Literal)
		sb.WriteByte('\'')
	default:
		sb.WriteByte('\'')
		sb.WriteString(tok.Kind.String())
		sb.WriteByte('\'')
	}
}

// ErrParserUsed is returned when [Parser.Parse] is called more than once on the same parser.
var ErrParserUsed = errors.New("parser has already been used, create a new one per document")

// Parser is a finite state machine that builds a [Graph] from a sequence of tokens. A Parser
// parses a single document. Independent documents can be parsed concurrently using one Parser
// each.
type Parser struct {
	variant  Variant
	state    State
	directed bool
	used     bool

	name      string
	nodes     []string
	index     map[string]int
	adjacency map[int][]int
	chain     []int // node indices of the statement parsed since the last ';'
}

// NewParser creates a new parser accepting the given variant of the grammar.
func NewParser(v Variant) *Parser {
	return &Parser{
		variant:   v,
		state:     Start,
		nodes:     make([]string, 0),
		index:     make(map[string]int),
		adjacency: make(map[int][]int),
	}
}

// State returns the current state of the parser.
func (p *Parser) State() State {
	return p.state
}

// Parse consumes tokens until the graph is complete and returns it. Parse stops at the first
// token without a transition and returns a [*SyntaxError]. No partial graph is returned.
//
// The [Base] variant stops pulling tokens once the closing brace is parsed. The [Extended]
// variant requires that the closing brace is followed by EOF or the end of tokens.
func (p *Parser) Parse(tokens iter.Seq[token.Token]) (*Graph, error) {
	if p.used {
		return nil, ErrParserUsed
	}
	p.used = true

	var last token.Token
	for tok := range tokens {
		if err := p.step(tok); err != nil {
			return nil, err
		}
		last = tok
		if tok.Kind == token.EOF || (p.state == End && p.variant == Base) {
			break
		}
	}

	if p.state != End {
		eof := token.Token{Kind: token.EOF, Start: last.End, End: last.End}
		return nil, p.unexpected(eof, "")
	}

	return p.graph(), nil
}

// step applies the transition for tok from the current state.
func (p *Parser) step(tok token.Token) error {
	if tok.Kind&p.state.Expected(p.variant, p.directed) == 0 {
		return p.unexpected(tok, p.hint(tok))
	}

	switch p.state {
	case Start:
		p.directed = tok.Kind == token.Digraph
		if p.variant == Extended {
			p.state = ExpectGraphNameOrLeftBrace
		} else {
			p.state = ExpectGraphName
		}
	case ExpectGraphName, ExpectGraphNameOrLeftBrace:
		if tok.Kind == token.LeftBrace {
			p.state = ExpectNodeNameOrRightBrace
			break
		}
		p.name = tok.Literal
		p.state = ExpectLeftBrace
	case ExpectLeftBrace:
		p.state = ExpectNodeNameOrRightBrace
	case ExpectNodeName, ExpectNodeNameOrRightBrace:
		if tok.Kind == token.RightBrace {
			p.state = End
			break
		}
		p.chain = append(p.chain, p.nodeIndex(tok.Literal))
		p.state = ExpectEdgeOrSemicolon
	case ExpectEdgeOrSemicolon:
		if tok.Kind == token.Semicolon {
			p.persistChain()
			p.state = ExpectNodeNameOrRightBrace
			break
		}
		p.state = ExpectNodeName
	case End:
		// only EOF reaches here
	}
	return nil
}

// hint explains common mistakes in more detail than the set of expected tokens does.
func (p *Parser) hint(tok token.Token) string {
	switch {
	case p.state == ExpectEdgeOrSemicolon && p.variant == Extended && p.directed && tok.Kind == token.UndirectedEdge:
		return "expected '->' for edge in directed graph"
	case p.state == ExpectEdgeOrSemicolon && p.variant == Extended && !p.directed && tok.Kind == token.DirectedEdge:
		return "expected '--' for edge in undirected graph"
	case p.state == ExpectEdgeOrSemicolon && p.variant == Base && tok.Kind == token.DirectedEdge:
		return "directed edges are not supported"
	case p.state == Start && p.variant == Base && tok.Kind == token.Digraph:
		return "directed graphs are not supported"
	case p.state == ExpectGraphName && tok.Kind == token.LeftBrace:
		return "graph name is required"
	case p.expectsName() && tok.IsKeyword():
		return "reserved word '" + tok.Literal + "' cannot be used as a name"
	case p.state == End:
		return "no tokens may follow the closing brace"
	}
	return ""
}

func (p *Parser) expectsName() bool {
	switch p.state {
	case ExpectGraphName, ExpectGraphNameOrLeftBrace, ExpectNodeName, ExpectNodeNameOrRightBrace:
		return true
	}
	return false
}

func (p *Parser) unexpected(tok token.Token, msg string) *SyntaxError {
	return &SyntaxError{
		Token:    tok,
		State:    p.state,
		Expected: p.state.Expected(p.variant, p.directed),
		Msg:      msg,
	}
}

// nodeIndex returns the index of the node with given name. A name seen for the first time is
// assigned the next index.
func (p *Parser) nodeIndex(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	i := len(p.nodes)
	p.nodes = append(p.nodes, name)
	p.index[name] = i
	return i
}

// persistChain adds an edge between each consecutive pair of nodes in the current chain and
// clears it. Undirected edges are added in reverse once all forward edges are added, so that
// a -- b -- c yields b: [c, a]. A chain of fewer than two nodes adds no edges.
func (p *Parser) persistChain() {
	for i := 0; i+1 < len(p.chain); i++ {
		from, to := p.chain[i], p.chain[i+1]
		assert.Index(from, len(p.nodes), "node")
		assert.Index(to, len(p.nodes), "node")
		p.adjacency[from] = append(p.adjacency[from], to)
	}
	if !p.directed {
		for i := 0; i+1 < len(p.chain); i++ {
			from, to := p.chain[i], p.chain[i+1]
			p.adjacency[to] = append(p.adjacency[to], from)
		}
	}
	p.chain = p.chain[:0]
}

func (p *Parser) graph() *Graph {
	return &Graph{
		Name:      p.name,
		Directed:  p.directed,
		Nodes:     p.nodes,
		Adjacency: p.adjacency,
		index:     p.index,
	}
}

// Parse parses src using the given variant of the grammar.
func Parse(src []byte, v Variant) (*Graph, error) {
	return NewParser(v).Parse(Tokenize(src))
}

// ParseFile reads the file at path and parses it using the given variant of the grammar.
func ParseFile(path string, v Variant) (*Graph, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph: %w", err)
	}
	return Parse(src, v)
}
