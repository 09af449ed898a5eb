// Package gen generates random graph documents for benchmarking and property testing the parser.
//
// A document declares every node on its own line followed by one statement per edge:
//
//	graph graphname {
//	    0;
//	    1;
//	    0 -- 1;
//	}
//
// Declaring nodes up front makes isolated nodes part of the document and fixes node indices to
// declaration order.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/ojrac/opensimplex-go"
	"github.com/teleivo/dotgraph/token"
)

// Names selects how nodes are named.
type Names int

const (
	// IndexNames names nodes 0 to N-1.
	IndexNames Names = iota
	// UUIDNames names nodes with random UUIDs derived from the seed.
	UUIDNames
)

var namesStrings = map[Names]string{
	IndexNames: "index",
	UUIDNames:  "uuid",
}

func (n Names) String() string {
	if s, ok := namesStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Names(%d)", int(n))
}

// NewNames converts the string representation of a naming scheme into [Names].
func NewNames(s string) (Names, error) {
	for n, name := range namesStrings {
		if name == s {
			return n, nil
		}
	}
	return 0, fmt.Errorf("invalid names %q: valid ones are %q or %q", s, IndexNames, UUIDNames)
}

// Options configures the generated document.
type Options struct {
	Name         string  // Name of the graph, defaults to "graphname".
	Nodes        int     // Nodes is the number of distinct nodes.
	Connectivity float64 // Connectivity is the fraction in [0, 1] of all possible edges to declare.
	Directed     bool    // Directed generates a digraph with '->' edges.
	Seed         uint64  // Seed makes generation deterministic.
	Names        Names
	// Clustered biases edge selection using 2D OpenSimplex noise over the node indices so that
	// edges concentrate among nodes with nearby indices.
	Clustered bool
}

// Document is a generated graph document.
type Document struct {
	Src   []byte
	Nodes []string // Nodes in declaration order.
	Edges int      // Edges is the number of distinct edges declared.
}

// noiseScale stretches node indices over the noise field. Smaller values give larger clusters.
const noiseScale = 0.05

// Generate generates a document declaring opts.Nodes nodes and
// floor(opts.Connectivity * max) distinct edges where max is N(N-1)/2 for undirected and N(N-1)
// for directed graphs. Self-loops are never generated.
func Generate(opts Options) (*Document, error) {
	if opts.Nodes < 0 {
		return nil, fmt.Errorf("invalid number of nodes %d: must be >= 0", opts.Nodes)
	}
	if opts.Connectivity < 0 || opts.Connectivity > 1 {
		return nil, fmt.Errorf("invalid connectivity %v: must be in [0, 1]", opts.Connectivity)
	}
	if opts.Name == "" {
		opts.Name = "graphname"
	}
	if err := validateName(opts.Name); err != nil {
		return nil, err
	}

	var seed [32]byte
	for i := range 4 {
		for j := range 8 {
			seed[i*8+j] = byte(opts.Seed >> (8 * j))
		}
	}
	src := rand.NewChaCha8(seed)
	rng := rand.New(src)

	nodes, err := names(opts.Nodes, opts.Names, src)
	if err != nil {
		return nil, err
	}

	n := opts.Nodes
	maxEdges := n * (n - 1)
	if !opts.Directed {
		maxEdges /= 2
	}
	m := int(opts.Connectivity * float64(maxEdges))

	s := selector{n: n, directed: opts.Directed, rng: rng}
	if opts.Clustered {
		s.noise = opensimplex.New(int64(opts.Seed))
	}
	edges := s.choose(m, maxEdges)

	var buf bytes.Buffer
	keyword, op := "graph", "--"
	if opts.Directed {
		keyword, op = "digraph", "->"
	}
	buf.WriteString(keyword + " " + opts.Name + " {\n")
	for _, node := range nodes {
		buf.WriteString("    " + node + ";\n")
	}
	for _, e := range edges {
		buf.WriteString("    " + nodes[e.from] + " " + op + " " + nodes[e.to] + ";\n")
	}
	buf.WriteString("}\n")

	return &Document{Src: buf.Bytes(), Nodes: nodes, Edges: len(edges)}, nil
}

// validateName returns an error unless name is scanned as a single ID token.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("invalid graph name: must not be blank")
	}
	if strings.ContainsFunc(name, func(r rune) bool { return unicode.IsSpace(r) || r == ';' }) {
		return fmt.Errorf("invalid graph name %q: must not contain whitespace or ';'", name)
	}
	if kind := token.Lookup(name); kind != token.ID {
		return fmt.Errorf("invalid graph name %q: reserved word %s", name, kind)
	}
	return nil
}

func names(n int, scheme Names, src *rand.ChaCha8) ([]string, error) {
	nodes := make([]string, n)
	for i := range nodes {
		switch scheme {
		case IndexNames:
			nodes[i] = strconv.Itoa(i)
		case UUIDNames:
			id, err := uuid.NewRandomFromReader(src)
			if err != nil {
				return nil, fmt.Errorf("failed to generate node name: %w", err)
			}
			nodes[i] = id.String()
		default:
			return nil, errors.New("invalid names " + scheme.String())
		}
	}
	return nodes, nil
}

type edge struct {
	from, to int
}

type selector struct {
	n        int
	directed bool
	rng      *rand.Rand
	noise    opensimplex.Noise // nil unless edges are clustered
}

// choose returns m distinct edges out of maxEdges. Dense graphs are generated by choosing the
// edges to leave out, so that rejection sampling never has to hit a shrinking set of free pairs.
func (s selector) choose(m, maxEdges int) []edge {
	if m == 0 {
		return nil
	}

	if m <= maxEdges/2 {
		return s.sample(m, false).order
	}

	excluded := s.sample(maxEdges-m, true)
	edges := make([]edge, 0, m)
	for from := range s.n {
		for to := range s.n {
			e := edge{from, to}
			if from == to || (!s.directed && from > to) {
				continue
			}
			if _, ok := excluded.set[e]; !ok {
				edges = append(edges, e)
			}
		}
	}
	s.rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })
	return edges
}

type edgeSet struct {
	set   map[edge]struct{}
	order []edge
}

// sample picks k distinct pairs. With clustering, a pair is accepted with a probability given by
// the noise at its indices, or one minus that when picking edges to exclude.
func (s selector) sample(k int, invert bool) edgeSet {
	es := edgeSet{set: make(map[edge]struct{}, k), order: make([]edge, 0, k)}
	for len(es.order) < k {
		from, to := s.rng.IntN(s.n), s.rng.IntN(s.n)
		if from == to {
			continue
		}
		if !s.directed && from > to {
			from, to = to, from
		}
		e := edge{from, to}
		if _, ok := es.set[e]; ok {
			continue
		}
		if s.noise != nil && !s.accept(e, invert) {
			continue
		}
		es.set[e] = struct{}{}
		es.order = append(es.order, e)
	}
	return es
}

// minAcceptance keeps every pair reachable so sampling terminates for any noise field.
const minAcceptance = 0.05

func (s selector) accept(e edge, invert bool) bool {
	p := (s.noise.Eval2(float64(e.from)*noiseScale, float64(e.to)*noiseScale) + 1) / 2
	if invert {
		p = 1 - p
	}
	return s.rng.Float64() < max(p, minAcceptance)
}
