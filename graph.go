package dotgraph

import (
	"slices"
	"strconv"
	"strings"
)

// Graph is the result of parsing a document. Nodes are identified by their index into Nodes.
// A Graph is not modified after parsing.
type Graph struct {
	// Name is the declared name of the graph. It is empty for an anonymous graph.
	Name string `json:"name,omitempty"`
	// Directed is true for a 'digraph'.
	Directed bool `json:"directed"`
	// Nodes holds the node names in the order they first appear in the document.
	Nodes []string `json:"nodes"`
	// Adjacency maps the index of a node to the indices of the nodes it has an edge to, in the
	// order the edges were declared. Duplicate edges are kept. An undirected edge is recorded for
	// both of its nodes. A node without edges has no key.
	Adjacency map[int][]int `json:"adjacency"`

	index map[string]int
}

// Index returns the index of the node with given name.
func (g *Graph) Index(name string) (int, bool) {
	if g.index == nil {
		i := slices.Index(g.Nodes, name)
		return i, i >= 0
	}
	i, ok := g.index[name]
	return i, ok
}

// Neighbors returns the indices of the nodes the node at index i has an edge to.
func (g *Graph) Neighbors(i int) []int {
	return g.Adjacency[i]
}

// EntryCount returns the total number of adjacency entries. It is twice the number of declared
// edges for an undirected graph and the number of declared edges for a directed graph.
func (g *Graph) EntryCount() int {
	var n int
	for _, to := range g.Adjacency {
		n += len(to)
	}
	return n
}

// String returns a compact single-line representation of the graph with adjacency keys in
// ascending order.
func (g *Graph) String() string {
	var sb strings.Builder
	if g.Directed {
		sb.WriteString("digraph")
	} else {
		sb.WriteString("graph")
	}
	if g.Name != "" {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(g.Name))
	}
	sb.WriteString(" nodes=[")
	sb.WriteString(strings.Join(g.Nodes, " "))
	sb.WriteString("] adjacency={")
	keys := make([]int, 0, len(g.Adjacency))
	for k := range g.Adjacency {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(k))
		sb.WriteString(":[")
		for j, to := range g.Adjacency[k] {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(to))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte('}')
	return sb.String()
}
