// Package graph stores the individuals produced by a population run and
// renders them as semstreams triples and entity payloads.
package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/c360studio/scholargraph/schema"
)

var (
	// ErrUnknownNode is returned when an operation references a node that
	// was never added.
	ErrUnknownNode = errors.New("unknown node")

	// ErrClassConflict is returned when a node is re-added with another class.
	ErrClassConflict = errors.New("node already exists with another class")

	// ErrAbstractClass is returned when a node is typed with a class that
	// has subclasses.
	ErrAbstractClass = errors.New("individuals must belong to a leaf class")
)

// Node is one individual: an identifier, its leaf class, literals and
// outgoing edges. Reads through Graph take inverses into account; the
// methods on Node only see what was asserted on it.
type Node struct {
	ID    string
	Class string

	literals map[string][]schema.Literal
	litOrder []string

	out      map[string][]string
	outOrder []string
	in       map[string][]string
}

// LiteralProperties returns the data properties set on the node, in first-use order.
func (n *Node) LiteralProperties() []string {
	return slices.Clone(n.litOrder)
}

// Literals returns the literals asserted for prop.
func (n *Node) Literals(prop string) []schema.Literal {
	return slices.Clone(n.literals[prop])
}

// EdgeProperties returns the object properties asserted from the node, in first-use order.
func (n *Node) EdgeProperties() []string {
	return slices.Clone(n.outOrder)
}

// Targets returns the nodes reached through prop as asserted.
func (n *Node) Targets(prop string) []string {
	return slices.Clone(n.out[prop])
}

type edgeKey struct {
	from, prop, to string
}

// Graph is a set of typed individuals with literal and edge assertions.
// Identical assertions are stored once. It is not safe for concurrent use.
type Graph struct {
	schema *schema.Schema
	nodes  map[string]*Node
	order  []string
	edges  map[edgeKey]struct{}
}

// New returns an empty graph governed by s.
func New(s *schema.Schema) *Graph {
	return &Graph{
		schema: s,
		nodes:  make(map[string]*Node),
		edges:  make(map[edgeKey]struct{}),
	}
}

// Schema returns the schema the graph was created with.
func (g *Graph) Schema() *schema.Schema {
	return g.schema
}

// AddNode adds an individual of a leaf class. Adding an existing node with
// the same class is a no-op that returns false.
func (g *Graph) AddNode(id, class string) (bool, error) {
	if _, err := g.schema.ClassByName(class); err != nil {
		return false, err
	}
	if !g.schema.IsLeaf(class) {
		return false, fmt.Errorf("add node %s as %s: %w", id, class, ErrAbstractClass)
	}
	if n, ok := g.nodes[id]; ok {
		if n.Class != class {
			return false, fmt.Errorf("add node %s as %s (is %s): %w", id, class, n.Class, ErrClassConflict)
		}
		return false, nil
	}
	g.nodes[id] = &Node{
		ID:       id,
		Class:    class,
		literals: make(map[string][]schema.Literal),
		out:      make(map[string][]string),
		in:       make(map[string][]string),
	}
	g.order = append(g.order, id)
	return true, nil
}

func (g *Graph) node(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return n, nil
}

// AddLiteral asserts prop(id, value) typed with the property's range.
// It returns false when the same literal was already asserted.
func (g *Graph) AddLiteral(id, prop, value string) (bool, error) {
	dp, err := g.schema.DataPropertyByName(prop)
	if err != nil {
		return false, err
	}
	n, err := g.node(id)
	if err != nil {
		return false, err
	}
	lit := schema.Literal{Value: value, Datatype: dp.Range}
	existing, ok := n.literals[prop]
	if slices.Contains(existing, lit) {
		return false, nil
	}
	if !ok {
		n.litOrder = append(n.litOrder, prop)
	}
	n.literals[prop] = append(existing, lit)
	return true, nil
}

// SetLiteralOnce asserts prop(id, value) only when the node has no value
// for prop yet. The first writer wins.
func (g *Graph) SetLiteralOnce(id, prop, value string) (bool, error) {
	n, err := g.node(id)
	if err != nil {
		return false, err
	}
	if len(n.literals[prop]) > 0 {
		if _, err := g.schema.DataPropertyByName(prop); err != nil {
			return false, err
		}
		return false, nil
	}
	return g.AddLiteral(id, prop, value)
}

// AddEdge asserts prop(from, to). Both nodes must exist. It returns false
// when the edge, or the same edge through the property's inverse, is
// already present.
func (g *Graph) AddEdge(from, prop, to string) (bool, error) {
	if _, err := g.schema.ObjectPropertyByName(prop); err != nil {
		return false, err
	}
	src, err := g.node(from)
	if err != nil {
		return false, err
	}
	dst, err := g.node(to)
	if err != nil {
		return false, err
	}
	key := edgeKey{from: from, prop: prop, to: to}
	if _, ok := g.edges[key]; ok {
		return false, nil
	}
	if inv, ok := g.schema.Inverse(prop); ok {
		if _, ok := g.edges[edgeKey{from: to, prop: inv, to: from}]; ok {
			return false, nil
		}
	}
	g.edges[key] = struct{}{}
	if _, ok := src.out[prop]; !ok {
		src.outOrder = append(src.outOrder, prop)
	}
	src.out[prop] = append(src.out[prop], to)
	dst.in[prop] = append(dst.in[prop], from)
	return true, nil
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with identifier id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Class returns the class of id, or "" when id is unknown.
func (g *Graph) Class(id string) string {
	if n, ok := g.nodes[id]; ok {
		return n.Class
	}
	return ""
}

// Literals returns the literals of prop on id.
func (g *Graph) Literals(id, prop string) []schema.Literal {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return n.Literals(prop)
}

// Values returns the lexical values of prop on id.
func (g *Graph) Values(id, prop string) []string {
	lits := g.Literals(id, prop)
	out := make([]string, len(lits))
	for i, l := range lits {
		out[i] = l.Value
	}
	return out
}

// Objects returns every node related to id through prop, including edges
// asserted in the other direction through prop's inverse.
func (g *Graph) Objects(id, prop string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := slices.Clone(n.out[prop])
	if inv, ok := g.schema.Inverse(prop); ok {
		for _, o := range n.in[inv] {
			if !slices.Contains(out, o) {
				out = append(out, o)
			}
		}
	}
	return out
}

// Subjects returns every node that relates to id through prop, including
// edges asserted from id through prop's inverse.
func (g *Graph) Subjects(id, prop string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := slices.Clone(n.in[prop])
	if inv, ok := g.schema.Inverse(prop); ok {
		for _, s := range n.out[inv] {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodesOf returns the nodes whose class is class or one of its subclasses.
func (g *Graph) NodesOf(class string) []*Node {
	var out []*Node
	for _, id := range g.order {
		n := g.nodes[id]
		if g.schema.IsSubclassOf(n.Class, class) {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct asserted edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// CountByClass returns the number of nodes per leaf class.
func (g *Graph) CountByClass() map[string]int {
	out := make(map[string]int)
	for _, n := range g.nodes {
		out[n.Class]++
	}
	return out
}
