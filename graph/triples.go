package graph

import (
	"time"

	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/c360studio/semstreams/message"
)

// TripleSource is the default Source recorded on populated triples.
const TripleSource = "scholargraph.populate"

// predicateFor maps an ontology property name to its dotted predicate,
// falling back to the property IRI for names outside the registered vocabulary.
func (g *Graph) predicateFor(prop string) string {
	if p, ok := scholar.PredicateFor(prop); ok {
		return p
	}
	return g.schema.IRI(prop)
}

// NodeTriples renders one node: its class, literals and asserted edges.
// Literal objects are schema.Literal values; edge objects are node IRIs.
func (g *Graph) NodeTriples(n *Node, source string, ts time.Time) []message.Triple {
	triple := func(predicate string, object any) message.Triple {
		return message.Triple{
			Subject:    n.ID,
			Predicate:  predicate,
			Object:     object,
			Source:     source,
			Timestamp:  ts,
			Confidence: 1.0,
		}
	}

	out := []message.Triple{triple(scholar.EntityClass, g.schema.IRI(n.Class))}
	for _, prop := range n.litOrder {
		predicate := g.predicateFor(prop)
		for _, lit := range n.literals[prop] {
			out = append(out, triple(predicate, lit))
		}
	}
	for _, prop := range n.outOrder {
		predicate := g.predicateFor(prop)
		for _, to := range n.out[prop] {
			out = append(out, triple(predicate, to))
		}
	}
	return out
}

// Triples renders every node in creation order.
func (g *Graph) Triples(source string, ts time.Time) []message.Triple {
	var out []message.Triple
	for _, n := range g.Nodes() {
		out = append(out, g.NodeTriples(n, source, ts)...)
	}
	return out
}

// Entities renders every node as an entity payload.
func (g *Graph) Entities(source string, ts time.Time) []*EntityPayload {
	out := make([]*EntityPayload, 0, g.Len())
	for _, n := range g.Nodes() {
		out = append(out, &EntityPayload{
			EntityID_:  n.ID,
			Class:      n.Class,
			TripleData: g.NodeTriples(n, source, ts),
			UpdatedAt:  ts,
		})
	}
	return out
}
