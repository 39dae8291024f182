package schema

import (
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/vocabulary"
)

// TripleSource is the Source recorded on schema triples.
const TripleSource = "scholargraph.schema"

type tboxWriter struct {
	triples []message.Triple
	blank   int
	now     time.Time
}

func (w *tboxWriter) add(subject, predicate string, object any) {
	w.triples = append(w.triples, message.Triple{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     TripleSource,
		Timestamp:  w.now,
		Confidence: 1.0,
	})
}

func (w *tboxWriter) newBlank() string {
	id := "_:t" + strconv.Itoa(w.blank)
	w.blank++
	return id
}

// list renders an RDF collection and returns its head node.
func (w *tboxWriter) list(items []string) string {
	if len(items) == 0 {
		return scholar.RDFNil
	}
	head := w.newBlank()
	cur := head
	for i, item := range items {
		w.add(cur, scholar.RDFFirst, item)
		if i == len(items)-1 {
			w.add(cur, scholar.RDFRest, scholar.RDFNil)
			break
		}
		next := w.newBlank()
		w.add(cur, scholar.RDFRest, next)
		cur = next
	}
	return head
}

// Triples renders the schema as OWL triples. Object values are IRIs, blank
// node labels ("_:" prefix) or Literal values.
func (s *Schema) Triples() []message.Triple {
	w := &tboxWriter{now: time.Now()}

	w.add(strings.TrimSuffix(s.namespace, "#"), scholar.RDFType, scholar.OWLOntology)

	for _, c := range s.Classes() {
		w.add(c.IRI, scholar.RDFType, scholar.OWLClass)
		for _, sup := range c.Superclasses {
			w.add(c.IRI, scholar.RDFSSubClassOf, s.IRI(sup))
		}
	}

	for _, a := range s.axioms {
		switch a.Kind {
		case AxiomComplete:
			members := make([]string, len(a.Classes))
			for i, c := range a.Classes {
				members[i] = s.IRI(c)
			}
			union := w.newBlank()
			w.add(union, scholar.RDFType, scholar.OWLClass)
			w.add(union, scholar.OWLUnionOf, w.list(members))
			w.add(s.IRI(a.Superclass), vocabulary.OwlEquivalentClass, union)
		case AxiomDisjoint:
			for i, left := range a.Classes {
				for _, right := range a.Classes[i+1:] {
					w.add(s.IRI(left), scholar.OWLDisjointWith, s.IRI(right))
				}
			}
		}
	}

	for _, p := range s.ObjectProperties() {
		w.add(p.IRI, scholar.RDFType, scholar.OWLObjectProperty)
		w.add(p.IRI, scholar.RDFSDomain, s.IRI(p.Domain))
		w.add(p.IRI, scholar.RDFSRange, s.IRI(p.Range))
		if p.Inverse != "" {
			w.add(p.IRI, scholar.OWLInverseOf, s.IRI(p.Inverse))
		}
	}

	for _, p := range s.DataProperties() {
		w.add(p.IRI, scholar.RDFType, scholar.OWLDatatypeProperty)
		w.add(p.IRI, scholar.RDFSDomain, s.IRI(p.Domain))
		w.add(p.IRI, scholar.RDFSRange, string(p.Range))
		if p.SuperProperty != "" {
			w.add(p.IRI, scholar.RDFSSubPropertyOf, p.SuperProperty)
		}
	}

	for _, r := range s.restrictions {
		node := w.newBlank()
		w.add(node, scholar.RDFType, scholar.OWLRestriction)
		w.add(node, scholar.OWLOnProperty, s.IRI(r.Property))
		switch r.Kind {
		case Exactly:
			w.add(node, scholar.OWLCardinality, cardinality(r.N))
		case AtLeast:
			w.add(node, scholar.OWLMinCardinality, cardinality(r.N))
		case AtMost:
			w.add(node, scholar.OWLMaxCardinality, cardinality(r.N))
		case AllValuesFrom:
			w.add(node, scholar.OWLAllValuesFrom, s.IRI(r.Filler))
		}
		w.add(s.IRI(r.Class), scholar.RDFSSubClassOf, node)
	}

	return w.triples
}

func cardinality(n int) Literal {
	return Literal{Value: strconv.Itoa(n), Datatype: Datatype(scholar.XSDNonNegInt)}
}
