// Package export serializes the ontology and the populated graph as RDF.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/scholargraph/graph"
	"github.com/c360studio/scholargraph/schema"
	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/c360studio/semstreams/message"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

type termKind int

const (
	termIRI termKind = iota
	termBlank
	termLiteral
)

// term is an RDF node: an IRI, a blank node label or a literal.
type term struct {
	kind     termKind
	value    string
	datatype string
}

// statement is a triple with its predicate resolved to an IRI.
type statement struct {
	subject   term
	predicate string
	object    term
}

// Exporter collects triples and serializes them.
type Exporter struct {
	prefixes   map[string]string
	statements []statement
}

// NewExporter creates an exporter with the default prefixes.
func NewExporter() *Exporter {
	return &Exporter{prefixes: defaultPrefixes()}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":          scholar.RDFNamespace,
		"rdfs":         scholar.RDFSNamespace,
		"owl":          scholar.OWLNamespace,
		"xsd":          scholar.XSDNamespace,
		scholar.Prefix: scholar.Namespace,
	}
}

// SetPrefix sets a namespace prefix.
func (e *Exporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// Len returns the number of collected statements.
func (e *Exporter) Len() int {
	return len(e.statements)
}

// Add collects triples. Predicates are resolved to IRIs; string objects
// starting with "_:" are blank nodes, other http(s) strings are IRIs and
// everything else is a literal.
func (e *Exporter) Add(triples ...message.Triple) {
	for _, t := range triples {
		e.statements = append(e.statements, statement{
			subject:   subjectTerm(t.Subject),
			predicate: scholar.GetPredicateIRI(t.Predicate),
			object:    objectTerm(t.Object),
		})
	}
}

// AddSchema collects the ontology triples of s.
func (e *Exporter) AddSchema(s *schema.Schema) {
	e.Add(s.Triples()...)
}

// AddGraph collects the individuals of g.
func (e *Exporter) AddGraph(g *graph.Graph) {
	for _, n := range g.Nodes() {
		e.Add(g.NodeTriples(n, graph.TripleSource, time.Time{})...)
	}
}

func subjectTerm(s string) term {
	if strings.HasPrefix(s, "_:") {
		return term{kind: termBlank, value: s[2:]}
	}
	return term{kind: termIRI, value: s}
}

func objectTerm(obj any) term {
	switch v := obj.(type) {
	case schema.Literal:
		return term{kind: termLiteral, value: v.Value, datatype: string(v.Datatype)}
	case *schema.Literal:
		return objectTerm(*v)
	case map[string]any:
		// schema.Literal after a JSON round trip
		if value, ok := v["value"].(string); ok {
			datatype, _ := v["datatype"].(string)
			return term{kind: termLiteral, value: value, datatype: datatype}
		}
		return term{kind: termLiteral, value: fmt.Sprint(v)}
	case string:
		if strings.HasPrefix(v, "_:") {
			return term{kind: termBlank, value: v[2:]}
		}
		if scholar.IsIRI(v) {
			return term{kind: termIRI, value: v}
		}
		return term{kind: termLiteral, value: v}
	case bool:
		return term{kind: termLiteral, value: strconv.FormatBool(v), datatype: scholar.XSDBoolean}
	case int:
		return term{kind: termLiteral, value: strconv.Itoa(v), datatype: scholar.XSDNamespace + "integer"}
	case int64:
		return term{kind: termLiteral, value: strconv.FormatInt(v, 10), datatype: scholar.XSDNamespace + "integer"}
	case float64:
		return term{kind: termLiteral, value: strconv.FormatFloat(v, 'g', -1, 64), datatype: scholar.XSDNamespace + "double"}
	default:
		return term{kind: termLiteral, value: fmt.Sprint(v)}
	}
}

// Export serializes all statements to the specified format.
func (e *Exporter) Export(format Format) (string, error) {
	var buf bytes.Buffer
	if err := e.WriteTo(&buf, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteTo serializes all statements to w.
func (e *Exporter) WriteTo(w io.Writer, format Format) error {
	switch format {
	case FormatTurtle:
		tw := NewTurtleWriter(e.prefixes)
		tw.WriteStatements(e.statements)
		_, err := io.WriteString(w, tw.String())
		return err
	case FormatNTriples:
		nw := NewNTriplesWriter()
		for _, s := range e.statements {
			nw.writeStatement(s)
		}
		_, err := io.WriteString(w, nw.String())
		return err
	case FormatJSONLD:
		jw := NewJSONLDWriter(e.prefixes)
		jw.AddStatements(e.statements)
		data, err := jw.Marshal()
		if err != nil {
			return fmt.Errorf("marshal json-ld: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// ntriplesTerm renders a term with full IRIs.
func ntriplesTerm(t term) string {
	switch t.kind {
	case termIRI:
		return "<" + t.value + ">"
	case termBlank:
		return "_:" + t.value
	default:
		lit := "\"" + escapeString(t.value) + "\""
		if t.datatype != "" && t.datatype != scholar.XSDString {
			lit += "^^<" + t.datatype + ">"
		}
		return lit
	}
}
