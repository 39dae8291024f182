package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/c360studio/scholargraph/vocabulary/scholar"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat validates a format name. Empty selects Turtle.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatTurtle, nil
	}
	f := Format(strings.ToLower(s))
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("unsupported format: %s", s)
	}
	return f, nil
}

// FormatForPath picks the format matching the extension of path.
func FormatForPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".owl" || ext == ".turtle" {
		return FormatTurtle, true
	}
	for f, info := range FormatRegistry {
		if info.Extension == ext {
			return f, true
		}
	}
	return "", false
}

// pnLocal matches local names that need no escaping in a prefixed name.
var pnLocal = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a Turtle writer using prefixes.
func NewTurtleWriter(prefixes map[string]string) *TurtleWriter {
	p := make(map[string]string, len(prefixes))
	for k, v := range prefixes {
		p[k] = v
	}
	return &TurtleWriter{prefixes: p}
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	// Sort prefixes for consistent output
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		fmt.Fprintf(&w.sb, "@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	w.sb.WriteString("\n")
}

// compact renders an IRI as a prefixed name when a prefix covers it.
func (w *TurtleWriter) compact(iri string) string {
	best := ""
	for prefix, ns := range w.prefixes {
		if !strings.HasPrefix(iri, ns) || !pnLocal.MatchString(iri[len(ns):]) {
			continue
		}
		if best == "" || len(ns) > len(w.prefixes[best]) {
			best = prefix
		}
	}
	if best == "" {
		return "<" + iri + ">"
	}
	return best + ":" + iri[len(w.prefixes[best]):]
}

func (w *TurtleWriter) term(t term) string {
	switch t.kind {
	case termIRI:
		return w.compact(t.value)
	case termBlank:
		return "_:" + t.value
	default:
		lit := "\"" + escapeString(t.value) + "\""
		if t.datatype != "" && t.datatype != scholar.XSDString {
			lit += "^^" + w.compact(t.datatype)
		}
		return lit
	}
}

// WriteStatements writes the prefixes and one block per subject, in order
// of first appearance.
func (w *TurtleWriter) WriteStatements(stmts []statement) {
	w.WritePrefixes()

	var subjects []term
	bySubject := make(map[term][]statement)
	for _, s := range stmts {
		if _, ok := bySubject[s.subject]; !ok {
			subjects = append(subjects, s.subject)
		}
		bySubject[s.subject] = append(bySubject[s.subject], s)
	}

	for _, subj := range subjects {
		w.sb.WriteString(w.term(subj))
		w.sb.WriteString("\n")
		block := bySubject[subj]
		for i, s := range block {
			pred := w.compact(s.predicate)
			if s.predicate == scholar.RDFType {
				pred = "a"
			}
			terminator := " ;"
			if i == len(block)-1 {
				terminator = " ."
			}
			fmt.Fprintf(&w.sb, "    %s %s%s\n", pred, w.term(s.object), terminator)
		}
		w.sb.WriteString("\n")
	}
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	sb strings.Builder
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter() *NTriplesWriter {
	return &NTriplesWriter{}
}

func (w *NTriplesWriter) writeStatement(s statement) {
	fmt.Fprintf(&w.sb, "%s <%s> %s .\n", ntriplesTerm(s.subject), s.predicate, ntriplesTerm(s.object))
}

// String returns the accumulated N-Triples output.
func (w *NTriplesWriter) String() string {
	return w.sb.String()
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]string `json:"@context"`
	Graph   []JSONLDNode      `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string           `json:"@id"`
	Type       []string         `json:"@type,omitempty"`
	Properties map[string][]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLDWriter writes RDF in JSON-LD format.
type JSONLDWriter struct {
	doc   JSONLDDocument
	index map[string]int
}

// NewJSONLDWriter creates a JSON-LD writer whose context declares prefixes.
func NewJSONLDWriter(prefixes map[string]string) *JSONLDWriter {
	ctx := make(map[string]string, len(prefixes))
	for k, v := range prefixes {
		ctx[k] = v
	}
	return &JSONLDWriter{
		doc:   JSONLDDocument{Context: ctx, Graph: make([]JSONLDNode, 0)},
		index: make(map[string]int),
	}
}

func jsonldID(t term) string {
	if t.kind == termBlank {
		return "_:" + t.value
	}
	return t.value
}

func jsonldValue(t term) any {
	switch t.kind {
	case termIRI, termBlank:
		return map[string]string{"@id": jsonldID(t)}
	default:
		if t.datatype == "" || t.datatype == scholar.XSDString {
			return t.value
		}
		return map[string]string{"@value": t.value, "@type": t.datatype}
	}
}

// AddStatements groups statements into one node object per subject.
func (w *JSONLDWriter) AddStatements(stmts []statement) {
	for _, s := range stmts {
		id := jsonldID(s.subject)
		i, ok := w.index[id]
		if !ok {
			i = len(w.doc.Graph)
			w.index[id] = i
			w.doc.Graph = append(w.doc.Graph, JSONLDNode{ID: id, Properties: make(map[string][]any)})
		}
		node := &w.doc.Graph[i]
		if s.predicate == scholar.RDFType && s.object.kind == termIRI {
			node.Type = append(node.Type, s.object.value)
			continue
		}
		node.Properties[s.predicate] = append(node.Properties[s.predicate], jsonldValue(s.object))
	}
}

// Marshal returns the indented JSON-LD document.
func (w *JSONLDWriter) Marshal() ([]byte, error) {
	return json.MarshalIndent(w.doc, "", "  ")
}
