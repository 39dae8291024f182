// Package schema models the bibliographic ontology: class taxonomy,
// disjointness and completeness axioms, object properties with inverses,
// data properties with literal types, and class restrictions.
//
// A Schema is declared once through a Builder and is read-only afterwards.
package schema

import "github.com/c360studio/scholargraph/vocabulary/scholar"

// Datatype is the XSD type of a literal.
type Datatype string

const (
	String      Datatype = scholar.XSDString
	Boolean     Datatype = scholar.XSDBoolean
	Date        Datatype = scholar.XSDDate
	GYear       Datatype = scholar.XSDGYear
	UnsignedInt Datatype = scholar.XSDUnsignedInt
)

// Literal is a typed literal value.
type Literal struct {
	Value    string   `json:"value"`
	Datatype Datatype `json:"datatype"`
}

// Class is a node of the taxonomy.
type Class struct {
	Name         string
	IRI          string
	Superclasses []string
}

// ObjectProperty is a typed edge kind between two classes.
type ObjectProperty struct {
	Name    string
	IRI     string
	Domain  string
	Range   string
	Inverse string
}

// DataProperty is an edge kind from a class to a literal.
type DataProperty struct {
	Name          string
	IRI           string
	Domain        string
	Range         Datatype
	Single        bool
	SuperProperty string
}

// AxiomKind distinguishes class axioms.
type AxiomKind int

const (
	// AxiomDisjoint states that no individual belongs to two of the classes.
	AxiomDisjoint AxiomKind = iota
	// AxiomComplete states that Superclass equals the union of the classes.
	AxiomComplete
)

func (k AxiomKind) String() string {
	switch k {
	case AxiomDisjoint:
		return "disjoint"
	case AxiomComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Axiom is a disjointness or completeness statement over a set of classes.
type Axiom struct {
	Kind       AxiomKind
	Superclass string
	Classes    []string
}

// RestrictionKind distinguishes property restrictions.
type RestrictionKind int

const (
	Exactly RestrictionKind = iota
	AtLeast
	AtMost
	AllValuesFrom
)

func (k RestrictionKind) String() string {
	switch k {
	case Exactly:
		return "cardinality"
	case AtLeast:
		return "minCardinality"
	case AtMost:
		return "maxCardinality"
	case AllValuesFrom:
		return "allValuesFrom"
	default:
		return "unknown"
	}
}

// Restriction constrains how individuals of Class use Property.
type Restriction struct {
	Kind     RestrictionKind
	Class    string
	Property string
	N        int
	Filler   string
}

// Cardinality restricts Class to exactly n values of prop.
func Cardinality(class, prop string, n int) Restriction {
	return Restriction{Kind: Exactly, Class: class, Property: prop, N: n}
}

// MinCardinality restricts Class to at least n values of prop.
func MinCardinality(class, prop string, n int) Restriction {
	return Restriction{Kind: AtLeast, Class: class, Property: prop, N: n}
}

// MaxCardinality restricts Class to at most n values of prop.
func MaxCardinality(class, prop string, n int) Restriction {
	return Restriction{Kind: AtMost, Class: class, Property: prop, N: n}
}

// Only restricts the values of prop on Class to individuals of filler.
func Only(class, prop, filler string) Restriction {
	return Restriction{Kind: AllValuesFrom, Class: class, Property: prop, Filler: filler}
}
