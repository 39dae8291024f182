package schema

import (
	"errors"
	"fmt"
)

// LookupKind names the kind of schema term a lookup was after.
type LookupKind string

const (
	KindClass          LookupKind = "class"
	KindObjectProperty LookupKind = "object property"
	KindDataProperty   LookupKind = "data property"
	KindProperty       LookupKind = "property"
)

// SchemaLookupError reports a reference to a term the schema does not declare.
type SchemaLookupError struct {
	Kind LookupKind
	Name string
}

func (e *SchemaLookupError) Error() string {
	return fmt.Sprintf("schema: %s %q is not declared", e.Kind, e.Name)
}

// ErrDegenerateAxiom is returned when a disjointness or completeness axiom
// names fewer than two classes.
var ErrDegenerateAxiom = errors.New("axiom needs at least two classes")

// ErrConflictingDeclaration is returned when a property is declared twice
// with different domain, range or inverse.
var ErrConflictingDeclaration = errors.New("conflicting declaration")

func lookupErr(kind LookupKind, name string) error {
	return &SchemaLookupError{Kind: kind, Name: name}
}
