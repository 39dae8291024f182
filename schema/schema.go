package schema

import "slices"

// Schema is a frozen ontology description. It is safe for concurrent reads.
type Schema struct {
	namespace string

	classes     map[string]Class
	objectProps map[string]ObjectProperty
	dataProps   map[string]DataProperty
	subclasses  map[string][]string

	classOrder  []string
	objectOrder []string
	dataOrder   []string

	axioms       []Axiom
	restrictions []Restriction
}

// Namespace returns the IRI namespace of the schema's terms.
func (s *Schema) Namespace() string {
	return s.namespace
}

// IRI returns the full IRI of a local term name.
func (s *Schema) IRI(name string) string {
	return s.namespace + name
}

// ClassByName returns the named class or a *SchemaLookupError.
func (s *Schema) ClassByName(name string) (Class, error) {
	c, ok := s.classes[name]
	if !ok {
		return Class{}, lookupErr(KindClass, name)
	}
	return c, nil
}

// ObjectPropertyByName returns the named object property or a *SchemaLookupError.
func (s *Schema) ObjectPropertyByName(name string) (ObjectProperty, error) {
	p, ok := s.objectProps[name]
	if !ok {
		return ObjectProperty{}, lookupErr(KindObjectProperty, name)
	}
	return p, nil
}

// DataPropertyByName returns the named data property or a *SchemaLookupError.
func (s *Schema) DataPropertyByName(name string) (DataProperty, error) {
	p, ok := s.dataProps[name]
	if !ok {
		return DataProperty{}, lookupErr(KindDataProperty, name)
	}
	return p, nil
}

// Classes returns all classes in declaration order.
func (s *Schema) Classes() []Class {
	out := make([]Class, 0, len(s.classOrder))
	for _, name := range s.classOrder {
		out = append(out, s.classes[name])
	}
	return out
}

// ObjectProperties returns all object properties in declaration order.
func (s *Schema) ObjectProperties() []ObjectProperty {
	out := make([]ObjectProperty, 0, len(s.objectOrder))
	for _, name := range s.objectOrder {
		out = append(out, s.objectProps[name])
	}
	return out
}

// DataProperties returns all data properties in declaration order.
func (s *Schema) DataProperties() []DataProperty {
	out := make([]DataProperty, 0, len(s.dataOrder))
	for _, name := range s.dataOrder {
		out = append(out, s.dataProps[name])
	}
	return out
}

// Axioms returns the disjointness and completeness axioms.
func (s *Schema) Axioms() []Axiom {
	return slices.Clone(s.axioms)
}

// Restrictions returns every restriction, including the cardinality-1
// restrictions produced by single-valued data properties.
func (s *Schema) Restrictions() []Restriction {
	return slices.Clone(s.restrictions)
}

// RestrictionsOn returns the restrictions attached to class.
func (s *Schema) RestrictionsOn(class string) []Restriction {
	var out []Restriction
	for _, r := range s.restrictions {
		if r.Class == class {
			out = append(out, r)
		}
	}
	return out
}

// Subclasses returns the direct subclasses of name.
func (s *Schema) Subclasses(name string) []string {
	return slices.Clone(s.subclasses[name])
}

// IsSubclassOf reports whether sub equals sup or inherits from it.
func (s *Schema) IsSubclassOf(sub, sup string) bool {
	if sub == sup {
		_, ok := s.classes[sub]
		return ok
	}
	seen := make(map[string]bool)
	stack := []string{sub}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		for _, p := range s.classes[cur].Superclasses {
			if p == sup {
				return true
			}
			stack = append(stack, p)
		}
	}
	return false
}

// Leaves returns the classes under name that have no subclasses, in
// declaration order. A class without subclasses is its own leaf.
func (s *Schema) Leaves(name string) []string {
	if _, ok := s.classes[name]; !ok {
		return nil
	}
	var out []string
	for _, c := range s.classOrder {
		if len(s.subclasses[c]) == 0 && s.IsSubclassOf(c, name) {
			out = append(out, c)
		}
	}
	return out
}

// IsLeaf reports whether name is declared and has no subclasses.
func (s *Schema) IsLeaf(name string) bool {
	_, ok := s.classes[name]
	return ok && len(s.subclasses[name]) == 0
}

// Inverse returns the inverse of an object property, if declared.
func (s *Schema) Inverse(prop string) (string, bool) {
	p, ok := s.objectProps[prop]
	if !ok || p.Inverse == "" {
		return "", false
	}
	return p.Inverse, true
}
