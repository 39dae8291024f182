package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Builder declares a schema in dependency order. The first failing
// declaration is kept and returned by Build; later calls are no-ops.
type Builder struct {
	namespace string

	classes    map[string]*Class
	classOrder []string

	objectProps map[string]*ObjectProperty
	objectOrder []string

	dataProps map[string]*DataProperty
	dataOrder []string

	axioms    []Axiom
	axiomKeys map[string]struct{}

	restrictions    []Restriction
	restrictionKeys map[Restriction]struct{}

	err error
}

// NewBuilder returns a builder whose terms live under namespace.
func NewBuilder(namespace string) *Builder {
	return &Builder{
		namespace:       namespace,
		classes:         make(map[string]*Class),
		objectProps:     make(map[string]*ObjectProperty),
		dataProps:       make(map[string]*DataProperty),
		axiomKeys:       make(map[string]struct{}),
		restrictionKeys: make(map[Restriction]struct{}),
	}
}

// Err returns the first declaration error, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Class declares name with the given superclasses, which must already be
// declared. Declaring an existing class adds any new superclasses.
func (b *Builder) Class(name string, superclasses ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, sup := range superclasses {
		if _, ok := b.classes[sup]; !ok {
			return b.fail(lookupErr(KindClass, sup))
		}
	}
	c, ok := b.classes[name]
	if !ok {
		c = &Class{Name: name, IRI: b.namespace + name}
		b.classes[name] = c
		b.classOrder = append(b.classOrder, name)
	}
	for _, sup := range superclasses {
		if !slices.Contains(c.Superclasses, sup) {
			c.Superclasses = append(c.Superclasses, sup)
		}
	}
	return b
}

// Subclasses declares each of subs as a direct subclass of super.
func (b *Builder) Subclasses(super string, subs ...string) *Builder {
	for _, sub := range subs {
		b.Class(sub, super)
	}
	return b
}

// Complete declares subs as subclasses of super and states that super is
// exactly their union.
func (b *Builder) Complete(super string, subs ...string) *Builder {
	if b.err != nil {
		return b
	}
	if len(subs) < 2 {
		return b.fail(fmt.Errorf("complete %s: %w", super, ErrDegenerateAxiom))
	}
	if _, ok := b.classes[super]; !ok {
		return b.fail(lookupErr(KindClass, super))
	}
	b.Subclasses(super, subs...)
	b.addAxiom(Axiom{Kind: AxiomComplete, Superclass: super, Classes: slices.Clone(subs)})
	return b
}

// Disjoint states that the given declared classes share no individuals.
func (b *Builder) Disjoint(classes ...string) *Builder {
	if b.err != nil {
		return b
	}
	if len(classes) < 2 {
		return b.fail(fmt.Errorf("disjoint %v: %w", classes, ErrDegenerateAxiom))
	}
	for _, c := range classes {
		if _, ok := b.classes[c]; !ok {
			return b.fail(lookupErr(KindClass, c))
		}
	}
	b.addAxiom(Axiom{Kind: AxiomDisjoint, Classes: slices.Clone(classes)})
	return b
}

// DisjointComplete combines Complete and Disjoint over the same subclasses.
func (b *Builder) DisjointComplete(super string, subs ...string) *Builder {
	return b.Complete(super, subs...).Disjoint(subs...)
}

func (b *Builder) addAxiom(a Axiom) {
	members := slices.Clone(a.Classes)
	slices.Sort(members)
	key := fmt.Sprintf("%d|%s|%s", a.Kind, a.Superclass, strings.Join(members, ","))
	if _, ok := b.axiomKeys[key]; ok {
		return
	}
	b.axiomKeys[key] = struct{}{}
	b.axioms = append(b.axioms, a)
}

// ObjectProperty declares a property from domain to rng without an inverse.
func (b *Builder) ObjectProperty(name, domain, rng string) *Builder {
	return b.objectProperty(name, domain, rng, "")
}

// InverseProperty declares name from domain to rng together with its inverse
// from rng to domain.
func (b *Builder) InverseProperty(name, domain, rng, inverse string) *Builder {
	b.objectProperty(name, domain, rng, inverse)
	return b.objectProperty(inverse, rng, domain, name)
}

func (b *Builder) objectProperty(name, domain, rng, inverse string) *Builder {
	if b.err != nil {
		return b
	}
	for _, c := range []string{domain, rng} {
		if _, ok := b.classes[c]; !ok {
			return b.fail(lookupErr(KindClass, c))
		}
	}
	if _, ok := b.dataProps[name]; ok {
		return b.fail(fmt.Errorf("object property %s: already a data property: %w", name, ErrConflictingDeclaration))
	}
	p := &ObjectProperty{Name: name, IRI: b.namespace + name, Domain: domain, Range: rng, Inverse: inverse}
	if prev, ok := b.objectProps[name]; ok {
		if *prev != *p {
			return b.fail(fmt.Errorf("object property %s: %w", name, ErrConflictingDeclaration))
		}
		return b
	}
	b.objectProps[name] = p
	b.objectOrder = append(b.objectOrder, name)
	return b
}

// DataOption adjusts a data property declaration.
type DataOption func(*DataProperty)

// SingleValued adds a cardinality-1 restriction on the domain.
func SingleValued() DataOption {
	return func(p *DataProperty) { p.Single = true }
}

// SubPropertyOf records a super property IRI, typically rdfs:label or rdfs:comment.
func SubPropertyOf(iri string) DataOption {
	return func(p *DataProperty) { p.SuperProperty = iri }
}

// DataProperty declares a literal-valued property on domain.
func (b *Builder) DataProperty(name, domain string, rng Datatype, opts ...DataOption) *Builder {
	if b.err != nil {
		return b
	}
	if _, ok := b.classes[domain]; !ok {
		return b.fail(lookupErr(KindClass, domain))
	}
	if _, ok := b.objectProps[name]; ok {
		return b.fail(fmt.Errorf("data property %s: already an object property: %w", name, ErrConflictingDeclaration))
	}
	p := &DataProperty{Name: name, IRI: b.namespace + name, Domain: domain, Range: rng}
	for _, opt := range opts {
		opt(p)
	}
	if prev, ok := b.dataProps[name]; ok {
		if *prev != *p {
			return b.fail(fmt.Errorf("data property %s: %w", name, ErrConflictingDeclaration))
		}
		return b
	}
	b.dataProps[name] = p
	b.dataOrder = append(b.dataOrder, name)
	if p.Single {
		b.Restrict(Cardinality(domain, name, 1))
	}
	return b
}

// Restrict attaches a restriction to its class. Class, property and filler
// must be declared.
func (b *Builder) Restrict(r Restriction) *Builder {
	if b.err != nil {
		return b
	}
	if _, ok := b.classes[r.Class]; !ok {
		return b.fail(lookupErr(KindClass, r.Class))
	}
	_, isObject := b.objectProps[r.Property]
	_, isData := b.dataProps[r.Property]
	if !isObject && !isData {
		return b.fail(lookupErr(KindProperty, r.Property))
	}
	if r.Kind == AllValuesFrom {
		if _, ok := b.classes[r.Filler]; !ok {
			return b.fail(lookupErr(KindClass, r.Filler))
		}
	} else if r.N < 0 {
		return b.fail(fmt.Errorf("restriction %s on %s.%s: negative cardinality %d", r.Kind, r.Class, r.Property, r.N))
	}
	if _, ok := b.restrictionKeys[r]; ok {
		return b
	}
	b.restrictionKeys[r] = struct{}{}
	b.restrictions = append(b.restrictions, r)
	return b
}

// Build freezes the declarations into a Schema.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := &Schema{
		namespace:    b.namespace,
		classes:      make(map[string]Class, len(b.classes)),
		objectProps:  make(map[string]ObjectProperty, len(b.objectProps)),
		dataProps:    make(map[string]DataProperty, len(b.dataProps)),
		subclasses:   make(map[string][]string),
		classOrder:   slices.Clone(b.classOrder),
		objectOrder:  slices.Clone(b.objectOrder),
		dataOrder:    slices.Clone(b.dataOrder),
		axioms:       make([]Axiom, len(b.axioms)),
		restrictions: slices.Clone(b.restrictions),
	}
	for _, name := range b.classOrder {
		c := *b.classes[name]
		c.Superclasses = slices.Clone(c.Superclasses)
		s.classes[name] = c
		for _, sup := range c.Superclasses {
			s.subclasses[sup] = append(s.subclasses[sup], name)
		}
	}
	for name, p := range b.objectProps {
		s.objectProps[name] = *p
	}
	for name, p := range b.dataProps {
		s.dataProps[name] = *p
	}
	for i, a := range b.axioms {
		a.Classes = slices.Clone(a.Classes)
		s.axioms[i] = a
	}
	return s, nil
}
