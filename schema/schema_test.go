package schema

import (
	"errors"
	"testing"

	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderUndeclaredSuperclass(t *testing.T) {
	_, err := NewBuilder(scholar.Namespace).
		Class("Paper").
		Class("Full_paper", "Papr").
		Build()

	var lookup *SchemaLookupError
	require.True(t, errors.As(err, &lookup))
	assert.Equal(t, KindClass, lookup.Kind)
	assert.Equal(t, "Papr", lookup.Name)
}

func TestBuilderFirstErrorSticks(t *testing.T) {
	b := NewBuilder(scholar.Namespace).
		Class("A", "Missing").
		Disjoint("A")

	var lookup *SchemaLookupError
	require.ErrorAs(t, b.Err(), &lookup)
	assert.Equal(t, "Missing", lookup.Name)
}

func TestBuilderDegenerateAxioms(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) *Builder
	}{
		{"disjoint single", func(b *Builder) *Builder { return b.Disjoint("A") }},
		{"disjoint empty", func(b *Builder) *Builder { return b.Disjoint() }},
		{"complete single", func(b *Builder) *Builder { return b.Complete("A", "B") }},
		{"disjoint complete single", func(b *Builder) *Builder { return b.DisjointComplete("A", "B") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder(scholar.Namespace).Class("A")
			_, err := tc.build(b).Build()
			assert.ErrorIs(t, err, ErrDegenerateAxiom)
		})
	}
}

func TestBuilderAxiomIdempotent(t *testing.T) {
	s, err := NewBuilder(scholar.Namespace).
		Class("A").Class("B").
		Disjoint("A", "B").
		Disjoint("B", "A").
		Build()
	require.NoError(t, err)
	assert.Len(t, s.Axioms(), 1)
}

func TestBuilderConflictingProperty(t *testing.T) {
	_, err := NewBuilder(scholar.Namespace).
		Class("A").Class("B").
		ObjectProperty("p", "A", "B").
		ObjectProperty("p", "B", "A").
		Build()
	assert.ErrorIs(t, err, ErrConflictingDeclaration)

	_, err = NewBuilder(scholar.Namespace).
		Class("A").Class("B").
		ObjectProperty("p", "A", "B").
		ObjectProperty("p", "A", "B").
		Build()
	assert.NoError(t, err)
}

func TestRestrictUnknownProperty(t *testing.T) {
	_, err := NewBuilder(scholar.Namespace).
		Class("A").
		Restrict(Cardinality("A", "nope", 1)).
		Build()

	var lookup *SchemaLookupError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, KindProperty, lookup.Kind)
}

func TestBaseTaxonomy(t *testing.T) {
	s := Base()

	assert.ElementsMatch(t,
		[]string{scholar.FullPaper, scholar.ShortPaper, scholar.DemoPaper, scholar.Poster},
		s.Leaves(scholar.Paper))
	assert.ElementsMatch(t,
		[]string{scholar.RegularConference, scholar.Workshop, scholar.Symposium, scholar.ExpertGroup, scholar.Journal},
		s.Leaves(scholar.Venue))
	assert.ElementsMatch(t, []string{scholar.Chair, scholar.Editor}, s.Subclasses(scholar.Handler))

	assert.True(t, s.IsSubclassOf(scholar.Workshop, scholar.Venue))
	assert.True(t, s.IsSubclassOf(scholar.Chair, scholar.Academic))
	assert.True(t, s.IsSubclassOf(scholar.Paper, scholar.Paper))
	assert.False(t, s.IsSubclassOf(scholar.Journal, scholar.Conference))
	assert.False(t, s.IsSubclassOf("Nope", "Nope"))

	assert.True(t, s.IsLeaf(scholar.Submission))
	assert.False(t, s.IsLeaf(scholar.Handler))
	assert.Empty(t, s.Axioms())
	assert.Empty(t, s.Restrictions())
}

func TestBaseProperties(t *testing.T) {
	s := Base()

	authors, err := s.ObjectPropertyByName(scholar.Authors)
	require.NoError(t, err)
	assert.Equal(t, scholar.Author, authors.Domain)
	assert.Equal(t, scholar.Paper, authors.Range)
	assert.Equal(t, scholar.AuthoredBy, authors.Inverse)

	inv, ok := s.Inverse(scholar.AuthoredBy)
	require.True(t, ok)
	assert.Equal(t, scholar.Authors, inv)

	_, ok = s.Inverse(scholar.SubmittedAs)
	assert.False(t, ok)

	reviewText, err := s.DataPropertyByName(scholar.ReviewText)
	require.NoError(t, err)
	assert.Equal(t, String, reviewText.Range)
	assert.Equal(t, scholar.RDFSNamespace+"comment", reviewText.SuperProperty)

	year, err := s.DataPropertyByName(scholar.Year)
	require.NoError(t, err)
	assert.Equal(t, GYear, year.Range)

	_, err = s.DataPropertyByName(scholar.Authors)
	var lookup *SchemaLookupError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, KindDataProperty, lookup.Kind)

	_, err = s.ClassByName("Person")
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, "Person", lookup.Name)
}

func TestStrictAxioms(t *testing.T) {
	s := Strict()

	var complete, disjoint int
	for _, a := range s.Axioms() {
		switch a.Kind {
		case AxiomComplete:
			complete++
		case AxiomDisjoint:
			disjoint++
		}
	}
	assert.Equal(t, 6, complete)
	assert.Equal(t, 5, disjoint)

	restrictions := s.RestrictionsOn(scholar.Revision)
	assert.Contains(t, restrictions, MinCardinality(scholar.Revision, scholar.DoneBy, 2))
	assert.Contains(t, restrictions, Cardinality(scholar.Revision, scholar.Reviews, 1))
	assert.Contains(t, restrictions, Cardinality(scholar.Revision, scholar.Accepted, 1))
	assert.Contains(t, s.RestrictionsOn(scholar.Volume), Only(scholar.Volume, scholar.BelongsTo, scholar.Journal))
}

func TestForProfile(t *testing.T) {
	s, err := ForProfile(ProfileStrict)
	require.NoError(t, err)
	assert.Same(t, Strict(), s)

	s, err = ForProfile("")
	require.NoError(t, err)
	assert.Same(t, Base(), s)

	_, err = ForProfile("overkill")
	assert.Error(t, err)
}

func TestTriples(t *testing.T) {
	triples := Strict().Triples()
	require.NotEmpty(t, triples)

	has := func(subject, predicate string, object any) bool {
		for _, tr := range triples {
			if tr.Subject == subject && tr.Predicate == predicate && tr.Object == object {
				return true
			}
		}
		return false
	}

	iri := scholar.IRI
	assert.True(t, has(iri(scholar.Chair), scholar.RDFSSubClassOf, iri(scholar.Handler)))
	assert.True(t, has(iri(scholar.Authors), scholar.OWLInverseOf, iri(scholar.AuthoredBy)))
	assert.True(t, has(iri(scholar.Year), scholar.RDFSRange, scholar.XSDGYear))
	assert.True(t, has(iri(scholar.FullPaper), scholar.OWLDisjointWith, iri(scholar.Poster)))

	var unions, restrictions int
	for _, tr := range triples {
		if tr.Predicate == scholar.OWLUnionOf {
			unions++
		}
		if tr.Object == scholar.OWLRestriction {
			restrictions++
		}
	}
	assert.Equal(t, 6, unions)
	assert.Equal(t, len(Strict().Restrictions()), restrictions)
}
