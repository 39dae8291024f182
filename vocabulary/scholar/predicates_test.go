package scholar_test

import (
	"testing"

	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicatesRegistered(t *testing.T) {
	for _, p := range scholar.Predicates() {
		meta := vocabulary.GetPredicateMetadata(p)
		require.NotNil(t, meta, "predicate %s not registered", p)
		assert.NotEmpty(t, meta.Description, p)
		assert.NotEmpty(t, meta.StandardIRI, p)
	}
}

func TestPredicateLocalRoundTrip(t *testing.T) {
	tests := []struct {
		local     string
		predicate string
	}{
		{scholar.Authors, scholar.AuthorshipAuthors},
		{scholar.CitedBy, scholar.CitationCitedBy},
		{scholar.HeldIn, scholar.PublicationHeldIn},
		{scholar.ReviewText, scholar.RevisionReviewText},
		{scholar.VolumeNumber, scholar.PublicationVolumeNumber},
	}
	for _, tc := range tests {
		t.Run(tc.local, func(t *testing.T) {
			got, ok := scholar.PredicateFor(tc.local)
			require.True(t, ok)
			assert.Equal(t, tc.predicate, got)

			back, ok := scholar.LocalFor(got)
			require.True(t, ok)
			assert.Equal(t, tc.local, back)
		})
	}

	_, ok := scholar.PredicateFor("no_such_property")
	assert.False(t, ok)
}

func TestGetPredicateIRI(t *testing.T) {
	tests := []struct {
		predicate string
		want      string
	}{
		{scholar.PaperTitle, scholar.Namespace + "title"},
		{scholar.ReviewDoneBy, scholar.Namespace + "done_by"},
		{scholar.EntityClass, scholar.RDFType},
		{scholar.RDFSSubClassOf, scholar.RDFSSubClassOf},
		{"some.unknown.thing", scholar.Namespace + "thing"},
	}
	for _, tc := range tests {
		t.Run(tc.predicate, func(t *testing.T) {
			assert.Equal(t, tc.want, scholar.GetPredicateIRI(tc.predicate))
		})
	}
}

func TestVenueCategory(t *testing.T) {
	assert.Equal(t, scholar.KindChair, scholar.CategoryConference.Handler())
	assert.Equal(t, scholar.KindEditor, scholar.CategoryJournal.Handler())
	assert.Equal(t, scholar.KindProceedings, scholar.CategoryConference.Publication())
	assert.Equal(t, scholar.KindVolume, scholar.CategoryJournal.Publication())
}

func TestPaperKindsFor(t *testing.T) {
	assert.Len(t, scholar.PaperKindsFor(true), 4)
	journal := scholar.PaperKindsFor(false)
	assert.Equal(t, []scholar.PaperKind{scholar.KindFullPaper, scholar.KindShortPaper, scholar.KindDemoPaper}, journal)
	assert.NotContains(t, journal, scholar.KindPoster)
}
