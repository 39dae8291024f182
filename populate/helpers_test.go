package populate

import (
	"context"
	"testing"

	"github.com/c360studio/scholargraph/schema"
	"github.com/c360studio/scholargraph/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		sep  string
		want []string
	}{
		{"", ";", nil},
		{"  ", ";", nil},
		{"1;2", ";", []string{"1", "2"}},
		{"1;2;;", ";", []string{"1", "2"}},
		{"1;;2", ";", []string{"1", "", "2"}},
		{"A, B", ", ", []string{"A", "B"}},
		{"x; y; ", "; ", []string{"x", "y"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitList(tt.in, tt.sep), "input %q", tt.in)
	}
}

func TestParseDecision(t *testing.T) {
	for _, s := range []string{"True", "true", "1", "YES", "accepted"} {
		accepted, ok := ParseDecision(s)
		assert.True(t, ok, s)
		assert.True(t, accepted, s)
	}
	for _, s := range []string{"False", "0", "no", "Rejected"} {
		accepted, ok := ParseDecision(s)
		assert.True(t, ok, s)
		assert.False(t, accepted, s)
	}
	_, ok := ParseDecision("perhaps")
	assert.False(t, ok)
}

func TestColumnsWithDefaults(t *testing.T) {
	var c Columns
	c.Primary.DOI = "doi"
	c = c.WithDefaults()
	assert.Equal(t, "doi", c.Primary.DOI)
	assert.Equal(t, "Author(s) ID", c.Primary.AuthorIDs)
	assert.Equal(t, "Reviewers", c.Assignments.Reviewers)
}

func TestCustomColumns(t *testing.T) {
	opts := Options{Chooser: FirstChooser{}}
	opts.Columns.Citations = CitationColumns{Citing: "from", Cited: "to"}
	p := New(schema.Base(), opts)
	runPrimary(t, p, primaryRow("d1", "V1", "2020"), primaryRow("d2", "V1", "2020"))
	require.NoError(t, p.Citations(context.Background(), source.FromRows(source.Row{"from": "d1", "to": "d2"})))
	assert.Equal(t, 1, len(p.Graph().Objects(p.alloc.ForKey(PrefixPaper, "d1"), "cites")))
}

func TestParseIdentityMode(t *testing.T) {
	m, err := ParseIdentityMode("")
	require.NoError(t, err)
	assert.Equal(t, IdentityNaturalKey, m)
	m, err = ParseIdentityMode("counter")
	require.NoError(t, err)
	assert.Equal(t, IdentityCounter, m)
	_, err = ParseIdentityMode("uuid")
	assert.Error(t, err)
}

func TestRandomChooserInRange(t *testing.T) {
	c := NewRandomChooser(7)
	for range 100 {
		i := c.Choose(ChoosePaperKind, 4)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 4)
	}
	a, b := NewRandomChooser(9), NewRandomChooser(9)
	for range 10 {
		assert.Equal(t, a.Choose(ChooseHandler, 3), b.Choose(ChooseHandler, 3))
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	p := New(schema.Base(), Options{Chooser: FirstChooser{}, Metrics: m})
	runPrimary(t, p, primaryRow("d1", "V1", "2020"), primaryRow("d1", "V1", "2020"))
	require.NoError(t, p.Citations(context.Background(), source.Empty()))
	require.NoError(t, p.Reviews(context.Background(), source.FromRows(
		source.Row{"DOI": "d1", "Accepted": "False"},
	)))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowsProcessed.WithLabelValues(string(PassPrimary))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowsProcessed.WithLabelValues(string(PassReviews))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dedupHits.WithLabelValues("paper")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dedupHits.WithLabelValues("venue")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dedupHits.WithLabelValues("author")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.nodesCreated.WithLabelValues("Chair")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowsSkipped.WithLabelValues(string(PassReviews), "rejected")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.rowProcessed(PassPrimary)
	m.nodeCreated("Author")
	m.dedupHit("paper")
}
