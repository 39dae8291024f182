package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/c360studio/scholargraph/schema"
	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	g := New(schema.Base())
	for id, class := range map[string]string{
		"P0": scholar.FullPaper,
		"P1": scholar.Poster,
		"A1": scholar.Author,
		"V0": scholar.Journal,
		"H0": scholar.Editor,
	} {
		_, err := g.AddNode(id, class)
		require.NoError(t, err)
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New(schema.Base())

	created, err := g.AddNode("P0", scholar.ShortPaper)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = g.AddNode("P0", scholar.ShortPaper)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = g.AddNode("P0", scholar.Poster)
	assert.ErrorIs(t, err, ErrClassConflict)

	_, err = g.AddNode("X", scholar.Paper)
	assert.ErrorIs(t, err, ErrAbstractClass)

	_, err = g.AddNode("X", "Banana")
	var lookup *schema.SchemaLookupError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, schema.KindClass, lookup.Kind)

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, scholar.ShortPaper, g.Class("P0"))
	assert.Equal(t, "", g.Class("nope"))
}

func TestAddLiteral(t *testing.T) {
	g := newTestGraph(t)

	added, err := g.AddLiteral("P0", scholar.Title, "Graphs")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = g.AddLiteral("P0", scholar.Title, "Graphs")
	require.NoError(t, err)
	assert.False(t, added, "identical literal is stored once")

	_, err = g.AddLiteral("P0", scholar.Title, "Graphs, revised")
	require.NoError(t, err)
	assert.Equal(t, []string{"Graphs", "Graphs, revised"}, g.Values("P0", scholar.Title))

	lits := g.Literals("P0", scholar.Title)
	require.Len(t, lits, 2)
	assert.Equal(t, schema.String, lits[0].Datatype)

	_, err = g.AddLiteral("nope", scholar.Title, "x")
	assert.ErrorIs(t, err, ErrUnknownNode)

	_, err = g.AddLiteral("P0", "colour", "x")
	var lookup *schema.SchemaLookupError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, schema.KindDataProperty, lookup.Kind)
}

func TestSetLiteralOnce(t *testing.T) {
	g := New(schema.Base())
	_, err := g.AddNode("VP0", scholar.Volume)
	require.NoError(t, err)

	set, err := g.SetLiteralOnce("VP0", scholar.Year, "2019")
	require.NoError(t, err)
	assert.True(t, set)

	set, err = g.SetLiteralOnce("VP0", scholar.Year, "2020")
	require.NoError(t, err)
	assert.False(t, set)

	lits := g.Literals("VP0", scholar.Year)
	require.Len(t, lits, 1)
	assert.Equal(t, schema.Literal{Value: "2019", Datatype: schema.GYear}, lits[0])
}

func TestAddEdgeInverseAware(t *testing.T) {
	g := newTestGraph(t)

	added, err := g.AddEdge("A1", scholar.Authors, "P0")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = g.AddEdge("A1", scholar.Authors, "P0")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = g.AddEdge("P0", scholar.AuthoredBy, "A1")
	require.NoError(t, err)
	assert.False(t, added, "inverse assertion of an existing edge is a duplicate")

	assert.Equal(t, []string{"P0"}, g.Objects("A1", scholar.Authors))
	assert.Equal(t, []string{"A1"}, g.Objects("P0", scholar.AuthoredBy))
	assert.Equal(t, []string{"A1"}, g.Subjects("P0", scholar.Authors))
	assert.Empty(t, g.Objects("P0", scholar.Authors))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestAddEdgeErrors(t *testing.T) {
	g := newTestGraph(t)

	_, err := g.AddEdge("P0", scholar.Cites, "P9")
	assert.True(t, errors.Is(err, ErrUnknownNode))

	_, err = g.AddEdge("P0", "likes", "P1")
	var lookup *schema.SchemaLookupError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, schema.KindObjectProperty, lookup.Kind)

	_, err = g.AddEdge("P0", scholar.Title, "P1")
	require.ErrorAs(t, err, &lookup)
}

func TestNodesOf(t *testing.T) {
	g := newTestGraph(t)

	assert.Len(t, g.NodesOf(scholar.Paper), 2)
	assert.Len(t, g.NodesOf(scholar.Academic), 2)
	assert.Len(t, g.NodesOf(scholar.Handler), 1)
	assert.Empty(t, g.NodesOf(scholar.Conference))

	counts := g.CountByClass()
	assert.Equal(t, 1, counts[scholar.Poster])
	assert.Equal(t, 0, counts[scholar.Workshop])
}

func TestNodeOrderAndAccessors(t *testing.T) {
	g := New(schema.Base())
	for _, id := range []string{"c", "a", "b"} {
		_, err := g.AddNode(id, scholar.Field)
		require.NoError(t, err)
	}
	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)

	_, err := g.AddLiteral("a", scholar.Keyword, "graphs")
	require.NoError(t, err)
	n, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, []string{scholar.Keyword}, n.LiteralProperties())
	assert.Empty(t, n.EdgeProperties())
	assert.True(t, g.Has("b"))
	assert.False(t, g.Has("z"))
}

func TestWriteAll(t *testing.T) {
	g := newTestGraph(t)
	var order []string
	ok := func(name string) NamedSink {
		return NamedSink{Name: name, Sink: SinkFunc(func(context.Context, *Graph) error {
			order = append(order, name)
			return nil
		})}
	}
	boom := errors.New("boom")
	failing := NamedSink{Name: "bad", Sink: SinkFunc(func(context.Context, *Graph) error { return boom })}

	err := WriteAll(context.Background(), g, ok("one"), failing, ok("two"))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "sink bad")
	assert.Equal(t, []string{"one"}, order)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, WriteAll(ctx, g, ok("three")), context.Canceled)
}
