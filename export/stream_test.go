package export_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/c360studio/scholargraph/export"
	"github.com/c360studio/scholargraph/graph"
	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingestMessage(t *testing.T) []byte {
	t.Helper()
	g := sampleGraph(t)
	n := g.Nodes()[0]
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err := json.Marshal(graph.EntityIngestMessage{
		ID:        n.ID,
		Class:     n.Class,
		Triples:   g.NodeTriples(n, graph.TripleSource, now),
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return data
}

func TestStreamExporterRender(t *testing.T) {
	s := export.NewStreamExporter(nil, export.FormatNTriples)

	doc, err := s.Render(ingestMessage(t))
	require.NoError(t, err)

	assert.Equal(t, author, doc.EntityID)
	assert.Equal(t, scholar.Author, doc.Class)
	assert.Equal(t, "ntriples", doc.Format)
	assert.Contains(t, doc.Content, "<"+author+"> <"+scholar.RDFType+"> <"+scholar.Namespace+"Author> .")
	assert.Contains(t, doc.Content, `"Ada \"The Countess\""`)
	assert.Contains(t, doc.Content, "<"+author+"> <"+scholar.Namespace+"authors> <"+paper+"> .")
}

func TestStreamExporterRenderTurtle(t *testing.T) {
	s := export.NewStreamExporter(nil, export.FormatTurtle)

	doc, err := s.Render(ingestMessage(t))
	require.NoError(t, err)
	assert.Contains(t, doc.Content, "fd:A1\n    a fd:Author ;")
}

func TestStreamExporterRenderInvalid(t *testing.T) {
	s := export.NewStreamExporter(nil, export.FormatTurtle)

	_, err := s.Render([]byte("not json"))
	assert.Error(t, err)

	_, err = s.Render([]byte(`{"id":"","triples":[]}`))
	assert.Error(t, err, "an entity needs an id")
}

func TestDocumentValidate(t *testing.T) {
	assert.Error(t, (&export.Document{}).Validate())
	assert.Error(t, (&export.Document{EntityID: "x"}).Validate())
	assert.Error(t, (&export.Document{EntityID: "x", Format: "turtle"}).Validate())
	assert.NoError(t, (&export.Document{EntityID: "x", Format: "turtle", Content: "c"}).Validate())
}
