package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingTx records all cypher statements executed.
type trackingTx struct {
	queries []string
	params  []map[string]any
	err     error
}

func (t *trackingTx) Run(_ context.Context, cypher string, params map[string]any) error {
	if t.err != nil {
		return t.err
	}
	t.queries = append(t.queries, cypher)
	t.params = append(t.params, params)
	return nil
}

type trackingSession struct {
	tx     *trackingTx
	closed bool
}

func (s *trackingSession) ExecuteWrite(_ context.Context, work func(tx CypherRunner) error) error {
	return work(s.tx)
}

func (s *trackingSession) Close(_ context.Context) error {
	s.closed = true
	return nil
}

type trackingOpener struct {
	session *trackingSession
}

func (o *trackingOpener) OpenSession(_ context.Context) CypherSession {
	return o.session
}

func newTrackingSink(opts ...Neo4jOption) (*Neo4jSink, *trackingSession) {
	sess := &trackingSession{tx: &trackingTx{}}
	return NewNeo4jSinkWithOpener(&trackingOpener{session: sess}, opts...), sess
}

func TestStatements(t *testing.T) {
	stmts := Statements(sampleGraph(t), 0)
	require.Len(t, stmts, 3)

	assert.Equal(t, "UNWIND $rows AS row MERGE (n:Resource {iri: row.iri}) SET n:Author, n += row.props", stmts[0].Cypher)
	assert.Contains(t, stmts[1].Cypher, "SET n:Full_paper")
	assert.Contains(t, stmts[2].Cypher, "MERGE (a)-[:AUTHORS]->(b)")

	rows := stmts[0].Params["rows"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, scholar.Namespace+"A1", row["iri"])
	props := row["props"].(map[string]any)
	assert.Equal(t, scholar.Author, props["class"])
	assert.Equal(t, []string{"Ada", "A. Lovelace"}, props[scholar.Name])

	edge := stmts[2].Params["rows"].([]any)[0].(map[string]any)
	assert.Equal(t, scholar.Namespace+"A1", edge["from"])
	assert.Equal(t, scholar.Namespace+"10.1/abc", edge["to"])
}

func TestStatementsBatching(t *testing.T) {
	g := sampleGraph(t)
	for _, id := range []string{"A2", "A3", "A4"} {
		_, err := g.AddNode(scholar.Namespace+id, scholar.Author)
		require.NoError(t, err)
	}
	stmts := Statements(g, 2)
	var authorBatches int
	for _, st := range stmts {
		if strings.Contains(st.Cypher, "SET n:Author") {
			authorBatches++
			assert.LessOrEqual(t, len(st.Params["rows"].([]any)), 2)
		}
	}
	assert.Equal(t, 2, authorBatches)
}

func TestNeo4jSinkWrite(t *testing.T) {
	sink, sess := newTrackingSink(WithBatchSize(10))
	require.NoError(t, sink.Write(context.Background(), sampleGraph(t)))

	require.Len(t, sess.tx.queries, 4)
	assert.Contains(t, sess.tx.queries[0], "CREATE CONSTRAINT resource_iri IF NOT EXISTS")
	assert.True(t, sess.closed)
}

func TestNeo4jSinkError(t *testing.T) {
	sink, sess := newTrackingSink()
	sess.tx.err = errors.New("connection refused")
	err := sink.Write(context.Background(), sampleGraph(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neo4j write")
	assert.True(t, sess.closed)
}

func TestNeo4jSinkWithoutOpener(t *testing.T) {
	sink := NewNeo4jSinkWithOpener(nil)
	assert.ErrorIs(t, sink.Write(context.Background(), sampleGraph(t)), ErrNoConnection)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "PAPER_RELATED_TO", sanitizeRelType("paper_related_to"))
	assert.Equal(t, "RELATED_TO", sanitizeRelType("--"))
	assert.Equal(t, "Regular_conference", sanitizeLabel("Regular_conference"))
	assert.Equal(t, "Node1x", sanitizeLabel("1x"))
	assert.Equal(t, "Node", sanitizeLabel("!"))
}
