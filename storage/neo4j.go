package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/scholargraph/graph"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ResourceLabel is carried by every node written to Neo4j in addition to
// its class label.
const ResourceLabel = "Resource"

// DefaultBatchSize is the number of rows sent per UNWIND statement.
const DefaultBatchSize = 500

// CypherRunner executes one statement inside a transaction.
type CypherRunner interface {
	Run(ctx context.Context, cypher string, params map[string]any) error
}

// CypherSession runs write transactions.
type CypherSession interface {
	ExecuteWrite(ctx context.Context, work func(tx CypherRunner) error) error
	Close(ctx context.Context) error
}

// SessionOpener opens sessions against a database.
type SessionOpener interface {
	OpenSession(ctx context.Context) CypherSession
}

// Statement is a parameterized Cypher statement.
type Statement struct {
	Cypher string
	Params map[string]any
}

// Neo4jSink writes graphs to Neo4j with idempotent MERGE statements, so
// writing the same graph twice leaves the database unchanged.
type Neo4jSink struct {
	opener    SessionOpener
	batchSize int
	logger    *slog.Logger
}

// Neo4jOption configures a Neo4jSink.
type Neo4jOption func(*Neo4jSink)

// WithBatchSize sets the number of rows per statement.
func WithBatchSize(n int) Neo4jOption {
	return func(s *Neo4jSink) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithNeo4jLogger sets the logger.
func WithNeo4jLogger(l *slog.Logger) Neo4jOption {
	return func(s *Neo4jSink) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewNeo4jSink creates a sink writing to database through driver.
func NewNeo4jSink(driver neo4j.DriverWithContext, database string, opts ...Neo4jOption) *Neo4jSink {
	return NewNeo4jSinkWithOpener(&driverOpener{driver: driver, database: database}, opts...)
}

// NewNeo4jSinkWithOpener creates a sink using a custom session opener.
func NewNeo4jSinkWithOpener(opener SessionOpener, opts ...Neo4jOption) *Neo4jSink {
	s := &Neo4jSink{
		opener:    opener,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "neo4j-sink")
	return s
}

// OpenNeo4j connects to uri and verifies connectivity. An empty username
// connects without authentication.
func OpenNeo4j(ctx context.Context, uri, username, password string) (neo4j.DriverWithContext, error) {
	auth := neo4j.NoAuth()
	if username != "" {
		auth = neo4j.BasicAuth(username, password, "")
	}
	driver, err := neo4j.NewDriverWithContext(uri, auth, func(cfg *neo4j.Config) {
		cfg.SocketConnectTimeout = 10 * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("init neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return driver, nil
}

// Write implements graph.Sink.
func (s *Neo4jSink) Write(ctx context.Context, g *graph.Graph) error {
	if s.opener == nil {
		return ErrNoConnection
	}
	stmts := append([]Statement{ConstraintStatement()}, Statements(g, s.batchSize)...)

	sess := s.opener.OpenSession(ctx)
	defer sess.Close(ctx)

	for _, st := range stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := sess.ExecuteWrite(ctx, func(tx CypherRunner) error {
			return tx.Run(ctx, st.Cypher, st.Params)
		})
		if err != nil {
			return fmt.Errorf("neo4j write: %w", err)
		}
	}
	s.logger.Info("Wrote graph to Neo4j",
		"nodes", g.Len(),
		"edges", g.EdgeCount(),
		"statements", len(stmts))
	return nil
}

// ConstraintStatement makes the IRI unique among resources.
func ConstraintStatement() Statement {
	return Statement{
		Cypher: "CREATE CONSTRAINT resource_iri IF NOT EXISTS FOR (n:" + ResourceLabel + ") REQUIRE n.iri IS UNIQUE",
	}
}

// Statements renders g as batched MERGE statements: nodes grouped by
// class first, then relationships grouped by property. Only asserted
// directions are written; Neo4j traverses relationships both ways.
func Statements(g *graph.Graph, batchSize int) []Statement {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var classes []string
	nodeRows := make(map[string][]map[string]any)
	var props []string
	edgeRows := make(map[string][]map[string]any)

	for _, n := range g.Nodes() {
		if _, ok := nodeRows[n.Class]; !ok {
			classes = append(classes, n.Class)
		}
		nodeRows[n.Class] = append(nodeRows[n.Class], map[string]any{
			"iri":   n.ID,
			"props": nodeProperties(n),
		})
		for _, p := range n.EdgeProperties() {
			if _, ok := edgeRows[p]; !ok {
				props = append(props, p)
			}
			for _, to := range n.Targets(p) {
				edgeRows[p] = append(edgeRows[p], map[string]any{"from": n.ID, "to": to})
			}
		}
	}

	var out []Statement
	for _, class := range classes {
		cypher := fmt.Sprintf(
			"UNWIND $rows AS row MERGE (n:%s {iri: row.iri}) SET n:%s, n += row.props",
			ResourceLabel, sanitizeLabel(class))
		out = append(out, batch(cypher, nodeRows[class], batchSize)...)
	}
	for _, p := range props {
		cypher := fmt.Sprintf(
			"UNWIND $rows AS row MATCH (a:%s {iri: row.from}), (b:%s {iri: row.to}) MERGE (a)-[:%s]->(b)",
			ResourceLabel, ResourceLabel, sanitizeRelType(p))
		out = append(out, batch(cypher, edgeRows[p], batchSize)...)
	}
	return out
}

func batch(cypher string, rows []map[string]any, size int) []Statement {
	var out []Statement
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunk := make([]any, 0, end-start)
		for _, r := range rows[start:end] {
			chunk = append(chunk, r)
		}
		out = append(out, Statement{Cypher: cypher, Params: map[string]any{"rows": chunk}})
	}
	return out
}

// nodeProperties flattens literals: single values become strings and
// repeated values become string lists.
func nodeProperties(n *graph.Node) map[string]any {
	props := map[string]any{"class": n.Class}
	for _, p := range n.LiteralProperties() {
		lits := n.Literals(p)
		if len(lits) == 1 {
			props[p] = lits[0].Value
			continue
		}
		values := make([]string, len(lits))
		for i, l := range lits {
			values[i] = l.Value
		}
		props[p] = values
	}
	return props
}

func sanitizeLabel(t string) string {
	safe := make([]byte, 0, len(t))
	for i := range t {
		c := t[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			safe = append(safe, c)
		}
	}
	if len(safe) == 0 || (safe[0] >= '0' && safe[0] <= '9') {
		return "Node" + string(safe)
	}
	return string(safe)
}

func sanitizeRelType(t string) string {
	safe := make([]byte, 0, len(t))
	for i := range t {
		c := t[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			safe = append(safe, c)
		}
	}
	if len(safe) == 0 {
		return "RELATED_TO"
	}
	// Uppercase for Neo4j convention
	for i := range safe {
		if safe[i] >= 'a' && safe[i] <= 'z' {
			safe[i] -= 32
		}
	}
	return string(safe)
}

type driverOpener struct {
	driver   neo4j.DriverWithContext
	database string
}

func (o *driverOpener) OpenSession(ctx context.Context) CypherSession {
	return &driverSession{sess: o.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: o.database,
		AccessMode:   neo4j.AccessModeWrite,
	})}
}

type driverSession struct {
	sess neo4j.SessionWithContext
}

func (s *driverSession) ExecuteWrite(ctx context.Context, work func(tx CypherRunner) error) error {
	_, err := s.sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, work(txRunner{tx: tx})
	})
	return err
}

func (s *driverSession) Close(ctx context.Context) error {
	return s.sess.Close(ctx)
}

type txRunner struct {
	tx neo4j.ManagedTransaction
}

func (r txRunner) Run(ctx context.Context, cypher string, params map[string]any) error {
	result, err := r.tx.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}
