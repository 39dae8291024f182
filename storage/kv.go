// Package storage persists populated graphs: node records in NATS
// JetStream KV buckets and nodes and relationships in Neo4j.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/c360studio/scholargraph/graph"
	"github.com/c360studio/scholargraph/schema"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
)

// Bucket names.
const (
	BucketNodes = "SCHOLAR_NODES"
	BucketRuns  = "SCHOLAR_RUNS"
)

// NodeRecord is the stored form of one individual.
type NodeRecord struct {
	IRI       string                      `json:"iri"`
	Class     string                      `json:"class"`
	Literals  map[string][]schema.Literal `json:"literals,omitempty"`
	Edges     map[string][]string         `json:"edges,omitempty"`
	RunID     string                      `json:"run_id,omitempty"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// RunRecord summarizes one stored population run.
type RunRecord struct {
	ID        string         `json:"id"`
	Nodes     int            `json:"nodes"`
	Edges     int            `json:"edges"`
	Classes   map[string]int `json:"classes"`
	StoredAt  time.Time      `json:"stored_at"`
	Completed bool           `json:"completed"`
}

// NodeKey returns the KV key of an individual. IRIs contain characters KV
// keys cannot, so the key is the name-based UUID of the IRI.
func NodeKey(iri string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(iri)).String()
}

// RecordFromNode converts a graph node to its stored form.
func RecordFromNode(n *graph.Node) NodeRecord {
	rec := NodeRecord{IRI: n.ID, Class: n.Class}
	if props := n.LiteralProperties(); len(props) > 0 {
		rec.Literals = make(map[string][]schema.Literal, len(props))
		for _, p := range props {
			rec.Literals[p] = n.Literals(p)
		}
	}
	if props := n.EdgeProperties(); len(props) > 0 {
		rec.Edges = make(map[string][]string, len(props))
		for _, p := range props {
			rec.Edges[p] = n.Targets(p)
		}
	}
	return rec
}

// Store provides node storage backed by NATS KV.
type Store struct {
	nodes  jetstream.KeyValue
	runs   jetstream.KeyValue
	logger *slog.Logger
}

// NewStore creates a Store with the given JetStream context.
// It creates the necessary KV buckets if they don't exist.
func NewStore(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) (*Store, error) {
	nodes, err := getOrCreateBucket(ctx, js, BucketNodes)
	if err != nil {
		return nil, fmt.Errorf("create nodes bucket: %w", err)
	}

	runs, err := getOrCreateBucket(ctx, js, BucketRuns)
	if err != nil {
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		nodes:  nodes,
		runs:   runs,
		logger: logger.With("component", "kv-store"),
	}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Scholargraph %s storage", strings.ToLower(strings.TrimPrefix(name, "SCHOLAR_"))),
		History:     5,
	})
}

// SaveNode stores a node record, replacing any previous version.
func (s *Store) SaveNode(ctx context.Context, rec NodeRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal node: %w", err)
	}
	if _, err := s.nodes.Put(ctx, NodeKey(rec.IRI), data); err != nil {
		return fmt.Errorf("store node %s: %w", rec.IRI, err)
	}
	return nil
}

// GetNode retrieves a node record by IRI.
func (s *Store) GetNode(ctx context.Context, iri string) (*NodeRecord, error) {
	entry, err := s.nodes.Get(ctx, NodeKey(iri))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get node: %w", err)
	}

	var rec NodeRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal node: %w", err)
	}
	return &rec, nil
}

// ListNodes returns all stored node records ordered by IRI.
func (s *Store) ListNodes(ctx context.Context) ([]*NodeRecord, error) {
	keys, err := s.nodes.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list node keys: %w", err)
	}

	records := make([]*NodeRecord, 0, len(keys))
	for _, key := range keys {
		entry, err := s.nodes.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Skipping unreadable node", "key", key, "error", err)
			continue
		}
		var rec NodeRecord
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			s.logger.Warn("Skipping malformed node", "key", key, "error", err)
			continue
		}
		records = append(records, &rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].IRI < records[j].IRI })
	return records, nil
}

// GetRun retrieves a run record by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	entry, err := s.runs.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get run: %w", err)
	}
	var run RunRecord
	if err := json.Unmarshal(entry.Value(), &run); err != nil {
		return nil, fmt.Errorf("unmarshal run: %w", err)
	}
	return &run, nil
}

func (s *Store) putRun(ctx context.Context, run RunRecord) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	if _, err := s.runs.Put(ctx, run.ID, data); err != nil {
		return fmt.Errorf("store run: %w", err)
	}
	return nil
}

// SaveGraph stores every node of g under a new run and returns the run.
// The run is recorded as incomplete first so an interrupted save is visible.
func (s *Store) SaveGraph(ctx context.Context, g *graph.Graph) (*RunRecord, error) {
	run := RunRecord{
		ID:       uuid.New().String(),
		Nodes:    g.Len(),
		Edges:    g.EdgeCount(),
		Classes:  g.CountByClass(),
		StoredAt: time.Now(),
	}
	if err := s.putRun(ctx, run); err != nil {
		return nil, err
	}

	for _, n := range g.Nodes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := RecordFromNode(n)
		rec.RunID = run.ID
		rec.UpdatedAt = run.StoredAt
		if err := s.SaveNode(ctx, rec); err != nil {
			return nil, err
		}
	}

	run.Completed = true
	if err := s.putRun(ctx, run); err != nil {
		return nil, err
	}
	s.logger.Info("Stored graph",
		"run", run.ID,
		"nodes", run.Nodes,
		"edges", run.Edges)
	return &run, nil
}

// Write implements graph.Sink.
func (s *Store) Write(ctx context.Context, g *graph.Graph) error {
	_, err := s.SaveGraph(ctx, g)
	return err
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound) || strings.Contains(err.Error(), "key not found")
}
