package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/nats-io/nats.go/jetstream"
)

// GraphIngestSubject is the subject entity messages are published on.
const GraphIngestSubject = "graph.ingest.entity"

// GraphStream is the JetStream stream capturing graph subjects.
const GraphStream = "GRAPH"

// GraphSubjectPrefix starts every subject GraphStream captures.
const GraphSubjectPrefix = "graph."

// EntityIngestMessage is the message format for graph ingestion.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Class     string           `json:"class"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Publisher publishes every node of a graph as an entity ingest message.
type Publisher struct {
	js      jetstream.JetStream
	subject string
	source  string
	logger  *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithSubject overrides GraphIngestSubject.
func WithSubject(subject string) PublisherOption {
	return func(p *Publisher) { p.subject = subject }
}

// WithSource sets the Source recorded on published triples.
func WithSource(source string) PublisherOption {
	return func(p *Publisher) { p.source = source }
}

// WithLogger sets the publisher logger.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = logger }
}

// NewPublisher returns a publisher writing through js.
func NewPublisher(js jetstream.JetStream, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		js:      js,
		subject: GraphIngestSubject,
		source:  TripleSource,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// EnsureStream creates or updates the stream that captures graph subjects.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        GraphStream,
		Description: "Graph ingestion messages",
		Subjects:    []string{GraphSubjectPrefix + ">"},
	})
	if err != nil {
		return fmt.Errorf("ensure stream %s: %w", GraphStream, err)
	}
	return nil
}

// Write publishes one message per node and implements Sink.
func (p *Publisher) Write(ctx context.Context, g *Graph) error {
	if p.js == nil {
		return nil // no NATS connection configured
	}
	now := time.Now()
	published := 0
	for _, n := range g.Nodes() {
		msg := EntityIngestMessage{
			ID:        n.ID,
			Class:     n.Class,
			Triples:   g.NodeTriples(n, p.source, now),
			UpdatedAt: now,
		}
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal entity %s: %w", n.ID, err)
		}
		if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
			return fmt.Errorf("publish entity %s: %w", n.ID, err)
		}
		published++
	}
	p.logger.Info("Published graph entities", "subject", p.subject, "count", published)
	return nil
}
