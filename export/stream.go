package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/c360studio/scholargraph/graph"
	"github.com/nats-io/nats.go/jetstream"
)

// RDFExportSubject is where rendered entity documents are published.
const RDFExportSubject = "graph.export.rdf"

// Document is one entity rendered to RDF.
type Document struct {
	EntityID string `json:"entity_id"`
	Class    string `json:"class"`
	Format   string `json:"format"`
	Content  string `json:"content"`
}

// Validate checks the required fields.
func (d *Document) Validate() error {
	if d.EntityID == "" {
		return errors.New("entity_id is required")
	}
	if d.Format == "" {
		return errors.New("format is required")
	}
	if d.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// StreamExporter consumes graph ingest messages and republishes every entity
// as an RDF document.
type StreamExporter struct {
	js       jetstream.JetStream
	format   Format
	stream   string
	filter   string
	subject  string
	consumer string
	logger   *slog.Logger

	processed atomic.Int64
	failed    atomic.Int64
}

// StreamOption configures a StreamExporter.
type StreamOption func(*StreamExporter)

// WithStreamSubjects overrides the ingest filter and the output subject.
func WithStreamSubjects(filter, output string) StreamOption {
	return func(s *StreamExporter) {
		if filter != "" {
			s.filter = filter
		}
		if output != "" {
			s.subject = output
		}
	}
}

// WithConsumerName sets the durable consumer name.
func WithConsumerName(name string) StreamOption {
	return func(s *StreamExporter) { s.consumer = name }
}

// WithStreamLogger sets the logger.
func WithStreamLogger(logger *slog.Logger) StreamOption {
	return func(s *StreamExporter) { s.logger = logger }
}

// NewStreamExporter returns an exporter reading the graph stream through js.
func NewStreamExporter(js jetstream.JetStream, format Format, opts ...StreamOption) *StreamExporter {
	s := &StreamExporter{
		js:       js,
		format:   format,
		stream:   graph.GraphStream,
		filter:   graph.GraphIngestSubject,
		subject:  RDFExportSubject,
		consumer: "rdf-export",
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Processed returns the number of entities exported.
func (s *StreamExporter) Processed() int64 { return s.processed.Load() }

// Failed returns the number of messages that could not be exported.
func (s *StreamExporter) Failed() int64 { return s.failed.Load() }

// Render converts one ingest message to a Document.
func (s *StreamExporter) Render(data []byte) (*Document, error) {
	var msg graph.EntityIngestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal entity message: %w", err)
	}
	e := NewExporter()
	e.Add(msg.Triples...)
	content, err := e.Export(s.format)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		EntityID: msg.ID,
		Class:    msg.Class,
		Format:   string(s.format),
		Content:  content,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Run consumes new ingest messages until ctx is done.
func (s *StreamExporter) Run(ctx context.Context) error {
	if s.js == nil {
		return fmt.Errorf("JetStream required")
	}
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, s.stream, jetstream.ConsumerConfig{
		Name:          s.consumer,
		Durable:       s.consumer,
		FilterSubject: s.filter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    3,
	})
	if err != nil {
		return fmt.Errorf("create consumer %s: %w", s.consumer, err)
	}

	consumeCtx, err := consumer.Consume(func(msg jetstream.Msg) {
		s.handle(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("start consuming %s: %w", s.filter, err)
	}

	s.logger.Info("RDF stream export started",
		"format", s.format,
		"input", s.filter,
		"output", s.subject)

	<-ctx.Done()
	consumeCtx.Stop()

	s.logger.Info("RDF stream export stopped",
		"processed", s.processed.Load(),
		"failed", s.failed.Load())
	return nil
}

func (s *StreamExporter) handle(ctx context.Context, msg jetstream.Msg) {
	doc, err := s.Render(msg.Data())
	if err != nil {
		s.logger.Warn("Failed to render entity", "subject", msg.Subject(), "error", err)
		s.failed.Add(1)
		// Redelivery cannot fix a bad payload.
		_ = msg.Term()
		return
	}
	data, err := json.Marshal(doc)
	if err != nil {
		s.failed.Add(1)
		_ = msg.Term()
		return
	}
	if _, err := s.js.Publish(ctx, s.subject, data); err != nil {
		s.logger.Warn("Failed to publish RDF document",
			"entity_id", doc.EntityID,
			"subject", s.subject,
			"error", err)
		s.failed.Add(1)
		_ = msg.Nak()
		return
	}
	_ = msg.Ack()
	s.processed.Add(1)
	s.logger.Debug("Exported entity to RDF",
		"entity_id", doc.EntityID,
		"class", doc.Class,
		"output_bytes", len(doc.Content))
}
