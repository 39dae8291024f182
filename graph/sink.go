package graph

import (
	"context"
	"fmt"
)

// Sink receives a completed graph: a serializer, a store or a publisher.
type Sink interface {
	Write(ctx context.Context, g *Graph) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, g *Graph) error

// Write calls f.
func (f SinkFunc) Write(ctx context.Context, g *Graph) error {
	return f(ctx, g)
}

// NamedSink labels a sink for logging and error messages.
type NamedSink struct {
	Name string
	Sink Sink
}

// WriteAll hands g to every sink in order and stops at the first failure.
func WriteAll(ctx context.Context, g *Graph, sinks ...NamedSink) error {
	for _, s := range sinks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Sink.Write(ctx, g); err != nil {
			return fmt.Errorf("sink %s: %w", s.Name, err)
		}
	}
	return nil
}
