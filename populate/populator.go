// Package populate builds the typed entity graph from the four tabular
// sources: primary records, citations, reviews and reviewer assignments.
package populate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/c360studio/scholargraph/graph"
	"github.com/c360studio/scholargraph/ident"
	"github.com/c360studio/scholargraph/registry"
	"github.com/c360studio/scholargraph/schema"
	"github.com/c360studio/scholargraph/source"
	"github.com/c360studio/scholargraph/vocabulary/scholar"
	errs "github.com/c360studio/semstreams/errors"
)

// Identifier prefixes of counted and key-derived individuals.
const (
	PrefixPaper      = "P"
	PrefixAuthor     = "A"
	PrefixVenue      = "V"
	PrefixHandler    = "H"
	PrefixSubmission = "Sub"
	PrefixField      = "F"
	PrefixRevision   = "R"
	PrefixLocation   = "L"
)

// PlaceholderLocation is the name given to the single location every
// conference proceedings is held in.
const PlaceholderLocation = "unknown"

// Sources holds the readers of one run. A nil reader is an empty source.
type Sources struct {
	Primary     source.Reader
	Citations   source.Reader
	Reviews     source.Reader
	Assignments source.Reader
}

// Populator runs the population passes against one graph. It is single-use
// and not safe for concurrent use.
type Populator struct {
	schema  *schema.Schema
	graph   *graph.Graph
	alloc   *ident.Allocator
	reg     *registry.Registry
	opts    Options
	logger  *slog.Logger
	metrics *Metrics

	location string
	stage    int
}

// New returns a populator writing into a fresh graph governed by s.
func New(s *schema.Schema, opts Options) *Populator {
	opts = opts.withDefaults()
	return &Populator{
		schema:  s,
		graph:   graph.New(s),
		alloc:   ident.NewAllocator(s.Namespace()),
		reg:     registry.New(),
		opts:    opts,
		logger:  opts.Logger.With("component", component),
		metrics: opts.Metrics,
	}
}

// Graph returns the graph built so far.
func (p *Populator) Graph() *graph.Graph {
	return p.graph
}

// Registry returns the run's entity registry.
func (p *Populator) Registry() *registry.Registry {
	return p.reg
}

// Run executes the four passes in order and returns the populated graph.
// Any error aborts the run; the partial graph should be discarded.
func (p *Populator) Run(ctx context.Context, src Sources) (*graph.Graph, error) {
	passes := []struct {
		run func(context.Context, source.Reader) error
		r   source.Reader
	}{
		{p.Primary, src.Primary},
		{p.Citations, src.Citations},
		{p.Reviews, src.Reviews},
		{p.Assignments, src.Assignments},
	}
	for _, pass := range passes {
		r := pass.r
		if r == nil {
			r = source.Empty()
		}
		if err := pass.run(ctx, r); err != nil {
			return nil, err
		}
	}
	p.logger.Info("Population complete",
		"nodes", p.graph.Len(),
		"edges", p.graph.EdgeCount(),
		"venues", p.alloc.Count(PrefixVenue),
		"submissions", p.alloc.Count(PrefixSubmission),
		"revisions", p.reg.Revisions())
	return p.graph, nil
}

// Primary runs the primary-record pass.
func (p *Populator) Primary(ctx context.Context, r source.Reader) error {
	return p.each(ctx, PassPrimary, r, p.primaryRow)
}

// Citations runs the citation pass.
func (p *Populator) Citations(ctx context.Context, r source.Reader) error {
	return p.each(ctx, PassCitations, r, p.citationRow)
}

// Reviews runs the review pass.
func (p *Populator) Reviews(ctx context.Context, r source.Reader) error {
	return p.each(ctx, PassReviews, r, p.reviewRow)
}

// Assignments runs the reviewer assignment pass.
func (p *Populator) Assignments(ctx context.Context, r source.Reader) error {
	return p.each(ctx, PassAssignments, r, p.assignmentRow)
}

func (p *Populator) each(ctx context.Context, pass Pass, r source.Reader, fn func(int, source.Row) error) error {
	pos := passOrder[pass]
	if pos <= p.stage {
		return errs.WrapFatal(fmt.Errorf("%s: %w", pass, ErrPassOrder), component, pass.method(), "start pass")
	}
	p.stage = pos

	start := time.Now()
	rows := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errs.WrapInvalid(fmt.Errorf("%s row %d: %w", pass, rows+1, err), component, pass.method(), "read row")
		}
		rows++
		if err := fn(rows, rec); err != nil {
			if at, ok := source.PositionOf(r); ok {
				locate(err, at)
			}
			return classify(pass, err)
		}
		p.metrics.rowProcessed(pass)
	}

	elapsed := time.Since(start)
	p.metrics.observePass(pass, elapsed)
	p.logger.Info("Pass complete",
		"pass", pass,
		"rows", rows,
		"nodes", p.graph.Len(),
		"duration", elapsed)
	return nil
}

// choose asks the chooser for one of n options and checks the answer.
func (p *Populator) choose(c Choice, n int) (int, error) {
	i := p.opts.Chooser.Choose(c, n)
	if i < 0 || i >= n {
		return 0, fmt.Errorf("chooser returned %d for %s with %d options", i, c, n)
	}
	return i, nil
}

// create adds a new node and records it in the metrics. An identifier that
// already names a node is an identity collision.
func (p *Populator) create(id, class string) error {
	added, err := p.graph.AddNode(id, class)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("create %s as %s: %w", id, class, ErrIdentityCollision)
	}
	p.metrics.nodeCreated(class)
	p.logger.Debug("Created individual", "id", id, "class", class)
	return nil
}

// placeholderLocation returns the shared location, creating it on first use.
func (p *Populator) placeholderLocation() (string, error) {
	if p.location != "" {
		return p.location, nil
	}
	id := p.alloc.ForKey(PrefixLocation, PlaceholderLocation)
	if err := p.create(id, scholar.Location); err != nil {
		return "", err
	}
	if _, err := p.graph.AddLiteral(id, scholar.LocationName, PlaceholderLocation); err != nil {
		return "", err
	}
	p.location = id
	return id, nil
}

func dateOf(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}
