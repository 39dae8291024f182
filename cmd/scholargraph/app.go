package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/c360studio/scholargraph/config"
	"github.com/c360studio/scholargraph/export"
	"github.com/c360studio/scholargraph/graph"
	"github.com/c360studio/scholargraph/populate"
	"github.com/c360studio/scholargraph/schema"
	"github.com/c360studio/scholargraph/source"
	"github.com/c360studio/scholargraph/storage"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// App holds the connections shared by populate runs.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer

	embeddedServer *server.Server
	natsConn       *nats.Conn
	js             jetstream.JetStream

	store       *storage.Store
	publisher   *graph.Publisher
	neo4jDriver neo4j.DriverWithContext
	neo4jSink   *storage.Neo4jSink

	metrics *populate.Metrics
}

// NewApp creates an App for cfg. Connections are opened by Start.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{cfg: cfg, logger: logger, stdout: os.Stdout}
}

// Start connects to NATS and Neo4j when configured.
func (a *App) Start(ctx context.Context) error {
	if a.cfg.NATS.Enabled() {
		if err := a.connectNATS(ctx); err != nil {
			return err
		}
	}
	if a.cfg.Neo4j.URI != "" {
		driver, err := storage.OpenNeo4j(ctx, a.cfg.Neo4j.URI, a.cfg.Neo4j.Username, a.cfg.Neo4j.Password)
		if err != nil {
			return err
		}
		a.neo4jDriver = driver
		a.neo4jSink = storage.NewNeo4jSink(driver, a.cfg.Neo4j.Database,
			storage.WithBatchSize(a.cfg.Neo4j.BatchSize),
			storage.WithNeo4jLogger(a.logger))
		a.logger.Info("Connected to Neo4j", "uri", a.cfg.Neo4j.URI)
	}
	return nil
}

func (a *App) connectNATS(ctx context.Context) error {
	natsURL := a.cfg.NATS.URL
	if natsURL == "" && a.cfg.NATS.Embedded {
		a.logger.Info("Starting embedded NATS server")
		ns, err := server.NewServer(&server.Options{
			Port:      -1, // Random available port
			JetStream: true,
			StoreDir:  "", // Use temp dir
			NoLog:     true,
			NoSigs:    true,
		})
		if err != nil {
			return fmt.Errorf("create embedded NATS server: %w", err)
		}

		go ns.Start()

		if !ns.ReadyForConnections(5 * time.Second) {
			ns.Shutdown()
			return fmt.Errorf("embedded NATS server not ready")
		}

		a.embeddedServer = ns
		natsURL = ns.ClientURL()
		a.logger.Info("Embedded NATS server started", "url", natsURL)
	}

	conn, err := nats.Connect(natsURL, nats.Name("scholargraph"))
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	a.natsConn = conn

	js, err := jetstream.New(conn)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}
	a.js = js

	if a.cfg.NATS.KV {
		store, err := storage.NewStore(ctx, js, a.logger)
		if err != nil {
			return fmt.Errorf("create node store: %w", err)
		}
		a.store = store
	}

	if a.cfg.NATS.Publish {
		opts := []graph.PublisherOption{graph.WithLogger(a.logger)}
		if a.cfg.NATS.Subject != "" {
			opts = append(opts, graph.WithSubject(a.cfg.NATS.Subject))
		}
		a.publisher = graph.NewPublisher(js, opts...)
		if err := a.publisher.EnsureStream(ctx); err != nil {
			return err
		}
	}

	a.logger.Info("Connected to NATS", "url", natsURL, "kv", a.cfg.NATS.KV, "publish", a.cfg.NATS.Publish)
	return nil
}

// SetMetrics attaches population metrics to subsequent runs.
func (a *App) SetMetrics(m *populate.Metrics) {
	a.metrics = m
}

// Sinks returns the configured outputs. The file sink always comes first.
func (a *App) Sinks() []graph.NamedSink {
	sinks := []graph.NamedSink{{
		Name: "file",
		Sink: &export.FileSink{
			Path:     a.cfg.Output.Path,
			Format:   export.Format(a.cfg.Output.Format),
			Profile:  export.ProfileFor(a.cfg.Output.IncludeSchema),
			Prefixes: a.cfg.Output.Prefixes,
			Logger:   a.logger,
			Stdout:   a.stdout,
		},
	}}
	if a.publisher != nil {
		sinks = append(sinks, graph.NamedSink{Name: "nats", Sink: a.publisher})
	}
	if a.store != nil {
		sinks = append(sinks, graph.NamedSink{Name: "kv", Sink: a.store})
	}
	if a.neo4jSink != nil {
		sinks = append(sinks, graph.NamedSink{Name: "neo4j", Sink: a.neo4jSink})
	}
	return sinks
}

// openSources opens the four tabular sources. The primary source is
// required; a secondary source without matching files is read as empty.
func (a *App) openSources() (populate.Sources, io.Closer, error) {
	var (
		src     populate.Sources
		closers multiCloser
	)
	open := func(name, pattern string, required bool) (source.Reader, error) {
		if pattern == "" && !required {
			return nil, nil
		}
		r, c, err := source.OpenAll(a.cfg.Input.Dir, pattern)
		if err != nil {
			if !required && errors.Is(err, source.ErrNoMatch) {
				a.logger.Warn("Optional input not found, treating as empty", "source", name, "pattern", pattern)
				return nil, nil
			}
			return nil, fmt.Errorf("open %s input: %w", name, err)
		}
		closers = append(closers, c)
		return r, nil
	}

	var err error
	in := a.cfg.Input
	if src.Primary, err = open("primary", in.Primary, true); err != nil {
		closers.Close()
		return src, nil, err
	}
	if src.Citations, err = open("citations", in.Citations, false); err != nil {
		closers.Close()
		return src, nil, err
	}
	if src.Reviews, err = open("reviews", in.Reviews, false); err != nil {
		closers.Close()
		return src, nil, err
	}
	if src.Assignments, err = open("assignments", in.Assignments, false); err != nil {
		closers.Close()
		return src, nil, err
	}
	return src, closers, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var errs []error
	for _, c := range m {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Populate runs the four passes over the configured inputs and hands the
// graph to every sink.
func (a *App) Populate(ctx context.Context) (*graph.Graph, error) {
	start := time.Now()
	s, err := schema.ForProfile(schema.Profile(a.cfg.Schema.Profile))
	if err != nil {
		return nil, err
	}
	identity, err := populate.ParseIdentityMode(a.cfg.Populate.Identity)
	if err != nil {
		return nil, err
	}

	src, closer, err := a.openSources()
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	p := populate.New(s, populate.Options{
		Identity: identity,
		Chooser:  a.cfg.Chooser(),
		Columns:  a.cfg.Input.Columns,
		Logger:   a.logger,
		Metrics:  a.metrics,
	})
	g, err := p.Run(ctx, src)
	if err != nil {
		return nil, err
	}

	if err := graph.WriteAll(ctx, g, a.Sinks()...); err != nil {
		return g, err
	}
	a.logger.Info("Population complete",
		"nodes", g.Len(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start))
	return g, nil
}

// ExportStream republishes graph ingest messages as RDF documents until ctx
// is done.
func (a *App) ExportStream(ctx context.Context, format export.Format) error {
	if a.js == nil {
		if err := a.connectNATS(ctx); err != nil {
			return err
		}
	}
	// The consumer needs the stream even before the first populate run.
	if err := graph.NewPublisher(a.js).EnsureStream(ctx); err != nil {
		return err
	}
	return export.NewStreamExporter(a.js, format,
		export.WithStreamSubjects(a.cfg.NATS.Subject, ""),
		export.WithStreamLogger(a.logger)).Run(ctx)
}

// Shutdown closes connections in reverse order of Start.
func (a *App) Shutdown(ctx context.Context) {
	if a.neo4jDriver != nil {
		if err := a.neo4jDriver.Close(ctx); err != nil {
			a.logger.Warn("Failed to close Neo4j driver", "error", err)
		}
	}
	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.logger.Warn("Failed to drain NATS connection", "error", err)
		}
		a.natsConn.Close()
	}
	if a.embeddedServer != nil {
		a.embeddedServer.Shutdown()
		a.embeddedServer.WaitForShutdown()
	}
}
