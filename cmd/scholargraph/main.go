// Package main provides the scholargraph binary entry point.
// Scholargraph turns bibliographic CSV exports into a typed ontology graph.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/c360studio/scholargraph/config"
	"github.com/c360studio/scholargraph/export"
	"github.com/c360studio/scholargraph/schema"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "scholargraph"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Bibliographic records to ontology graph",
		Long: `Scholargraph reads tabular bibliographic exports (papers, citations,
reviews and reviewer assignments) and populates a typed graph of authors,
papers, venues, submissions and revisions governed by a fixed ontology.

The graph is written as RDF and can also be published to NATS, stored in
JetStream KV and merged into Neo4j.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		tboxCmd(flags),
		populateCmd(flags),
		watchCmd(flags),
		exportStreamCmd(flags),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func tboxCmd(flags *globalFlags) *cobra.Command {
	var (
		output  string
		format  string
		profile string
	)

	cmd := &cobra.Command{
		Use:   "tbox",
		Short: "Write the ontology without individuals",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(flags.logLevel, cmd.ErrOrStderr())
			cfg, err := loadConfig(flags.configPath, logger)
			if err != nil {
				return err
			}
			if profile != "" {
				cfg.Schema.Profile = profile
			}
			s, err := schema.ForProfile(schema.Profile(cfg.Schema.Profile))
			if err != nil {
				return err
			}
			f, err := resolveFormat(format, output, cfg.Output.Format)
			if err != nil {
				return err
			}
			e, err := export.Build(export.ProfileSchema, s, nil)
			if err != nil {
				return err
			}
			for prefix, iri := range cfg.Output.Prefixes {
				e.SetPrefix(prefix, iri)
			}
			if output == "" || output == export.StdoutPath {
				return e.WriteTo(cmd.OutOrStdout(), f)
			}
			if err := export.WriteFile(output, e, f); err != nil {
				return err
			}
			logger.Info("Wrote ontology", "path", output, "profile", cfg.Schema.Profile, "statements", e.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVar(&profile, "profile", "", "Schema profile (base, strict)")
	return cmd
}

// runFlags override configuration for populate and watch.
type runFlags struct {
	output        string
	format        string
	profile       string
	inputDir      string
	includeSchema bool
}

func (r *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.output, "output", "o", "", "Output file (\"-\" for stdout)")
	cmd.Flags().StringVar(&r.format, "format", "", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVar(&r.profile, "profile", "", "Schema profile (base, strict)")
	cmd.Flags().StringVar(&r.inputDir, "input", "", "Input directory")
	cmd.Flags().BoolVar(&r.includeSchema, "include-schema", false, "Write the ontology before the individuals")
}

func (r *runFlags) apply(cfg *config.Config) error {
	if r.output != "" {
		cfg.Output.Path = r.output
	}
	if r.profile != "" {
		cfg.Schema.Profile = r.profile
	}
	if r.inputDir != "" {
		cfg.Input.Dir = r.inputDir
	}
	if r.includeSchema {
		cfg.Output.IncludeSchema = true
	}
	f, err := resolveFormat(r.format, cfg.Output.Path, cfg.Output.Format)
	if err != nil {
		return err
	}
	cfg.Output.Format = string(f)
	return cfg.Validate()
}

func populateCmd(flags *globalFlags) *cobra.Command {
	rf := &runFlags{}

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Populate the graph from the input files once",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(flags.logLevel, cmd.ErrOrStderr())
			cfg, err := loadConfig(flags.configPath, logger)
			if err != nil {
				return err
			}
			if err := rf.apply(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			app := NewApp(cfg, logger)
			app.stdout = cmd.OutOrStdout()
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer app.Shutdown(context.Background())

			_, err = app.Populate(ctx)
			return err
		},
	}
	rf.register(cmd)
	return cmd
}

func watchCmd(flags *globalFlags) *cobra.Command {
	rf := &runFlags{}
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-populate whenever input files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(flags.logLevel, cmd.ErrOrStderr())
			cfg, err := loadConfig(flags.configPath, logger)
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				cfg.Metrics.Addr = metricsAddr
			}
			if err := rf.apply(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			app := NewApp(cfg, logger)
			app.stdout = cmd.OutOrStdout()
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer app.Shutdown(context.Background())

			return app.Watch(ctx)
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus listen address (e.g. :9090)")
	return cmd
}

func exportStreamCmd(flags *globalFlags) *cobra.Command {
	var (
		format   string
		natsURL  string
		embedded bool
	)

	cmd := &cobra.Command{
		Use:   "export-stream",
		Short: "Republish graph ingest messages as RDF documents",
		Long: `Consumes entity messages from the GRAPH stream and publishes each entity
serialized as RDF on ` + export.RDFExportSubject + `. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(flags.logLevel, cmd.ErrOrStderr())
			cfg, err := loadConfig(flags.configPath, logger)
			if err != nil {
				return err
			}
			if natsURL != "" {
				cfg.NATS.URL = natsURL
				cfg.NATS.Embedded = false
			}
			if embedded {
				cfg.NATS.Embedded = true
			}
			if cfg.NATS.URL == "" && !cfg.NATS.Embedded {
				return fmt.Errorf("export-stream needs nats.url or nats.embedded")
			}
			f, err := resolveFormat(format, "", cfg.Output.Format)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			app := NewApp(cfg, logger)
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer app.Shutdown(context.Background())

			return app.ExportStream(ctx, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "RDF format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL")
	cmd.Flags().BoolVar(&embedded, "embedded", false, "Start an embedded NATS server")
	return cmd
}

func setupLogger(logLevel string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveFormat prefers an explicit format, then the output extension,
// then the configured format.
func resolveFormat(explicit, path, configured string) (export.Format, error) {
	if explicit != "" {
		return export.ParseFormat(explicit)
	}
	if f, ok := export.FormatForPath(path); ok {
		return f, nil
	}
	return export.ParseFormat(configured)
}
