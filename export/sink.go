package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360studio/scholargraph/graph"
)

// StdoutPath selects standard output as the file sink destination.
const StdoutPath = "-"

// FileSink serializes a graph to a file.
type FileSink struct {
	Path    string
	Format  Format
	Profile Profile
	Logger  *slog.Logger

	// Prefixes are declared alongside the default namespaces.
	Prefixes map[string]string

	// Stdout replaces os.Stdout when Path is StdoutPath.
	Stdout io.Writer
}

// Write serializes g. Files are written to a temporary sibling and renamed
// into place so readers never see a partial document.
func (s *FileSink) Write(ctx context.Context, g *graph.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	profile := s.Profile
	if profile == "" {
		profile = ProfileData
	}
	e, err := Build(profile, g.Schema(), g)
	if err != nil {
		return err
	}
	for prefix, iri := range s.Prefixes {
		e.SetPrefix(prefix, iri)
	}

	if s.Path == StdoutPath || s.Path == "" {
		out := s.Stdout
		if out == nil {
			out = os.Stdout
		}
		return e.WriteTo(out, s.Format)
	}

	if err := WriteFile(s.Path, e, s.Format); err != nil {
		return err
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Wrote graph",
		"path", s.Path,
		"format", s.Format,
		"profile", profile,
		"statements", e.Len())
	return nil
}

// WriteFile serializes e to path through a temporary file.
func WriteFile(path string, e *Exporter, format Format) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := e.WriteTo(tmp, format); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
