//go:build integration

package main

import (
	"context"
	"testing"
	"time"

	"github.com/c360studio/scholargraph/export"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulateEmbeddedNATS(t *testing.T) {
	dir := writeInputs(t, allInputs())
	cfg := testConfig(dir)
	cfg.NATS.Embedded = true
	cfg.NATS.KV = true
	cfg.NATS.Publish = true

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app := NewApp(cfg, quietLogger())
	require.NoError(t, app.Start(ctx))
	defer app.Shutdown(context.Background())

	sinks := app.Sinks()
	require.Len(t, sinks, 3)

	g, err := app.Populate(ctx)
	require.NoError(t, err)

	nodes, err := app.store.ListNodes(ctx)
	require.NoError(t, err)
	assert.Len(t, nodes, g.Len())

	stream, err := app.js.Stream(ctx, "GRAPH")
	require.NoError(t, err)
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(g.Len()), info.State.Msgs)
}

func TestExportStreamEmbeddedNATS(t *testing.T) {
	dir := writeInputs(t, allInputs())
	cfg := testConfig(dir)
	cfg.NATS.Embedded = true
	cfg.NATS.Publish = true

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app := NewApp(cfg, quietLogger())
	require.NoError(t, app.Start(ctx))
	defer app.Shutdown(context.Background())

	exportCtx, stopExport := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- app.ExportStream(exportCtx, export.FormatNTriples) }()

	require.Eventually(t, func() bool {
		_, err := app.js.Consumer(ctx, "GRAPH", "rdf-export")
		return err == nil
	}, 10*time.Second, 50*time.Millisecond)

	g, err := app.Populate(ctx)
	require.NoError(t, err)

	stream, err := app.js.Stream(ctx, "GRAPH")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		info, err := stream.Info(ctx, jetstream.WithSubjectFilter(export.RDFExportSubject))
		if err != nil {
			return false
		}
		return info.State.Subjects[export.RDFExportSubject] == uint64(g.Len())
	}, 10*time.Second, 50*time.Millisecond)

	stopExport()
	require.NoError(t, <-done)
}
