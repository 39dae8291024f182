package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/scholargraph/config"
	"github.com/c360studio/scholargraph/export"
	"github.com/c360studio/scholargraph/source"
	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const primaryCSV = `DOI,Document Type,Title,Abstract,Authors,Author(s) ID,Source title,Year,Volume,Index Keywords
10.1/a,Conference Paper,First,Abstract one,"Ada, Bob",1;2,Graph Conf,2020,,graphs; data
10.1/b,Article,Second,Abstract two,Bob,2,Journal of Data,2021,7,data
`

const citationsCSV = `Citing,Cited
10.1/b,10.1/a
`

const reviewsCSV = `DOI,Accepted,Review
10.1/a,true,Looks good
`

const reviewersCSV = `DOI,Reviewers
10.1/a,2
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func allInputs() map[string]string {
	return map[string]string{
		"data.csv":      primaryCSV,
		"citations.csv": citationsCSV,
		"reviews.csv":   reviewsCSV,
		"reviewers.csv": reviewersCSV,
	}
}

func testConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Input.Dir = dir
	cfg.Populate.Chooser = "first"
	cfg.Output.Path = filepath.Join(dir, "out", "graph.nt")
	cfg.Output.Format = string(export.FormatNTriples)
	return cfg
}

func TestOpenSourcesOptionalMissing(t *testing.T) {
	dir := writeInputs(t, map[string]string{"data.csv": primaryCSV})
	app := NewApp(testConfig(dir), quietLogger())

	src, closer, err := app.openSources()
	require.NoError(t, err)
	defer closer.Close()

	assert.NotNil(t, src.Primary)
	assert.Nil(t, src.Citations)
	assert.Nil(t, src.Reviews)
	assert.Nil(t, src.Assignments)
}

func TestOpenSourcesPrimaryRequired(t *testing.T) {
	dir := writeInputs(t, map[string]string{"citations.csv": citationsCSV})
	app := NewApp(testConfig(dir), quietLogger())

	_, _, err := app.openSources()
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrNoMatch)
}

func TestOpenSourcesGlob(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"part1.csv": primaryCSV,
		"part2.csv": "DOI,Document Type,Title,Abstract,Authors,Author(s) ID,Source title,Year,Volume,Index Keywords\n" +
			"10.1/c,Conference Paper,Third,,Cy,3,Graph Conf,2020,,\n",
	})
	cfg := testConfig(dir)
	cfg.Input.Primary = "part*.csv"
	app := NewApp(cfg, quietLogger())

	g, err := app.Populate(context.Background())
	require.NoError(t, err)
	assert.Len(t, g.NodesOf(scholar.Author), 3)
}

func TestPopulateWritesFile(t *testing.T) {
	dir := writeInputs(t, allInputs())
	cfg := testConfig(dir)
	app := NewApp(cfg, quietLogger())
	require.NoError(t, app.Start(context.Background()))
	defer app.Shutdown(context.Background())

	g, err := app.Populate(context.Background())
	require.NoError(t, err)

	assert.Len(t, g.NodesOf(scholar.Author), 2)
	assert.Len(t, g.NodesOf(scholar.Submission), 2)
	require.Len(t, g.NodesOf(scholar.Revision), 1)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "<http://www.w3.org/1999/02/22-rdf-syntax-ns#type>")
	assert.Contains(t, out, `"Looks good"`)
	assert.NotContains(t, out, "owl#Class", "data profile omits the ontology")
}

func TestPopulateIncludeSchema(t *testing.T) {
	dir := writeInputs(t, allInputs())
	cfg := testConfig(dir)
	cfg.Output.IncludeSchema = true
	app := NewApp(cfg, quietLogger())

	_, err := app.Populate(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://www.w3.org/2002/07/owl#Class")
}

func TestPopulateReferentialGapFails(t *testing.T) {
	files := allInputs()
	files["citations.csv"] = "Citing,Cited\n10.1/b,10.9/missing\n"
	dir := writeInputs(t, files)
	cfg := testConfig(dir)
	app := NewApp(cfg, quietLogger())

	_, err := app.Populate(context.Background())
	require.Error(t, err)
	_, statErr := os.Stat(cfg.Output.Path)
	assert.True(t, os.IsNotExist(statErr), "no output after a failed run")
}

func TestSinksDefaultFileOnly(t *testing.T) {
	app := NewApp(config.DefaultConfig(), quietLogger())
	sinks := app.Sinks()
	require.Len(t, sinks, 1)
	assert.Equal(t, "file", sinks[0].Name)
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name       string
		explicit   string
		path       string
		configured string
		want       export.Format
		wantErr    bool
	}{
		{"explicit wins", "jsonld", "graph.ttl", "turtle", export.FormatJSONLD, false},
		{"extension", "", "graph.nt", "turtle", export.FormatNTriples, false},
		{"configured", "", "-", "ntriples", export.FormatNTriples, false},
		{"unknown", "xml", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.explicit, tt.path, tt.configured)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunFlagsApply(t *testing.T) {
	cfg := config.DefaultConfig()
	rf := &runFlags{output: "out.jsonld", profile: "strict", inputDir: "in", includeSchema: true}
	require.NoError(t, rf.apply(cfg))

	assert.Equal(t, "out.jsonld", cfg.Output.Path)
	assert.Equal(t, string(export.FormatJSONLD), cfg.Output.Format)
	assert.Equal(t, "strict", cfg.Schema.Profile)
	assert.Equal(t, "in", cfg.Input.Dir)
	assert.True(t, cfg.Output.IncludeSchema)

	bad := &runFlags{profile: "nope"}
	assert.Error(t, bad.apply(config.DefaultConfig()))
}

func TestSetupLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger("warn", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestRootCommands(t *testing.T) {
	cmd := rootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"tbox", "populate", "watch", "export-stream", "version"})
}

func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := executeRoot(t, "version")
	assert.Contains(t, out, "scholargraph version "+Version)
}

func TestTboxCommand(t *testing.T) {
	out := executeRoot(t, "tbox", "--format", "ntriples")
	assert.Contains(t, out, "http://www.w3.org/2002/07/owl#Class")
	assert.NotContains(t, out, `"Looks good"`)
}

func TestTboxCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tbox.ttl")
	executeRoot(t, "tbox", "-o", path, "--profile", "strict")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@prefix")
}

func TestPopulateCommandStdout(t *testing.T) {
	dir := writeInputs(t, allInputs())
	out := executeRoot(t, "populate", "--input", dir, "-o", "-", "--format", "ntriples", "--log-level", "error")
	assert.Contains(t, out, `"Looks good"`)
}
