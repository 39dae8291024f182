package populate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/scholargraph/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGapErrorNamesFileAndLine(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("cites-1.csv", "Citing,Cited\nd1,d2\n")
	write("cites-2.csv", "Citing,Cited\nd2,d1\nd1,d9\n")

	p := newTestPopulator(t)
	runPrimary(t, p, primaryRow("d1", "V1", "2020"), primaryRow("d2", "V1", "2020"))

	r, closer, err := source.OpenAll(dir, "cites-*.csv")
	require.NoError(t, err)
	defer closer.Close()

	err = p.Citations(context.Background(), r)
	require.Error(t, err)

	var gap *ReferentialGapError
	require.ErrorAs(t, err, &gap)
	assert.Equal(t, 3, gap.Row, "row counts across both files")
	assert.Equal(t, source.Position{Path: filepath.Join(dir, "cites-2.csv"), Line: 3}, gap.At)
	assert.Contains(t, err.Error(), "cites-2.csv:3")
}

func TestMalformedErrorWithoutPosition(t *testing.T) {
	row := primaryRow("d1", "V1", "2020")
	row["Year"] = "soon"
	p := newTestPopulator(t)

	err := p.Primary(context.Background(), source.FromRows(row))
	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Zero(t, malformed.At)
	assert.Contains(t, malformed.Error(), "primary row 1: field")
}
