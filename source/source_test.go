package source

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, r Reader) []Row {
	t.Helper()
	var rows []Row
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestRowGet(t *testing.T) {
	r := Row{"DOI": "  10.1/a ", "Empty": ""}
	assert.Equal(t, "10.1/a", r.Get("DOI"))
	assert.Equal(t, "", r.Get("Missing"))
	assert.True(t, r.Has("Empty"))
	assert.False(t, r.Has("Missing"))
}

func TestFromRowsAndConcat(t *testing.T) {
	a := FromRows(Row{"n": "1"}, Row{"n": "2"})
	b := FromRows(Row{"n": "3"})
	rows := drain(t, Concat(a, Empty(), b))
	require.Len(t, rows, 3)
	assert.Equal(t, "3", rows[2]["n"])

	_, err := Concat().Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVReader(t *testing.T) {
	input := "\ufeffDOI, Title ,Authors\n" +
		"10.1/a,\"Graphs, again\",\"Smith J., Doe A.\"\n" +
		"10.1/b,Short\n"
	r, err := NewCSVReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"DOI", "Title", "Authors"}, r.Header())

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Graphs, again", first.Get("Title"))
	assert.Equal(t, "Smith J., Doe A.", first.Get("Authors"))
	assert.Equal(t, Position{Line: 2}, r.Position())

	_, err = r.Next()
	require.Error(t, err, "field count mismatch is reported")
}

func TestCSVReaderEmpty(t *testing.T) {
	_, err := NewCSVReader(strings.NewReader(""))
	assert.Error(t, err)
}

func TestOpenAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scopus", "2021"), 0o755))
	write := func(rel, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(content), 0o644))
	}
	write("scopus/a.csv", "DOI\n10.1/a\n")
	write("scopus/2021/b.csv", "DOI\n10.1/b\n10.1/c\n")
	write("scopus/notes.txt", "ignored")

	paths, err := Locate(dir, "scopus/**/*.csv")
	require.NoError(t, err)
	require.Len(t, paths, 2)

	r, closer, err := OpenAll(dir, "scopus/**/*.csv")
	require.NoError(t, err)
	defer closer.Close()

	rows := drain(t, r)
	assert.Len(t, rows, 3)

	_, err = Locate(dir, "missing/*.csv")
	assert.ErrorIs(t, err, ErrNoMatch)
	_, err = Locate(dir, "")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestPositionAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(first, []byte("DOI\n10.1/a\n10.1/b\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("DOI\n10.1/c\n"), 0o644))

	r, closer, err := OpenAll(dir, "*.csv")
	require.NoError(t, err)
	defer closer.Close()

	_, ok := PositionOf(r)
	assert.False(t, ok, "no row read yet")

	want := []Position{{first, 2}, {first, 3}, {second, 2}}
	for _, w := range want {
		_, err := r.Next()
		require.NoError(t, err)
		pos, ok := PositionOf(r)
		require.True(t, ok)
		assert.Equal(t, w, pos)
	}
	assert.Equal(t, second+":2", want[2].String())
	assert.Equal(t, "line 4", Position{Line: 4}.String())

	_, ok = PositionOf(FromRows(Row{"DOI": "x"}))
	assert.False(t, ok, "in-memory rows carry no position")
}
