package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// CSVReader reads a header line and yields each following record as a Row.
type CSVReader struct {
	r      *csv.Reader
	header []string
	line   int
	name   string
}

// NewCSVReader reads the header from r. A leading UTF-8 byte order mark is
// dropped and header names are trimmed.
func NewCSVReader(r io.Reader) (*CSVReader, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}
	return &CSVReader{r: cr, header: header, line: 1}, nil
}

// Header returns the column names.
func (c *CSVReader) Header() []string {
	out := make([]string, len(c.header))
	copy(out, c.header)
	return out
}

// Position returns the file name and line of the last record read. Lines
// count records, header included.
func (c *CSVReader) Position() Position {
	return Position{Path: c.name, Line: c.line}
}

// Next returns the next record keyed by header name.
func (c *CSVReader) Next() (Row, error) {
	rec, err := c.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read record: %w", err)
	}
	c.line++
	row := make(Row, len(c.header))
	for i, name := range c.header {
		if i < len(rec) {
			row[name] = rec[i]
		}
	}
	return row, nil
}

// File is a CSVReader over an opened file.
type File struct {
	*CSVReader
	Path string
	f    *os.File
}

// Open opens path and reads its header.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	cr, err := NewCSVReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cr.name = path
	return &File{CSVReader: cr, Path: path, f: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}
