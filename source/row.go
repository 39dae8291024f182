// Package source streams tabular input rows into the populator.
package source

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one input record keyed by column name.
type Row map[string]string

// Get returns the trimmed value of column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Has reports whether the row carries column.
func (r Row) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// Reader streams rows. Next returns io.EOF after the last row.
type Reader interface {
	Next() (Row, error)
}

// Position locates a row in its input file. Line counts the header as line 1.
type Position struct {
	Path string
	Line int
}

func (p Position) String() string {
	if p.Path == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Path, p.Line)
}

// Positioner is implemented by readers that track where their last row
// came from.
type Positioner interface {
	Position() Position
}

// PositionOf returns the position of the last row read from r.
func PositionOf(r Reader) (Position, bool) {
	p, ok := r.(Positioner)
	if !ok {
		return Position{}, false
	}
	pos := p.Position()
	return pos, pos.Line > 0
}

// sliceReader serves rows from memory.
type sliceReader struct {
	rows []Row
	pos  int
}

// FromRows returns a Reader over rows.
func FromRows(rows ...Row) Reader {
	return &sliceReader{rows: rows}
}

func (s *sliceReader) Next() (Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	r := s.rows[s.pos]
	s.pos++
	return r, nil
}

// concatReader drains readers in order.
type concatReader struct {
	readers []Reader
	last    Reader
}

// Concat returns a Reader yielding the rows of each reader in turn.
func Concat(readers ...Reader) Reader {
	return &concatReader{readers: readers}
}

func (c *concatReader) Next() (Row, error) {
	for len(c.readers) > 0 {
		row, err := c.readers[0].Next()
		if errors.Is(err, io.EOF) {
			c.readers = c.readers[1:]
			continue
		}
		c.last = c.readers[0]
		return row, err
	}
	return nil, io.EOF
}

// Position reports the position inside the reader that produced the last row.
func (c *concatReader) Position() Position {
	if c.last == nil {
		return Position{}
	}
	pos, _ := PositionOf(c.last)
	return pos
}

// Empty returns a Reader with no rows.
func Empty() Reader {
	return FromRows()
}
