package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoMatch is returned when a pattern matches no file.
var ErrNoMatch = errors.New("no file matches pattern")

// Locate returns the files under dir matching a doublestar pattern, sorted.
func Locate(dir, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrNoMatch)
	}
	full := pattern
	if !filepath.IsAbs(pattern) {
		full = filepath.Join(dir, pattern)
	}
	matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, full)
	}
	sort.Strings(matches)
	return matches, nil
}

// OpenAll opens every file matching pattern under dir and returns a reader
// over their rows in path order, plus a closer for all files.
func OpenAll(dir, pattern string) (Reader, io.Closer, error) {
	paths, err := Locate(dir, pattern)
	if err != nil {
		return nil, nil, err
	}
	files := make(closers, 0, len(paths))
	readers := make([]Reader, 0, len(paths))
	for _, p := range paths {
		f, err := Open(p)
		if err != nil {
			files.Close()
			return nil, nil, err
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return Concat(readers...), files, nil
}

type closers []*File

func (c closers) Close() error {
	var errs []error
	for _, f := range c {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
