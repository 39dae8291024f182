package populate

import (
	"errors"
	"fmt"

	"github.com/c360studio/scholargraph/schema"
	"github.com/c360studio/scholargraph/source"
	errs "github.com/c360studio/semstreams/errors"
)

// Pass names one of the four population passes.
type Pass string

const (
	PassPrimary     Pass = "primary"
	PassCitations   Pass = "citations"
	PassReviews     Pass = "reviews"
	PassAssignments Pass = "assignments"
)

// passOrder gives the position of each pass in a run.
var passOrder = map[Pass]int{
	PassPrimary:     1,
	PassCitations:   2,
	PassReviews:     3,
	PassAssignments: 4,
}

// method is the component method name used when classifying errors.
func (p Pass) method() string {
	switch p {
	case PassPrimary:
		return "Primary"
	case PassCitations:
		return "Citations"
	case PassReviews:
		return "Reviews"
	case PassAssignments:
		return "Assignments"
	default:
		return string(p)
	}
}

// ErrIdentityCollision is returned when two entities resolve to one identifier.
var ErrIdentityCollision = errors.New("identifier already in use")

// ErrPassOrder is returned when a pass runs twice or after a later pass.
var ErrPassOrder = errors.New("passes must run once each, in order")

// ReferentialGapError reports a row referencing an entity that no earlier
// pass created. Row counts rows across every input of the pass; At locates
// the row in its file when the reader tracks positions.
type ReferentialGapError struct {
	Pass Pass
	Row  int
	At   source.Position
	Kind string
	Key  string
}

func (e *ReferentialGapError) Error() string {
	return fmt.Sprintf("%s: unknown %s %q", rowLabel(e.Pass, e.Row, e.At), e.Kind, e.Key)
}

// MalformedRecordError reports a row whose fields cannot be interpreted.
type MalformedRecordError struct {
	Pass   Pass
	Row    int
	At     source.Position
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", rowLabel(e.Pass, e.Row, e.At), e.Field, e.Reason)
}

func rowLabel(pass Pass, row int, at source.Position) string {
	if at.Line == 0 {
		return fmt.Sprintf("%s row %d", pass, row)
	}
	return fmt.Sprintf("%s row %d (%s)", pass, row, at)
}

// locate records where the failing row came from.
func locate(err error, at source.Position) {
	var malformed *MalformedRecordError
	if errors.As(err, &malformed) {
		malformed.At = at
	}
	var gap *ReferentialGapError
	if errors.As(err, &gap) {
		gap.At = at
	}
}

const component = "populator"

// classify wraps a row error with its semstreams error class: malformed
// input is invalid, everything else aborts the run as fatal.
func classify(pass Pass, err error) error {
	var malformed *MalformedRecordError
	var gap *ReferentialGapError
	var lookup *schema.SchemaLookupError
	switch {
	case errors.As(err, &malformed):
		return errs.WrapInvalid(err, component, pass.method(), "parse row")
	case errors.As(err, &gap):
		return errs.WrapFatal(err, component, pass.method(), "resolve reference")
	case errors.As(err, &lookup):
		return errs.WrapFatal(err, component, pass.method(), "resolve schema term")
	default:
		return errs.WrapFatal(err, component, pass.method(), "populate row")
	}
}
