package populate

import (
	"fmt"
	"log/slog"
)

// IdentityMode selects how paper identifiers are formed.
type IdentityMode string

const (
	// IdentityNaturalKey derives the paper identifier from its DOI.
	IdentityNaturalKey IdentityMode = "natural"
	// IdentityCounter mints paper identifiers from a counter.
	IdentityCounter IdentityMode = "counter"
)

// ParseIdentityMode validates a configured identity mode. Empty selects
// IdentityNaturalKey.
func ParseIdentityMode(s string) (IdentityMode, error) {
	switch IdentityMode(s) {
	case "", IdentityNaturalKey:
		return IdentityNaturalKey, nil
	case IdentityCounter:
		return IdentityCounter, nil
	default:
		return "", fmt.Errorf("unknown identity mode %q", s)
	}
}

// Options configures a Populator.
type Options struct {
	Identity IdentityMode
	Chooser  CategoryChooser
	Columns  Columns
	Logger   *slog.Logger
	Metrics  *Metrics
}

// DefaultOptions returns natural-key identities, a time-seeded random
// chooser and the default columns.
func DefaultOptions() Options {
	return Options{
		Identity: IdentityNaturalKey,
		Chooser:  NewRandomChooser(0),
		Columns:  DefaultColumns(),
	}
}

func (o Options) withDefaults() Options {
	if o.Identity == "" {
		o.Identity = IdentityNaturalKey
	}
	if o.Chooser == nil {
		o.Chooser = NewRandomChooser(0)
	}
	o.Columns = o.Columns.WithDefaults()
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
