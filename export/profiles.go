package export

import (
	"fmt"

	"github.com/c360studio/scholargraph/graph"
	"github.com/c360studio/scholargraph/schema"
)

// Profile determines which parts of the knowledge base are exported.
type Profile string

const (
	// ProfileData exports the populated individuals only.
	ProfileData Profile = "data"

	// ProfileSchema exports the ontology only.
	ProfileSchema Profile = "schema"

	// ProfileFull exports the ontology followed by the individuals.
	ProfileFull Profile = "full"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeSchema indicates whether to include the ontology triples.
	IncludeSchema bool

	// IncludeData indicates whether to include the individuals.
	IncludeData bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileData: {
		Name:        ProfileData,
		Description: "Individuals, literals and edges",
		IncludeData: true,
	},
	ProfileSchema: {
		Name:          ProfileSchema,
		Description:   "Classes, properties, axioms and restrictions",
		IncludeSchema: true,
	},
	ProfileFull: {
		Name:          ProfileFull,
		Description:   "Ontology and individuals in one document",
		IncludeSchema: true,
		IncludeData:   true,
	},
}

// GetProfileConfig returns the configuration for a profile.
func GetProfileConfig(p Profile) (ProfileConfig, bool) {
	cfg, ok := Profiles[p]
	return cfg, ok
}

// ProfileFor returns ProfileFull when the schema is included, ProfileData otherwise.
func ProfileFor(includeSchema bool) Profile {
	if includeSchema {
		return ProfileFull
	}
	return ProfileData
}

// Build collects what profile p selects. g may be nil for ProfileSchema.
func Build(p Profile, s *schema.Schema, g *graph.Graph) (*Exporter, error) {
	cfg, ok := GetProfileConfig(p)
	if !ok {
		return nil, fmt.Errorf("unknown export profile: %s", p)
	}
	e := NewExporter()
	if cfg.IncludeSchema {
		if s == nil {
			return nil, fmt.Errorf("profile %s needs a schema", p)
		}
		e.AddSchema(s)
	}
	if cfg.IncludeData {
		if g == nil {
			return nil, fmt.Errorf("profile %s needs a graph", p)
		}
		e.AddGraph(g)
	}
	return e, nil
}
