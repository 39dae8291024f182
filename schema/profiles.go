package schema

import (
	"fmt"
	"sync"

	"github.com/c360studio/scholargraph/vocabulary/scholar"
	"github.com/c360studio/semstreams/vocabulary"
)

// Profile selects which schema variant to build.
type Profile string

const (
	// ProfileBase declares the taxonomy with plain subclassing.
	ProfileBase Profile = "base"
	// ProfileStrict adds completeness, disjointness and cardinality restrictions.
	ProfileStrict Profile = "strict"
)

var (
	baseOnce   = sync.OnceValue(func() *Schema { return mustBuild(ProfileBase) })
	strictOnce = sync.OnceValue(func() *Schema { return mustBuild(ProfileStrict) })
)

// Base returns the base bibliographic schema.
func Base() *Schema { return baseOnce() }

// Strict returns the strict bibliographic schema.
func Strict() *Schema { return strictOnce() }

// ForProfile returns the schema for a profile name.
func ForProfile(p Profile) (*Schema, error) {
	switch p {
	case ProfileBase, "":
		return Base(), nil
	case ProfileStrict:
		return Strict(), nil
	default:
		return nil, fmt.Errorf("unknown schema profile %q", p)
	}
}

func mustBuild(p Profile) *Schema {
	s, err := Declare(NewBuilder(scholar.Namespace), p).Build()
	if err != nil {
		panic(fmt.Sprintf("schema: %s profile: %v", p, err))
	}
	return s
}

// Declare adds the bibliographic vocabulary for profile p to b.
func Declare(b *Builder, p Profile) *Builder {
	strict := p == ProfileStrict

	b.Class(scholar.Academic)
	if strict {
		b.Complete(scholar.Academic, scholar.Author, scholar.Reviewer, scholar.Handler)
		b.Complete(scholar.Handler, scholar.Chair, scholar.Editor)
	} else {
		b.Subclasses(scholar.Academic, scholar.Author, scholar.Reviewer, scholar.Handler)
		b.Subclasses(scholar.Handler, scholar.Chair, scholar.Editor)
	}

	b.Class(scholar.Paper)
	if strict {
		b.DisjointComplete(scholar.Paper, scholar.FullPaper, scholar.ShortPaper, scholar.DemoPaper, scholar.Poster)
	} else {
		b.Subclasses(scholar.Paper, scholar.FullPaper, scholar.ShortPaper, scholar.DemoPaper, scholar.Poster)
	}
	b.Class(scholar.Submission)

	b.Class(scholar.Venue)
	if strict {
		b.DisjointComplete(scholar.Venue, scholar.Conference, scholar.Journal)
		b.DisjointComplete(scholar.Conference, scholar.RegularConference, scholar.Workshop, scholar.Symposium, scholar.ExpertGroup)
	} else {
		b.Subclasses(scholar.Venue, scholar.Conference, scholar.Journal)
		b.Subclasses(scholar.Conference, scholar.RegularConference, scholar.Workshop, scholar.Symposium, scholar.ExpertGroup)
	}

	b.Class(scholar.VenuePublication)
	if strict {
		b.DisjointComplete(scholar.VenuePublication, scholar.Proceedings, scholar.Volume)
	} else {
		b.Subclasses(scholar.VenuePublication, scholar.Proceedings, scholar.Volume)
	}

	b.Class(scholar.Revision)
	b.Class(scholar.Field)
	b.Class(scholar.Location)

	if strict {
		b.Disjoint(scholar.Academic, scholar.Venue, scholar.VenuePublication, scholar.Field, scholar.Revision)
	}

	b.InverseProperty(scholar.Authors, scholar.Author, scholar.Paper, scholar.AuthoredBy)
	b.InverseProperty(scholar.Cites, scholar.Paper, scholar.Paper, scholar.CitedBy)
	b.ObjectProperty(scholar.SubmittedAs, scholar.Paper, scholar.Submission)
	b.ObjectProperty(scholar.SubmittedTo, scholar.Submission, scholar.Venue)
	b.ObjectProperty(scholar.PublishedIn, scholar.Submission, scholar.VenuePublication)
	b.InverseProperty(scholar.BelongsTo, scholar.VenuePublication, scholar.Venue, scholar.Publishes)
	b.InverseProperty(scholar.Manages, scholar.Handler, scholar.Venue, scholar.ManagedBy)
	b.ObjectProperty(scholar.Assigns, scholar.Handler, scholar.Revision)
	b.InverseProperty(scholar.DoneBy, scholar.Revision, scholar.Reviewer, scholar.TakesPartIn)
	b.InverseProperty(scholar.Reviews, scholar.Revision, scholar.Submission, scholar.ReviewedBy)
	b.ObjectProperty(scholar.PaperRelatedTo, scholar.Paper, scholar.Field)
	b.ObjectProperty(scholar.VenueRelatedTo, scholar.Venue, scholar.Field)
	b.ObjectProperty(scholar.HeldIn, scholar.Proceedings, scholar.Location)

	single := func() []DataOption {
		if strict {
			return []DataOption{SingleValued()}
		}
		return nil
	}
	b.DataProperty(scholar.Name, scholar.Academic, String, append(single(), SubPropertyOf(vocabulary.RdfsLabel))...)
	b.DataProperty(scholar.Title, scholar.Paper, String, append(single(), SubPropertyOf(vocabulary.RdfsLabel))...)
	b.DataProperty(scholar.Abstract, scholar.Paper, String, append(single(), SubPropertyOf(vocabulary.RdfsComment))...)
	b.DataProperty(scholar.DOI, scholar.Paper, String)
	b.DataProperty(scholar.Accepted, scholar.Revision, Boolean, single()...)
	b.DataProperty(scholar.ReviewText, scholar.Revision, String, append(single(), SubPropertyOf(vocabulary.RdfsComment))...)
	b.DataProperty(scholar.StartDate, scholar.Revision, Date)
	b.DataProperty(scholar.EndDate, scholar.Revision, Date)
	b.DataProperty(scholar.VenueName, scholar.Venue, String, SubPropertyOf(vocabulary.RdfsLabel))
	b.DataProperty(scholar.Year, scholar.VenuePublication, GYear, single()...)
	b.DataProperty(scholar.VolumeNumber, scholar.Volume, UnsignedInt)
	b.DataProperty(scholar.Keyword, scholar.Field, String)
	b.DataProperty(scholar.SubmissionDate, scholar.Submission, Date)
	b.DataProperty(scholar.AcceptanceDate, scholar.Submission, Date)
	b.DataProperty(scholar.LocationName, scholar.Location, String)

	if strict {
		b.Restrict(MinCardinality(scholar.Author, scholar.Authors, 1))
		b.Restrict(MinCardinality(scholar.Paper, scholar.AuthoredBy, 1))
		b.Restrict(Cardinality(scholar.VenuePublication, scholar.BelongsTo, 1))
		b.Restrict(Only(scholar.Proceedings, scholar.BelongsTo, scholar.Conference))
		b.Restrict(Only(scholar.Volume, scholar.BelongsTo, scholar.Journal))
		b.Restrict(MinCardinality(scholar.Handler, scholar.Manages, 1))
		b.Restrict(MinCardinality(scholar.Venue, scholar.ManagedBy, 1))
		b.Restrict(Only(scholar.Editor, scholar.Manages, scholar.Journal))
		b.Restrict(Only(scholar.Chair, scholar.Manages, scholar.Conference))
		b.Restrict(MinCardinality(scholar.Revision, scholar.DoneBy, 2))
		b.Restrict(Cardinality(scholar.Revision, scholar.Reviews, 1))
	}
	return b
}
