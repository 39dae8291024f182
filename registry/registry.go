package registry

import (
	"time"

	"github.com/c360studio/scholargraph/vocabulary/scholar"
)

// HandlersPerVenue is the fixed number of handlers minted for every venue.
const HandlersPerVenue = 3

// PublicationKey identifies a venue publication: the venue identifier and
// the year label (conferences) or volume label (journals).
type PublicationKey struct {
	Venue string
	Label string
}

// Venue is the bookkeeping kept for a created venue.
type Venue struct {
	ID       string
	Category scholar.VenueCategory
	Handlers [HandlersPerVenue]string
}

// Submission is the bookkeeping kept for a created submission.
type Submission struct {
	ID          string
	Paper       string
	Venue       string
	Publication string
	Date        time.Time
}

// Registry is the per-run state shared by the population passes.
type Registry struct {
	Papers       *Cache[string]
	Authors      *Cache[string]
	Venues       *Cache[string]
	Publications *Cache[PublicationKey]
	Fields       *Cache[string]

	spellings   map[string]map[string]struct{}
	venues      map[string]Venue
	submissions map[string]Submission
	revisions   map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		Papers:       NewCache[string]("paper"),
		Authors:      NewCache[string]("author"),
		Venues:       NewCache[string]("venue"),
		Publications: NewCache[PublicationKey]("venue_publication"),
		Fields:       NewCache[string]("field"),
		spellings:    make(map[string]map[string]struct{}),
		venues:       make(map[string]Venue),
		submissions:  make(map[string]Submission),
		revisions:    make(map[string]string),
	}
}

// ObserveSpelling records a name spelling for an author and reports whether
// it had not been seen for that author before.
func (r *Registry) ObserveSpelling(author, name string) bool {
	seen, ok := r.spellings[author]
	if !ok {
		seen = make(map[string]struct{})
		r.spellings[author] = seen
	}
	if _, ok := seen[name]; ok {
		return false
	}
	seen[name] = struct{}{}
	return true
}

// Spellings returns how many distinct spellings were seen for author.
func (r *Registry) Spellings(author string) int {
	return len(r.spellings[author])
}

// RecordVenue stores the bookkeeping of a newly created venue.
func (r *Registry) RecordVenue(v Venue) {
	r.venues[v.ID] = v
}

// Venue returns the bookkeeping of a venue by identifier.
func (r *Registry) Venue(id string) (Venue, bool) {
	v, ok := r.venues[id]
	return v, ok
}

// RecordSubmission stores the submission made for doi. An existing record is
// kept and false is returned.
func (r *Registry) RecordSubmission(doi string, s Submission) bool {
	if _, ok := r.submissions[doi]; ok {
		return false
	}
	r.submissions[doi] = s
	return true
}

// Submission returns the submission recorded for doi.
func (r *Registry) Submission(doi string) (Submission, bool) {
	s, ok := r.submissions[doi]
	return s, ok
}

// RecordRevision stores the revision created for doi. An existing record is
// kept and false is returned.
func (r *Registry) RecordRevision(doi, id string) bool {
	if _, ok := r.revisions[doi]; ok {
		return false
	}
	r.revisions[doi] = id
	return true
}

// Revision returns the revision recorded for doi.
func (r *Registry) Revision(doi string) (string, bool) {
	id, ok := r.revisions[doi]
	return id, ok
}

// Revisions returns the number of recorded revisions.
func (r *Registry) Revisions() int {
	return len(r.revisions)
}
