package populate

import (
	"fmt"
	"strconv"
	"time"

	"github.com/c360studio/scholargraph/registry"
	"github.com/c360studio/scholargraph/source"
	"github.com/c360studio/scholargraph/vocabulary/scholar"
)

// primaryRecord is one validated primary row.
type primaryRecord struct {
	doi        string
	title      string
	abstract   string
	conference bool
	venue      string
	yearText   string
	year       int
	volume     string
	names      []string
	ids        []string
	keywords   []string
}

func (p *Populator) parsePrimary(row int, rec source.Row) (primaryRecord, error) {
	c := p.opts.Columns.Primary
	malformed := func(field, format string, args ...any) error {
		return &MalformedRecordError{Pass: PassPrimary, Row: row, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	r := primaryRecord{
		doi:        rec.Get(c.DOI),
		title:      rec.Get(c.Title),
		abstract:   rec.Get(c.Abstract),
		conference: rec.Get(c.DocumentType) == ConferencePaperType,
		venue:      rec.Get(c.SourceTitle),
		yearText:   rec.Get(c.Year),
		volume:     rec.Get(c.Volume),
		names:      SplitList(rec.Get(c.Authors), AuthorNameSep),
		ids:        SplitList(rec.Get(c.AuthorIDs), IDSep),
	}
	if r.doi == "" {
		return r, malformed(c.DOI, "empty")
	}
	if r.venue == "" {
		return r, malformed(c.SourceTitle, "empty")
	}
	year, err := strconv.Atoi(r.yearText)
	if err != nil || year <= 0 {
		return r, malformed(c.Year, "not a year: %q", r.yearText)
	}
	r.year = year
	if len(r.names) != len(r.ids) {
		return r, malformed(c.AuthorIDs, "%d ids for %d author names", len(r.ids), len(r.names))
	}
	for i, id := range r.ids {
		if id == "" {
			return r, malformed(c.AuthorIDs, "empty id at position %d", i)
		}
	}
	for _, kw := range SplitList(rec.Get(c.Keywords), KeywordSep) {
		if kw != "" {
			r.keywords = append(r.keywords, kw)
		}
	}
	return r, nil
}

func (p *Populator) primaryRow(row int, rec source.Row) error {
	r, err := p.parsePrimary(row, rec)
	if err != nil {
		return err
	}

	paper, err := p.resolvePaper(r)
	if err != nil {
		return err
	}
	venue, err := p.resolveVenue(r)
	if err != nil {
		return err
	}
	pub, err := p.resolvePublication(r, venue)
	if err != nil {
		return err
	}
	if err := p.resolveSubmission(r, paper, venue, pub); err != nil {
		return err
	}
	for _, kw := range r.keywords {
		if err := p.relateField(kw, paper, venue.ID); err != nil {
			return err
		}
	}
	for i := range r.ids {
		if err := p.addAuthor(r.ids[i], r.names[i], paper); err != nil {
			return err
		}
	}
	return nil
}

func (p *Populator) paperID(doi string) string {
	if p.opts.Identity == IdentityCounter {
		return p.alloc.Allocate(PrefixPaper)
	}
	return p.alloc.ForKey(PrefixPaper, doi)
}

// resolvePaper finds or creates the paper of a row. The subclass is only
// chosen on creation; later rows add missing literals.
func (p *Populator) resolvePaper(r primaryRecord) (string, error) {
	id, created, err := p.reg.Papers.GetOrCreate(r.doi, func() (string, error) {
		kinds := scholar.PaperKindsFor(r.conference)
		k, err := p.choose(ChoosePaperKind, len(kinds))
		if err != nil {
			return "", err
		}
		id := p.paperID(r.doi)
		if err := p.create(id, kinds[k].Class()); err != nil {
			return "", err
		}
		return id, nil
	})
	if err != nil {
		return "", err
	}
	if !created {
		p.metrics.dedupHit(p.reg.Papers.Name())
	}

	literals := []struct{ prop, value string }{
		{scholar.Title, r.title},
		{scholar.Abstract, r.abstract},
		{scholar.DOI, r.doi},
	}
	for _, l := range literals {
		if l.value == "" {
			continue
		}
		if _, err := p.graph.AddLiteral(id, l.prop, l.value); err != nil {
			return "", err
		}
	}
	return id, nil
}

// resolveVenue finds or creates the venue of a row along with its three
// handlers. A venue keeps the category it was created with.
func (p *Populator) resolveVenue(r primaryRecord) (registry.Venue, error) {
	id, created, err := p.reg.Venues.GetOrCreate(r.venue, func() (string, error) {
		v := registry.Venue{ID: p.alloc.Allocate(PrefixVenue), Category: scholar.CategoryJournal}
		class := scholar.Journal
		if r.conference {
			k, err := p.choose(ChooseConferenceKind, len(scholar.ConferenceKinds))
			if err != nil {
				return "", err
			}
			v.Category = scholar.CategoryConference
			class = scholar.ConferenceKinds[k].Class()
		}
		if err := p.create(v.ID, class); err != nil {
			return "", err
		}
		if _, err := p.graph.AddLiteral(v.ID, scholar.VenueName, r.venue); err != nil {
			return "", err
		}
		for i := range v.Handlers {
			h := p.alloc.Allocate(PrefixHandler)
			if err := p.create(h, v.Category.Handler().Class()); err != nil {
				return "", err
			}
			if _, err := p.graph.AddEdge(h, scholar.Manages, v.ID); err != nil {
				return "", err
			}
			v.Handlers[i] = h
		}
		p.reg.RecordVenue(v)
		return v.ID, nil
	})
	if err != nil {
		return registry.Venue{}, err
	}
	if !created {
		p.metrics.dedupHit(p.reg.Venues.Name())
	}
	v, ok := p.reg.Venue(id)
	if !ok {
		return registry.Venue{}, fmt.Errorf("venue %s has no bookkeeping", id)
	}
	return v, nil
}

// publicationLabel is the year for conferences and the volume for journals.
// A journal row without a volume falls back to its year.
func publicationLabel(r primaryRecord, v registry.Venue) string {
	if v.Category == scholar.CategoryConference || r.volume == "" {
		return "Y" + r.yearText
	}
	return r.volume
}

// resolvePublication finds or creates the venue publication of a row. Its
// year is written once, by the first row that reaches it.
func (p *Populator) resolvePublication(r primaryRecord, v registry.Venue) (string, error) {
	label := publicationLabel(r, v)
	key := registry.PublicationKey{Venue: v.ID, Label: label}
	id, created, err := p.reg.Publications.GetOrCreate(key, func() (string, error) {
		id := p.alloc.ForKey(p.alloc.Local(v.ID)+"_", label)
		if err := p.create(id, v.Category.Publication().Class()); err != nil {
			return "", err
		}
		if _, err := p.graph.AddEdge(id, scholar.BelongsTo, v.ID); err != nil {
			return "", err
		}
		if v.Category == scholar.CategoryConference {
			loc, err := p.placeholderLocation()
			if err != nil {
				return "", err
			}
			if _, err := p.graph.AddEdge(id, scholar.HeldIn, loc); err != nil {
				return "", err
			}
			return id, nil
		}
		if r.volume == "" {
			return id, nil
		}
		if _, err := strconv.ParseUint(r.volume, 10, 32); err != nil {
			p.logger.Warn("Volume is not a number, volume_number omitted",
				"venue", r.venue,
				"volume", r.volume)
			return id, nil
		}
		if _, err := p.graph.AddLiteral(id, scholar.VolumeNumber, r.volume); err != nil {
			return "", err
		}
		return id, nil
	})
	if err != nil {
		return "", err
	}
	if !created {
		p.metrics.dedupHit(p.reg.Publications.Name())
	}
	if _, err := p.graph.SetLiteralOnce(id, scholar.Year, r.yearText); err != nil {
		return "", err
	}
	return id, nil
}

// resolveSubmission creates the submission of a paper unless its DOI
// already has one.
func (p *Populator) resolveSubmission(r primaryRecord, paper string, v registry.Venue, pub string) error {
	if _, ok := p.reg.Submission(r.doi); ok {
		p.metrics.dedupHit("submission")
		return nil
	}
	s := registry.Submission{
		ID:          p.alloc.Allocate(PrefixSubmission),
		Paper:       paper,
		Venue:       v.ID,
		Publication: pub,
		Date:        time.Date(r.year, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := p.create(s.ID, scholar.Submission); err != nil {
		return err
	}
	edges := []struct{ from, prop, to string }{
		{paper, scholar.SubmittedAs, s.ID},
		{s.ID, scholar.SubmittedTo, v.ID},
		{s.ID, scholar.PublishedIn, pub},
	}
	for _, e := range edges {
		if _, err := p.graph.AddEdge(e.from, e.prop, e.to); err != nil {
			return err
		}
	}
	if _, err := p.graph.AddLiteral(s.ID, scholar.SubmissionDate, dateOf(r.year, time.January, 1)); err != nil {
		return err
	}
	if _, err := p.graph.AddLiteral(s.ID, scholar.AcceptanceDate, dateOf(r.year, time.April, 2)); err != nil {
		return err
	}
	p.reg.RecordSubmission(r.doi, s)
	return nil
}

// relateField links a paper and its venue to the field of a keyword.
func (p *Populator) relateField(keyword, paper, venue string) error {
	id, created, err := p.reg.Fields.GetOrCreate(keyword, func() (string, error) {
		id := p.alloc.Allocate(PrefixField)
		if err := p.create(id, scholar.Field); err != nil {
			return "", err
		}
		if _, err := p.graph.AddLiteral(id, scholar.Keyword, keyword); err != nil {
			return "", err
		}
		return id, nil
	})
	if err != nil {
		return err
	}
	if !created {
		p.metrics.dedupHit(p.reg.Fields.Name())
	}
	if _, err := p.graph.AddEdge(paper, scholar.PaperRelatedTo, id); err != nil {
		return err
	}
	_, err = p.graph.AddEdge(venue, scholar.VenueRelatedTo, id)
	return err
}

// addAuthor resolves an author by external ID, records a new name
// spelling and links the author to the paper.
func (p *Populator) addAuthor(authorID, name, paper string) error {
	id, created, err := p.reg.Authors.GetOrCreate(authorID, func() (string, error) {
		id := p.alloc.ForKey(PrefixAuthor, authorID)
		if err := p.create(id, scholar.Author); err != nil {
			return "", err
		}
		return id, nil
	})
	if err != nil {
		return err
	}
	if !created {
		p.metrics.dedupHit(p.reg.Authors.Name())
	}
	if name != "" && p.reg.ObserveSpelling(id, name) {
		if _, err := p.graph.AddLiteral(id, scholar.Name, name); err != nil {
			return err
		}
	}
	_, err = p.graph.AddEdge(id, scholar.Authors, paper)
	return err
}
