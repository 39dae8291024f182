package populate

import (
	"time"

	"github.com/c360studio/scholargraph/source"
	"github.com/c360studio/scholargraph/vocabulary/scholar"
)

// reviewRow turns the first positive decision for a DOI into a revision of
// its submission, assigned by one of the venue's handlers.
func (p *Populator) reviewRow(row int, rec source.Row) error {
	c := p.opts.Columns.Reviews
	doi := rec.Get(c.DOI)
	if doi == "" {
		return &MalformedRecordError{Pass: PassReviews, Row: row, Field: c.DOI, Reason: "empty"}
	}
	sub, ok := p.reg.Submission(doi)
	if !ok {
		return &ReferentialGapError{Pass: PassReviews, Row: row, Kind: "submission", Key: doi}
	}
	accepted, ok := ParseDecision(rec.Get(c.Accepted))
	if !ok {
		return &MalformedRecordError{Pass: PassReviews, Row: row, Field: c.Accepted, Reason: "not a decision: " + rec.Get(c.Accepted)}
	}
	if !accepted {
		p.metrics.rowSkipped(PassReviews, "rejected")
		return nil
	}
	if _, ok := p.reg.Revision(doi); ok {
		p.metrics.rowSkipped(PassReviews, "already_revised")
		return nil
	}

	venue, ok := p.reg.Venue(sub.Venue)
	if !ok {
		return &ReferentialGapError{Pass: PassReviews, Row: row, Kind: "venue", Key: sub.Venue}
	}
	h, err := p.choose(ChooseHandler, len(venue.Handlers))
	if err != nil {
		return err
	}

	id := p.alloc.Allocate(PrefixRevision)
	if err := p.create(id, scholar.Revision); err != nil {
		return err
	}
	year := sub.Date.Year()
	literals := []struct{ prop, value string }{
		{scholar.Accepted, "true"},
		{scholar.ReviewText, rec.Get(c.Review)},
		{scholar.StartDate, dateOf(year, time.January, 10)},
		{scholar.EndDate, dateOf(year, time.April, 1)},
	}
	for _, l := range literals {
		if l.value == "" {
			continue
		}
		if _, err := p.graph.AddLiteral(id, l.prop, l.value); err != nil {
			return err
		}
	}
	if _, err := p.graph.AddEdge(id, scholar.Reviews, sub.ID); err != nil {
		return err
	}
	if _, err := p.graph.AddEdge(venue.Handlers[h], scholar.Assigns, id); err != nil {
		return err
	}
	p.reg.RecordRevision(doi, id)
	return nil
}
