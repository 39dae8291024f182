package populate

import (
	"github.com/c360studio/scholargraph/source"
	"github.com/c360studio/scholargraph/vocabulary/scholar"
)

// assignmentRow links the revision of a DOI to each of its reviewers.
// Every reviewer is resolved before any edge is added.
func (p *Populator) assignmentRow(row int, rec source.Row) error {
	c := p.opts.Columns.Assignments
	doi := rec.Get(c.DOI)
	if doi == "" {
		return &MalformedRecordError{Pass: PassAssignments, Row: row, Field: c.DOI, Reason: "empty"}
	}
	rev, ok := p.reg.Revision(doi)
	if !ok {
		return &ReferentialGapError{Pass: PassAssignments, Row: row, Kind: "revision", Key: doi}
	}

	var reviewers []string
	for _, rid := range SplitList(rec.Get(c.Reviewers), IDSep) {
		if rid == "" {
			continue
		}
		id, ok := p.reg.Authors.Lookup(rid)
		if !ok {
			return &ReferentialGapError{Pass: PassAssignments, Row: row, Kind: "author", Key: rid}
		}
		reviewers = append(reviewers, id)
	}
	for _, id := range reviewers {
		if _, err := p.graph.AddEdge(rev, scholar.DoneBy, id); err != nil {
			return err
		}
	}
	return nil
}
