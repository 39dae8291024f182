package populate

import (
	"github.com/c360studio/scholargraph/source"
	"github.com/c360studio/scholargraph/vocabulary/scholar"
)

// citationRow links a citing paper to the paper it cites. Both papers must
// come from the primary pass.
func (p *Populator) citationRow(row int, rec source.Row) error {
	c := p.opts.Columns.Citations
	citing, cited := rec.Get(c.Citing), rec.Get(c.Cited)
	if citing == "" {
		return &MalformedRecordError{Pass: PassCitations, Row: row, Field: c.Citing, Reason: "empty"}
	}
	if cited == "" {
		return &MalformedRecordError{Pass: PassCitations, Row: row, Field: c.Cited, Reason: "empty"}
	}

	from, err := p.knownPaper(PassCitations, row, citing)
	if err != nil {
		return err
	}
	to, err := p.knownPaper(PassCitations, row, cited)
	if err != nil {
		return err
	}
	added, err := p.graph.AddEdge(from, scholar.Cites, to)
	if err != nil {
		return err
	}
	if !added {
		p.metrics.rowSkipped(PassCitations, "duplicate")
	}
	return nil
}

func (p *Populator) knownPaper(pass Pass, row int, doi string) (string, error) {
	id, ok := p.reg.Papers.Lookup(doi)
	if !ok {
		return "", &ReferentialGapError{Pass: pass, Row: row, Kind: "paper", Key: doi}
	}
	return id, nil
}
