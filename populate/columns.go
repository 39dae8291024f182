package populate

import "strings"

// ConferencePaperType is the document type marking conference papers.
const ConferencePaperType = "Conference Paper"

// List delimiters of the primary and assignment sources.
const (
	AuthorNameSep = ", "
	IDSep         = ";"
	KeywordSep    = "; "
)

// PrimaryColumns names the columns of the primary source.
type PrimaryColumns struct {
	DocumentType string `yaml:"document_type"`
	DOI          string `yaml:"doi"`
	Title        string `yaml:"title"`
	Abstract     string `yaml:"abstract"`
	Authors      string `yaml:"authors"`
	AuthorIDs    string `yaml:"author_ids"`
	SourceTitle  string `yaml:"source_title"`
	Year         string `yaml:"year"`
	Volume       string `yaml:"volume"`
	Keywords     string `yaml:"keywords"`
}

// CitationColumns names the columns of the citation source.
type CitationColumns struct {
	Citing string `yaml:"citing"`
	Cited  string `yaml:"cited"`
}

// ReviewColumns names the columns of the review source.
type ReviewColumns struct {
	DOI      string `yaml:"doi"`
	Accepted string `yaml:"accepted"`
	Review   string `yaml:"review"`
}

// AssignmentColumns names the columns of the reviewer assignment source.
type AssignmentColumns struct {
	DOI       string `yaml:"doi"`
	Reviewers string `yaml:"reviewers"`
}

// Columns names the input columns of every source.
type Columns struct {
	Primary     PrimaryColumns    `yaml:"primary"`
	Citations   CitationColumns   `yaml:"citations"`
	Reviews     ReviewColumns     `yaml:"reviews"`
	Assignments AssignmentColumns `yaml:"assignments"`
}

// DefaultColumns returns the column names of the Scopus-style exports.
func DefaultColumns() Columns {
	return Columns{
		Primary: PrimaryColumns{
			DocumentType: "Document Type",
			DOI:          "DOI",
			Title:        "Title",
			Abstract:     "Abstract",
			Authors:      "Authors",
			AuthorIDs:    "Author(s) ID",
			SourceTitle:  "Source title",
			Year:         "Year",
			Volume:       "Volume",
			Keywords:     "Index Keywords",
		},
		Citations:   CitationColumns{Citing: "Citing", Cited: "Cited"},
		Reviews:     ReviewColumns{DOI: "DOI", Accepted: "Accepted", Review: "Review"},
		Assignments: AssignmentColumns{DOI: "DOI", Reviewers: "Reviewers"},
	}
}

// WithDefaults fills every empty column name from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.Primary.DocumentType, d.Primary.DocumentType)
	fill(&c.Primary.DOI, d.Primary.DOI)
	fill(&c.Primary.Title, d.Primary.Title)
	fill(&c.Primary.Abstract, d.Primary.Abstract)
	fill(&c.Primary.Authors, d.Primary.Authors)
	fill(&c.Primary.AuthorIDs, d.Primary.AuthorIDs)
	fill(&c.Primary.SourceTitle, d.Primary.SourceTitle)
	fill(&c.Primary.Year, d.Primary.Year)
	fill(&c.Primary.Volume, d.Primary.Volume)
	fill(&c.Primary.Keywords, d.Primary.Keywords)
	fill(&c.Citations.Citing, d.Citations.Citing)
	fill(&c.Citations.Cited, d.Citations.Cited)
	fill(&c.Reviews.DOI, d.Reviews.DOI)
	fill(&c.Reviews.Accepted, d.Reviews.Accepted)
	fill(&c.Reviews.Review, d.Reviews.Review)
	fill(&c.Assignments.DOI, d.Assignments.DOI)
	fill(&c.Assignments.Reviewers, d.Assignments.Reviewers)
	return c
}

// SplitList splits s on sep, trims every element and drops trailing empty
// elements. An empty or blank s yields no elements.
func SplitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// ParseDecision interprets a review decision cell.
func ParseDecision(s string) (accepted bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "accept", "accepted":
		return true, true
	case "false", "0", "no", "n", "reject", "rejected":
		return false, true
	default:
		return false, false
	}
}
