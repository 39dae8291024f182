package scholar

// PaperKind is a leaf of the Paper taxonomy.
type PaperKind string

const (
	KindFullPaper  PaperKind = FullPaper
	KindShortPaper PaperKind = ShortPaper
	KindDemoPaper  PaperKind = DemoPaper
	KindPoster     PaperKind = Poster
)

// PaperKinds lists paper kinds in choice order. Journals never publish
// posters, so non-conference papers choose among the first three.
var PaperKinds = []PaperKind{KindFullPaper, KindShortPaper, KindDemoPaper, KindPoster}

// PaperKindsFor returns the kinds a paper may take given its venue category.
func PaperKindsFor(conference bool) []PaperKind {
	if conference {
		return PaperKinds
	}
	return PaperKinds[:3]
}

// Class returns the ontology class name.
func (k PaperKind) Class() string { return string(k) }

// ConferenceKind is a leaf of the Conference taxonomy.
type ConferenceKind string

const (
	KindRegularConference ConferenceKind = RegularConference
	KindWorkshop          ConferenceKind = Workshop
	KindSymposium         ConferenceKind = Symposium
	KindExpertGroup       ConferenceKind = ExpertGroup
)

// ConferenceKinds lists conference kinds in choice order.
var ConferenceKinds = []ConferenceKind{KindRegularConference, KindWorkshop, KindSymposium, KindExpertGroup}

// Class returns the ontology class name.
func (k ConferenceKind) Class() string { return string(k) }

// HandlerKind is a leaf of the Handler taxonomy.
type HandlerKind string

const (
	KindChair  HandlerKind = Chair
	KindEditor HandlerKind = Editor
)

// Class returns the ontology class name.
func (k HandlerKind) Class() string { return string(k) }

// PublicationKind is a leaf of the Venue_publication taxonomy.
type PublicationKind string

const (
	KindProceedings PublicationKind = Proceedings
	KindVolume      PublicationKind = Volume
)

// Class returns the ontology class name.
func (k PublicationKind) Class() string { return string(k) }

// VenueCategory separates conference-like venues from journals.
type VenueCategory string

const (
	CategoryConference VenueCategory = "conference"
	CategoryJournal    VenueCategory = "journal"
)

// Handler returns the kind of individual that manages venues of this category.
func (c VenueCategory) Handler() HandlerKind {
	if c == CategoryConference {
		return KindChair
	}
	return KindEditor
}

// Publication returns the kind of venue publication of this category.
func (c VenueCategory) Publication() PublicationKind {
	if c == CategoryConference {
		return KindProceedings
	}
	return KindVolume
}
