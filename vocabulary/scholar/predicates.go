package scholar

import "github.com/c360studio/semstreams/vocabulary"

// EntityClass carries the rdf:type assertion of an individual.
const EntityClass = "scholar.entity.class"

// Relationship predicates (object properties).
const (
	AuthorshipAuthors    = "scholar.authorship.authors"
	AuthorshipAuthoredBy = "scholar.authorship.authored_by"

	CitationCites   = "scholar.citation.cites"
	CitationCitedBy = "scholar.citation.cited_by"

	SubmissionSubmittedAs = "scholar.submission.submitted_as"
	SubmissionSubmittedTo = "scholar.submission.submitted_to"
	SubmissionPublishedIn = "scholar.submission.published_in"

	PublicationBelongsTo = "scholar.publication.belongs_to"
	PublicationPublishes = "scholar.publication.publishes"
	PublicationHeldIn    = "scholar.publication.held_in"

	HandlingManages   = "scholar.handling.manages"
	HandlingManagedBy = "scholar.handling.managed_by"
	HandlingAssigns   = "scholar.handling.assigns"

	ReviewDoneBy      = "scholar.review.done_by"
	ReviewTakesPartIn = "scholar.review.takes_part_in"
	ReviewReviews     = "scholar.review.reviews"
	ReviewReviewedBy  = "scholar.review.reviewed_by"

	TopicPaperRelatedTo = "scholar.topic.paper_related_to"
	TopicVenueRelatedTo = "scholar.topic.venue_related_to"
)

// Attribute predicates (data properties).
const (
	AcademicName = "scholar.academic.name"

	PaperTitle    = "scholar.paper.title"
	PaperAbstract = "scholar.paper.abstract"
	PaperDOI      = "scholar.paper.doi"

	RevisionAccepted   = "scholar.revision.accepted"
	RevisionReviewText = "scholar.revision.review_text"
	RevisionStartDate  = "scholar.revision.start_date"
	RevisionEndDate    = "scholar.revision.end_date"

	VenueVenueName = "scholar.venue.venue_name"

	PublicationYear         = "scholar.publication.year"
	PublicationVolumeNumber = "scholar.publication.volume_number"

	FieldKeyword = "scholar.field.keyword"

	SubmissionSubmissionDate = "scholar.submission.submission_date"
	SubmissionAcceptanceDate = "scholar.submission.acceptance_date"

	LocationLocationName = "scholar.location.location_name"
)

type registration struct {
	predicate   string
	local       string
	dataType    string
	description string
}

// registrations binds every dotted predicate to its ontology term.
var registrations = []registration{
	{EntityClass, "", "entity_id", "Leaf class of the individual"},

	{AuthorshipAuthors, Authors, "entity_id", "Author wrote the paper"},
	{AuthorshipAuthoredBy, AuthoredBy, "entity_id", "Paper was written by the author"},
	{CitationCites, Cites, "entity_id", "Paper cites another paper"},
	{CitationCitedBy, CitedBy, "entity_id", "Paper is cited by another paper"},
	{SubmissionSubmittedAs, SubmittedAs, "entity_id", "Paper was submitted as the submission"},
	{SubmissionSubmittedTo, SubmittedTo, "entity_id", "Submission was sent to the venue"},
	{SubmissionPublishedIn, PublishedIn, "entity_id", "Submission appeared in the venue publication"},
	{PublicationBelongsTo, BelongsTo, "entity_id", "Venue publication belongs to the venue"},
	{PublicationPublishes, Publishes, "entity_id", "Venue publishes the venue publication"},
	{PublicationHeldIn, HeldIn, "entity_id", "Proceedings were held in the location"},
	{HandlingManages, Manages, "entity_id", "Handler manages the venue"},
	{HandlingManagedBy, ManagedBy, "entity_id", "Venue is managed by the handler"},
	{HandlingAssigns, Assigns, "entity_id", "Handler assigned the revision"},
	{ReviewDoneBy, DoneBy, "entity_id", "Revision was done by the reviewer"},
	{ReviewTakesPartIn, TakesPartIn, "entity_id", "Reviewer takes part in the revision"},
	{ReviewReviews, Reviews, "entity_id", "Revision reviews the submission"},
	{ReviewReviewedBy, ReviewedBy, "entity_id", "Submission is reviewed by the revision"},
	{TopicPaperRelatedTo, PaperRelatedTo, "entity_id", "Paper is related to the field"},
	{TopicVenueRelatedTo, VenueRelatedTo, "entity_id", "Venue is related to the field"},

	{AcademicName, Name, "string", "Name spelling of the academic"},
	{PaperTitle, Title, "string", "Paper title"},
	{PaperAbstract, Abstract, "string", "Paper abstract"},
	{PaperDOI, DOI, "string", "Digital object identifier of the paper"},
	{RevisionAccepted, Accepted, "bool", "Whether the revision accepted the submission"},
	{RevisionReviewText, ReviewText, "string", "Text of the review"},
	{RevisionStartDate, StartDate, "date", "Date the revision started"},
	{RevisionEndDate, EndDate, "date", "Date the revision ended"},
	{VenueVenueName, VenueName, "string", "Venue title as it appears in the source"},
	{PublicationYear, Year, "gyear", "Publication year"},
	{PublicationVolumeNumber, VolumeNumber, "uint", "Journal volume number"},
	{FieldKeyword, Keyword, "string", "Keyword naming the field"},
	{SubmissionSubmissionDate, SubmissionDate, "date", "Date the paper was submitted"},
	{SubmissionAcceptanceDate, AcceptanceDate, "date", "Date the submission was accepted"},
	{LocationLocationName, LocationName, "string", "Name of the location"},
}

var (
	predicateByLocal = make(map[string]string, len(registrations))
	localByPredicate = make(map[string]string, len(registrations))
)

func init() {
	for _, r := range registrations {
		iri := RDFType
		if r.local != "" {
			iri = IRI(r.local)
			predicateByLocal[r.local] = r.predicate
			localByPredicate[r.predicate] = r.local
		}
		vocabulary.Register(r.predicate,
			vocabulary.WithDescription(r.description),
			vocabulary.WithDataType(r.dataType),
			vocabulary.WithIRI(iri))
	}
}

// PredicateFor returns the dotted predicate of an ontology property.
func PredicateFor(local string) (string, bool) {
	p, ok := predicateByLocal[local]
	return p, ok
}

// LocalFor returns the ontology property name of a dotted predicate.
func LocalFor(predicate string) (string, bool) {
	l, ok := localByPredicate[predicate]
	return l, ok
}

// Predicates returns every registered dotted predicate, EntityClass first.
func Predicates() []string {
	out := make([]string, 0, len(registrations))
	for _, r := range registrations {
		out = append(out, r.predicate)
	}
	return out
}
