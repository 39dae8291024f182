package scholar

// Namespace is the base IRI for every class, property and individual.
const Namespace = "https://ferrazzi.divi/#"

// Prefix is the conventional prefix bound to Namespace in serializations.
const Prefix = "fd"

// IRI returns the full IRI of a local name in Namespace.
func IRI(local string) string {
	return Namespace + local
}

// Class local names.
const (
	Academic          = "Academic"
	Author            = "Author"
	Reviewer          = "Reviewer"
	Handler           = "Handler"
	Chair             = "Chair"
	Editor            = "Editor"
	Paper             = "Paper"
	FullPaper         = "Full_paper"
	ShortPaper        = "Short_paper"
	DemoPaper         = "Demo_paper"
	Poster            = "Poster"
	Submission        = "Submission"
	Venue             = "Venue"
	Conference        = "Conference"
	Journal           = "Journal"
	RegularConference = "Regular_conference"
	Workshop          = "Workshop"
	Symposium         = "Symposium"
	ExpertGroup       = "Expert_group"
	VenuePublication  = "Venue_publication"
	Proceedings       = "Proceedings"
	Volume            = "Volume"
	Revision          = "Revision"
	Field             = "Field"
	Location          = "Location"
)

// Object property local names.
const (
	Authors        = "authors"
	AuthoredBy     = "authored_by"
	Cites          = "cites"
	CitedBy        = "cited_by"
	SubmittedAs    = "submitted_as"
	SubmittedTo    = "submitted_to"
	PublishedIn    = "published_in"
	BelongsTo      = "belongs_to"
	Publishes      = "publishes"
	Manages        = "manages"
	ManagedBy      = "managed_by"
	Assigns        = "assigns"
	DoneBy         = "done_by"
	TakesPartIn    = "takes_part_in"
	Reviews        = "reviews"
	ReviewedBy     = "reviewed_by"
	PaperRelatedTo = "paper_related_to"
	VenueRelatedTo = "venue_related_to"
	HeldIn         = "held_in"
)

// Data property local names.
const (
	Name           = "name"
	Title          = "title"
	Abstract       = "abstract"
	DOI            = "doi"
	Accepted       = "accepted"
	ReviewText     = "review_text"
	VenueName      = "venue_name"
	Year           = "year"
	VolumeNumber   = "volume_number"
	Keyword        = "keyword"
	SubmissionDate = "submission_date"
	AcceptanceDate = "acceptance_date"
	StartDate      = "start_date"
	EndDate        = "end_date"
	LocationName   = "location_name"
)

// W3C namespaces used when rendering the schema.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// RDF, RDFS and OWL terms not exported by the semstreams vocabulary package.
const (
	RDFType  = RDFNamespace + "type"
	RDFFirst = RDFNamespace + "first"
	RDFRest  = RDFNamespace + "rest"
	RDFNil   = RDFNamespace + "nil"

	RDFSSubClassOf    = RDFSNamespace + "subClassOf"
	RDFSSubPropertyOf = RDFSNamespace + "subPropertyOf"
	RDFSDomain        = RDFSNamespace + "domain"
	RDFSRange         = RDFSNamespace + "range"

	OWLClass              = OWLNamespace + "Class"
	OWLObjectProperty     = OWLNamespace + "ObjectProperty"
	OWLDatatypeProperty   = OWLNamespace + "DatatypeProperty"
	OWLFunctionalProperty = OWLNamespace + "FunctionalProperty"
	OWLRestriction        = OWLNamespace + "Restriction"
	OWLOnProperty         = OWLNamespace + "onProperty"
	OWLCardinality        = OWLNamespace + "cardinality"
	OWLMinCardinality     = OWLNamespace + "minCardinality"
	OWLMaxCardinality     = OWLNamespace + "maxCardinality"
	OWLAllValuesFrom      = OWLNamespace + "allValuesFrom"
	OWLDisjointWith       = OWLNamespace + "disjointWith"
	OWLAllDisjointClasses = OWLNamespace + "AllDisjointClasses"
	OWLMembers            = OWLNamespace + "members"
	OWLUnionOf            = OWLNamespace + "unionOf"
	OWLInverseOf          = OWLNamespace + "inverseOf"
	OWLOntology           = OWLNamespace + "Ontology"
)

// XSD datatype IRIs for literal values.
const (
	XSDString      = XSDNamespace + "string"
	XSDBoolean     = XSDNamespace + "boolean"
	XSDDate        = XSDNamespace + "date"
	XSDGYear       = XSDNamespace + "gYear"
	XSDUnsignedInt = XSDNamespace + "unsignedInt"
	XSDNonNegInt   = XSDNamespace + "nonNegativeInteger"
)
