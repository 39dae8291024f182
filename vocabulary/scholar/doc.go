// Package scholar provides the bibliographic vocabulary used by scholargraph.
//
// The vocabulary has two faces:
//   - Ontology terms (classes and properties) named by their local names, e.g.
//     "Full_paper" or "authored_by", living under Namespace.
//   - Dotted predicates (scholar.<category>.<property>) registered with the
//     semstreams vocabulary registry, used on message.Triple values and aligned
//     to the ontology IRIs through vocabulary.WithIRI.
//
// # Semstreams Integration
//
// Predicates are registered in init() with vocabulary.Register so that any
// component holding a triple can resolve its IRI via
// vocabulary.GetPredicateMetadata or GetPredicateIRI.
//
// # Tagged Variants
//
// The leaf sets the populator chooses from are fixed at compile time:
//
//	PaperKind       Full_paper, Short_paper, Demo_paper, Poster
//	ConferenceKind  Regular_conference, Workshop, Symposium, Expert_group
//	HandlerKind     Chair, Editor
//	PublicationKind Proceedings, Volume
package scholar
