package scholar

import (
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
)

// GetPredicateIRI resolves a predicate to the IRI used in RDF output.
// Full IRIs pass through, registered predicates use their registered IRI, and
// anything else falls back to Namespace plus the last dotted segment.
func GetPredicateIRI(predicate string) string {
	if IsIRI(predicate) {
		return predicate
	}
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	if i := strings.LastIndexByte(predicate, '.'); i >= 0 {
		return Namespace + predicate[i+1:]
	}
	return Namespace + predicate
}

// IsIRI reports whether s is an absolute http(s) IRI.
func IsIRI(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// SuperProperty lists the standard annotation properties each label-like or
// comment-like data property specialises.
var SuperProperty = map[string]string{
	Name:       vocabulary.RdfsLabel,
	Title:      vocabulary.RdfsLabel,
	VenueName:  vocabulary.RdfsLabel,
	Abstract:   vocabulary.RdfsComment,
	ReviewText: vocabulary.RdfsComment,
}
