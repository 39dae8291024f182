// Package ident mints node identifiers inside an ontology namespace.
package ident

import (
	"strconv"
	"strings"
)

// Allocator hands out counted identifiers per prefix and content identifiers
// for natural keys. It is owned by a single population run and is not safe for
// concurrent use.
type Allocator struct {
	namespace string
	counters  map[string]int
}

// NewAllocator returns an allocator minting identifiers under namespace.
func NewAllocator(namespace string) *Allocator {
	return &Allocator{
		namespace: namespace,
		counters:  make(map[string]int),
	}
}

// Namespace returns the namespace identifiers are minted under.
func (a *Allocator) Namespace() string {
	return a.namespace
}

// Allocate returns <namespace><prefix><n> where n counts from 0 per prefix.
func (a *Allocator) Allocate(prefix string) string {
	n := a.counters[prefix]
	a.counters[prefix] = n + 1
	return a.namespace + prefix + strconv.Itoa(n)
}

// ForKey returns <namespace><prefix><encoded key>. Equal keys always map to
// the same identifier and no counter is consumed.
func (a *Allocator) ForKey(prefix, key string) string {
	return a.namespace + prefix + Encode(key)
}

// Count reports how many identifiers were allocated for prefix.
func (a *Allocator) Count(prefix string) int {
	return a.counters[prefix]
}

// Local strips the namespace from an identifier minted by this allocator.
func (a *Allocator) Local(iri string) string {
	return strings.TrimPrefix(iri, a.namespace)
}
