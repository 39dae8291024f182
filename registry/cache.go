// Package registry holds the natural-key caches and cross-pass bookkeeping of
// a population run.
package registry

// Cache maps natural keys of one entity type to node identifiers. The
// constructor passed to GetOrCreate runs at most once per key.
type Cache[K comparable] struct {
	name  string
	ids  map[K]string
	hits int
}

// NewCache returns an empty cache labelled name.
func NewCache[K comparable](name string) *Cache[K] {
	return &Cache[K]{name: name, ids: make(map[K]string)}
}

// Name returns the cache label.
func (c *Cache[K]) Name() string {
	return c.name
}

// GetOrCreate returns the identifier stored for key, or calls create and
// stores its result. created reports whether create ran. A failing create
// stores nothing.
func (c *Cache[K]) GetOrCreate(key K, create func() (string, error)) (id string, created bool, err error) {
	if id, ok := c.ids[key]; ok {
		c.hits++
		return id, false, nil
	}
	id, err = create()
	if err != nil {
		return "", false, err
	}
	c.ids[key] = id
	return id, true, nil
}

// Lookup returns the identifier stored for key.
func (c *Cache[K]) Lookup(key K) (string, bool) {
	id, ok := c.ids[key]
	return id, ok
}

// Len returns the number of distinct keys.
func (c *Cache[K]) Len() int {
	return len(c.ids)
}

// Hits returns how many GetOrCreate calls found an existing entry.
func (c *Cache[K]) Hits() int {
	return c.hits
}
