package conflict

// Cache remembers the groups computed for a single generation. The owner
// bumps its generation on every change that affects grouping; a Get with a
// different generation recomputes and replaces the slot.
type Cache struct {
	valid      bool
	generation uint64
	groups     []Group

	hits   int
	misses int
}

// Get returns the cached groups for generation, calling compute on a miss.
func (c *Cache) Get(generation uint64, compute func() []Group) []Group {
	if c.valid && c.generation == generation {
		c.hits++
		return c.groups
	}
	c.misses++
	c.groups = compute()
	c.generation = generation
	c.valid = true
	return c.groups
}

// Invalidate drops the cached slot.
func (c *Cache) Invalidate() {
	c.valid = false
	c.groups = nil
}

// Stats returns how many Get calls were served from the slot and how many
// recomputed.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
