package domain

// KnowledgeEntry is a single document visible in the corpus browser.
type KnowledgeEntry struct {
	// Name is the document name, unique within the current view.
	Name string

	// SourceLabel names the connector the entry was imported from.
	// Empty for entries that came from the backend listing.
	SourceLabel string

	// Chunks is the number of indexed chunks, when known.
	Chunks int

	// Distance is the vector distance to the search query.
	// Present only on search results; lower is more relevant.
	Distance float64

	// HasDistance reports whether Distance carries a value.
	HasDistance bool
}

// Corpus is the visible set of knowledge entries. A successful list or
// search fetch replaces the whole set; connector imports append to it.
// The short inconsistency window between an optimistic import append
// and the next full refresh is accepted.
type Corpus struct {
	entries []KnowledgeEntry
}

// Replace swaps the entire visible set.
func (c *Corpus) Replace(entries []KnowledgeEntry) {
	c.entries = entries
}

// AppendImported appends connector-imported entries, tagging each with
// the connector's source label.
func (c *Corpus) AppendImported(label string, entries []KnowledgeEntry) {
	for _, e := range entries {
		e.SourceLabel = label
		c.entries = append(c.entries, e)
	}
}

// Entries returns the visible entries in display order.
func (c *Corpus) Entries() []KnowledgeEntry {
	return c.entries
}

// Len returns the number of visible entries.
func (c *Corpus) Len() int {
	return len(c.entries)
}
