package jsonserde

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/olekukonko/tablewriter"

	"github.com/tryfix/log"
)

type subjectSchema struct {
	subject string
	schema  string
}

type cacheEntry struct {
	schema  *Schema
	id      int
	version int
}

// ResolutionCache remembers, per subject and candidate schema, the latest
// registered schema fetched from the registry. Entries are never overwritten:
// the first successful resolution wins for the lifetime of the cache, so a
// compatibility decision made against it stays stable even if the registry's
// latest version advances mid process.
//
// A cache can be shared between the key and value serializers of a topic and
// is safe for concurrent use.
type ResolutionCache struct {
	entries map[subjectSchema]*cacheEntry
	mu      *sync.RWMutex
}

// NewResolutionCache returns an empty cache
func NewResolutionCache() *ResolutionCache {
	return &ResolutionCache{
		entries: make(map[subjectSchema]*cacheEntry),
		mu:      new(sync.RWMutex),
	}
}

func (c *ResolutionCache) get(subject string, candidate *Schema) (*Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[subjectSchema{subject: subject, schema: candidate.Render()}]
	if !ok {
		return nil, false
	}

	return entry.schema, true
}

// insertIfAbsent stores the entry unless the key is already present and
// returns the winning value. Concurrent inserts for the same key resolve
// deterministically to whichever arrived first.
func (c *ResolutionCache) insertIfAbsent(subject string, candidate *Schema, entry *cacheEntry) *Schema {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := subjectSchema{subject: subject, schema: candidate.Render()}
	if existing, ok := c.entries[key]; ok {
		return existing.schema
	}

	c.entries[key] = entry

	return entry.schema
}

// Print logs a table of the resolved subjects for debugging
func (c *ResolutionCache) Print(logger log.Logger) {
	logger.Info(`jsonserde.cache`, fmt.Sprintf("resolved subjects\n%s", c.render()))
}

func (c *ResolutionCache) render() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b := new(bytes.Buffer)
	table := tablewriter.NewWriter(b)
	table.SetHeader([]string{`Subject`, `Schema Id`, `Version`})

	for key, entry := range c.entries {
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT})
		table.SetAutoFormatHeaders(true)
		table.Append([]string{
			key.subject,
			fmt.Sprint(entry.id),
			fmt.Sprint(entry.version),
		})
	}
	table.Render()

	return b.String()
}
