// Package pslcache bounds repeated publicsuffix.List queries behind a
// fixed-capacity LRU keyed by hostname, for callers that see the same
// hostnames over and over (request routers, log processors) and would
// rather not re-walk the rule tree every time.
package pslcache

import "container/list"

// Result is the pair of answers a Cache stores per hostname.
type Result struct {
	PublicSuffix string
	Registrable  string
}

// Source is the subset of publicsuffix.List's query surface a Cache needs.
// Matching the interface to the method set rather than the concrete type
// keeps this package free of a direct dependency on publicsuffix.
type Source interface {
	PublicSuffix(hostname string) string
	RegistrableDomain(hostname string) string
}

// Cache is a fixed-capacity, hostname-keyed LRU in front of a Source. The
// zero value is not usable; construct one with New.
type Cache struct {
	capacity int
	src      Source
	ll       *list.List
	index    map[string]*list.Element
}

type entry struct {
	hostname string
	result   Result
}

// New returns a Cache of the given capacity backed by src. Capacity must be
// positive.
func New(capacity int, src Source) *Cache {
	if capacity <= 0 {
		panic("pslcache: capacity must be positive")
	}
	return &Cache{
		capacity: capacity,
		src:      src,
		ll:       list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached Result for hostname, querying and inserting it
// through src on a miss, and reports whether the entry was already cached.
func (c *Cache) Get(hostname string) (result Result, existed bool) {
	if el, ok := c.index[hostname]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(*entry).result, true
	}

	result = Result{
		PublicSuffix: c.src.PublicSuffix(hostname),
		Registrable:  c.src.RegistrableDomain(hostname),
	}
	c.add(hostname, result)
	return result, false
}

// Has reports whether hostname is currently cached, without querying src
// and without affecting recency order.
func (c *Cache) Has(hostname string) (result Result, ok bool) {
	el, ok := c.index[hostname]
	if !ok {
		return Result{}, false
	}
	return el.Value.(*entry).result, true
}

// Remove evicts hostname if present, reporting whether it was.
func (c *Cache) Remove(hostname string) (existed bool) {
	el, ok := c.index[hostname]
	if !ok {
		return false
	}
	c.ll.Remove(el)
	delete(c.index, hostname)
	return true
}

// Dump returns every currently cached hostname, most recently used first.
func (c *Cache) Dump() []string {
	out := make([]string, 0, c.ll.Len())
	for el := c.ll.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry).hostname)
	}
	return out
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	return c.ll.Len()
}

func (c *Cache) add(hostname string, result Result) {
	el := c.ll.PushFront(&entry{hostname: hostname, result: result})
	c.index[hostname] = el
	if c.ll.Len() <= c.capacity {
		return
	}
	oldest := c.ll.Back()
	if oldest == nil {
		return
	}
	c.ll.Remove(oldest)
	delete(c.index, oldest.Value.(*entry).hostname)
}
