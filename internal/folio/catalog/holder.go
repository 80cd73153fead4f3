package catalog

import "sync/atomic"

// Holder publishes the current Catalog to concurrent readers.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder returns a Holder serving c, or an empty catalog when c is nil.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.Store(c)
	return h
}

// Load returns the current snapshot. It is never nil.
func (h *Holder) Load() *Catalog {
	return h.current.Load()
}

// Store swaps in a new snapshot.
func (h *Holder) Store(c *Catalog) {
	if c == nil {
		c = Empty()
	}
	h.current.Store(c)
}
