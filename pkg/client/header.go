package client

import "net/textproto"

// headerMap stores header fields with case-insensitive names. A later write
// to the same name replaces the earlier value; first-insertion order is kept
// so serialization is deterministic.
type headerMap struct {
	order  []string
	values map[string]string
}

func newHeaderMap() *headerMap {
	return &headerMap{values: make(map[string]string)}
}

// Set stores value under the canonical form of name, last write wins.
func (h *headerMap) Set(name, value string) {
	key := textproto.CanonicalMIMEHeaderKey(name)
	if _, ok := h.values[key]; !ok {
		h.order = append(h.order, key)
	}
	h.values[key] = value
}

// Get returns the value stored under name, matching case-insensitively.
func (h *headerMap) Get(name string) (string, bool) {
	v, ok := h.values[textproto.CanonicalMIMEHeaderKey(name)]
	return v, ok
}

// Has reports whether a value is stored under name.
func (h *headerMap) Has(name string) bool {
	_, ok := h.values[textproto.CanonicalMIMEHeaderKey(name)]
	return ok
}

// Names returns the canonical header names in insertion order.
func (h *headerMap) Names() []string {
	return h.order
}

// Map returns a copy of the stored fields keyed by canonical name.
func (h *headerMap) Map() map[string]string {
	m := make(map[string]string, len(h.values))
	for k, v := range h.values {
		m[k] = v
	}
	return m
}

func (h *headerMap) clone() *headerMap {
	c := newHeaderMap()
	for _, name := range h.order {
		c.Set(name, h.values[name])
	}
	return c
}
