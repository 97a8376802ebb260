package httpclient

import "strings"

// HeaderSet is an insertion-ordered mapping of header names to values.
// Names are kept exactly as given; setting an existing name overwrites its
// value in place without changing its position.
type HeaderSet struct {
	keys   []string
	values map[string]string
}

// NewHeaderSet returns an empty header set.
func NewHeaderSet() *HeaderSet {
	return &HeaderSet{values: make(map[string]string)}
}

// Set inserts or overwrites the header entry.
func (h *HeaderSet) Set(name, value string) {
	if _, ok := h.values[name]; !ok {
		h.keys = append(h.keys, name)
	}
	h.values[name] = value
}

// Get returns the value stored under name.
func (h *HeaderSet) Get(name string) (string, bool) {
	v, ok := h.values[name]
	return v, ok
}

// Len returns the number of entries.
func (h *HeaderSet) Len() int { return len(h.keys) }

// Clone returns an independent copy preserving insertion order.
func (h *HeaderSet) Clone() *HeaderSet {
	cp := &HeaderSet{
		keys:   append([]string(nil), h.keys...),
		values: make(map[string]string, len(h.values)),
	}
	for k, v := range h.values {
		cp.values[k] = v
	}
	return cp
}

// Map returns the entries as a plain map for transports.
func (h *HeaderSet) Map() map[string]string {
	if len(h.keys) == 0 {
		return nil
	}
	out := make(map[string]string, len(h.keys))
	for k, v := range h.values {
		out[k] = v
	}
	return out
}

// Format renders the entries as a CRLF-joined block of "name: value" lines
// in insertion order. An empty set yields an empty string.
func (h *HeaderSet) Format() string {
	if len(h.keys) == 0 {
		return ""
	}
	lines := make([]string, 0, len(h.keys))
	for _, k := range h.keys {
		lines = append(lines, k+": "+h.values[k])
	}
	return strings.Join(lines, "\r\n")
}
