// Package content reads page sources: the RFC822 header block, the body that
// follows it, and the fingerprint used for change detection.
package content

import "strings"

// Header is a single "Key: Value" line from a page's header block. Folded
// continuation lines are already joined into Value.
type Header struct {
	Key   string
	Value string
}

// Headers keeps header lines in source order. Lookups are case-insensitive and
// return the first match, so duplicated keys behave like a mail header block.
type Headers []Header

// Get returns the value of the first header named key.
func (h Headers) Get(key string) (string, bool) {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Key, key) {
			return hdr.Value, true
		}
	}
	return "", false
}

// Has reports whether a header named key is present.
func (h Headers) Has(key string) bool {
	_, ok := h.Get(key)
	return ok
}

// Keys returns header keys in source order, duplicates included.
func (h Headers) Keys() []string {
	keys := make([]string, len(h))
	for i, hdr := range h {
		keys[i] = hdr.Key
	}
	return keys
}
