// Package tracker persists the content hash of every rendered page, plus the
// fingerprint of the configuration the pages were rendered with.
package tracker

import "context"

// ConfigKey is the reserved key holding the configuration fingerprint. A source
// file named after it would share the key, so such pages are rejected before
// they reach the store.
const ConfigKey = "__config__"

// FileName is the tracker database file kept at the project root.
const FileName = "hash.db"

// Store maps keys to the last recorded content hash.
//
// Reads see every Set and Delete immediately. Writes only become durable on
// Flush; a crash before Flush loses the unflushed updates and nothing else.
type Store interface {
	// Get returns the recorded hash for key.
	Get(key string) (string, bool)

	// Set records hash for key, replacing any earlier value.
	Set(key, hash string)

	// Delete forgets key. Deleting an unknown key is a no-op.
	Delete(key string)

	// Keys returns all recorded keys in ascending order, ConfigKey included.
	Keys() []string

	// Flush makes pending updates durable.
	Flush(ctx context.Context) error

	// Close flushes pending updates and releases resources.
	Close() error
}
