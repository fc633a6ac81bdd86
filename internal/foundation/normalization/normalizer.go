// Package normalization maps loosely written user input (config values, flags,
// environment variables) onto typed enums.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer provides type-safe string-to-enum normalization with error handling.
type Normalizer[T comparable] struct {
	validValues  map[string]T
	defaultValue T
	validKeys    []string // Cached for error messages
}

// NewNormalizer creates a normalizer with a map of valid string->value pairs.
// Keys are trimmed and lower-cased, so lookups are case-insensitive.
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))

	for k, v := range values {
		normalizedKey := defaultNormalization(k)
		normalized[normalizedKey] = v
		validKeys = append(validKeys, normalizedKey)
	}

	sort.Strings(validKeys)

	return &Normalizer[T]{
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize converts raw to the enum type, returning the default value when raw is
// not recognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.Lookup(raw); ok {
		return value
	}
	return n.defaultValue
}

// Lookup converts raw to the enum type and reports whether it was recognized.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	value, exists := n.validValues[defaultNormalization(raw)]
	return value, exists
}

// NormalizeWithError converts raw to the enum type and fails on unrecognized input.
// Empty input yields the default value.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if strings.TrimSpace(raw) == "" {
		return n.defaultValue, nil
	}
	if value, ok := n.Lookup(raw); ok {
		return value, nil
	}

	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, n.validKeys)
}

// ValidKeys returns all valid normalized keys.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

func defaultNormalization(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
