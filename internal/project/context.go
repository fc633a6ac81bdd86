package project

import (
	"html/template"
	"strings"

	"git.home.luguber.info/inful/staticrender/internal/config"
	"git.home.luguber.info/inful/staticrender/internal/content"
)

// Reserved template context keys.
const (
	KeyContent = "content"
	KeyNav     = "nav"
)

// RenderContext is the ordered set of values a page template sees. Keys are
// unique; setting an existing key replaces its value in place.
type RenderContext struct {
	keys   []string
	values map[string]any
}

// NewRenderContext assembles the context for a page: the converted body under
// "content", the navigation under "nav", then every header with its key
// lower-cased. Later entries win, so a header may replace content or nav.
func NewRenderContext(html string, nav []config.NavEntry, headers content.Headers) *RenderContext {
	c := &RenderContext{values: make(map[string]any, len(headers)+2)}
	// #nosec G203 -- markup output is trusted; safe mode controls raw HTML
	c.Set(KeyContent, template.HTML(html))
	c.Set(KeyNav, nav)
	for _, h := range headers {
		c.Set(strings.ToLower(h.Key), h.Value)
	}
	return c
}

// Set stores value under key.
func (c *RenderContext) Set(key string, value any) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the value stored under key.
func (c *RenderContext) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (c *RenderContext) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Data returns the context as template data.
func (c *RenderContext) Data() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
