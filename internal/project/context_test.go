package project

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/staticrender/internal/config"
	"git.home.luguber.info/inful/staticrender/internal/content"
)

func TestNewRenderContext_Precedence(t *testing.T) {
	nav := []config.NavEntry{{Key: "1-index", Name: "index", Target: "index.html"}}
	headers := content.Headers{
		{Key: "Title", Value: "first"},
		{Key: "NAV", Value: "custom"},
		{Key: "title", Value: "second"},
	}

	c := NewRenderContext("<p>x</p>", nav, headers)
	require.Equal(t, []string{"content", "nav", "title"}, c.Keys())

	v, _ := c.Get("content")
	require.Equal(t, template.HTML("<p>x</p>"), v)
	v, _ = c.Get("nav")
	require.Equal(t, "custom", v)
	v, _ = c.Get("title")
	require.Equal(t, "second", v)

	data := c.Data()
	data["title"] = "mutated"
	v, _ = c.Get("title")
	require.Equal(t, "second", v)
}
