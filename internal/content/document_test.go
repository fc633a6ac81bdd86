package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HeadersAndBody(t *testing.T) {
	doc := Parse([]byte("Title: Hello\ntemplate: wide.html\n\n# Heading\n\nText\n"))

	require.Equal(t, Headers{
		{Key: "Title", Value: "Hello"},
		{Key: "template", Value: "wide.html"},
	}, doc.Headers)
	require.Equal(t, "# Heading\n\nText\n", string(doc.Body))

	name, ok := doc.Template()
	require.True(t, ok)
	require.Equal(t, "wide.html", name)
}

func TestParse_NoHeaderBlock(t *testing.T) {
	tests := map[string]string{
		"markdown heading": "# Just a body\n\nwith: a colon later\n",
		"leading blank":    "\nTitle: not a header\n",
		"leading fold":     "  indented\nTitle: x\n\nbody\n",
		"space in key":     "Not A Header: value\n\nbody\n",
		"empty":            "",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			doc := Parse([]byte(input))
			assert.Empty(t, doc.Headers)
			assert.Equal(t, input, string(doc.Body))
		})
	}
}

func TestParse_FoldedAndCRLF(t *testing.T) {
	doc := Parse([]byte("Subject: a long\r\n\tfolded value\r\nAuthor:\r\n  someone\r\n\r\nbody\r\n"))

	v, ok := doc.Headers.Get("subject")
	require.True(t, ok)
	require.Equal(t, "a long folded value", v)

	v, ok = doc.Headers.Get("AUTHOR")
	require.True(t, ok)
	require.Equal(t, "someone", v)
	require.Equal(t, "body\r\n", string(doc.Body))
}

func TestParse_HeadersWithoutBody(t *testing.T) {
	doc := Parse([]byte("Title: only headers\n"))
	require.Len(t, doc.Headers, 1)
	require.Empty(t, doc.Body)
}

func TestParse_NonHeaderLineEndsBlock(t *testing.T) {
	doc := Parse([]byte("Title: x\nplain text\nmore\n"))
	require.Equal(t, []string{"Title"}, doc.Headers.Keys())
	require.Equal(t, "plain text\nmore\n", string(doc.Body))
}

func TestHeaders_FirstMatchWins(t *testing.T) {
	h := Headers{{Key: "Tag", Value: "one"}, {Key: "tag", Value: "two"}}
	v, ok := h.Get("TAG")
	require.True(t, ok)
	require.Equal(t, "one", v)
	require.True(t, h.Has("tag"))
	require.False(t, h.Has("missing"))
}

func TestDocument_BlankTemplateIsAbsent(t *testing.T) {
	doc := Parse([]byte("template:   \n\nbody"))
	_, ok := doc.Template()
	require.False(t, ok)
}
