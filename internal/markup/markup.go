// Package markup converts page bodies from Markdown to HTML with goldmark.
package markup

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

// Options configures a Converter.
type Options struct {
	// Extensions are addon names from the markdown.addons setting.
	Extensions []string
	// Safe drops raw HTML from the source instead of passing it through.
	Safe bool
}

// Converter renders Markdown to HTML. It is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

type setup struct {
	extensions []goldmark.Extender
	parserOpts []parser.Option
}

var addons = map[string]func(*setup){
	"tables":        func(s *setup) { s.extensions = append(s.extensions, extension.Table) },
	"strikethrough": func(s *setup) { s.extensions = append(s.extensions, extension.Strikethrough) },
	"linkify":       func(s *setup) { s.extensions = append(s.extensions, extension.Linkify) },
	"tasklist":      func(s *setup) { s.extensions = append(s.extensions, extension.TaskList) },
	"gfm":           func(s *setup) { s.extensions = append(s.extensions, extension.GFM) },
	"footnote":      func(s *setup) { s.extensions = append(s.extensions, extension.Footnote) },
	"definitionlist": func(s *setup) {
		s.extensions = append(s.extensions, extension.DefinitionList)
	},
	"typographer":   func(s *setup) { s.extensions = append(s.extensions, extension.Typographer) },
	"attributes":    func(s *setup) { s.parserOpts = append(s.parserOpts, parser.WithAttribute()) },
	"autoheadingid": func(s *setup) { s.parserOpts = append(s.parserOpts, parser.WithAutoHeadingID()) },
	"extra": func(s *setup) {
		s.extensions = append(s.extensions, extension.Table, extension.Footnote, extension.DefinitionList)
		s.parserOpts = append(s.parserOpts, parser.WithAttribute())
	},
}

// aliases map addon names used by other Markdown tools onto the names above.
var aliases = map[string]string{
	"footnotes": "footnote",
	"def_list":  "definitionlist",
	"smarty":    "typographer",
	"toc":       "autoheadingid",
	"attr_list": "attributes",
}

// New builds a Converter. Unknown addon names are a configuration error.
func New(opts Options) (*Converter, error) {
	var s setup
	seen := make(map[string]bool)
	for _, raw := range opts.Extensions {
		name := canonicalName(raw)
		if name == "" || seen[name] {
			continue
		}
		apply, ok := addons[name]
		if !ok {
			return nil, errors.ConfigError("unknown markdown addon").
				WithContext("addon", raw).
				WithContext("valid", strings.Join(Addons(), ", ")).
				Build()
		}
		seen[name] = true
		apply(&s)
	}

	var rendererOpts []goldmark.Option
	if !opts.Safe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(s.extensions...),
		goldmark.WithParserOptions(s.parserOpts...),
	}, rendererOpts...)...)

	return &Converter{md: md}, nil
}

// Convert renders text to HTML.
func (c *Converter) Convert(text []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(text, &buf); err != nil {
		return "", errors.WrapError(err, errors.CategoryMarkup, "markdown conversion failed").NextBuild().Build()
	}
	return buf.String(), nil
}

// Addons lists the recognized addon names, aliases included.
func Addons() []string {
	names := make([]string, 0, len(addons)+len(aliases))
	for name := range addons {
		names = append(names, name)
	}
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func canonicalName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	// "markdown.extensions.tables" style names
	name = strings.TrimPrefix(name, "markdown.extensions.")
	if alias, ok := aliases[name]; ok {
		return alias
	}
	return name
}
