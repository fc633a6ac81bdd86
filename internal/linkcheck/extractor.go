// Package linkcheck finds relative links in rendered documents that do not
// resolve to a file in the output directory.
package linkcheck

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL       string // The URL or path
	Text      string // Link text/title
	Tag       string // HTML tag (a, img, script, link, etc.)
	Attribute string // Attribute containing the link (href, src)
}

// linkAttrs maps element names to the attribute holding their target.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"video":  "src",
	"audio":  "src",
	"source": "src",
}

// ExtractLinks extracts all links from an HTML file.
func ExtractLinks(htmlPath string) ([]Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryOutput, "failed to open HTML file").WithContext("path", htmlPath).Build()
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	return ExtractLinksFromReader(file)
}

// ExtractLinksFromReader extracts all links from an HTML reader in document order.
func ExtractLinksFromReader(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").WithSeverity(errors.SeverityError).Build()
	}

	var links []Link
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := linkAttrs[n.Data]; ok {
				if target := getAttr(n, attr); target != "" {
					links = append(links, Link{URL: target, Text: linkText(n), Tag: n.Data, Attribute: attr})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)
	return links, nil
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func linkText(n *html.Node) string {
	switch n.Data {
	case "img":
		return getAttr(n, "alt")
	case "link":
		return getAttr(n, "rel")
	case "a":
		return extractText(n)
	}
	return ""
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}

	return strings.TrimSpace(text.String())
}
