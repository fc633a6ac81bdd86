package linkcheck

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

// Broken is a link whose target is missing from the output directory.
type Broken struct {
	// Document is the rendered file containing the link, relative to the
	// output directory with forward slashes.
	Document string `json:"document" yaml:"document"`
	URL      string `json:"url" yaml:"url"`
	Tag      string `json:"tag" yaml:"tag"`
}

// Check scans every .html file below outputDir and returns the relative links
// that do not resolve to an existing file. External links, fragments and
// special schemes are not checked.
func Check(ctx context.Context, outputDir string) ([]Broken, error) {
	var broken []Broken
	err := filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		links, err := ExtractLinks(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(outputDir, p)
		if err != nil {
			return err
		}
		doc := filepath.ToSlash(rel)
		for _, l := range links {
			target, ok := localTarget(doc, l.URL)
			if !ok {
				continue
			}
			if !exists(outputDir, target) {
				broken = append(broken, Broken{Document: doc, URL: l.URL, Tag: l.Tag})
			}
		}
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return broken, err
		}
		return broken, errors.WrapError(err, errors.CategoryOutput, "failed to scan output directory").
			WithContext("path", outputDir).
			Build()
	}
	return broken, nil
}

// localTarget resolves link relative to the document doc and returns the
// slash-separated path it points at inside the output directory.
func localTarget(doc, link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}

	var target string
	if strings.HasPrefix(u.Path, "/") {
		target = path.Clean(u.Path)
	} else {
		target = path.Join("/", path.Dir(doc), u.Path)
	}
	if strings.HasSuffix(u.Path, "/") {
		target = path.Join(target, "index.html")
	}
	return strings.TrimPrefix(target, "/"), true
}

func exists(outputDir, target string) bool {
	if target == "" {
		target = "index.html"
	}
	info, err := os.Stat(filepath.Join(outputDir, filepath.FromSlash(target)))
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(outputDir, filepath.FromSlash(target), "index.html"))
		return err == nil
	}
	return true
}
