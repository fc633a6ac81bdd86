package project

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/staticrender/internal/content"
	ferrors "git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

// Pages enumerates the project's pages in lexical path order. Each call walks
// the source tree afresh. Pages are constructed without reading their files;
// a walk error is yielded once and ends the sequence. A missing source
// directory yields nothing. A page whose name only differs from an earlier
// one by Unicode normalization is yielded as invalid and fails when rendered.
func (p *Project) Pages() iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		root := p.SourceRoot()
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			return
		}

		stopped := false
		seen := make(map[string]string)
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			id, ok := content.Identifier(rel, p.settings.Suffix)
			if !ok {
				return nil
			}
			page := p.newPage(id, path)
			key := content.CollisionKey(id)
			if first, dup := seen[key]; dup && page.invalid == nil {
				page.invalid = ferrors.ValidationError("page name collides with another page after Unicode normalization").
					NextBuild().
					WithContext("page", id).
					WithContext("other", first).
					Build()
			} else if !dup {
				seen[key] = id
			}
			if !yield(page, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if walkErr != nil && !stopped {
			yield(nil, ferrors.WrapError(walkErr, ferrors.CategorySource, "failed to walk source tree").
				Fatal().
				WithContext("path", root).
				Build())
		}
	}
}

// Page returns the page called id. The page suffix may be included.
func (p *Project) Page(id string) (*Page, error) {
	suffix := p.settings.Suffix
	id = strings.TrimPrefix(filepath.ToSlash(id), "/")

	candidates := []string{id + suffix}
	if strings.HasSuffix(id, suffix) {
		candidates = append(candidates, id)
	}
	for _, rel := range candidates {
		clean := filepath.Clean(filepath.FromSlash(rel))
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return nil, ferrors.ValidationError("page identifier leaves the source directory").
				WithContext("page", id).
				Build()
		}
		normalized, ok := content.Identifier(clean, suffix)
		if !ok {
			continue
		}
		path := filepath.Join(p.SourceRoot(), clean)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return p.newPage(normalized, path), nil
		}
	}
	return nil, ferrors.NewError(ferrors.CategoryNotFound, "page not found").
		WithContext("page", id).
		Build()
}
