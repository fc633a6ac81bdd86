package templates

import (
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

// OutputPath returns the absolute path for a document under outputDir.
// The relative path must stay inside outputDir.
func OutputPath(outputDir, relativePath string) (string, error) {
	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if relativePath == "" || filepath.IsAbs(cleanRel) || strings.HasPrefix(cleanRel, "..") {
		return "", ErrInvalidOutputPath.WithContext("path", relativePath)
	}

	fullPath := filepath.Join(outputDir, cleanRel)
	rel, err := filepath.Rel(outputDir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidOutputPath.WithContext("path", relativePath)
	}
	return fullPath, nil
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryOutput, "create output directory").
			NextBuild().
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	return nil
}

// WriteFile replaces path with content. The document is written to a
// temporary file in the same directory and renamed into place, so readers
// never observe a partially written file.
func WriteFile(path, content string) error {
	wrap := func(err error, msg string) error {
		return errors.WrapError(err, errors.CategoryOutput, msg).
			NextBuild().
			WithContext("path", path).
			Build()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return wrap(err, "create output file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return wrap(err, "write output file")
	}
	if err := tmp.Close(); err != nil {
		return wrap(err, "write output file")
	}
	// #nosec G302 -- rendered pages are meant to be world readable
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return wrap(err, "write output file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return wrap(err, "replace output file")
	}
	return nil
}
