package content

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

// Fingerprint returns the hex SHA-256 digest of data. Any byte change in data
// produces a different fingerprint.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ReadSource reads a page source file. The bytes must be valid UTF-8.
func ReadSource(filePath string) ([]byte, error) {
	// #nosec G304 -- filePath comes from walking the project source tree
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategorySource, "failed to read page source").
			NextBuild().
			WithContext("path", filePath).
			Build()
	}
	if !utf8.Valid(data) {
		return nil, errors.SourceError("page source is not valid UTF-8").
			WithContext("path", filePath).
			Build()
	}
	return data, nil
}

// Identifier derives a page identifier from a path relative to the source root:
// forward slashes, no leading slash, suffix removed. The bytes of the path are
// kept as they are on disk. It reports false when the file name does not carry
// suffix or consists of the suffix alone.
func Identifier(relPath, suffix string) (string, bool) {
	slashed := strings.TrimLeft(filepath.ToSlash(relPath), "/")
	base := path.Base(slashed)
	if !strings.HasSuffix(base, suffix) || len(base) == len(suffix) {
		return "", false
	}
	return strings.TrimSuffix(slashed, suffix), true
}

// CollisionKey returns the NFC form of an identifier. Identifiers that differ
// on disk but share a key display as the same name and clash on filesystems
// that normalize file names.
func CollisionKey(id string) string {
	return norm.NFC.String(id)
}
