// Package report renders command results for people (text) and for tools
// (json, yaml).
package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/foundation/normalization"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var formatNormalizer = normalization.NewNormalizer(map[string]Format{
	"text": FormatText,
	"txt":  FormatText,
	"json": FormatJSON,
	"yaml": FormatYAML,
	"yml":  FormatYAML,
}, FormatText)

// ParseFormat resolves a --format flag value. Empty input selects text.
func ParseFormat(raw string) (Format, error) {
	f, err := formatNormalizer.NormalizeWithError(raw)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryValidation, "unsupported output format").
			WithContext("format", raw).
			Build()
	}
	return f, nil
}

// TextWriter is implemented by values with a human readable rendering.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, format Format, v TextWriter) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return v.WriteText(w)
	}
}
