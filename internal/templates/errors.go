package templates

import (
	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

var (
	// ErrTemplateNotFound indicates the requested template name does not
	// resolve to a file inside the templates directory.
	ErrTemplateNotFound = errors.TemplateError("template not found").Build()

	// ErrInvalidOutputPath indicates an output path that would land outside the
	// output directory.
	ErrInvalidOutputPath = errors.OutputError("output path escapes output directory").Build()
)
