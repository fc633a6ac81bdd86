package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/project"
	"git.home.luguber.info/inful/staticrender/internal/vcs"
)

// Build describes one build pass.
type Build struct {
	BuildID       string    `json:"build_id" yaml:"build_id"`
	Project       string    `json:"project" yaml:"project"`
	Revision      *vcs.Info `json:"revision,omitempty" yaml:"revision,omitempty"`
	StartedAt     time.Time `json:"started_at" yaml:"started_at"`
	DurationMS    int64     `json:"duration_ms" yaml:"duration_ms"`
	Forced        bool      `json:"forced" yaml:"forced"`
	ConfigChanged bool      `json:"config_changed" yaml:"config_changed"`
	Rendered      []string  `json:"rendered" yaml:"rendered"`
	Skipped       []string  `json:"skipped" yaml:"skipped"`
	Failed        []Failure `json:"failed,omitempty" yaml:"failed,omitempty"`
	Error         string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failure is a page that failed to render.
type Failure struct {
	Page     string `json:"page" yaml:"page"`
	Category string `json:"category" yaml:"category"`
	Message  string `json:"message" yaml:"message"`
}

// NewBuild builds a report from a build result. buildErr is the fatal error
// returned alongside the result, if any.
func NewBuild(root string, result *project.BuildResult, rev *vcs.Info, buildErr error) *Build {
	b := &Build{
		BuildID:       uuid.NewString(),
		Project:       root,
		Revision:      rev,
		StartedAt:     result.StartedAt.UTC(),
		DurationMS:    result.Duration.Milliseconds(),
		Forced:        result.Forced,
		ConfigChanged: result.ConfigChanged,
		Rendered:      nonNil(result.Rendered),
		Skipped:       nonNil(result.Skipped),
	}
	for _, f := range result.Failed {
		b.Failed = append(b.Failed, Failure{
			Page:     f.Page,
			Category: string(errors.GetCategory(f.Err)),
			Message:  message(f.Err),
		})
	}
	if buildErr != nil {
		b.Error = buildErr.Error()
	}
	return b
}

// WriteText prints the report in the classic sr layout.
func (b *Build) WriteText(w io.Writer) error {
	var sb strings.Builder
	if b.Revision != nil {
		dirty := ""
		if b.Revision.Dirty {
			dirty = " (dirty)"
		}
		fmt.Fprintf(&sb, "Revision: %s%s\n", b.Revision.Short(), dirty)
	}
	if b.ConfigChanged {
		sb.WriteString("Configuration changed, all pages rendered.\n")
	}
	writeSection(&sb, "Pages rendered:", b.Rendered)
	writeSection(&sb, "Pages not rendered:", b.Skipped)
	if len(b.Failed) > 0 {
		sb.WriteString("Pages failed:\n")
		for _, f := range b.Failed {
			fmt.Fprintf(&sb, "%s: %s: %s\n", f.Page, f.Category, f.Message)
		}
	}
	if b.Error != "" {
		fmt.Fprintf(&sb, "Build aborted: %s\n", b.Error)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSection(sb *strings.Builder, title string, ids []string) {
	sb.WriteString(title + "\n")
	if len(ids) == 0 {
		sb.WriteString("None\n")
		return
	}
	for _, id := range ids {
		sb.WriteString(id + "\n")
	}
}

func message(err error) string {
	if classified, ok := errors.AsClassified(err); ok {
		if cause := classified.Cause(); cause != nil {
			return classified.Message() + ": " + cause.Error()
		}
		return classified.Message()
	}
	return err.Error()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
