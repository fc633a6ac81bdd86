package report

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/staticrender/internal/linkcheck"
)

// Changes lists which pages a build would render.
type Changes struct {
	ConfigChanged bool     `json:"config_changed" yaml:"config_changed"`
	Changed       []string `json:"changed" yaml:"changed"`
	Unchanged     []string `json:"unchanged" yaml:"unchanged"`
}

// NewChanges wraps a ListChanged partition.
func NewChanges(configChanged bool, changed, unchanged []string) *Changes {
	return &Changes{ConfigChanged: configChanged, Changed: nonNil(changed), Unchanged: nonNil(unchanged)}
}

// WriteText implements TextWriter.
func (c *Changes) WriteText(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("Files that need re-rendering:\n")
	for _, id := range c.Changed {
		sb.WriteString(" " + id + "\n")
	}
	sb.WriteString("Files that don't need to be rendered:\n")
	for _, id := range c.Unchanged {
		sb.WriteString(" " + id + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Prune lists hash database entries without a source file.
type Prune struct {
	Stale   []string `json:"stale" yaml:"stale"`
	Applied bool     `json:"applied" yaml:"applied"`
}

// WriteText implements TextWriter.
func (p *Prune) WriteText(w io.Writer) error {
	var sb strings.Builder
	switch {
	case len(p.Stale) == 0:
		sb.WriteString("No stale entries.\n")
	case p.Applied:
		fmt.Fprintf(&sb, "Removed %d stale entries:\n", len(p.Stale))
	default:
		fmt.Fprintf(&sb, "%d stale entries (use --apply to remove):\n", len(p.Stale))
	}
	for _, id := range p.Stale {
		sb.WriteString(" " + id + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Links lists broken links found in the output directory.
type Links struct {
	Broken []linkcheck.Broken `json:"broken" yaml:"broken"`
}

// WriteText implements TextWriter.
func (l *Links) WriteText(w io.Writer) error {
	var sb strings.Builder
	if len(l.Broken) == 0 {
		sb.WriteString("No broken links.\n")
	}
	for _, b := range l.Broken {
		fmt.Fprintf(&sb, "%s: broken %s link %q\n", b.Document, b.Tag, b.URL)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
