// Package diff compares rendered output on disk with what a build would
// write, without writing or recording anything.
package diff

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	ferrors "git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/project"
)

// File is the difference for one page. An empty Unified means the page would
// be rendered to identical output.
type File struct {
	Page    string `json:"page" yaml:"page"`
	New     bool   `json:"new" yaml:"new"`
	Unified string `json:"unified,omitempty" yaml:"unified,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result holds the diffs of a project.
type Result struct {
	Files []File `json:"files" yaml:"files"`
}

// Project diffs every page a build would render, or every page when all is set.
func Project(ctx context.Context, p *project.Project, all bool) (*Result, error) {
	var changed map[string]bool
	if !all {
		ids, _, err := p.ListChanged()
		if err != nil {
			return nil, err
		}
		changed = make(map[string]bool, len(ids))
		for _, id := range ids {
			changed[id] = true
		}
	}

	res := &Result{Files: []File{}}
	for page, err := range p.Pages() {
		if err != nil {
			return res, err
		}
		if !all && !changed[page.Identifier()] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Files = append(res.Files, Page(ctx, page))
	}
	return res, nil
}

// Page diffs a single page against its current output file.
func Page(ctx context.Context, page *project.Page) File {
	f := File{Page: page.Identifier()}

	doc, err := page.Document(ctx)
	if err != nil {
		f.Error = err.Error()
		return f
	}

	out, err := page.OutputPath()
	if err != nil {
		f.Error = err.Error()
		return f
	}
	// #nosec G304 -- output path is checked to stay inside the output directory
	current, err := os.ReadFile(out)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		f.New = true
	case err != nil:
		f.Error = ferrors.WrapError(err, ferrors.CategoryOutput, "read existing output").Build().Error()
		return f
	}

	f.Unified = Unified(string(current), doc, "a/"+f.Page+".html", "b/"+f.Page+".html")
	return f
}

// Unified returns a unified diff of two documents with three lines of context.
func Unified(from, to, fromName, toName string) string {
	if from == to {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return text
}

// WriteText implements report.TextWriter.
func (r *Result) WriteText(w io.Writer) error {
	var sb strings.Builder
	changed := 0
	for _, f := range r.Files {
		switch {
		case f.Error != "":
			sb.WriteString("# " + f.Page + ": " + f.Error + "\n")
		case f.Unified != "":
			changed++
			sb.WriteString(f.Unified)
		}
	}
	if changed == 0 && sb.Len() == 0 {
		sb.WriteString("No differences.\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
