package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/staticrender/internal/config"
	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/project"
)

// StandardTemplate is written to templates/standard.html in new projects.
const StandardTemplate = "<!-- Put your layout here. -->\n{{.content}}\n"

// CreateCmd implements the 'create' command.
type CreateCmd struct {
	Dir   string `arg:"" name:"directory" help:"Directory to create the project in" type:"path"`
	Force bool   `help:"Create the project even if the directory is not empty"`
}

func (c *CreateCmd) Run(g *Global, _ *CLI) error {
	return RunCreate(g, c.Dir, c.Force)
}

// RunCreate scaffolds a project: source, templates and output directories,
// config.ini and a standard template.
func RunCreate(g *Global, dir string, force bool) error {
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 && !force {
		return errors.ValidationError("directory is not empty (use --force to create anyway)").
			WithContext("path", dir).
			Build()
	}

	for _, sub := range []string{project.SourceDir, project.TemplatesDir, project.OutputDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryOutput, "failed to create project directory").
				Fatal().
				WithContext("path", filepath.Join(dir, sub)).
				Build()
		}
	}

	if err := config.WriteDefault(filepath.Join(dir, config.FileName), force); err != nil {
		return err
	}

	tmpl := filepath.Join(dir, project.TemplatesDir, config.DefaultTemplate)
	if _, err := os.Stat(tmpl); err != nil || force {
		// #nosec G306 -- templates are meant to be world readable
		if err := os.WriteFile(tmpl, []byte(StandardTemplate), 0o644); err != nil {
			return errors.WrapError(err, errors.CategoryOutput, "failed to write standard template").
				Fatal().
				WithContext("path", tmpl).
				Build()
		}
	}

	_, err := fmt.Fprintf(g.out(), "Created a new project under %s\n", dir)
	return err
}
