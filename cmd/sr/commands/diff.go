package commands

import (
	"git.home.luguber.info/inful/staticrender/internal/diff"
)

// DiffCmd implements the 'diff' command.
type DiffCmd struct {
	ProjectArg `embed:""`
	All        bool `help:"Diff every page, not only changed ones"`
}

func (d *DiffCmd) Run(g *Global, _ *CLI) error {
	p, err := openProject(g, d.Path())
	if err != nil {
		return err
	}
	defer closeProject(g, p)

	res, err := diff.Project(g.context(), p, d.All)
	if err != nil {
		return err
	}
	return res.WriteText(g.out())
}
