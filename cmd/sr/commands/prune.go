package commands

import (
	"git.home.luguber.info/inful/staticrender/internal/report"
)

// PruneCmd implements the 'prune' command. Without --apply it only lists.
type PruneCmd struct {
	ProjectArg `embed:""`
	FormatFlag `embed:""`
	Apply      bool `help:"Delete the stale entries instead of listing them"`
}

func (c *PruneCmd) Run(g *Global, _ *CLI) error {
	p, err := openProject(g, c.Path())
	if err != nil {
		return err
	}
	defer closeProject(g, p)

	var stale []string
	if c.Apply {
		stale, err = p.Prune(g.context())
	} else {
		stale, err = p.Stale()
	}
	if err != nil {
		return err
	}
	return c.encode(g.out(), &report.Prune{Stale: stale, Applied: c.Apply})
}
