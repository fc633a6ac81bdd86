package commands

import (
	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/linkcheck"
	"git.home.luguber.info/inful/staticrender/internal/report"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	ProjectArg `embed:""`
	FormatFlag `embed:""`
}

func (c *CheckCmd) Run(g *Global, _ *CLI) error {
	p, err := openProject(g, c.Path())
	if err != nil {
		return err
	}
	defer closeProject(g, p)

	broken, err := linkcheck.Check(g.context(), p.OutputRoot())
	if err != nil {
		return err
	}
	if err := c.encode(g.out(), &report.Links{Broken: broken}); err != nil {
		return err
	}
	if len(broken) > 0 {
		return errors.ValidationError("broken links found").
			WithContext("count", len(broken)).
			Build()
	}
	return nil
}
