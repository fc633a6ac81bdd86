package commands

import (
	"git.home.luguber.info/inful/staticrender/internal/report"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	ProjectArg `embed:""`
	FormatFlag `embed:""`
}

func (l *ListCmd) Run(g *Global, _ *CLI) error {
	p, err := openProject(g, l.Path())
	if err != nil {
		return err
	}
	defer closeProject(g, p)

	configChanged := p.ConfigChanged()
	changed, unchanged, err := p.ListChanged()
	if err != nil {
		return err
	}
	return l.encode(g.out(), report.NewChanges(configChanged, changed, unchanged))
}
