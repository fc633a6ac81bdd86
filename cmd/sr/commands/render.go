package commands

import (
	"git.home.luguber.info/inful/staticrender/internal/notify"
	"git.home.luguber.info/inful/staticrender/internal/project"
	"git.home.luguber.info/inful/staticrender/internal/report"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	ProjectArg `embed:""`
	FormatFlag `embed:""`

	Force bool   `help:"Render every page, changed or not"`
	Page  string `help:"Render only the page with this identifier"`
	NATS  string `name:"nats-url" help:"Publish the build report to this NATS server" env:"SR_NATS_URL"`
	Topic string `name:"nats-subject" help:"NATS subject for build reports" default:"sr.builds"`
}

func (r *RenderCmd) Run(g *Global, _ *CLI) error {
	var notifier *notify.Notifier
	if r.NATS != "" {
		n, err := notify.Connect(r.NATS, r.Topic, g.logger())
		if err != nil {
			return err
		}
		defer func() { _ = n.Close() }()
		notifier = n
	}

	b, err := RunRender(g, r.Path(), r.Force, r.Page)
	if b == nil {
		return err
	}
	if notifier != nil {
		if nerr := notifier.Notify(g.context(), b); nerr != nil && err == nil {
			err = nerr
		}
	}
	if encErr := r.encode(g.out(), b); encErr != nil && err == nil {
		err = encErr
	}
	return err
}

// RunRender opens the project, renders it and returns the build report. The
// report is nil only when the project could not be opened. The returned error
// is the fatal build error, or a summary of page failures.
func RunRender(g *Global, dir string, force bool, page string, opts ...project.Option) (*report.Build, error) {
	p, err := openProject(g, dir, opts...)
	if err != nil {
		return nil, err
	}
	defer closeProject(g, p)

	var result *project.BuildResult
	if page != "" {
		result, err = p.RenderPage(g.context(), page, force)
	} else {
		result, err = p.Render(g.context(), force)
	}

	b := report.NewBuild(p.Root(), result, revision(g, p.Root()), err)
	if err == nil {
		err = result.Err()
	}
	return b, err
}
