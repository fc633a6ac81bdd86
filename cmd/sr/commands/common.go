package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/staticrender/internal/config"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
	"git.home.luguber.info/inful/staticrender/internal/project"
	"git.home.luguber.info/inful/staticrender/internal/report"
	"git.home.luguber.info/inful/staticrender/internal/vcs"
)

// Global carries process state shared by all subcommands.
type Global struct {
	Ctx    context.Context
	Out    io.Writer
	Logger *slog.Logger
}

func (g *Global) context() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Create CreateCmd `cmd:"" help:"Create a new project directory"`
	List   ListCmd   `cmd:"" help:"List pages that need re-rendering"`
	Render RenderCmd `cmd:"" help:"Render changed pages (all pages with --force)"`
	Diff   DiffCmd   `cmd:"" help:"Show how rendering would change the output, without writing"`
	Prune  PruneCmd  `cmd:"" help:"Remove hash database entries for deleted sources"`
	Watch  WatchCmd  `cmd:"" help:"Rebuild whenever sources, templates or configuration change"`
	Check  CheckCmd  `cmd:"" help:"Report relative links in the output that do not resolve"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// ProjectArg is the project directory positional shared by most commands.
type ProjectArg struct {
	Dir string `arg:"" optional:"" name:"project" help:"Project directory (default: $SR_PROJECT or the current directory)" type:"path"`
}

// Path resolves the project directory.
func (a ProjectArg) Path() string {
	if a.Dir != "" {
		return a.Dir
	}
	if env := os.Getenv(config.EnvProject); env != "" {
		return env
	}
	return "."
}

// FormatFlag selects text, json or yaml output.
type FormatFlag struct {
	Format string `short:"f" help:"Output format (text, json, yaml)" default:"text" enum:"text,txt,json,yaml,yml"`
}

func (f FormatFlag) encode(w io.Writer, v report.TextWriter) error {
	format, err := report.ParseFormat(f.Format)
	if err != nil {
		return err
	}
	return report.Encode(w, format, v)
}

func openProject(g *Global, dir string, opts ...project.Option) (*project.Project, error) {
	opts = append([]project.Option{project.WithLogger(g.logger())}, opts...)
	return project.Open(g.context(), dir, opts...)
}

func closeProject(g *Global, p *project.Project) {
	if err := p.Close(); err != nil {
		g.logger().Warn("Failed to close project", logfields.Project(p.Root()), logfields.Error(err))
	}
}

// revision looks up version control information for the project. Failures
// are logged and leave the report without a revision.
func revision(g *Global, root string) *vcs.Info {
	info, err := vcs.Revision(root)
	if err != nil {
		g.logger().Debug("Revision lookup failed", logfields.Project(root), logfields.Error(err))
		return nil
	}
	return info
}
