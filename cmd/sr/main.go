package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/staticrender/cmd/sr/commands"
	"git.home.luguber.info/inful/staticrender/internal/config"
	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/version"
)

func main() {
	if _, err := config.LoadEnv(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("sr"),
		kong.Description("Incremental static site renderer"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Ctx: ctx, Out: os.Stdout, Logger: slog.Default()}, cli)
	if err == nil {
		return
	}
	cancel()
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
