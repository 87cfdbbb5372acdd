package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite-commonmark/cmd/docsite/commands"
	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite-commonmark/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docsite"),
		kong.Description("Static documentation site generator with a CommonMark renderer plugin."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global, err := commands.NewGlobal()
	if err == nil {
		err = parser.Run(global, cli)
	}
	if err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
