package main

import (
	"github.com/alecthomas/kong"

	"github.com/nocshop/shopgen/cmd/shopgen/commands"
)

// Set via -ldflags at release time.
var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("shopgen"),
		kong.Description("Generate the NoC Shop documentation pages from catalogued RFNoC repositories."),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&commands.Global{
		ConfigPath: cli.Config,
		Verbose:    cli.Verbose,
	})
	ctx.FatalIfErrorf(err)
}
