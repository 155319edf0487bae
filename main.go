package main

import (
	"github.com/alecthomas/kong"

	"brewnote.dev/BrewNote/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("BrewNote"), kong.Description("BrewNote is a personal coffee brewing journal."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
