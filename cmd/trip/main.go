package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/trip/internal/cli"
	"github.com/idilsaglam/trip/internal/config"
	"github.com/idilsaglam/trip/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}

	// Root flags (apply to every subcommand)
	dataPath := flag.String("data", cfg.DataPath, "itinerary JSON file")
	theme := flag.String("theme", cfg.Theme, "console theme: classic, neon or mono")
	flag.Parse()

	ui.SetTheme(*theme)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		DataPath: *dataPath,
		Latency:  cfg.Latency,
		Debug:    cfg.Debug,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
