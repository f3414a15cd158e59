package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/nocshop/shopgen/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	ConfigPath string
	Verbose    bool
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"shopgen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Run the full generation pipeline (fetch, scan, render)"`
	Fetch    FetchCmd    `cmd:"" help:"Clone catalog repositories into the workspace without rendering"`
	Scan     ScanCmd     `cmd:"" help:"Scan the workspace and report discovered items without rendering"`
	Render   RenderCmd   `cmd:"" help:"Render pages from the current workspace without fetching"`
	Build    BuildCmd    `cmd:"" help:"Generate pages and invoke the external site build tool"`
	Daemon   DaemonCmd   `cmd:"" help:"Run continuously, regenerating on source changes and on a schedule"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration file, falling back to built-in
// defaults when the default config file is absent.
func loadConfig(g *Global) (*config.Config, error) {
	if _, err := os.Stat(g.ConfigPath); os.IsNotExist(err) && g.ConfigPath == "shopgen.yaml" {
		slog.Debug("No configuration file found, using defaults")
		return config.Default(), nil
	}
	return config.Load(g.ConfigPath)
}
