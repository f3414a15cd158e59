package commands

import (
	"log/slog"

	"github.com/nocshop/shopgen/internal/config"
	"github.com/nocshop/shopgen/internal/logfields"
)

// InitCmd writes a starter configuration file.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (cmd *InitCmd) Run(g *Global) error {
	if err := config.Init(g.ConfigPath, cmd.Force); err != nil {
		return err
	}
	slog.Info("Wrote configuration file", logfields.Path(g.ConfigPath))
	return nil
}
