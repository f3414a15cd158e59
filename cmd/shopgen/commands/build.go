package commands

import (
	"context"

	"github.com/nocshop/shopgen/internal/pipeline"
	"github.com/nocshop/shopgen/internal/site"
)

// BuildCmd runs the pipeline and then the external site tool, mirroring the
// pre-build hook used by documentation frameworks.
type BuildCmd struct{}

func (cmd *BuildCmd) Run(g *Global) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	return site.NewBuilder(cfg, pipeline.NewRunner(cfg)).Build(context.Background())
}
