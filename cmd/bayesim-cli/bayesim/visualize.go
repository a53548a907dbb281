package bayesim

import (
	"fmt"

	"github.com/bayesim-dev/bayesim/inference"
	"github.com/bayesim-dev/bayesim/inference/visualizer"
	"github.com/bayesim-dev/bayesim/logger"
	"github.com/bayesim-dev/bayesim/tutorial"
	"github.com/bayesim-dev/bayesim/utils"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand data structure for the posterior visualization app.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "serves trace plots, posterior histograms, and the model graph over HTTP",
	ArgsUsage: "<trace-file>",
	Flags: []cli.Flag{
		&utils.TraceDbFlag,
		&utils.PortFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The visualize command reads a trace produced by a fitting command, either
from a trace file given as argument or from a trace database given with
--trace-db, and serves the posterior charts on the given port.`,
}

// visualizeAction implements the visualize command.
func visualizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Visualize")

	traces, err := loadTraces(ctx, cfg)
	if err != nil {
		return err
	}

	// rebuild the fitted model for the dependency-graph page
	m, err := modelByName(traces[0].Model())
	if err != nil {
		log.Warningf("%v; the model-graph page stays empty", err)
	}
	if err := visualizer.GetViewData().PopulateViewData(m, traces); err != nil {
		return err
	}

	log.Noticef("Open web browser with http://localhost:%v", cfg.Port)
	log.Notice("Cancel visualization with ^C")
	visualizer.FireUpWeb(cfg.Port)
	return nil
}

// modelByName rebuilds a tutorial model from the model name of a trace.
func modelByName(name string) (*inference.Model, error) {
	switch name {
	case tutorial.SurvivalModelName:
		return tutorial.NewSurvivalModel()
	case tutorial.DisastersModelName:
		return tutorial.NewDisastersModel(false)
	case tutorial.MaskedDisastersModelName:
		return tutorial.NewDisastersModel(true)
	}
	return nil, fmt.Errorf("unknown model %v", name)
}
