package bayesim

import (
	"github.com/bayesim-dev/bayesim/logger"
	"github.com/bayesim-dev/bayesim/tutorial"
	"github.com/bayesim-dev/bayesim/utils"
	"github.com/urfave/cli/v2"
)

// DisastersCommand data structure for the change-point fitting app.
var DisastersCommand = cli.Command{
	Action: disastersAction,
	Name:   "disasters",
	Usage:  "fits the change-point model of the coal-mining disaster series",
	Flags: []cli.Flag{
		&utils.IterationsFlag,
		&utils.BurnInFlag,
		&utils.ThinFlag,
		&utils.ChainsFlag,
		&utils.RandomSeedFlag,
		&utils.TuneIntervalFlag,
		&utils.MaskedFlag,
		&utils.OutputFlag,
		&utils.TraceDbFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The disasters command fits the change-point model of the yearly coal-mining
disaster counts: a discrete-uniform switch-point and separate Poisson means
for the early and the late regime. With --masked, the counts of the masked
years are imputed alongside the parameters. It prints the posterior summary
and optionally stores the trace.`,
}

// disastersAction implements the disasters command.
func disastersAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Disasters")

	m, err := tutorial.NewDisastersModel(cfg.Masked)
	if err != nil {
		return err
	}
	return runFit(cfg, m, log)
}
