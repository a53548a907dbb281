package bayesim

import (
	"github.com/bayesim-dev/bayesim/logger"
	"github.com/bayesim-dev/bayesim/tutorial"
	"github.com/bayesim-dev/bayesim/utils"
	"github.com/urfave/cli/v2"
)

// SurvivalCommand data structure for the survival-model fitting app.
var SurvivalCommand = cli.Command{
	Action: survivalAction,
	Name:   "survival",
	Usage:  "fits the survival model of the mastectomy data",
	Flags: []cli.Flag{
		&utils.IterationsFlag,
		&utils.BurnInFlag,
		&utils.ThinFlag,
		&utils.ChainsFlag,
		&utils.RandomSeedFlag,
		&utils.TuneIntervalFlag,
		&utils.OutputFlag,
		&utils.TraceDbFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The survival command fits the censored-exponential survival model of the
mastectomy data: an intercept and a metastized effect with Normal priors,
and the deterministic death rates computed from them. It prints the
posterior summary and optionally stores the trace.`,
}

// survivalAction implements the survival command.
func survivalAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Survival")

	m, err := tutorial.NewSurvivalModel()
	if err != nil {
		return err
	}
	return runFit(cfg, m, log)
}
