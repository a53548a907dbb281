package bayesim

import (
	"fmt"
	"os"

	"github.com/bayesim-dev/bayesim/inference"
	"github.com/bayesim-dev/bayesim/logger"
	"github.com/bayesim-dev/bayesim/trace"
	"github.com/bayesim-dev/bayesim/utils"
	"github.com/urfave/cli/v2"
)

// gewekeIntervals is the number of leading segments of the Geweke report.
const gewekeIntervals = 20

// SummaryCommand data structure for the trace reporting app.
var SummaryCommand = cli.Command{
	Action:    summaryAction,
	Name:      "summary",
	Usage:     "prints posterior summaries and convergence diagnostics of a stored trace",
	ArgsUsage: "<trace-file>",
	Flags: []cli.Flag{
		&utils.TraceDbFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The summary command reads a trace produced by a fitting command, either
from a trace file given as argument or from a trace database given with
--trace-db, and prints the posterior summary together with effective sample
sizes, Geweke scores, and, with several stored chains, the Gelman-Rubin
scale-reduction factors.`,
}

// summaryAction implements the summary command.
func summaryAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Summary")

	traces, err := loadTraces(ctx, cfg)
	if err != nil {
		return err
	}
	first := traces[0]
	log.Noticef("model %v: %v chains, %v samples", first.Model(), len(traces), first.Len())

	summaries, err := inference.SummarizeTrace(first)
	if err != nil {
		return err
	}
	inference.WriteSummaryTable(os.Stdout, summaries)

	for _, name := range first.Names() {
		xs, err := first.Get(name)
		if err != nil {
			return err
		}
		log.Infof("effective sample size of %v: %.0f", name, inference.EffectiveSampleSize(xs))
		scores, err := inference.Geweke(xs, gewekeIntervals)
		if err != nil {
			log.Warningf("no Geweke scores of %v; %v", name, err)
			continue
		}
		outliers := 0
		for _, s := range scores {
			if s.Z < -2.0 || s.Z > 2.0 {
				outliers++
			}
		}
		if outliers > 0 {
			log.Warningf("Geweke scores of %v: %v of %v segments beyond +-2", name, outliers, len(scores))
		}
	}

	if len(traces) > 1 {
		for _, name := range first.Names() {
			chains := [][]float64{}
			for _, t := range traces {
				xs, err := t.Get(name)
				if err != nil {
					return err
				}
				chains = append(chains, xs)
			}
			rhat, err := inference.GelmanRubin(chains)
			if err != nil {
				return err
			}
			log.Infof("R-hat of %v: %.3f", name, rhat)
		}
	}
	return nil
}

// loadTraces reads the chains named by the command line: a trace database
// when --trace-db is given, the trace file argument otherwise.
func loadTraces(ctx *cli.Context, cfg *utils.Config) ([]*trace.Trace, error) {
	if cfg.TraceDb != "" {
		return readTraceDb(cfg.TraceDb)
	}
	if ctx.Args().Len() != 1 {
		return nil, fmt.Errorf("missing trace file")
	}
	t, err := readTrace(ctx.Args().Get(0))
	if err != nil {
		return nil, err
	}
	return []*trace.Trace{t}, nil
}
