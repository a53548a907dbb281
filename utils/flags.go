package utils

import (
	"github.com/urfave/cli/v2"
)

// Command line options shared by the fitting and reporting commands.
var (
	IterationsFlag = cli.IntFlag{
		Name:    "iterations",
		Aliases: []string{"n"},
		Usage:   "number of sampling iterations per chain, including burn-in",
		Value:   20000,
	}
	BurnInFlag = cli.IntFlag{
		Name:  "burn-in",
		Usage: "number of leading iterations discarded from each chain",
		Value: 5000,
	}
	ThinFlag = cli.IntFlag{
		Name:  "thin",
		Usage: "keep every n-th iteration after burn-in",
		Value: 10,
	}
	ChainsFlag = cli.IntFlag{
		Name:  "chains",
		Usage: "number of independent chains",
		Value: 2,
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "random-seed",
		Usage: "Set random seed",
		Value: 1,
	}
	TuneIntervalFlag = cli.IntFlag{
		Name:  "tune-interval",
		Usage: "iterations between proposal step-size adjustments during burn-in",
		Value: 100,
	}
	OutputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output path of the trace file (.json, .json.gz, or binary .trace)",
	}
	TraceDbFlag = cli.PathFlag{
		Name:  "trace-db",
		Usage: "directory of the trace database",
	}
	PortFlag = cli.StringFlag{
		Name:        "port",
		Aliases:     []string{"v"},
		Usage:       "enable visualization on `PORT`",
		DefaultText: "8080",
	}
	MaskedFlag = cli.BoolFlag{
		Name:  "masked",
		Usage: "fit the masked variant of the disaster series and impute the missing counts",
	}
)
