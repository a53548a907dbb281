package utils

import (
	"github.com/bayesim-dev/bayesim/inference"
	"github.com/bayesim-dev/bayesim/logger"
	"github.com/urfave/cli/v2"
)

// Config holds the run parameters of a command.
type Config struct {
	AppName     string
	CommandName string

	Iterations   int    // sampling iterations per chain, including burn-in
	BurnIn       int    // discarded leading iterations
	Thin         int    // keep every Thin-th iteration after burn-in
	Chains       int    // number of independent chains
	Seed         int64  // random seed
	TuneInterval int    // iterations between step-size adjustments
	Masked       bool   // fit the masked disaster-series variant
	Output       string // trace output path
	TraceDb      string // trace database directory
	Port         string // visualization port
	LogLevel     string // logging level
}

// NewConfig creates a config with the user's flag values; flags that were
// not set keep their default values.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := &Config{
		AppName:      ctx.App.HelpName,
		CommandName:  ctx.Command.Name,
		Iterations:   ctx.Int(IterationsFlag.Name),
		BurnIn:       ctx.Int(BurnInFlag.Name),
		Thin:         ctx.Int(ThinFlag.Name),
		Chains:       ctx.Int(ChainsFlag.Name),
		Seed:         ctx.Int64(RandomSeedFlag.Name),
		TuneInterval: ctx.Int(TuneIntervalFlag.Name),
		Masked:       ctx.Bool(MaskedFlag.Name),
		Output:       ctx.Path(OutputFlag.Name),
		TraceDb:      ctx.Path(TraceDbFlag.Name),
		Port:         ctx.String(PortFlag.Name),
		LogLevel:     ctx.String(logger.LogLevelFlag.Name),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg, nil
}

// FitConfig converts the run parameters to fitting parameters.
func (cfg *Config) FitConfig() *inference.Config {
	return &inference.Config{
		Iterations:   cfg.Iterations,
		BurnIn:       cfg.BurnIn,
		Thin:         cfg.Thin,
		Chains:       cfg.Chains,
		Seed:         cfg.Seed,
		TuneInterval: cfg.TuneInterval,
	}
}
