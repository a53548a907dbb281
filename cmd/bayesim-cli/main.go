package main

import (
	"fmt"
	"os"

	"github.com/bayesim-dev/bayesim/cmd/bayesim-cli/bayesim"
	"github.com/urfave/cli/v2"
)

// initBayesimApp initializes the bayesim-cli app. This function is called
// by the main function and unit tests.
func initBayesimApp() *cli.App {
	return &cli.App{
		Name:     "Bayesim Model Fitting Manager",
		HelpName: "bayesim",
		Flags:    []cli.Flag{},
		Commands: []*cli.Command{
			&bayesim.SurvivalCommand,
			&bayesim.DisastersCommand,
			&bayesim.SummaryCommand,
			&bayesim.VisualizeCommand,
		},
	}
}

// main implements the "bayesim" cli application.
func main() {
	app := initBayesimApp()
	if err := app.Run(os.Args); err != nil {
		code := 1
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
