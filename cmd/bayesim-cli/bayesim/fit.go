package bayesim

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bayesim-dev/bayesim/inference"
	"github.com/bayesim-dev/bayesim/logger"
	"github.com/bayesim-dev/bayesim/trace"
	"github.com/bayesim-dev/bayesim/utils"
)

// runFit fits a model, prints the posterior summary, and stores the traces
// as requested by the run parameters.
func runFit(cfg *utils.Config, m *inference.Model, log logger.Logger) error {
	start := time.Now()
	traces, err := inference.Sample(m, cfg.FitConfig(), log)
	if err != nil {
		return err
	}

	summaries, err := inference.SummarizeTrace(traces[0])
	if err != nil {
		return err
	}
	inference.WriteSummaryTable(os.Stdout, summaries)

	// scale-reduction factors require at least two chains
	if len(traces) > 1 {
		for _, name := range traces[0].Names() {
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

	if cfg.Output != "" {
		log.Noticef("Write trace of chain 0 to %v", cfg.Output)
		if err := writeTrace(traces[0], cfg.Output); err != nil {
			return err
		}
	}
	if cfg.TraceDb != "" {
		log.Noticef("Write %v chains to trace database %v", len(traces), cfg.TraceDb)
		if err := writeTraceDb(traces, cfg.TraceDb, log); err != nil {
			return err
		}
	}

	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Total elapsed time: %vh %vm %vs", hours, minutes, seconds)
	return nil
}

// writeTrace stores a trace under the given path; the suffix selects the
// format (JSON, gzip'd JSON, or the binary trace-file format).
func writeTrace(t *trace.Trace, fname string) error {
	if strings.HasSuffix(fname, ".json") || strings.HasSuffix(fname, ".json.gz") {
		return t.WriteJSON(fname)
	}
	return t.WriteFile(fname)
}

// readTrace loads a trace written by writeTrace.
func readTrace(fname string) (*trace.Trace, error) {
	if strings.HasSuffix(fname, ".json") || strings.HasSuffix(fname, ".json.gz") {
		return trace.ReadJSON(fname)
	}
	return trace.ReadFile(fname)
}

// writeTraceDb stores all chains in a trace database.
func writeTraceDb(traces []*trace.Trace, path string, log logger.Logger) error {
	db, err := trace.OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()
	for chain, t := range traces {
		if err := db.PutTrace(chain, t); err != nil {
			return err
		}
	}
	size, err := db.Size()
	if err != nil {
		return err
	}
	log.Infof("trace database size: %v", size.HumanReadable())
	return nil
}

// readTraceDb loads all chains of a trace database.
func readTraceDb(path string) ([]*trace.Trace, error) {
	db, err := trace.OpenDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	numChains, err := db.NumChains()
	if err != nil {
		return nil, err
	}
	if numChains == 0 {
		return nil, fmt.Errorf("trace database %v holds no chains", path)
	}
	traces := make([]*trace.Trace, numChains)
	for chain := 0; chain < numChains; chain++ {
		if traces[chain], err = db.GetTrace(chain); err != nil {
			return nil, err
		}
	}
	return traces, nil
}
