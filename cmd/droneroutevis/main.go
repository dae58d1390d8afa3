// Command droneroutevis provides a GUI visualization of computed delivery
// routes. It runs every configured solver on the scenario up front, then
// opens a window for replaying and comparing their solutions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/drone-delivery-research/internal/config"
	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/scenario"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/state"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	scenarioPath := flag.String("scenario", "", "scenario JSON to visualize (default: built-in small scenario)")
	flag.Parse()

	cfg := config.Default()
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fatal(err)
		}
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger, err := cfg.Log.Build()
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	var sc *core.Scenario
	if *scenarioPath != "" {
		sc, err = scenario.Load(*scenarioPath)
		if err != nil {
			fatal(err)
		}
	} else {
		sc = scenario.CannedSmall()
	}

	st := state.New(sc, solveAll(sc, cfg, logger))

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Drone Delivery Routes"),
			app.Size(unit.Dp(1400), unit.Dp(900)),
		)

		application := vis.NewApp(st)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func solveAll(sc *core.Scenario, cfg *config.Config, logger *zap.Logger) []state.SolverRun {
	solvers := cfg.Solvers(logger)
	runs := make([]state.SolverRun, 0, len(solvers))
	for _, s := range solvers {
		ctx := context.Background()
		cancel := func() {}
		if budget := cfg.Budget(); budget > 0 {
			ctx, cancel = context.WithTimeout(ctx, budget)
		}
		sol := s.Solve(ctx, sc)
		cancel()

		logger.Info("solver finished",
			zap.String("solver", s.Name()),
			zap.Stringer("status", sol.Status),
			zap.Int("served", sol.Served()),
			zap.Duration("elapsed", sol.Elapsed))
		runs = append(runs, state.SolverRun{Name: s.Name(), Solution: sol})
	}
	return runs
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "droneroutevis: %v\n", err)
	os.Exit(1)
}
