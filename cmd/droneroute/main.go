// Command droneroute compares the route solvers on drone delivery scenarios.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/drone-delivery-research/internal/config"
	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/scenario"
)

func main() {
	configPath := flag.String("config", "", "YAML solver parameter file")
	scenarioPath := flag.String("scenario", "", "scenario file to run instead of the canned workloads")
	seed := flag.Int64("seed", 0, "override the configured random seed")
	timeout := flag.Float64("timeout", -1, "per-solver budget in seconds, 0 for none")
	logLevel := flag.String("log-level", "", "zap level: debug, info, warn, error")
	verbose := flag.Bool("verbose", false, "print per-drone fleet status after each run")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fatal(err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *timeout >= 0 {
		cfg.BudgetSeconds = *timeout
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger, err := cfg.Log.Build()
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	fmt.Println("=== Drone Delivery Routing: Solver Comparison ===")

	if *scenarioPath != "" {
		sc, err := scenario.Load(*scenarioPath)
		if err != nil {
			fatal(err)
		}
		compare(*scenarioPath, sc, cfg, logger, *verbose)
		return
	}

	compare("small fleet", scenario.CannedSmall(), cfg, logger, *verbose)
	compare("large fleet", scenario.CannedLarge(), cfg, logger, *verbose)
}

func compare(name string, sc *core.Scenario, cfg *config.Config, logger *zap.Logger, verbose bool) {
	fmt.Printf("\n--- %s: %d drones, %d deliveries, %d zones ---\n",
		name, len(sc.Drones), len(sc.Deliveries), len(sc.Zones))
	fmt.Printf("%-8s %-12s %10s %10s %10s %6s %14s\n",
		"Solver", "Status", "Served", "Distance", "Energy", "Viol", "Time")
	fmt.Println(strings.Repeat("-", 76))

	for _, s := range cfg.Solvers(logger) {
		ctx := context.Background()
		cancel := func() {}
		if budget := cfg.Budget(); budget > 0 {
			ctx, cancel = context.WithTimeout(ctx, budget)
		}
		sol := s.Solve(ctx, sc)
		cancel()

		served := fmt.Sprintf("%d/%d", sol.Served(), sol.TotalDeliveries)
		fmt.Printf("%-8s %-12v %10s %10.1f %10.1f %6d %14v\n",
			s.Name(), sol.Status, served,
			sol.TotalDistance(), sol.TotalEnergy(), sol.ViolationCount(),
			sol.Elapsed.Round(time.Microsecond))

		if len(sol.Unassignable) > 0 {
			fmt.Printf("%9sunassignable: %v\n", "", sol.Unassignable)
		}
		if verbose {
			printFleet(sol, sc)
		}
	}
}

func printFleet(sol *core.Solution, sc *core.Scenario) {
	for _, st := range sol.FleetStatus(sc) {
		fmt.Printf("%9sdrone %-3d stops=%-3d dist=%-8.1f energy=%-8.1f battery=%3.0f%%\n",
			"", st.Drone, st.Stops, st.Distance, st.Energy, st.BatteryLeftFrac*100)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "droneroute: %v\n", err)
	os.Exit(1)
}
