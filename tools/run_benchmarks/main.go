// Package main benchmarks the route solvers on scenario files and collects
// metrics into a CSV for later analysis.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/drone-delivery-research/internal/config"
	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/scenario"
	"github.com/elektrokombinacija/drone-delivery-research/internal/solver"
)

// BenchmarkResult stores results from a single solver run.
type BenchmarkResult struct {
	RunID      string
	Timestamp  string
	CommitHash string
	GoVersion  string
	OS         string
	Arch       string

	Instance   string
	Drones     int
	Deliveries int
	Zones      int

	Solver         string
	RuntimeMs      float64
	Status         string
	Served         int
	CompletionRate float64
	TotalDistance  float64
	TotalEnergy    float64
	MeanEnergy     float64
	Violations     int
	Unassigned     int
	Unassignable   int
}

// SolverMetrics holds per-solver aggregated metrics.
type SolverMetrics struct {
	Name           string
	TotalRuns      int
	Complete       int
	TotalRuntimeMs float64
	TotalRate      float64
	Violations     int
}

func getGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

// runSolver executes one solver on one scenario and collects its metrics.
func runSolver(instance string, s solver.Solver, sc *core.Scenario, budget time.Duration) *BenchmarkResult {
	ctx := context.Background()
	cancel := func() {}
	if budget > 0 {
		ctx, cancel = context.WithTimeout(ctx, budget)
	}
	sol := s.Solve(ctx, sc)
	cancel()

	return &BenchmarkResult{
		RunID:          uuid.NewString(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		CommitHash:     getGitCommit(),
		GoVersion:      runtime.Version(),
		OS:             runtime.GOOS,
		Arch:           runtime.GOARCH,
		Instance:       instance,
		Drones:         len(sc.Drones),
		Deliveries:     len(sc.Deliveries),
		Zones:          len(sc.Zones),
		Solver:         s.Name(),
		RuntimeMs:      float64(sol.Elapsed.Microseconds()) / 1000.0,
		Status:         sol.Status.String(),
		Served:         sol.Served(),
		CompletionRate: sol.CompletionRate(),
		TotalDistance:  sol.TotalDistance(),
		TotalEnergy:    sol.TotalEnergy(),
		MeanEnergy:     sol.MeanEnergy(),
		Violations:     sol.ViolationCount(),
		Unassigned:     len(sol.Unassigned),
		Unassignable:   len(sol.Unassignable),
	}
}

func writeCSV(results []*BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"run_id", "timestamp", "commit_hash", "go_version", "os", "arch",
		"instance", "drones", "deliveries", "zones", "solver",
		"runtime_ms", "status", "served", "completion_rate",
		"total_distance", "total_energy", "mean_energy",
		"violations", "unassigned", "unassignable",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.RunID, r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.Instance, fmt.Sprintf("%d", r.Drones), fmt.Sprintf("%d", r.Deliveries),
			fmt.Sprintf("%d", r.Zones), r.Solver,
			fmt.Sprintf("%.3f", r.RuntimeMs), r.Status,
			fmt.Sprintf("%d", r.Served), fmt.Sprintf("%.4f", r.CompletionRate),
			fmt.Sprintf("%.3f", r.TotalDistance), fmt.Sprintf("%.3f", r.TotalEnergy),
			fmt.Sprintf("%.3f", r.MeanEnergy),
			fmt.Sprintf("%d", r.Violations), fmt.Sprintf("%d", r.Unassigned),
			fmt.Sprintf("%d", r.Unassignable),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func printSummary(results []*BenchmarkResult) {
	metrics := make(map[string]*SolverMetrics)
	for _, r := range results {
		m, ok := metrics[r.Solver]
		if !ok {
			m = &SolverMetrics{Name: r.Solver}
			metrics[r.Solver] = m
		}
		m.TotalRuns++
		if r.Status == "complete" {
			m.Complete++
		}
		m.TotalRuntimeMs += r.RuntimeMs
		m.TotalRate += r.CompletionRate
		m.Violations += r.Violations
	}

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-8s %8s %10s %14s %12s %12s\n",
		"Solver", "Runs", "Complete", "Avg Time(ms)", "Avg Compl%", "Violations")
	fmt.Println(strings.Repeat("-", 68))

	var names []string
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := metrics[name]
		avgTime := 0.0
		avgRate := 0.0
		if m.TotalRuns > 0 {
			avgTime = m.TotalRuntimeMs / float64(m.TotalRuns)
			avgRate = m.TotalRate / float64(m.TotalRuns) * 100
		}
		fmt.Printf("%-8s %8d %10d %14.2f %12.1f %12d\n",
			m.Name, m.TotalRuns, m.Complete, avgTime, avgRate, m.Violations)
	}
}

func main() {
	inputDir := flag.String("input", "testdata", "Directory with scenario files")
	outputFile := flag.String("output", "results/benchmarks.csv", "Output CSV path")
	configPath := flag.String("config", "", "YAML solver parameter file")
	timeout := flag.Float64("timeout", -1, "Per-run budget in seconds, 0 for none")
	solverFilter := flag.String("solver", "", "Run only specific solvers (comma-separated)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *timeout >= 0 {
		cfg.BudgetSeconds = *timeout
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = cfg.Log.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*inputDir, "*.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding scenario files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No scenario files found in %s\n", *inputDir)
		fmt.Fprintf(os.Stderr, "Run gen_scenarios first: go run ./tools/gen_scenarios -suite -output %s\n", *inputDir)
		os.Exit(1)
	}

	wanted := map[string]bool{}
	if *solverFilter != "" {
		for _, name := range strings.Split(*solverFilter, ",") {
			wanted[strings.TrimSpace(name)] = true
		}
	}
	solversPerRun := len(cfg.Solvers(logger))
	if len(wanted) > 0 {
		solversPerRun = len(wanted)
	}

	totalRuns := len(files) * solversPerRun
	currentRun := 0
	fmt.Printf("Running benchmarks: %d scenarios x %d solvers = %d runs\n",
		len(files), solversPerRun, totalRuns)
	if budget := cfg.Budget(); budget > 0 {
		fmt.Printf("Budget per run: %v\n", budget)
	}
	fmt.Println()

	var results []*BenchmarkResult
	for _, file := range files {
		sc, err := scenario.Load(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", file, err)
			continue
		}
		instance := strings.TrimSuffix(filepath.Base(file), ".json")

		// Fresh solvers per scenario so the GA's seeded rng starts from
		// the same state every run.
		for _, s := range cfg.Solvers(logger) {
			if len(wanted) > 0 && !wanted[s.Name()] {
				continue
			}
			currentRun++
			if *verbose {
				fmt.Printf("[%d/%d] %s / %s ... ", currentRun, totalRuns, instance, s.Name())
			} else {
				fmt.Printf("\r[%d/%d] Running...", currentRun, totalRuns)
			}

			result := runSolver(instance, s, sc, cfg.Budget())
			results = append(results, result)

			if *verbose {
				fmt.Printf("%s (%.2fms, served=%d/%d)\n",
					result.Status, result.RuntimeMs, result.Served, len(sc.Deliveries))
			}
		}
	}
	fmt.Println()

	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(results)
}
