// Package config loads the solver parameter file shared by the command-line
// tools. Defaults cover every knob; a YAML file overlays them and CLI flags
// override both.
package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/drone-delivery-research/internal/solver"
)

// AStarConfig tunes the search pathfinder.
type AStarConfig struct {
	MaxExpansions int `yaml:"max_expansions"`
}

// GeneticConfig tunes the evolutionary optimizer. The run seed comes from
// the top-level Seed so one value drives every stochastic component.
type GeneticConfig struct {
	PopulationSize int     `yaml:"population_size"`
	Generations    int     `yaml:"generations"`
	CrossoverRate  float64 `yaml:"crossover_rate"`
	MutationRate   float64 `yaml:"mutation_rate"`
	TournamentSize int     `yaml:"tournament_size"`
	EliteCount     int     `yaml:"elite_count"`
	StallWindow    int     `yaml:"stall_window"`
	Workers        int     `yaml:"workers"`
}

// CSPConfig tunes the constraint solver.
type CSPConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// LogConfig selects console logging behaviour.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Build constructs a development-style console logger at the configured
// level.
func (lc LogConfig) Build() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", lc.Level, err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = level
	return zc.Build()
}

// Config is the full parameter set for a solver run.
type Config struct {
	Seed          int64         `yaml:"seed"`
	BudgetSeconds float64       `yaml:"budget_seconds"` // 0 disables the wall-clock budget
	AStar         AStarConfig   `yaml:"astar"`
	Genetic       GeneticConfig `yaml:"genetic"`
	CSP           CSPConfig     `yaml:"csp"`
	Log           LogConfig     `yaml:"log"`
}

// Default returns the canonical tuning.
func Default() *Config {
	g := solver.DefaultGeneticConfig()
	return &Config{
		Seed: 42,
		AStar: AStarConfig{
			MaxExpansions: solver.DefaultMaxExpansions,
		},
		Genetic: GeneticConfig{
			PopulationSize: g.PopulationSize,
			Generations:    g.Generations,
			CrossoverRate:  g.CrossoverRate,
			MutationRate:   g.MutationRate,
			TournamentSize: g.TournamentSize,
			EliteCount:     g.EliteCount,
			StallWindow:    g.StallWindow,
		},
		CSP: CSPConfig{
			MaxSteps: solver.DefaultMaxSteps,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load overlays the YAML file at path onto the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects parameter combinations no solver accepts.
func (c *Config) Validate() error {
	if c.BudgetSeconds < 0 {
		return fmt.Errorf("budget_seconds must not be negative, got %.2f", c.BudgetSeconds)
	}
	if c.AStar.MaxExpansions <= 0 {
		return fmt.Errorf("astar.max_expansions must be positive, got %d", c.AStar.MaxExpansions)
	}
	if c.Genetic.PopulationSize <= 0 {
		return fmt.Errorf("genetic.population_size must be positive, got %d", c.Genetic.PopulationSize)
	}
	if c.Genetic.Generations <= 0 {
		return fmt.Errorf("genetic.generations must be positive, got %d", c.Genetic.Generations)
	}
	if c.Genetic.CrossoverRate < 0 || c.Genetic.CrossoverRate > 1 {
		return fmt.Errorf("genetic.crossover_rate must be in [0,1], got %.2f", c.Genetic.CrossoverRate)
	}
	if c.Genetic.MutationRate < 0 || c.Genetic.MutationRate > 1 {
		return fmt.Errorf("genetic.mutation_rate must be in [0,1], got %.2f", c.Genetic.MutationRate)
	}
	if c.Genetic.TournamentSize < 2 {
		return fmt.Errorf("genetic.tournament_size must be at least 2, got %d", c.Genetic.TournamentSize)
	}
	if c.Genetic.EliteCount < 0 || c.Genetic.EliteCount >= c.Genetic.PopulationSize {
		return fmt.Errorf("genetic.elite_count must be in [0, population), got %d", c.Genetic.EliteCount)
	}
	if c.Genetic.StallWindow <= 0 {
		return fmt.Errorf("genetic.stall_window must be positive, got %d", c.Genetic.StallWindow)
	}
	if c.Genetic.Workers < 0 {
		return fmt.Errorf("genetic.workers must not be negative, got %d", c.Genetic.Workers)
	}
	if c.CSP.MaxSteps <= 0 {
		return fmt.Errorf("csp.max_steps must be positive, got %d", c.CSP.MaxSteps)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return nil
}

// Budget converts the configured seconds into a context deadline duration.
// Zero means unbudgeted.
func (c *Config) Budget() time.Duration {
	return time.Duration(c.BudgetSeconds * float64(time.Second))
}

// GeneticConfig maps the file values onto the optimizer's parameter struct,
// carrying the shared run seed along.
func (c *Config) GeneticConfig() solver.GeneticConfig {
	return solver.GeneticConfig{
		PopulationSize: c.Genetic.PopulationSize,
		Generations:    c.Genetic.Generations,
		CrossoverRate:  c.Genetic.CrossoverRate,
		MutationRate:   c.Genetic.MutationRate,
		TournamentSize: c.Genetic.TournamentSize,
		EliteCount:     c.Genetic.EliteCount,
		StallWindow:    c.Genetic.StallWindow,
		Workers:        c.Genetic.Workers,
		Seed:           c.Seed,
	}
}

// Solvers constructs the three routing strategies from the configured
// parameters, in the order the comparison driver reports them.
func (c *Config) Solvers(logger *zap.Logger) []solver.Solver {
	return []solver.Solver{
		solver.NewAStar(c.AStar.MaxExpansions, logger),
		solver.NewGenetic(c.GeneticConfig(), logger),
		solver.NewCSP(c.CSP.MaxSteps, logger),
	}
}
