package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PassesValidation(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 80, cfg.Genetic.PopulationSize)
	assert.Equal(t, 120, cfg.Genetic.Generations)
	assert.Equal(t, 0.8, cfg.Genetic.CrossoverRate)
	assert.Equal(t, 200000, cfg.AStar.MaxExpansions)
	assert.Equal(t, 200000, cfg.CSP.MaxSteps)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Zero(t, cfg.Budget())
}

func TestLoad_OverlaysFileOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	body := `
seed: 7
budget_seconds: 2.5
genetic:
  population_size: 50
  stall_window: 15
csp:
  max_steps: 5000
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 2.5, cfg.BudgetSeconds)
	assert.Equal(t, 50, cfg.Genetic.PopulationSize)
	assert.Equal(t, 15, cfg.Genetic.StallWindow)
	assert.Equal(t, 5000, cfg.CSP.MaxSteps)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched keys keep their defaults.
	assert.Equal(t, 120, cfg.Genetic.Generations)
	assert.Equal(t, 0.1, cfg.Genetic.MutationRate)
	assert.Equal(t, 200000, cfg.AStar.MaxExpansions)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("genetic:\n  population_size: -4\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "population_size")
}

func TestValidate_RejectsBrokenKnobs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative budget", func(c *Config) { c.BudgetSeconds = -1 }, "budget_seconds"},
		{"zero expansions", func(c *Config) { c.AStar.MaxExpansions = 0 }, "max_expansions"},
		{"zero generations", func(c *Config) { c.Genetic.Generations = 0 }, "generations"},
		{"crossover above one", func(c *Config) { c.Genetic.CrossoverRate = 1.2 }, "crossover_rate"},
		{"negative mutation", func(c *Config) { c.Genetic.MutationRate = -0.1 }, "mutation_rate"},
		{"tournament of one", func(c *Config) { c.Genetic.TournamentSize = 1 }, "tournament_size"},
		{"elites fill population", func(c *Config) { c.Genetic.EliteCount = 80 }, "elite_count"},
		{"zero stall window", func(c *Config) { c.Genetic.StallWindow = 0 }, "stall_window"},
		{"negative workers", func(c *Config) { c.Genetic.Workers = -2 }, "workers"},
		{"zero steps", func(c *Config) { c.CSP.MaxSteps = 0 }, "max_steps"},
		{"bogus log level", func(c *Config) { c.Log.Level = "shouty" }, "log.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestGeneticConfig_CarriesSharedSeed(t *testing.T) {
	cfg := Default()
	cfg.Seed = 9

	gc := cfg.GeneticConfig()
	assert.Equal(t, int64(9), gc.Seed)
	assert.Equal(t, cfg.Genetic.PopulationSize, gc.PopulationSize)
	assert.Equal(t, cfg.Genetic.EliteCount, gc.EliteCount)
}

func TestSolvers_BuildsAllThree(t *testing.T) {
	solvers := Default().Solvers(nil)
	require.Len(t, solvers, 3)
	assert.Equal(t, "A*", solvers[0].Name())
	assert.Equal(t, "GA", solvers[1].Name())
	assert.Equal(t, "CSP", solvers[2].Name())
}

func TestLogBuild_Levels(t *testing.T) {
	logger, err := LogConfig{Level: "debug"}.Build()
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = LogConfig{Level: "shouty"}.Build()
	require.Error(t, err)
}
