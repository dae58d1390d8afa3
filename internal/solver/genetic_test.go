package solver

import (
	"context"
	"sort"
	"testing"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

func TestGeneticHistoryRecordsRunningBest(t *testing.T) {
	cfg := DefaultGeneticConfig()
	cfg.PopulationSize = 30
	cfg.Generations = 40
	cfg.Seed = 7

	sol := NewGenetic(cfg, nil).Solve(context.Background(), lineScenario())
	if len(sol.FitnessHistory) != cfg.Generations {
		t.Fatalf("Expected %d history entries, got %d", cfg.Generations, len(sol.FitnessHistory))
	}
	for i := 1; i < len(sol.FitnessHistory); i++ {
		if sol.FitnessHistory[i] < sol.FitnessHistory[i-1] {
			t.Fatalf("Fitness history dropped at generation %d: %.4f -> %.4f",
				i, sol.FitnessHistory[i-1], sol.FitnessHistory[i])
		}
	}
	if sol.Status != core.StatusComplete {
		t.Errorf("Expected status complete, got %s", sol.Status)
	}
}

func TestGeneticStallsWhenOverloaded(t *testing.T) {
	cfg := DefaultGeneticConfig()
	cfg.PopulationSize = 30
	cfg.Generations = 60
	cfg.StallWindow = 20
	cfg.Seed = 5

	sol := NewGenetic(cfg, nil).Solve(context.Background(), overloadedScenario())
	route := sol.Routes[0]
	if route.Served() != 1 || route.Stops[0] != 1 {
		t.Errorf("Expected only the nearer parcel served, got stops %v", route.Stops)
	}
	if len(sol.Unassigned) != 1 || sol.Unassigned[0] != 2 {
		t.Errorf("Expected delivery 2 unassigned, got %v", sol.Unassigned)
	}
	if !route.HasViolation(core.CapacityExceeded) {
		t.Error("Expected a capacity violation recorded for the skipped parcel")
	}
	if sol.Status != core.StatusStalled {
		t.Errorf("Expected status stalled, got %s", sol.Status)
	}
}

func TestGeneticNextGenerationKeepsSize(t *testing.T) {
	cfg := DefaultGeneticConfig()
	cfg.PopulationSize = 10
	cfg.EliteCount = 2
	cfg.Seed = 3
	g := NewGenetic(cfg, nil)

	pop := make([][]int, cfg.PopulationSize)
	fit := make([]float64, cfg.PopulationSize)
	for i := range pop {
		pop[i] = g.randomChromosome(4, 2)
		fit[i] = float64(i)
	}

	next := g.nextGeneration(pop, fit)
	if len(next) != len(pop) {
		t.Fatalf("Expected population size %d, got %d", len(pop), len(next))
	}
	for _, genes := range next {
		assertChromosomeShape(t, genes, 4, 1)
	}
}

// assertChromosomeShape checks that genes hold every delivery index exactly
// once plus the expected separator count.
func assertChromosomeShape(t *testing.T, genes []int, deliveries, separators int) {
	t.Helper()
	if len(genes) != deliveries+separators {
		t.Fatalf("Expected %d genes, got %v", deliveries+separators, genes)
	}
	seen := make(map[int]int)
	seps := 0
	for _, gene := range genes {
		if gene == separator {
			seps++
			continue
		}
		seen[gene]++
	}
	if seps != separators {
		t.Fatalf("Expected %d separators in %v", separators, genes)
	}
	for i := 0; i < deliveries; i++ {
		if seen[i] != 1 {
			t.Fatalf("Delivery index %d appears %d times in %v", i, seen[i], genes)
		}
	}
}

func TestGeneticCrossoverKeepsPermutation(t *testing.T) {
	cfg := DefaultGeneticConfig()
	cfg.Seed = 11
	g := NewGenetic(cfg, nil)

	a := []int{0, 1, separator, 2, 3}
	b := []int{3, 2, separator, 1, 0}
	for i := 0; i < 100; i++ {
		child := g.crossover(a, b)
		assertChromosomeShape(t, child, 4, 1)
		if child[2] != separator {
			t.Fatalf("Separator moved from parent position in %v", child)
		}
	}
}

func TestGeneticMutateKeepsGeneMultiset(t *testing.T) {
	cfg := DefaultGeneticConfig()
	cfg.Seed = 13
	g := NewGenetic(cfg, nil)

	original := []int{0, separator, 1, 2, separator, 3}
	for i := 0; i < 100; i++ {
		genes := cloneGenes(original)
		g.mutate(genes)

		got := cloneGenes(genes)
		want := cloneGenes(original)
		sort.Ints(got)
		sort.Ints(want)
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("Mutation changed the gene multiset: %v", genes)
			}
		}
	}
}

func TestDecodeChromosomeSplitsAtSeparators(t *testing.T) {
	serveable := []*core.Delivery{
		core.NewDeliveryAnytime(10, core.Pos{X: 1}, 1, 1),
		core.NewDeliveryAnytime(11, core.Pos{X: 2}, 1, 1),
		core.NewDeliveryAnytime(12, core.Pos{X: 3}, 1, 1),
	}
	drones := []*core.Drone{
		core.NewDrone(5, 10, 1000, 1, core.Pos{}),
		core.NewDrone(6, 10, 1000, 1, core.Pos{}),
	}

	order := decodeChromosome([]int{1, separator, 0, 2}, serveable, drones)
	if len(order[5]) != 1 || order[5][0] != 11 {
		t.Errorf("Expected drone 5 to carry [11], got %v", order[5])
	}
	if len(order[6]) != 2 || order[6][0] != 10 || order[6][1] != 12 {
		t.Errorf("Expected drone 6 to carry [10 12], got %v", order[6])
	}
}

func TestGeneticHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol := NewGenetic(DefaultGeneticConfig(), nil).Solve(ctx, lineScenario())
	if sol.Status != core.StatusTimeLimited {
		t.Errorf("Expected status time_limited on cancelled context, got %s", sol.Status)
	}
	if len(sol.FitnessHistory) != 0 {
		t.Errorf("Expected empty fitness history, got %d entries", len(sol.FitnessHistory))
	}
}
