package solver

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/eval"
)

// separator marks a drone boundary inside a chromosome.
const separator = -1

// GeneticConfig tunes the evolutionary optimizer. Callers normally start
// from DefaultGeneticConfig and override selectively.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	CrossoverRate  float64
	MutationRate   float64
	TournamentSize int
	EliteCount     int   // Individuals carried unchanged into the next generation
	StallWindow    int   // Generations without improvement before the run counts as stalled
	Seed           int64 // 0 seeds from the wall clock
	Workers        int   // Parallel fitness goroutines; <= 0 uses GOMAXPROCS
}

// DefaultGeneticConfig returns the tuning used by the comparison driver.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 80,
		Generations:    120,
		CrossoverRate:  0.8,
		MutationRate:   0.1,
		TournamentSize: 3,
		EliteCount:     8,
		StallWindow:    40,
		Seed:           1,
	}
}

// Genetic evolves fleet-wide assignment and ordering together. A chromosome
// is a permutation of the serveable deliveries interleaved with fleet-1
// separators; the genes between consecutive separators are one drone's stop
// order, so assignment and sequencing are encoded in a single individual.
type Genetic struct {
	cfg GeneticConfig
	rng *rand.Rand
	log *zap.Logger
}

// NewGenetic creates the evolutionary solver. Zero-valued sizes fall back
// to the defaults; a nil logger disables logging.
func NewGenetic(cfg GeneticConfig, logger *zap.Logger) *Genetic {
	def := DefaultGeneticConfig()
	if cfg.PopulationSize <= 0 {
		cfg.PopulationSize = def.PopulationSize
	}
	if cfg.Generations <= 0 {
		cfg.Generations = def.Generations
	}
	if cfg.TournamentSize < 2 {
		cfg.TournamentSize = def.TournamentSize
	}
	if cfg.StallWindow <= 0 {
		cfg.StallWindow = def.StallWindow
	}
	if cfg.EliteCount < 0 {
		cfg.EliteCount = 0
	}
	if cfg.EliteCount >= cfg.PopulationSize {
		cfg.EliteCount = cfg.PopulationSize / 2
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Genetic{cfg: cfg, rng: rand.New(rand.NewSource(seed)), log: logger}
}

func (g *Genetic) Name() string { return "GA" }

// Solve runs the generation loop and decodes the best individual found.
func (g *Genetic) Solve(ctx context.Context, sc *core.Scenario) *core.Solution {
	started := time.Now()
	ev := eval.New(sc)
	sol := core.NewSolution(g.Name(), len(sc.Deliveries))

	serveable, unassignable := splitServeable(ev)
	sol.Unassignable = unassignable

	if len(serveable) == 0 || len(sc.Drones) == 0 {
		decodeStops(ev, sol, nil)
		resolveStatus(sol, false)
		sol.Elapsed = time.Since(started)
		return sol
	}

	pop := make([][]int, g.cfg.PopulationSize)
	for i := range pop {
		pop[i] = g.randomChromosome(len(serveable), len(sc.Drones))
	}
	fit := make([]float64, g.cfg.PopulationSize)

	best := cloneGenes(pop[0])
	bestFit := math.Inf(-1)
	history := make([]float64, 0, g.cfg.Generations)
	sinceImprove := 0
	deadlineHit := false

	for gen := 0; gen < g.cfg.Generations; gen++ {
		if ctx.Err() != nil {
			deadlineHit = true
			break
		}

		g.evaluate(ev, sc.Drones, serveable, pop, fit)

		genBest := 0
		for i := 1; i < len(fit); i++ {
			if fit[i] > fit[genBest] {
				genBest = i
			}
		}
		if fit[genBest] > bestFit {
			bestFit = fit[genBest]
			best = cloneGenes(pop[genBest])
			sinceImprove = 0
		} else {
			sinceImprove++
		}
		history = append(history, bestFit)

		if gen%20 == 0 {
			g.log.Debug("generation", zap.Int("gen", gen), zap.Float64("best_fitness", bestFit))
		}

		if gen == g.cfg.Generations-1 {
			break
		}
		pop = g.nextGeneration(pop, fit)
	}

	order := decodeChromosome(best, serveable, sc.Drones)
	decodeStops(ev, sol, order)
	sol.FitnessHistory = history
	sortDeliveryIDs(sol.Unassigned)

	stalled := sinceImprove >= g.cfg.StallWindow
	switch {
	case deadlineHit:
		sol.Status = core.StatusTimeLimited
	case stalled && (len(sol.Unassigned) > 0 || sol.ViolationCount() > 0):
		sol.Status = core.StatusStalled
	default:
		resolveStatus(sol, false)
	}
	sol.Elapsed = time.Since(started)
	g.log.Debug("evolution finished",
		zap.Int("generations", len(history)),
		zap.Float64("best_fitness", bestFit),
		zap.String("status", sol.Status.String()),
		zap.Duration("elapsed", sol.Elapsed))
	return sol
}

// randomChromosome shuffles the delivery indexes together with the drone
// separators.
func (g *Genetic) randomChromosome(deliveries, drones int) []int {
	genes := make([]int, 0, deliveries+drones-1)
	for i := 0; i < deliveries; i++ {
		genes = append(genes, i)
	}
	for i := 0; i < drones-1; i++ {
		genes = append(genes, separator)
	}
	g.rng.Shuffle(len(genes), func(i, j int) { genes[i], genes[j] = genes[j], genes[i] })
	return genes
}

// decodeChromosome splits the gene sequence at separators into per-drone
// stop orders. Drone slots follow scenario order.
func decodeChromosome(genes []int, serveable []*core.Delivery, drones []*core.Drone) map[core.DroneID][]core.DeliveryID {
	order := make(map[core.DroneID][]core.DeliveryID, len(drones))
	slot := 0
	for _, gene := range genes {
		if gene == separator {
			slot++
			continue
		}
		id := drones[slot].ID
		order[id] = append(order[id], serveable[gene].ID)
	}
	return order
}

// evaluate scores the population, striping individuals across workers.
// Workers share only the read-only evaluator and write disjoint fitness
// slots, so no locking is needed.
func (g *Genetic) evaluate(ev *eval.Evaluator, drones []*core.Drone, serveable []*core.Delivery, pop [][]int, fit []float64) {
	workers := g.cfg.Workers
	if workers > len(pop) {
		workers = len(pop)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(pop); i += workers {
				fit[i] = fitness(ev, drones, serveable, pop[i])
			}
		}(w)
	}
	wg.Wait()
}

// fitness decodes one chromosome and scores the simulated fleet plan.
func fitness(ev *eval.Evaluator, drones []*core.Drone, serveable []*core.Delivery, genes []int) float64 {
	order := decodeChromosome(genes, serveable, drones)
	completed := 0
	energy := 0.0
	violations := 0
	for _, dr := range drones {
		route, _ := ev.SimulateRoute(dr, order[dr.ID])
		completed += route.Served()
		energy += route.TotalEnergy
		violations += len(route.Violations)
	}
	return eval.RouteFitness(completed, energy, violations)
}

// nextGeneration applies elitism, tournament selection, crossover, and
// mutation. Population size stays constant.
func (g *Genetic) nextGeneration(pop [][]int, fit []float64) [][]int {
	next := make([][]int, 0, len(pop))

	for _, i := range eliteIndexes(fit, g.cfg.EliteCount) {
		next = append(next, cloneGenes(pop[i]))
	}

	for len(next) < len(pop) {
		if g.rng.Float64() < g.cfg.CrossoverRate {
			a := pop[g.tournament(fit)]
			b := pop[g.tournament(fit)]
			for _, child := range [][]int{g.crossover(a, b), g.crossover(b, a)} {
				if g.rng.Float64() < g.cfg.MutationRate {
					g.mutate(child)
				}
				if len(next) < len(pop) {
					next = append(next, child)
				}
			}
		} else {
			child := cloneGenes(pop[g.tournament(fit)])
			if g.rng.Float64() < g.cfg.MutationRate {
				g.mutate(child)
			}
			next = append(next, child)
		}
	}

	return next
}

// eliteIndexes returns the k fittest population indexes, best first.
func eliteIndexes(fit []float64, k int) []int {
	idx := make([]int, len(fit))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return fit[idx[a]] > fit[idx[b]] })
	if k > len(idx) {
		k = len(idx)
	}
	return idx[:k]
}

// tournament samples TournamentSize individuals and keeps the fittest.
func (g *Genetic) tournament(fit []float64) int {
	best := g.rng.Intn(len(fit))
	for i := 1; i < g.cfg.TournamentSize; i++ {
		c := g.rng.Intn(len(fit))
		if fit[c] > fit[best] {
			best = c
		}
	}
	return best
}

// crossover copies a contiguous slice of parent A's delivery genes, fills
// the rest in parent B's relative order, and reuses A's separator positions
// so the partition count never changes.
func (g *Genetic) crossover(a, b []int) []int {
	sep := make([]bool, len(a))
	aDeliv := make([]int, 0, len(a))
	for i, gene := range a {
		if gene == separator {
			sep[i] = true
		} else {
			aDeliv = append(aDeliv, gene)
		}
	}

	m := len(aDeliv)
	if m < 2 {
		return cloneGenes(a)
	}

	lo, hi := g.rng.Intn(m), g.rng.Intn(m)
	if lo > hi {
		lo, hi = hi, lo
	}

	taken := make(map[int]bool, hi-lo+1)
	childDeliv := make([]int, m)
	for i := lo; i <= hi; i++ {
		childDeliv[i] = aDeliv[i]
		taken[aDeliv[i]] = true
	}

	fill := make([]int, 0, m-(hi-lo+1))
	for _, gene := range b {
		if gene != separator && !taken[gene] {
			fill = append(fill, gene)
		}
	}

	fi := 0
	for i := 0; i < m; i++ {
		if i >= lo && i <= hi {
			continue
		}
		childDeliv[i] = fill[fi]
		fi++
	}

	child := make([]int, len(a))
	di := 0
	for i := range a {
		if sep[i] {
			child[i] = separator
		} else {
			child[i] = childDeliv[di]
			di++
		}
	}
	return child
}

// mutate either swaps two delivery genes or moves one gene to a new slot,
// possibly across a separator, which reassigns the delivery to another
// drone.
func (g *Genetic) mutate(genes []int) {
	var delivPos []int
	for i, gene := range genes {
		if gene != separator {
			delivPos = append(delivPos, i)
		}
	}
	if len(delivPos) < 2 {
		return
	}

	if g.rng.Intn(2) == 0 {
		p := delivPos[g.rng.Intn(len(delivPos))]
		q := delivPos[g.rng.Intn(len(delivPos))]
		genes[p], genes[q] = genes[q], genes[p]
		return
	}

	p := delivPos[g.rng.Intn(len(delivPos))]
	moved := genes[p]
	rest := make([]int, 0, len(genes)-1)
	rest = append(rest, genes[:p]...)
	rest = append(rest, genes[p+1:]...)
	q := g.rng.Intn(len(rest) + 1)

	out := make([]int, 0, len(genes))
	out = append(out, rest[:q]...)
	out = append(out, moved)
	out = append(out, rest[q:]...)
	copy(genes, out)
}

func cloneGenes(genes []int) []int {
	out := make([]int, len(genes))
	copy(out, genes)
	return out
}
