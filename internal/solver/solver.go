// Package solver implements the three routing strategies: best-first search
// over per-drone delivery subsets, an evolutionary optimizer over fleet-wide
// assignment and ordering, and a backtracking constraint solver with forward
// checking. All three consume the shared evaluator and produce a
// core.Solution; none of them mutates the scenario.
package solver

import (
	"context"
	"sort"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/eval"
)

// Solver is the interface shared by all routing strategies.
type Solver interface {
	// Solve computes routes for the scenario's fleet. The returned
	// solution is never nil; its Status reports whether the run finished,
	// was cut short by ctx or a step budget, or stalled.
	Solve(ctx context.Context, sc *core.Scenario) *core.Solution

	// Name returns the strategy name.
	Name() string
}

// splitServeable separates deliveries no drone could ever serve from the
// rest. Hopeless deliveries are excluded from every search space and
// reported on the solution directly, so solvers never waste budget on them.
func splitServeable(ev *eval.Evaluator) ([]*core.Delivery, []core.DeliveryID) {
	unassignable := ev.Unassignable()
	hopeless := make(map[core.DeliveryID]bool, len(unassignable))
	for _, id := range unassignable {
		hopeless[id] = true
	}

	sc := ev.Scenario()
	serveable := make([]*core.Delivery, 0, len(sc.Deliveries))
	for _, d := range sc.Deliveries {
		if !hopeless[d.ID] {
			serveable = append(serveable, d)
		}
	}
	return serveable, unassignable
}

// greedyAssign partitions deliveries among drones before per-drone
// sequencing: highest priority first, each delivery goes to the drone with
// the nearest start position that still has carry capacity left. Deliveries
// no drone can take in this pass are returned separately.
func greedyAssign(sc *core.Scenario, deliveries []*core.Delivery) (map[core.DroneID][]*core.Delivery, []core.DeliveryID) {
	order := make([]*core.Delivery, len(deliveries))
	copy(order, deliveries)
	sort.Slice(order, func(i, j int) bool {
		if order[i].Priority != order[j].Priority {
			return order[i].Priority > order[j].Priority
		}
		return order[i].ID < order[j].ID
	})

	remaining := make(map[core.DroneID]float64, len(sc.Drones))
	for _, dr := range sc.Drones {
		remaining[dr.ID] = dr.MaxWeight
	}

	assigned := make(map[core.DroneID][]*core.Delivery, len(sc.Drones))
	var leftover []core.DeliveryID
	for _, d := range order {
		var best *core.Drone
		bestDist := 0.0
		for _, dr := range sc.Drones {
			if remaining[dr.ID] < d.Weight {
				continue
			}
			dist := dr.Start.DistanceTo(d.Pos)
			if best == nil || dist < bestDist {
				best, bestDist = dr, dist
			}
		}
		if best == nil {
			leftover = append(leftover, d.ID)
			continue
		}
		remaining[best.ID] -= d.Weight
		assigned[best.ID] = append(assigned[best.ID], d)
	}

	return assigned, leftover
}

// decodeStops simulates each drone's stop order and fills the solution's
// routes, collecting skipped stops into Unassigned. Drones without an order
// get an empty route so every fleet member appears in the solution.
func decodeStops(ev *eval.Evaluator, sol *core.Solution, order map[core.DroneID][]core.DeliveryID) {
	for _, dr := range ev.Scenario().Drones {
		route, skipped := ev.SimulateRoute(dr, order[dr.ID])
		sol.Routes[dr.ID] = route
		sol.Unassigned = append(sol.Unassigned, skipped...)
	}
}

// resolveStatus classifies a finished run. budgetHit reports that the run
// was cut short by its step budget or deadline before terminating naturally.
func resolveStatus(sol *core.Solution, budgetHit bool) {
	switch {
	case budgetHit:
		sol.Status = core.StatusTimeLimited
	case len(sol.Unassigned) > 0 || sol.ViolationCount() > 0:
		sol.Status = core.StatusPartial
	default:
		sol.Status = core.StatusComplete
	}
}

// sortDeliveryIDs orders ids ascending for stable reporting.
func sortDeliveryIDs(ids []core.DeliveryID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
