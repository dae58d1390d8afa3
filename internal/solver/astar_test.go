package solver

import (
	"context"
	"math"
	"testing"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

// bruteForceBestDistance tries every visiting order and returns the
// shortest total flight distance.
func bruteForceBestDistance(start core.Pos, points []core.Pos) float64 {
	best := math.Inf(1)
	used := make([]bool, len(points))

	var walk func(pos core.Pos, left int, acc float64)
	walk = func(pos core.Pos, left int, acc float64) {
		if left == 0 {
			if acc < best {
				best = acc
			}
			return
		}
		for i, p := range points {
			if used[i] {
				continue
			}
			used[i] = true
			walk(p, left-1, acc+pos.DistanceTo(p))
			used[i] = false
		}
	}
	walk(start, len(points), 0)
	return best
}

func TestAStarNearOptimalOnSmallSubset(t *testing.T) {
	sc := core.NewScenario()
	sc.Drones = []*core.Drone{core.NewDrone(0, 10, 10000, 1, core.Pos{})}
	points := []core.Pos{
		{X: 3, Y: 1}, {X: 1, Y: 4}, {X: 5, Y: 2},
		{X: 2, Y: 7}, {X: 6, Y: 5}, {X: 4, Y: 3},
	}
	for i, p := range points {
		sc.Deliveries = append(sc.Deliveries,
			core.NewDelivery(core.DeliveryID(i+1), p, 1, 1, core.TimeWindow{Start: 0, End: 10000}))
	}

	sol := NewAStar(0, nil).Solve(context.Background(), sc)
	if sol.Served() != len(points) {
		t.Fatalf("Expected all %d deliveries served, got %d", len(points), sol.Served())
	}

	best := bruteForceBestDistance(sc.Drones[0].Start, points)
	got := sol.Routes[0].TotalDistance
	if got > best*1.05+1e-9 {
		t.Errorf("Route distance %.4f exceeds 105%% of optimum %.4f", got, best)
	}
}

func TestAStarFlagsZoneCrossing(t *testing.T) {
	sc := core.NewScenario()
	sc.Drones = []*core.Drone{core.NewDrone(0, 5, 10000, 1, core.Pos{})}
	sc.Deliveries = []*core.Delivery{
		core.NewDelivery(1, core.Pos{X: 10}, 1, 1, core.TimeWindow{Start: 0, End: 1000}),
	}
	// A strip straddling the only path to the delivery.
	sc.Zones = []*core.NoFlyZone{
		core.NewRectZone(1, 4, -1, 2, 2, core.TimeWindow{Start: 0, End: 1000}),
	}

	sol := NewAStar(0, nil).Solve(context.Background(), sc)
	if sol.Served() != 1 {
		t.Fatalf("Expected the delivery served despite the zone, got %d served", sol.Served())
	}
	route := sol.Routes[0]
	if !route.HasViolation(core.ZoneViolation) {
		t.Error("Expected a zone violation on the route")
	}
	if sol.Status != core.StatusPartial {
		t.Errorf("Expected status partial, got %s", sol.Status)
	}
}

func TestAStarRespectsExpansionBudget(t *testing.T) {
	sol := NewAStar(1, nil).Solve(context.Background(), lineScenario())
	if sol.Status != core.StatusTimeLimited {
		t.Errorf("Expected status time_limited, got %s", sol.Status)
	}
	if sol.Served() != 0 {
		t.Errorf("Expected nothing served after one expansion, got %d", sol.Served())
	}
	if len(sol.Unassigned) != 3 {
		t.Errorf("Expected 3 unassigned deliveries, got %v", sol.Unassigned)
	}
}

func TestAStarHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol := NewAStar(0, nil).Solve(ctx, lineScenario())
	if sol.Status != core.StatusTimeLimited {
		t.Errorf("Expected status time_limited on cancelled context, got %s", sol.Status)
	}
	if sol.Served() != 0 {
		t.Errorf("Expected nothing served, got %d", sol.Served())
	}
	if len(sol.Unassigned) != 3 {
		t.Errorf("Expected 3 unassigned deliveries, got %v", sol.Unassigned)
	}
}
