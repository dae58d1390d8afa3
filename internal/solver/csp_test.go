package solver

import (
	"context"
	"testing"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

func TestCSPCompletesFeasibleScenario(t *testing.T) {
	sol := NewCSP(0, nil).Solve(context.Background(), twoClusterScenario())
	if sol.Status != core.StatusComplete {
		t.Fatalf("Expected status complete, got %s", sol.Status)
	}
	if sol.Served() != 4 {
		t.Errorf("Expected all 4 deliveries served, got %d", sol.Served())
	}
	if len(sol.Unassigned) != 0 {
		t.Errorf("Expected no unassigned deliveries, got %v", sol.Unassigned)
	}
	if !sol.Feasible() {
		t.Error("Expected a feasible solution")
	}
}

func TestCSPKeepsDeepestPartial(t *testing.T) {
	sc := core.NewScenario()
	sc.Drones = []*core.Drone{
		core.NewDrone(0, 4, 1000, 1, core.Pos{}),
		core.NewDrone(1, 2, 1000, 1, core.Pos{}),
	}
	// The 4 kg parcel fills the big drone outright; only one of the 2 kg
	// parcels then fits the small drone, so two assignments is the ceiling.
	sc.Deliveries = []*core.Delivery{
		core.NewDelivery(1, core.Pos{X: 1}, 2, 1, core.TimeWindow{Start: 0, End: 1000}),
		core.NewDelivery(2, core.Pos{X: 2}, 2, 1, core.TimeWindow{Start: 0, End: 1000}),
		core.NewDelivery(3, core.Pos{X: 3}, 4, 1, core.TimeWindow{Start: 0, End: 1000}),
	}

	sol := NewCSP(0, nil).Solve(context.Background(), sc)
	if sol.Served() != 2 {
		t.Fatalf("Expected 2 deliveries served, got %d", sol.Served())
	}
	if len(sol.Unassigned) != 1 || sol.Unassigned[0] != 2 {
		t.Errorf("Expected delivery 2 left unassigned, got %v", sol.Unassigned)
	}
	if got := sol.Routes[0].Stops; len(got) != 1 || got[0] != 3 {
		t.Errorf("Expected the big drone on the 4 kg parcel, got %v", got)
	}
	if got := sol.Routes[1].Stops; len(got) != 1 || got[0] != 1 {
		t.Errorf("Expected the small drone on delivery 1, got %v", got)
	}
	if sol.Status != core.StatusPartial {
		t.Errorf("Expected status partial, got %s", sol.Status)
	}
}

func TestCSPRespectsStepBudget(t *testing.T) {
	sol := NewCSP(1, nil).Solve(context.Background(), twoClusterScenario())
	if sol.Status != core.StatusTimeLimited {
		t.Fatalf("Expected status time_limited, got %s", sol.Status)
	}
	if sol.Served() != 1 {
		t.Errorf("Expected the one assignment observed before the cutoff, got %d served", sol.Served())
	}
	if len(sol.Unassigned) != 3 {
		t.Errorf("Expected 3 unassigned deliveries, got %v", sol.Unassigned)
	}
}

func TestCSPHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol := NewCSP(0, nil).Solve(ctx, twoClusterScenario())
	if sol.Status != core.StatusTimeLimited {
		t.Errorf("Expected status time_limited on cancelled context, got %s", sol.Status)
	}
	if sol.Served() != 0 {
		t.Errorf("Expected nothing served, got %d", sol.Served())
	}
	if len(sol.Unassigned) != 4 {
		t.Errorf("Expected all deliveries unassigned, got %v", sol.Unassigned)
	}
}
