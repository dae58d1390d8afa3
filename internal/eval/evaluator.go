// Package eval implements the cost and feasibility model shared by every
// routing strategy: segment costs, zone penalties, capacity/energy/time
// checks, and the route traversal simulation that decodes stop sequences
// into concrete routes.
package eval

import (
	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

const (
	// PriorityWeight converts delivery priority into segment cost bias.
	PriorityWeight = 100.0

	// ZoneCrossingPenalty is added to any leg crossing an active zone.
	// Finite so frontier ordering stays numerically stable, large enough
	// to dominate any feasible route's cost on the reference maps.
	ZoneCrossingPenalty = 1e6
)

// Evaluator answers cost and feasibility queries against one scenario.
// It holds no mutable state beyond the read-only scenario, so a single
// instance can serve any number of concurrent solver runs.
type Evaluator struct {
	sc *core.Scenario
}

// New creates an evaluator over a scenario.
func New(sc *core.Scenario) *Evaluator {
	return &Evaluator{sc: sc}
}

// Scenario returns the scenario under evaluation.
func (e *Evaluator) Scenario() *core.Scenario {
	return e.sc
}

// SegmentCost returns the search cost of flying a-b to serve a parcel of the
// given weight and priority: Euclidean distance scaled by payload weight,
// plus the priority bias applied once per delivery.
func (e *Evaluator) SegmentCost(a, b core.Pos, weight float64, priority int) float64 {
	return a.DistanceTo(b)*weight + float64(priority)*PriorityWeight
}

// ZoneBlocked checks whether segment a-b crosses any zone active at time t.
func (e *Evaluator) ZoneBlocked(a, b core.Pos, t float64) bool {
	for _, z := range e.sc.Zones {
		if z.ActiveAt(t) && z.BlocksSegment(a, b) {
			return true
		}
	}
	return false
}

// ZonePenalty returns ZoneCrossingPenalty when segment a-b crosses a zone
// active at the arrival time, otherwise 0.
func (e *Evaluator) ZonePenalty(a, b core.Pos, arrival float64) float64 {
	if e.ZoneBlocked(a, b, arrival) {
		return ZoneCrossingPenalty
	}
	return 0
}

// TimeFeasible checks the delivery's window against an arrival time.
func (e *Evaluator) TimeFeasible(d *core.Delivery, arrival float64) bool {
	return d.OnTime(arrival)
}

// CheckCapacity checks cumulative payload against the drone's limit.
func (e *Evaluator) CheckCapacity(dr *core.Drone, cumWeight float64) bool {
	return cumWeight <= dr.MaxWeight
}

// CheckEnergy checks cumulative draw against the drone's current charge.
func (e *Evaluator) CheckEnergy(dr *core.Drone, cumEnergy float64) bool {
	return cumEnergy <= dr.CurrentBattery
}

// Leg projects the cumulative state after appending one more delivery to a
// partial route.
type Leg struct {
	Dist    float64 // This leg's length
	Arrival float64 // Minutes at the new stop
	Load    float64 // Onboard weight including the new parcel
	Energy  float64 // Cumulative draw including this leg
}

// ExtendLeg projects flying from the current position to delivery d, given
// the partial route's cumulative load, energy, and clock.
func (e *Evaluator) ExtendLeg(dr *core.Drone, from core.Pos, d *core.Delivery, load, energy, now float64) Leg {
	dist := from.DistanceTo(d.Pos)
	newLoad := load + d.Weight
	return Leg{
		Dist:    dist,
		Arrival: now + dr.TravelTime(dist),
		Load:    newLoad,
		Energy:  energy + dr.LegEnergy(dist, newLoad),
	}
}

// FeasibilityResult names every constraint a candidate leg breaks, so
// callers can both reject and explain. An empty set means the leg is clean.
type FeasibilityResult struct {
	violations []core.ViolationKind
}

// OK checks that no constraint was broken.
func (r FeasibilityResult) OK() bool {
	return len(r.violations) == 0
}

// Has checks for a specific violation kind.
func (r FeasibilityResult) Has(kind core.ViolationKind) bool {
	for _, k := range r.violations {
		if k == kind {
			return true
		}
	}
	return false
}

// Kinds returns the violated constraint kinds in check order.
func (r FeasibilityResult) Kinds() []core.ViolationKind {
	return r.violations
}

func (r *FeasibilityResult) add(kind core.ViolationKind) {
	r.violations = append(r.violations, kind)
}

// CheckLeg composes the four constraint checks for a projected leg from the
// current position to delivery d.
func (e *Evaluator) CheckLeg(dr *core.Drone, from core.Pos, d *core.Delivery, leg Leg) FeasibilityResult {
	var res FeasibilityResult
	if !e.CheckCapacity(dr, leg.Load) {
		res.add(core.CapacityExceeded)
	}
	if !e.CheckEnergy(dr, leg.Energy) {
		res.add(core.EnergyExceeded)
	}
	if !e.TimeFeasible(d, leg.Arrival) {
		res.add(core.TimeWindowViolation)
	}
	if e.ZoneBlocked(from, d.Pos, leg.Arrival) {
		res.add(core.ZoneViolation)
	}
	return res
}

// CanEverServe checks whether the drone could serve d under the most
// favourable circumstances: parcel within capacity, a direct flight within
// the battery, and a direct arrival no later than the window close. Arriving
// too early is not disqualifying here since a fuller route delays arrival.
func (e *Evaluator) CanEverServe(dr *core.Drone, d *core.Delivery) bool {
	if d.Weight > dr.MaxWeight {
		return false
	}
	dist := dr.Start.DistanceTo(d.Pos)
	if dr.LegEnergy(dist, d.Weight) > dr.CurrentBattery {
		return false
	}
	if dr.TravelTime(dist) > d.Window.End {
		return false
	}
	return true
}

// Unassignable returns the deliveries no drone in the fleet can ever serve,
// in scenario order.
func (e *Evaluator) Unassignable() []core.DeliveryID {
	var out []core.DeliveryID
	for _, d := range e.sc.Deliveries {
		serveable := false
		for _, dr := range e.sc.Drones {
			if e.CanEverServe(dr, d) {
				serveable = true
				break
			}
		}
		if !serveable {
			out = append(out, d.ID)
		}
	}
	return out
}
