package eval

import (
	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

// SimulateRoute walks an ordered stop sequence for one drone, committing
// each feasible leg and skipping any stop whose leg breaks a constraint.
// Skipped stops keep the drone's clock, position, load, and energy unchanged
// and are returned separately; their violations are recorded on the route so
// nothing is silently dropped. Unknown delivery ids are ignored.
func (e *Evaluator) SimulateRoute(dr *core.Drone, stops []core.DeliveryID) (*core.Route, []core.DeliveryID) {
	route := core.NewRoute(dr.ID)
	var skipped []core.DeliveryID

	pos := dr.Start
	load := 0.0
	energy := 0.0
	now := 0.0

	for _, id := range stops {
		d := e.sc.DeliveryByID(id)
		if d == nil {
			continue
		}

		leg := e.ExtendLeg(dr, pos, d, load, energy, now)
		res := e.CheckLeg(dr, pos, d, leg)
		if !res.OK() {
			for _, kind := range res.Kinds() {
				route.Violations = append(route.Violations, core.Violation{Kind: kind, Delivery: id})
			}
			skipped = append(skipped, id)
			continue
		}

		route.Stops = append(route.Stops, id)
		route.ArrivalTimes = append(route.ArrivalTimes, leg.Arrival)
		route.TotalDistance += leg.Dist
		route.TotalEnergy = leg.Energy
		pos = d.Pos
		load = leg.Load
		energy = leg.Energy
		now = leg.Arrival
	}

	return route, skipped
}

// RouteFitness scores one decoded fleet plan the way the evolutionary
// optimizer ranks individuals: completed deliveries reward minus energy and
// violation penalties.
func RouteFitness(completed int, totalEnergy float64, violations int) float64 {
	return float64(completed)*50 - totalEnergy*0.1 - float64(violations)*1000
}
