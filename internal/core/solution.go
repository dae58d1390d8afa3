package core

import "time"

// Status classifies how a solver run ended.
type Status int

const (
	StatusComplete    Status = iota // Every serviceable delivery routed, no violations
	StatusPartial                   // Deliveries left out or violations recorded
	StatusTimeLimited               // Budget expired, best-so-far returned
	StatusStalled                   // No fitness improvement within the stall window
)

func (s Status) String() string {
	return [...]string{"complete", "partial", "time_limited", "stalled"}[s]
}

// Solution is one solver run's output over a scenario.
//
// Unassignable lists deliveries no drone can ever serve (they violate some
// drone-independent bound); Unassigned lists deliveries this particular run
// left out. The two are distinct so callers can tell a hopeless delivery
// from one merely dropped by a heuristic.
type Solution struct {
	Solver          string
	Routes          map[DroneID]*Route
	Unassigned      []DeliveryID
	Unassignable    []DeliveryID
	Status          Status
	TotalDeliveries int
	Elapsed         time.Duration
	FitnessHistory  []float64 // Best fitness per generation; evolutionary runs only
}

// NewSolution creates an empty solution for a named solver.
func NewSolution(solver string, totalDeliveries int) *Solution {
	return &Solution{
		Solver:          solver,
		Routes:          make(map[DroneID]*Route),
		TotalDeliveries: totalDeliveries,
	}
}

// Served returns the number of deliveries routed across the fleet.
func (s *Solution) Served() int {
	n := 0
	for _, r := range s.Routes {
		n += r.Served()
	}
	return n
}

// CompletionRate returns served deliveries as a fraction of the scenario total.
func (s *Solution) CompletionRate() float64 {
	if s.TotalDeliveries == 0 {
		return 0
	}
	return float64(s.Served()) / float64(s.TotalDeliveries)
}

// ViolationCount returns the number of violations recorded across all routes.
func (s *Solution) ViolationCount() int {
	n := 0
	for _, r := range s.Routes {
		n += len(r.Violations)
	}
	return n
}

// TotalDistance sums route distances across the fleet.
func (s *Solution) TotalDistance() float64 {
	d := 0.0
	for _, r := range s.Routes {
		d += r.TotalDistance
	}
	return d
}

// TotalEnergy sums route energy draw across the fleet.
func (s *Solution) TotalEnergy() float64 {
	e := 0.0
	for _, r := range s.Routes {
		e += r.TotalEnergy
	}
	return e
}

// MeanEnergy returns the average energy drawn per active route, 0 when no
// drone flew.
func (s *Solution) MeanEnergy() float64 {
	active := 0
	total := 0.0
	for _, r := range s.Routes {
		if r.Empty() {
			continue
		}
		active++
		total += r.TotalEnergy
	}
	if active == 0 {
		return 0
	}
	return total / float64(active)
}

// Feasible checks for a fully clean result: complete status and nothing
// recorded against any route.
func (s *Solution) Feasible() bool {
	return s.Status == StatusComplete && s.ViolationCount() == 0
}

// Clone returns an independent deep copy.
func (s *Solution) Clone() *Solution {
	c := &Solution{
		Solver:          s.Solver,
		Routes:          make(map[DroneID]*Route, len(s.Routes)),
		Status:          s.Status,
		TotalDeliveries: s.TotalDeliveries,
		Elapsed:         s.Elapsed,
	}
	for id, r := range s.Routes {
		c.Routes[id] = r.Clone()
	}
	c.Unassigned = append([]DeliveryID(nil), s.Unassigned...)
	c.Unassignable = append([]DeliveryID(nil), s.Unassignable...)
	c.FitnessHistory = append([]float64(nil), s.FitnessHistory...)
	return c
}

// DroneStatus is one drone's share of a solution, for fleet reports.
type DroneStatus struct {
	Drone           DroneID
	Stops           int
	Distance        float64
	Energy          float64
	BatteryLeftFrac float64
}

// FleetStatus derives per-drone utilisation from the solution's routes.
// Drones without a route report zero usage and a full battery fraction.
func (s *Solution) FleetStatus(sc *Scenario) []DroneStatus {
	out := make([]DroneStatus, 0, len(sc.Drones))
	for _, d := range sc.Drones {
		st := DroneStatus{Drone: d.ID, BatteryLeftFrac: d.BatteryFraction()}
		if r, ok := s.Routes[d.ID]; ok {
			st.Stops = r.Served()
			st.Distance = r.TotalDistance
			st.Energy = r.TotalEnergy
			if d.CurrentBattery > 0 {
				left := (d.CurrentBattery - r.TotalEnergy) / d.BatteryCapacity
				if left < 0 {
					left = 0
				}
				st.BatteryLeftFrac = left
			}
		}
		out = append(out, st)
	}
	return out
}
