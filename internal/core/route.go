package core

// Route is one drone's ordered stop sequence with derived traversal metrics.
// ArrivalTimes runs parallel to Stops. Violations carries every constraint
// breach detected while the route was built or checked; a breach is recorded,
// never silently dropped.
type Route struct {
	Drone         DroneID
	Stops         []DeliveryID
	ArrivalTimes  []float64 // Minutes from scenario start
	TotalDistance float64
	TotalEnergy   float64
	Violations    []Violation
}

// NewRoute creates an empty route for a drone.
func NewRoute(drone DroneID) *Route {
	return &Route{Drone: drone}
}

// Served returns the number of stops on the route.
func (r *Route) Served() int {
	return len(r.Stops)
}

// Empty checks whether the route has no stops.
func (r *Route) Empty() bool {
	return len(r.Stops) == 0
}

// HasViolation checks whether any violation of the given kind was recorded.
func (r *Route) HasViolation(kind ViolationKind) bool {
	for _, v := range r.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

// EndTime returns the arrival time at the last stop, or 0 for empty routes.
func (r *Route) EndTime() float64 {
	if len(r.ArrivalTimes) == 0 {
		return 0
	}
	return r.ArrivalTimes[len(r.ArrivalTimes)-1]
}

// Clone returns an independent deep copy.
func (r *Route) Clone() *Route {
	c := &Route{
		Drone:         r.Drone,
		TotalDistance: r.TotalDistance,
		TotalEnergy:   r.TotalEnergy,
	}
	c.Stops = append([]DeliveryID(nil), r.Stops...)
	c.ArrivalTimes = append([]float64(nil), r.ArrivalTimes...)
	c.Violations = append([]Violation(nil), r.Violations...)
	return c
}
