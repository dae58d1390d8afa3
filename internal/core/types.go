// Package core defines domain models for drone delivery routing.
package core

import "math"

// DroneID identifies a drone within a scenario's fleet.
type DroneID int

// DeliveryID identifies a delivery point within a scenario.
type DeliveryID int

// ZoneID identifies a no-fly zone within a scenario.
type ZoneID int

// Pos is a 2D position on the delivery map.
type Pos struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance to q.
func (p Pos) DistanceTo(q Pos) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// TimeWindow is a closed interval in minutes since scenario start.
type TimeWindow struct {
	Start float64
	End   float64
}

// Contains checks whether t falls inside the window, bounds inclusive.
func (w TimeWindow) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

// Duration returns the window length in minutes.
func (w TimeWindow) Duration() float64 {
	return w.End - w.Start
}

// ViolationKind classifies the constraint a route leg can break.
type ViolationKind int

const (
	CapacityExceeded ViolationKind = iota // cumulative payload above max_weight
	EnergyExceeded                        // cumulative draw above current battery
	TimeWindowViolation                   // arrival outside the delivery window
	ZoneViolation                         // leg crosses an active no-fly zone
)

func (k ViolationKind) String() string {
	return [...]string{"capacity", "energy", "time_window", "zone"}[k]
}

// Violation records one constraint breach attributed to a delivery.
type Violation struct {
	Kind     ViolationKind
	Delivery DeliveryID
}
