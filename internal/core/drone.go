package core

// Drone represents one delivery drone in the fleet.
// Scenario instances are shared read-only across solver runs; running totals
// (load carried, energy spent) live in each solver's working state.
type Drone struct {
	ID              DroneID
	MaxWeight       float64 // Max payload in kg
	BatteryCapacity float64 // Full charge in energy units
	CurrentBattery  float64 // Current charge, <= BatteryCapacity
	Speed           float64 // Map units per minute
	Start           Pos     // Launch position
}

// NewDrone creates a drone starting fully charged.
func NewDrone(id DroneID, maxWeight, batteryCapacity, speed float64, start Pos) *Drone {
	return &Drone{
		ID:              id,
		MaxWeight:       maxWeight,
		BatteryCapacity: batteryCapacity,
		CurrentBattery:  batteryCapacity, // Start fully charged
		Speed:           speed,
		Start:           start,
	}
}

// CanCarry checks whether adding w kg to the current load stays within capacity.
func (d *Drone) CanCarry(load, w float64) bool {
	return load+w <= d.MaxWeight
}

// LegEnergy returns the energy drawn by flying dist map units while carrying
// load kg. Draw scales with the carried fraction of capacity, so a full drone
// spends 1.5x the empty-flight rate.
func (d *Drone) LegEnergy(dist, load float64) float64 {
	base := dist * 0.1
	factor := 1.0
	if d.MaxWeight > 0 {
		factor += load / d.MaxWeight * 0.5
	}
	return base * factor
}

// TravelTime returns minutes needed to fly dist map units.
func (d *Drone) TravelTime(dist float64) float64 {
	return dist / d.Speed
}

// BatteryFraction returns the remaining charge in [0, 1].
func (d *Drone) BatteryFraction() float64 {
	if d.BatteryCapacity <= 0 {
		return 0
	}
	return d.CurrentBattery / d.BatteryCapacity
}

// Clone returns an independent copy, for solvers that keep working fleets.
func (d *Drone) Clone() *Drone {
	c := *d
	return &c
}
