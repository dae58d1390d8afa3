package core

import "fmt"

// Scenario represents one delivery problem instance: the fleet, the delivery
// points, and the no-fly zones. Solvers treat it as read-only.
type Scenario struct {
	Drones     []*Drone
	Deliveries []*Delivery
	Zones      []*NoFlyZone
}

// NewScenario creates an empty scenario.
func NewScenario() *Scenario {
	return &Scenario{}
}

// Validate checks scenario consistency against the model invariants.
func (sc *Scenario) Validate() error {
	seenDrones := make(map[DroneID]bool, len(sc.Drones))
	for _, d := range sc.Drones {
		if seenDrones[d.ID] {
			return fmt.Errorf("duplicate drone id %d", d.ID)
		}
		seenDrones[d.ID] = true
		if d.MaxWeight <= 0 {
			return fmt.Errorf("drone %d: max_weight must be positive, got %g", d.ID, d.MaxWeight)
		}
		if d.Speed <= 0 {
			return fmt.Errorf("drone %d: speed must be positive, got %g", d.ID, d.Speed)
		}
		if d.BatteryCapacity <= 0 {
			return fmt.Errorf("drone %d: battery_capacity must be positive, got %g", d.ID, d.BatteryCapacity)
		}
		if d.CurrentBattery < 0 || d.CurrentBattery > d.BatteryCapacity {
			return fmt.Errorf("drone %d: current_battery %g outside [0, %g]", d.ID, d.CurrentBattery, d.BatteryCapacity)
		}
	}

	seenDeliveries := make(map[DeliveryID]bool, len(sc.Deliveries))
	for _, p := range sc.Deliveries {
		if seenDeliveries[p.ID] {
			return fmt.Errorf("duplicate delivery id %d", p.ID)
		}
		seenDeliveries[p.ID] = true
		if p.Weight <= 0 {
			return fmt.Errorf("delivery %d: weight must be positive, got %g", p.ID, p.Weight)
		}
		if p.Priority < 1 || p.Priority > 5 {
			return fmt.Errorf("delivery %d: priority %d outside [1, 5]", p.ID, p.Priority)
		}
		if p.Window.Start >= p.Window.End {
			return fmt.Errorf("delivery %d: time window start %g not before end %g", p.ID, p.Window.Start, p.Window.End)
		}
	}

	seenZones := make(map[ZoneID]bool, len(sc.Zones))
	for _, z := range sc.Zones {
		if seenZones[z.ID] {
			return fmt.Errorf("duplicate zone id %d", z.ID)
		}
		seenZones[z.ID] = true
		if len(z.Polygon) < 3 {
			return fmt.Errorf("zone %d: polygon needs at least 3 vertices, got %d", z.ID, len(z.Polygon))
		}
		if z.Active.Start >= z.Active.End {
			return fmt.Errorf("zone %d: active window start %g not before end %g", z.ID, z.Active.Start, z.Active.End)
		}
	}
	return nil
}

// DroneByID finds a drone by ID, nil when absent.
func (sc *Scenario) DroneByID(id DroneID) *Drone {
	for _, d := range sc.Drones {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// DeliveryByID finds a delivery by ID, nil when absent.
func (sc *Scenario) DeliveryByID(id DeliveryID) *Delivery {
	for _, p := range sc.Deliveries {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ZoneByID finds a zone by ID, nil when absent.
func (sc *Scenario) ZoneByID(id ZoneID) *NoFlyZone {
	for _, z := range sc.Zones {
		if z.ID == id {
			return z
		}
	}
	return nil
}
