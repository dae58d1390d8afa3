package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

type posJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type windowJSON struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type droneJSON struct {
	ID              int     `json:"id"`
	MaxWeight       float64 `json:"max_weight"`
	BatteryCapacity float64 `json:"battery_capacity"`
	Speed           float64 `json:"speed"`
	StartPosition   posJSON `json:"start_position"`
}

type deliveryJSON struct {
	ID         int        `json:"id"`
	Position   posJSON    `json:"position"`
	Weight     float64    `json:"weight"`
	Priority   int        `json:"priority"`
	TimeWindow windowJSON `json:"time_window"`
}

type zoneJSON struct {
	ID           int        `json:"id"`
	Polygon      []posJSON  `json:"polygon"`
	ActiveWindow windowJSON `json:"active_window"`
}

type fileJSON struct {
	Name       string         `json:"name"`
	Params     *Params        `json:"params,omitempty"`
	Generated  string         `json:"generated,omitempty"`
	Drones     []droneJSON    `json:"drones"`
	Deliveries []deliveryJSON `json:"deliveries"`
	Zones      []zoneJSON     `json:"zones"`
}

// Save writes the scenario to path as indented snake_case JSON. params
// records generation provenance and may be nil for hand-built scenarios.
func Save(path string, sc *core.Scenario, name string, params *Params) error {
	out := fileJSON{
		Name:      name,
		Params:    params,
		Generated: time.Now().UTC().Format(time.RFC3339),
	}
	for _, d := range sc.Drones {
		out.Drones = append(out.Drones, droneJSON{
			ID:              int(d.ID),
			MaxWeight:       d.MaxWeight,
			BatteryCapacity: d.BatteryCapacity,
			Speed:           d.Speed,
			StartPosition:   posJSON{X: d.Start.X, Y: d.Start.Y},
		})
	}
	for _, d := range sc.Deliveries {
		out.Deliveries = append(out.Deliveries, deliveryJSON{
			ID:         int(d.ID),
			Position:   posJSON{X: d.Pos.X, Y: d.Pos.Y},
			Weight:     d.Weight,
			Priority:   d.Priority,
			TimeWindow: windowJSON{Start: d.Window.Start, End: d.Window.End},
		})
	}
	for _, z := range sc.Zones {
		zj := zoneJSON{
			ID:           int(z.ID),
			ActiveWindow: windowJSON{Start: z.Active.Start, End: z.Active.End},
		}
		for _, v := range z.Polygon {
			zj.Polygon = append(zj.Polygon, posJSON{X: v.X, Y: v.Y})
		}
		out.Zones = append(out.Zones, zj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}

// Load reads a scenario file and validates it against the model invariants.
// Drones come back fully charged; files carry capacity, not charge state.
func Load(path string) (*core.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var in fileJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	sc := core.NewScenario()
	for _, d := range in.Drones {
		sc.Drones = append(sc.Drones, core.NewDrone(
			core.DroneID(d.ID), d.MaxWeight, d.BatteryCapacity, d.Speed,
			core.Pos{X: d.StartPosition.X, Y: d.StartPosition.Y},
		))
	}
	for _, d := range in.Deliveries {
		sc.Deliveries = append(sc.Deliveries, core.NewDelivery(
			core.DeliveryID(d.ID),
			core.Pos{X: d.Position.X, Y: d.Position.Y},
			d.Weight, d.Priority,
			core.TimeWindow{Start: d.TimeWindow.Start, End: d.TimeWindow.End},
		))
	}
	for _, z := range in.Zones {
		poly := make([]core.Pos, 0, len(z.Polygon))
		for _, v := range z.Polygon {
			poly = append(poly, core.Pos{X: v.X, Y: v.Y})
		}
		sc.Zones = append(sc.Zones, core.NewNoFlyZone(
			core.ZoneID(z.ID), poly,
			core.TimeWindow{Start: z.ActiveWindow.Start, End: z.ActiveWindow.End},
		))
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}
