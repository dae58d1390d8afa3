package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

func TestSimulateRouteLine(t *testing.T) {
	sc := lineScenario()
	e := New(sc)
	dr := sc.Drones[0]

	route, skipped := e.SimulateRoute(dr, []core.DeliveryID{1, 2, 3})

	require.Empty(t, skipped)
	require.Equal(t, []core.DeliveryID{1, 2, 3}, route.Stops)
	require.Equal(t, []float64{1, 2, 3}, route.ArrivalTimes, "speed 1 unit/min, unit legs")
	require.InDelta(t, 3.0, route.TotalDistance, 1e-9)
	require.Empty(t, route.Violations)

	// Legs at loads 1, 2, 3 kg on a 5 kg drone.
	want := 0.1*(1+1.0/5*0.5) + 0.1*(1+2.0/5*0.5) + 0.1*(1+3.0/5*0.5)
	require.InDelta(t, want, route.TotalEnergy, 1e-9)
}

func TestSimulateRouteSkipsOverweightStop(t *testing.T) {
	sc := core.NewScenario()
	sc.Drones = []*core.Drone{core.NewDrone(0, 2, 10000, 1, core.Pos{})}
	sc.Deliveries = []*core.Delivery{
		core.NewDelivery(1, core.Pos{X: 1, Y: 0}, 1.5, 1, core.TimeWindow{Start: 0, End: 1000}),
		core.NewDelivery(2, core.Pos{X: 2, Y: 0}, 1.5, 1, core.TimeWindow{Start: 0, End: 1000}),
	}
	e := New(sc)

	route, skipped := e.SimulateRoute(sc.Drones[0], []core.DeliveryID{1, 2})

	require.Equal(t, []core.DeliveryID{1}, route.Stops)
	require.Equal(t, []core.DeliveryID{2}, skipped)
	require.Len(t, route.Violations, 1)
	require.Equal(t, core.CapacityExceeded, route.Violations[0].Kind)
	require.Equal(t, core.DeliveryID(2), route.Violations[0].Delivery)
}

func TestSimulateRouteSkipKeepsClock(t *testing.T) {
	sc := core.NewScenario()
	sc.Drones = []*core.Drone{core.NewDrone(0, 10, 10000, 1, core.Pos{})}
	sc.Deliveries = []*core.Delivery{
		core.NewDelivery(1, core.Pos{X: 1, Y: 0}, 1, 1, core.TimeWindow{Start: 0, End: 1000}),
		// Unreachable window: will be skipped.
		core.NewDelivery(2, core.Pos{X: 2, Y: 0}, 1, 1, core.TimeWindow{Start: 0, End: 1}),
		core.NewDelivery(3, core.Pos{X: 3, Y: 0}, 1, 1, core.TimeWindow{Start: 0, End: 1000}),
	}
	e := New(sc)

	route, skipped := e.SimulateRoute(sc.Drones[0], []core.DeliveryID{1, 2, 3})

	require.Equal(t, []core.DeliveryID{1, 3}, route.Stops)
	require.Equal(t, []core.DeliveryID{2}, skipped)
	// Leg to 3 flies from stop 1 at (1,0), t=1: arrival 1 + 2 = 3.
	require.Equal(t, []float64{1, 3}, route.ArrivalTimes)
	require.InDelta(t, 3.0, route.TotalDistance, 1e-9)
}

func TestSimulateRouteZoneFlagged(t *testing.T) {
	sc := lineScenario()
	sc.Zones = []*core.NoFlyZone{
		core.NewRectZone(0, 1.4, -1, 0.2, 2, core.TimeWindow{Start: 0, End: 1000}),
	}
	e := New(sc)

	route, skipped := e.SimulateRoute(sc.Drones[0], []core.DeliveryID{1, 2, 3})

	// Delivery 1 is clear; the 1->2 leg crosses the strip and is skipped,
	// as is the retry 1->3 which also crosses it.
	require.Equal(t, []core.DeliveryID{1}, route.Stops)
	require.Equal(t, []core.DeliveryID{2, 3}, skipped)
	require.True(t, route.HasViolation(core.ZoneViolation))
}

func TestPrefixMonotonicity(t *testing.T) {
	sc := lineScenario()
	e := New(sc)
	dr := sc.Drones[0]

	route, _ := e.SimulateRoute(dr, []core.DeliveryID{3, 1, 2})

	// Replay the committed stops and confirm every prefix stays inside
	// capacity and battery.
	load := 0.0
	energy := 0.0
	pos := dr.Start
	for i, id := range route.Stops {
		d := sc.DeliveryByID(id)
		require.NotNil(t, d)
		load += d.Weight
		energy += dr.LegEnergy(pos.DistanceTo(d.Pos), load)
		require.LessOrEqual(t, load, dr.MaxWeight, "prefix %d", i)
		require.LessOrEqual(t, energy, dr.CurrentBattery, "prefix %d", i)
		pos = d.Pos
	}
}

func TestRouteFitness(t *testing.T) {
	require.InDelta(t, 0.0, RouteFitness(0, 0, 0), 1e-9)
	require.InDelta(t, 150.0-2.5, RouteFitness(3, 25, 0), 1e-9)
	require.InDelta(t, 50.0-1000.0, RouteFitness(1, 0, 1), 1e-9)
}
