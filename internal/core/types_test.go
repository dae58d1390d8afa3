package core

import (
	"math"
	"testing"
)

func TestDistanceTo(t *testing.T) {
	tests := []struct {
		a, b Pos
		want float64
	}{
		{Pos{0, 0}, Pos{3, 4}, 5},
		{Pos{1, 1}, Pos{1, 1}, 0},
		{Pos{-2, 0}, Pos{2, 0}, 4},
		{Pos{0, 0}, Pos{1, 1}, math.Sqrt2},
	}

	for _, tt := range tests {
		got := tt.a.DistanceTo(tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("DistanceTo(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTimeWindowContains(t *testing.T) {
	w := TimeWindow{Start: 10, End: 50}

	tests := []struct {
		t    float64
		want bool
	}{
		{10, true}, // inclusive start
		{50, true}, // inclusive end
		{30, true},
		{9.99, false},
		{50.01, false},
	}

	for _, tt := range tests {
		if got := w.Contains(tt.t); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestViolationKindString(t *testing.T) {
	tests := []struct {
		kind ViolationKind
		want string
	}{
		{CapacityExceeded, "capacity"},
		{EnergyExceeded, "energy"},
		{TimeWindowViolation, "time_window"},
		{ZoneViolation, "zone"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ViolationKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDroneLegEnergy(t *testing.T) {
	d := NewDrone(0, 4, 1000, 10, Pos{})

	// Empty flight draws the base rate.
	if got := d.LegEnergy(10, 0); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("LegEnergy(10, 0) = %v, want 1.0", got)
	}

	// A full load costs 1.5x the empty rate.
	if got := d.LegEnergy(10, 4); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("LegEnergy(10, 4) = %v, want 1.5", got)
	}

	// Half load sits midway.
	if got := d.LegEnergy(10, 2); math.Abs(got-1.25) > 1e-9 {
		t.Errorf("LegEnergy(10, 2) = %v, want 1.25", got)
	}
}

func TestDroneTravelTime(t *testing.T) {
	d := NewDrone(0, 4, 1000, 10, Pos{})
	if got := d.TravelTime(25); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("TravelTime(25) = %v, want 2.5", got)
	}
}

func TestNewDroneStartsCharged(t *testing.T) {
	d := NewDrone(3, 5, 12000, 8, Pos{X: 1, Y: 2})
	if d.CurrentBattery != d.BatteryCapacity {
		t.Errorf("new drone battery = %v, want full %v", d.CurrentBattery, d.BatteryCapacity)
	}
	if d.BatteryFraction() != 1.0 {
		t.Errorf("BatteryFraction = %v, want 1.0", d.BatteryFraction())
	}
}
