package scenario

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

func TestGenerate_Deterministic(t *testing.T) {
	p := DefaultParams()
	a := Generate(p)
	b := Generate(p)
	require.Equal(t, a, b)

	p.Seed = 99
	c := Generate(p)
	assert.NotEqual(t, a, c)
}

func TestGenerate_RespectsRanges(t *testing.T) {
	p := DefaultParams()
	p.Deliveries = 40
	sc := Generate(p)
	require.NoError(t, sc.Validate())

	require.Len(t, sc.Drones, p.Drones)
	require.Len(t, sc.Deliveries, p.Deliveries)
	require.Len(t, sc.Zones, p.Zones)

	for _, d := range sc.Drones {
		assert.GreaterOrEqual(t, d.MaxWeight, droneWeightMin)
		assert.LessOrEqual(t, d.MaxWeight, droneWeightMax)
		assert.GreaterOrEqual(t, d.BatteryCapacity, batteryMin)
		assert.LessOrEqual(t, d.BatteryCapacity, batteryMax)
		assert.Equal(t, d.BatteryCapacity, d.CurrentBattery)
		assert.GreaterOrEqual(t, d.Speed, speedMin)
		assert.LessOrEqual(t, d.Speed, speedMax)
		assert.True(t, d.Start.X >= 0 && d.Start.X <= p.MapWidth)
		assert.True(t, d.Start.Y >= 0 && d.Start.Y <= p.MapHeight)
	}
	for i, d := range sc.Deliveries {
		assert.Equal(t, core.DeliveryID(i+1), d.ID)
		assert.GreaterOrEqual(t, d.Weight, parcelMin)
		assert.LessOrEqual(t, d.Weight, parcelMax)
		assert.GreaterOrEqual(t, d.Priority, 1)
		assert.LessOrEqual(t, d.Priority, 5)
		assert.Less(t, d.Window.Start, d.Window.End)
		assert.True(t, d.Pos.X >= 0 && d.Pos.X <= p.MapWidth)
		assert.True(t, d.Pos.Y >= 0 && d.Pos.Y <= p.MapHeight)
	}
	for i, z := range sc.Zones {
		assert.Equal(t, core.ZoneID(i+1), z.ID)
		require.Len(t, z.Polygon, 4)
		min, max := z.Bounds()
		assert.GreaterOrEqual(t, max.X-min.X, zoneSizeMin)
		assert.LessOrEqual(t, max.X-min.X, zoneSizeMax)
		assert.Less(t, z.Active.Start, z.Active.End)
	}
}

// meanNearestNeighbor averages each delivery's distance to its closest
// sibling.
func meanNearestNeighbor(deliveries []*core.Delivery) float64 {
	total := 0.0
	for i, d := range deliveries {
		nearest := math.Inf(1)
		for j, o := range deliveries {
			if i == j {
				continue
			}
			if dist := d.Pos.DistanceTo(o.Pos); dist < nearest {
				nearest = dist
			}
		}
		total += nearest
	}
	return total / float64(len(deliveries))
}

func TestGenerate_ClusteredTightensSpacing(t *testing.T) {
	p := DefaultParams()
	p.Deliveries = 30

	spread := Generate(p)

	p.Clustered = true
	clustered := Generate(p)

	require.NoError(t, clustered.Validate())
	assert.Less(t, meanNearestNeighbor(clustered.Deliveries), meanNearestNeighbor(spread.Deliveries))
}

func TestGenerate_HighPriorityUpgradesShare(t *testing.T) {
	p := DefaultParams()
	p.Deliveries = 40
	p.HighPriority = true

	sc := Generate(p)
	want := int(math.Round(urgentShare * float64(p.Deliveries)))

	urgentTight := 0
	for _, d := range sc.Deliveries {
		if d.Priority >= 4 && d.Window.Duration() <= tightDurMax {
			urgentTight++
		}
	}
	assert.GreaterOrEqual(t, urgentTight, want)
}

func TestGenerate_StaggeredZoneActivations(t *testing.T) {
	p := DefaultParams()
	p.Zones = 4
	p.StaggerZones = true

	sc := Generate(p)
	for i := 1; i < len(sc.Zones); i++ {
		assert.Greater(t, sc.Zones[i].Active.Start, sc.Zones[i-1].Active.Start)
	}
}

func TestGenerate_LogNormalWeightsStayInRange(t *testing.T) {
	p := DefaultParams()
	p.Deliveries = 60
	p.LogNormalWeights = true

	sc := Generate(p)
	for _, d := range sc.Deliveries {
		assert.GreaterOrEqual(t, d.Weight, parcelMin)
		assert.LessOrEqual(t, d.Weight, parcelMax)
	}

	p.LogNormalWeights = false
	flat := Generate(p)
	assert.NotEqual(t, flat, sc)
}

func TestCannedScenarios(t *testing.T) {
	small := CannedSmall()
	require.NoError(t, small.Validate())
	assert.Len(t, small.Drones, 5)
	assert.Len(t, small.Deliveries, 20)
	assert.Len(t, small.Zones, 3)

	large := CannedLarge()
	require.NoError(t, large.Validate())
	assert.Len(t, large.Drones, 10)
	assert.Len(t, large.Deliveries, 50)
	assert.Len(t, large.Zones, 5)
}

func TestLogNormal_Moments(t *testing.T) {
	d := NewLogNormal(2.2, 1.2)
	assert.InDelta(t, 2.2, d.Mean(), 1e-9)
	assert.InDelta(t, 1.2, d.Std(), 1e-9)
	assert.Less(t, d.Median(), d.Mean())

	rng := rand.New(rand.NewSource(1))
	n := 20000
	samples := make([]float64, n)
	sum := 0.0
	for i := range samples {
		samples[i] = d.Sample(rng)
		sum += samples[i]
	}
	assert.InDelta(t, 2.2, sum/float64(n), 0.05)

	sort.Float64s(samples)
	assert.InDelta(t, d.Median(), samples[n/2], 0.1)
}
