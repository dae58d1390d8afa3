// Package scenario generates delivery problem instances and reads and
// writes them as JSON files. Generation is fully seeded: the same Params
// always produce the same scenario.
package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

// Generation ranges for the reference workload: a 100x100 map served by
// 2-8 kg drones carrying 0.5-5 kg parcels.
const (
	droneWeightMin, droneWeightMax = 2.0, 8.0
	batteryMin, batteryMax         = 8000.0, 25000.0
	speedMin, speedMax             = 5.0, 15.0

	parcelMin, parcelMax       = 0.5, 5.0
	windowStartMax             = 60.0
	windowDurMin, windowDurMax = 20.0, 100.0
	tightDurMin, tightDurMax   = 20.0, 40.0

	zoneSizeMin, zoneSizeMax = 10.0, 25.0
	zoneStartMax             = 80.0
	zoneDurMin, zoneDurMax   = 30.0, 60.0

	clusterRadiusMin, clusterRadiusMax = 5.0, 20.0
	urgentShare                        = 0.3
)

// parcelDist shapes the optional log-normal weight mix: mostly light
// parcels with an occasional heavy one, clamped to the parcel range.
var parcelDist = NewLogNormal(2.2, 1.2)

// Params drives scenario generation.
type Params struct {
	Seed       int64   `json:"seed"`
	MapWidth   float64 `json:"map_width"`
	MapHeight  float64 `json:"map_height"`
	Drones     int     `json:"drones"`
	Deliveries int     `json:"deliveries"`
	Zones      int     `json:"zones"`

	// Clustered groups deliveries around Clusters random centers instead
	// of spreading them uniformly.
	Clustered bool `json:"clustered,omitempty"`
	Clusters  int  `json:"clusters,omitempty"`

	// HighPriority upgrades roughly 30% of deliveries to priority 4-5
	// with tight service windows.
	HighPriority bool `json:"high_priority,omitempty"`

	// StaggerZones activates zones one after another instead of at
	// random times.
	StaggerZones bool `json:"stagger_zones,omitempty"`

	// LogNormalWeights draws parcel weights from a skewed distribution
	// instead of uniformly.
	LogNormalWeights bool `json:"lognormal_weights,omitempty"`
}

// DefaultParams returns the small comparison workload.
func DefaultParams() Params {
	return Params{
		Seed:       42,
		MapWidth:   100,
		MapHeight:  100,
		Drones:     5,
		Deliveries: 20,
		Zones:      3,
		Clusters:   3,
	}
}

// Name returns the canonical instance name used for generated files.
func (p Params) Name() string {
	return fmt.Sprintf("dronedelivery_%dd_%dp_%dz_%d", p.Drones, p.Deliveries, p.Zones, p.Seed)
}

// Generate builds a scenario from the parameters. Drone ids count from 0,
// delivery and zone ids from 1.
func Generate(p Params) *core.Scenario {
	rng := rand.New(rand.NewSource(p.Seed))
	sc := core.NewScenario()

	for i := 0; i < p.Drones; i++ {
		sc.Drones = append(sc.Drones, core.NewDrone(
			core.DroneID(i),
			uniform(rng, droneWeightMin, droneWeightMax),
			uniform(rng, batteryMin, batteryMax),
			uniform(rng, speedMin, speedMax),
			core.Pos{X: rng.Float64() * p.MapWidth, Y: rng.Float64() * p.MapHeight},
		))
	}

	centers, radii := clusterLayout(p, rng)
	urgent := urgentSet(p, rng)

	for i := 0; i < p.Deliveries; i++ {
		pos := deliveryPos(p, rng, centers, radii)

		var weight float64
		if p.LogNormalWeights {
			weight = clamp(parcelDist.Sample(rng), parcelMin, parcelMax)
		} else {
			weight = uniform(rng, parcelMin, parcelMax)
		}

		var priority int
		var dur float64
		if urgent[i] {
			priority = 4 + rng.Intn(2)
			dur = uniform(rng, tightDurMin, tightDurMax)
		} else {
			priority = 1 + rng.Intn(5)
			dur = uniform(rng, windowDurMin, windowDurMax)
		}
		start := uniform(rng, 0, windowStartMax)

		sc.Deliveries = append(sc.Deliveries, core.NewDelivery(
			core.DeliveryID(i+1), pos, weight, priority,
			core.TimeWindow{Start: start, End: start + dur},
		))
	}

	for i := 0; i < p.Zones; i++ {
		w := uniform(rng, zoneSizeMin, zoneSizeMax)
		h := uniform(rng, zoneSizeMin, zoneSizeMax)
		x := rng.Float64() * (p.MapWidth - w)
		y := rng.Float64() * (p.MapHeight - h)

		var active core.TimeWindow
		if p.StaggerZones {
			active.Start = float64(i) * 30
			active.End = active.Start + 45
		} else {
			active.Start = uniform(rng, 0, zoneStartMax)
			active.End = active.Start + uniform(rng, zoneDurMin, zoneDurMax)
		}

		sc.Zones = append(sc.Zones, core.NewRectZone(core.ZoneID(i+1), x, y, w, h, active))
	}

	return sc
}

// CannedSmall returns the 5-drone, 20-delivery, 3-zone comparison scenario.
func CannedSmall() *core.Scenario {
	p := DefaultParams()
	p.Seed = 7
	return Generate(p)
}

// CannedLarge returns the 10-drone, 50-delivery, 5-zone comparison scenario.
func CannedLarge() *core.Scenario {
	p := DefaultParams()
	p.Seed = 11
	p.Drones = 10
	p.Deliveries = 50
	p.Zones = 5
	return Generate(p)
}

// clusterLayout draws the cluster centers and per-cluster radii when the
// clustered variant is on.
func clusterLayout(p Params, rng *rand.Rand) ([]core.Pos, []float64) {
	if !p.Clustered {
		return nil, nil
	}
	n := p.Clusters
	if n <= 0 {
		n = 3
	}
	centers := make([]core.Pos, n)
	radii := make([]float64, n)
	for i := range centers {
		centers[i] = core.Pos{X: rng.Float64() * p.MapWidth, Y: rng.Float64() * p.MapHeight}
		radii[i] = uniform(rng, clusterRadiusMin, clusterRadiusMax)
	}
	return centers, radii
}

// urgentSet picks the exact 30% of delivery indexes upgraded by the
// high-priority variant.
func urgentSet(p Params, rng *rand.Rand) map[int]bool {
	if !p.HighPriority {
		return nil
	}
	k := int(math.Round(urgentShare * float64(p.Deliveries)))
	urgent := make(map[int]bool, k)
	for _, i := range rng.Perm(p.Deliveries)[:k] {
		urgent[i] = true
	}
	return urgent
}

// deliveryPos places one delivery, either uniformly or inside a random
// cluster disc, clamped to the map.
func deliveryPos(p Params, rng *rand.Rand, centers []core.Pos, radii []float64) core.Pos {
	if len(centers) == 0 {
		return core.Pos{X: rng.Float64() * p.MapWidth, Y: rng.Float64() * p.MapHeight}
	}
	c := rng.Intn(len(centers))
	ang := rng.Float64() * 2 * math.Pi
	r := radii[c] * math.Sqrt(rng.Float64())
	return core.Pos{
		X: clamp(centers[c].X+r*math.Cos(ang), 0, p.MapWidth),
		Y: clamp(centers[c].Y+r*math.Sin(ang), 0, p.MapHeight),
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
