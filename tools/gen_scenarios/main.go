// Package main generates drone delivery scenario files.
// Output is deterministic for a given parameter set.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/drone-delivery-research/internal/scenario"
)

func main() {
	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	width := flag.Float64("width", 100, "Map width")
	height := flag.Float64("height", 100, "Map height")
	drones := flag.Int("drones", 5, "Fleet size")
	deliveries := flag.Int("deliveries", 20, "Number of deliveries")
	zones := flag.Int("zones", 3, "Number of no-fly zones")
	clustered := flag.Bool("clustered", false, "Group deliveries around random centers")
	clusters := flag.Int("clusters", 3, "Cluster count for -clustered")
	highPriority := flag.Bool("high-priority", false, "Upgrade ~30% of deliveries to priority 4-5 with tight windows")
	stagger := flag.Bool("stagger-zones", false, "Activate zones one after another")
	lognormal := flag.Bool("lognormal-weights", false, "Draw parcel weights from a skewed distribution")
	outputDir := flag.String("output", "testdata", "Output directory")
	suite := flag.Bool("suite", false, "Generate the standard suite instead of a single scenario")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var all []scenario.Params
	if *suite {
		all = suiteParams(*seed)
	} else {
		all = []scenario.Params{{
			Seed:             *seed,
			MapWidth:         *width,
			MapHeight:        *height,
			Drones:           *drones,
			Deliveries:       *deliveries,
			Zones:            *zones,
			Clustered:        *clustered,
			Clusters:         *clusters,
			HighPriority:     *highPriority,
			StaggerZones:     *stagger,
			LogNormalWeights: *lognormal,
		}}
	}

	for _, p := range all {
		sc := scenario.Generate(p)
		path := filepath.Join(*outputDir, p.Name()+".json")
		if err := scenario.Save(path, sc, p.Name(), &p); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			continue
		}
		fmt.Printf("Generated: %s (%d drones, %d deliveries, %d zones)\n",
			path, p.Drones, p.Deliveries, p.Zones)
	}
}

// suiteParams builds the standard spread: both comparison workloads plus one
// instance per generation variant. Seeds are offset so file names stay unique.
func suiteParams(seed int64) []scenario.Params {
	small := scenario.DefaultParams()
	small.Seed = seed

	large := small
	large.Drones, large.Deliveries, large.Zones = 10, 50, 5

	clustered := small
	clustered.Seed = seed + 1
	clustered.Clustered = true

	urgent := small
	urgent.Seed = seed + 2
	urgent.HighPriority = true

	staggered := small
	staggered.Seed = seed + 3
	staggered.StaggerZones = true

	heavyTail := small
	heavyTail.Seed = seed + 4
	heavyTail.LogNormalWeights = true

	return []scenario.Params{small, large, clustered, urgent, staggered, heavyTail}
}
