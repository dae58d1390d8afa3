package solver

import (
	"container/heap"
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/eval"
)

const (
	// DefaultMaxExpansions bounds one drone's sequencing search.
	DefaultMaxExpansions = 200000

	// fTolerance treats f-costs this close as equal so the priority
	// tie-break decides.
	fTolerance = 1e-9

	// maxSubsetSize is the per-drone subset limit imposed by the one-word
	// visited mask.
	maxSubsetSize = 64
)

// AStar sequences each drone's delivery subset with best-first search.
// Deliveries are partitioned among drones by a greedy pre-pass; each subset
// is then ordered independently, with search state tracking the visited set
// and the cumulative load, energy, and clock.
type AStar struct {
	MaxExpansions int

	log *zap.Logger
}

// NewAStar creates the search solver. maxExpansions <= 0 selects the
// default budget; a nil logger disables logging.
func NewAStar(maxExpansions int, logger *zap.Logger) *AStar {
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AStar{MaxExpansions: maxExpansions, log: logger}
}

func (a *AStar) Name() string { return "A*" }

// Solve partitions the deliveries and sequences every drone's subset.
func (a *AStar) Solve(ctx context.Context, sc *core.Scenario) *core.Solution {
	started := time.Now()
	ev := eval.New(sc)
	sol := core.NewSolution(a.Name(), len(sc.Deliveries))

	serveable, unassignable := splitServeable(ev)
	sol.Unassignable = unassignable

	assigned, leftover := greedyAssign(sc, serveable)
	sol.Unassigned = append(sol.Unassigned, leftover...)

	budgetHit := false
	for _, dr := range sc.Drones {
		subset := assigned[dr.ID]
		if len(subset) > maxSubsetSize {
			subset = subset[:maxSubsetSize]
		}

		route := core.NewRoute(dr.ID)
		if len(subset) > 0 && ctx.Err() == nil {
			var exhausted bool
			route, exhausted = a.sequence(ctx, ev, dr, subset)
			if exhausted {
				budgetHit = true
			}
		}
		sol.Routes[dr.ID] = route

		onRoute := make(map[core.DeliveryID]bool, len(route.Stops))
		for _, id := range route.Stops {
			onRoute[id] = true
		}
		for _, d := range assigned[dr.ID] {
			if !onRoute[d.ID] {
				sol.Unassigned = append(sol.Unassigned, d.ID)
			}
		}
	}
	if ctx.Err() != nil {
		budgetHit = true
	}

	sortDeliveryIDs(sol.Unassigned)
	resolveStatus(sol, budgetHit)
	sol.Elapsed = time.Since(started)
	a.log.Debug("search finished",
		zap.Int("served", sol.Served()),
		zap.Int("unassigned", len(sol.Unassigned)),
		zap.String("status", sol.Status.String()),
		zap.Duration("elapsed", sol.Elapsed))
	return sol
}

// astarKey identifies a search state: where the drone is and what it has
// already served. Cheaper paths to a seen key dominate later ones.
type astarKey struct {
	at   int // Index into the subset; -1 is the start position
	mask uint64
}

type astarNode struct {
	at      int
	mask    uint64
	g       float64 // Accumulated edge cost including zone penalties
	f       float64 // g + h
	prio    int     // Priorities served so far, for the tie-break
	count   int     // Deliveries served
	dist    float64 // Map units flown
	load    float64 // Onboard weight in kg
	energy  float64 // Battery drawn
	clock   float64 // Minutes since launch
	lateLeg bool    // Incoming leg arrived outside the window
	zoneLeg bool    // Incoming leg crossed an active zone
	parent  *astarNode
	index   int // heap index
}

// astarHeap implements heap.Interface. Near-equal f falls back to the
// state that has served more priority value.
type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if math.Abs(h[i].f-h[j].f) < fTolerance {
		return h[i].prio > h[j].prio
	}
	return h[i].f < h[j].f
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// sequence orders one drone's subset. Capacity and energy gate expansion
// outright; late arrivals and zone crossings are committed with their
// penalty paid and flagged on the final route. Returns the route and
// whether the expansion budget or ctx cut the search short.
func (a *AStar) sequence(ctx context.Context, ev *eval.Evaluator, dr *core.Drone, subset []*core.Delivery) (*core.Route, bool) {
	full := uint64(1)<<uint(len(subset)) - 1

	open := &astarHeap{}
	heap.Init(open)
	heap.Push(open, &astarNode{at: -1})

	bestG := make(map[astarKey]float64)
	var bestPartial *astarNode
	expansions := 0

	for open.Len() > 0 {
		if ctx.Err() != nil {
			return buildRoute(dr, subset, bestPartial), true
		}
		expansions++
		if expansions > a.MaxExpansions {
			return buildRoute(dr, subset, bestPartial), true
		}

		cur := heap.Pop(open).(*astarNode)
		key := astarKey{at: cur.at, mask: cur.mask}
		if g, ok := bestG[key]; ok && g <= cur.g {
			continue
		}
		bestG[key] = cur.g

		if cur.mask == full {
			return buildRoute(dr, subset, cur), false
		}

		pos := dr.Start
		if cur.at >= 0 {
			pos = subset[cur.at].Pos
		}

		expanded := false
		for i, d := range subset {
			if cur.mask&(1<<uint(i)) != 0 {
				continue
			}
			leg := ev.ExtendLeg(dr, pos, d, cur.load, cur.energy, cur.clock)
			if leg.Load > dr.MaxWeight || leg.Energy > dr.CurrentBattery {
				continue
			}

			zoneHit := ev.ZoneBlocked(pos, d.Pos, leg.Arrival)
			cost := ev.SegmentCost(pos, d.Pos, d.Weight, d.Priority)
			if zoneHit {
				cost += eval.ZoneCrossingPenalty
			}

			next := &astarNode{
				at:      i,
				mask:    cur.mask | 1<<uint(i),
				g:       cur.g + cost,
				prio:    cur.prio + d.Priority,
				count:   cur.count + 1,
				dist:    cur.dist + leg.Dist,
				load:    leg.Load,
				energy:  leg.Energy,
				clock:   leg.Arrival,
				lateLeg: !d.OnTime(leg.Arrival),
				zoneLeg: zoneHit,
				parent:  cur,
			}
			next.f = next.g + remainingEstimate(d.Pos, subset, next.mask)
			heap.Push(open, next)
			expanded = true
		}

		if !expanded && betterPartial(cur, bestPartial) {
			bestPartial = cur
		}
	}

	return buildRoute(dr, subset, bestPartial), false
}

// remainingEstimate is the straight distance to the nearest unvisited
// delivery, with a zero lower bound standing in for any zone penalty.
// Later zone crossings are invisible to it and light parcels scale real
// segment cost below plain distance, so the estimate is not admissible in
// general; routes come out near-optimal rather than provably optimal.
func remainingEstimate(pos core.Pos, subset []*core.Delivery, mask uint64) float64 {
	best := 0.0
	found := false
	for i, d := range subset {
		if mask&(1<<uint(i)) != 0 {
			continue
		}
		dist := pos.DistanceTo(d.Pos)
		if !found || dist < best {
			best, found = dist, true
		}
	}
	return best
}

// betterPartial prefers the dead-end state serving more deliveries, then
// the cheaper one.
func betterPartial(cand, best *astarNode) bool {
	if best == nil {
		return true
	}
	if cand.count != best.count {
		return cand.count > best.count
	}
	return cand.f < best.f
}

// buildRoute converts the winning node's ancestor chain into a route,
// flagging committed legs that arrived late or crossed an active zone.
func buildRoute(dr *core.Drone, subset []*core.Delivery, node *astarNode) *core.Route {
	route := core.NewRoute(dr.ID)
	if node == nil {
		return route
	}

	var chain []*astarNode
	for n := node; n != nil && n.at >= 0; n = n.parent {
		chain = append(chain, n)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		d := subset[n.at]
		route.Stops = append(route.Stops, d.ID)
		route.ArrivalTimes = append(route.ArrivalTimes, n.clock)
		if n.lateLeg {
			route.Violations = append(route.Violations, core.Violation{Kind: core.TimeWindowViolation, Delivery: d.ID})
		}
		if n.zoneLeg {
			route.Violations = append(route.Violations, core.Violation{Kind: core.ZoneViolation, Delivery: d.ID})
		}
	}
	route.TotalDistance = node.dist
	route.TotalEnergy = node.energy
	return route
}
