package solver

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/eval"
)

// DefaultMaxSteps bounds the backtracking search.
const DefaultMaxSteps = 200000

var errStepBudget = errors.New("backtracking step budget exhausted")

// CSP assigns deliveries to drones by backtracking with forward checking.
// Variables are deliveries; a delivery's domain holds the drones whose
// running state still admits it as the next stop. Assigning advances that
// drone's state and prunes the domains of everything still open.
type CSP struct {
	MaxSteps int

	log *zap.Logger
}

// NewCSP creates the constraint solver. maxSteps <= 0 selects the default
// budget; a nil logger disables logging.
func NewCSP(maxSteps int, logger *zap.Logger) *CSP {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSP{MaxSteps: maxSteps, log: logger}
}

func (c *CSP) Name() string { return "CSP" }

// Solve backtracks over delivery assignments, returning the complete
// assignment when one exists and otherwise the deepest partial seen.
func (c *CSP) Solve(ctx context.Context, sc *core.Scenario) *core.Solution {
	started := time.Now()
	ev := eval.New(sc)
	sol := core.NewSolution(c.Name(), len(sc.Deliveries))

	serveable, unassignable := splitServeable(ev)
	sol.Unassignable = unassignable

	search := &cspSearch{
		ev:        ev,
		sc:        sc,
		serveable: serveable,
		maxSteps:  c.MaxSteps,
	}

	root := search.rootAssignment()
	complete, err := search.run(ctx, root)

	final := complete
	if final == nil {
		final = search.best
	}
	if final == nil {
		final = root
	}

	decodeStops(ev, sol, final.order)
	for _, d := range serveable {
		if _, ok := final.byDelivery[d.ID]; !ok {
			sol.Unassigned = append(sol.Unassigned, d.ID)
		}
	}
	sortDeliveryIDs(sol.Unassigned)
	resolveStatus(sol, err != nil)
	sol.Elapsed = time.Since(started)
	c.log.Debug("backtracking finished",
		zap.Int("steps", search.steps),
		zap.Int("served", sol.Served()),
		zap.String("status", sol.Status.String()),
		zap.Duration("elapsed", sol.Elapsed))
	return sol
}

// flightState is one drone's running totals along its partial route.
type flightState struct {
	pos    core.Pos
	load   float64
	energy float64
	clock  float64
}

// assignment is the copyable search node: who serves what, in which order,
// each drone's running state, and the pruned domains of the open
// deliveries. Every branch owns its own copy, so branches never alias each
// other's domains.
type assignment struct {
	byDelivery map[core.DeliveryID]core.DroneID
	order      map[core.DroneID][]core.DeliveryID
	flight     map[core.DroneID]*flightState
	domains    map[core.DeliveryID][]core.DroneID
	wsum       float64 // Total weight assigned, for ranking equal-count partials
}

func (a *assignment) clone() *assignment {
	c := &assignment{
		byDelivery: make(map[core.DeliveryID]core.DroneID, len(a.byDelivery)),
		order:      make(map[core.DroneID][]core.DeliveryID, len(a.order)),
		flight:     make(map[core.DroneID]*flightState, len(a.flight)),
		domains:    make(map[core.DeliveryID][]core.DroneID, len(a.domains)),
		wsum:       a.wsum,
	}
	for k, v := range a.byDelivery {
		c.byDelivery[k] = v
	}
	for k, v := range a.order {
		c.order[k] = append([]core.DeliveryID(nil), v...)
	}
	for k, v := range a.flight {
		st := *v
		c.flight[k] = &st
	}
	for k, v := range a.domains {
		c.domains[k] = append([]core.DroneID(nil), v...)
	}
	return c
}

// cspSearch carries the shared context of one backtracking run.
type cspSearch struct {
	ev        *eval.Evaluator
	sc        *core.Scenario
	serveable []*core.Delivery
	maxSteps  int

	steps int
	best  *assignment // Deepest partial seen
}

// rootAssignment builds the initial node: empty routes, launch positions,
// domains holding every drone that could take the delivery as its first
// stop.
func (s *cspSearch) rootAssignment() *assignment {
	a := &assignment{
		byDelivery: make(map[core.DeliveryID]core.DroneID),
		order:      make(map[core.DroneID][]core.DeliveryID),
		flight:     make(map[core.DroneID]*flightState, len(s.sc.Drones)),
		domains:    make(map[core.DeliveryID][]core.DroneID, len(s.serveable)),
	}
	for _, dr := range s.sc.Drones {
		a.flight[dr.ID] = &flightState{pos: dr.Start}
	}
	for _, d := range s.serveable {
		var dom []core.DroneID
		for _, dr := range s.sc.Drones {
			if s.legOK(a, dr, d) {
				dom = append(dom, dr.ID)
			}
		}
		a.domains[d.ID] = dom
	}
	return a
}

// legOK checks whether appending d to dr's partial route next keeps every
// constraint satisfied.
func (s *cspSearch) legOK(a *assignment, dr *core.Drone, d *core.Delivery) bool {
	st := a.flight[dr.ID]
	leg := s.ev.ExtendLeg(dr, st.pos, d, st.load, st.energy, st.clock)
	return s.ev.CheckLeg(dr, st.pos, d, leg).OK()
}

// run recurses over open deliveries. It returns the first complete
// assignment, or nil when this branch is exhausted; a non-nil error means
// ctx or the step budget ended the whole search.
func (s *cspSearch) run(ctx context.Context, a *assignment) (*assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.steps++
	if s.steps > s.maxSteps {
		return nil, errStepBudget
	}

	if len(a.byDelivery) == len(s.serveable) {
		return a, nil
	}

	d := s.pickVariable(a)
	for _, droneID := range a.domains[d.ID] {
		dr := s.sc.DroneByID(droneID)
		child := a.clone()
		wiped := s.apply(child, dr, d)
		s.observe(child)
		if wiped {
			continue
		}
		found, err := s.run(ctx, child)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, nil
}

// pickVariable selects the open delivery with the smallest domain, most
// constrained first. Ties go to the higher priority, then the lower id.
func (s *cspSearch) pickVariable(a *assignment) *core.Delivery {
	var pick *core.Delivery
	for _, d := range s.serveable {
		if _, done := a.byDelivery[d.ID]; done {
			continue
		}
		if pick == nil {
			pick = d
			continue
		}
		dl, pl := len(a.domains[d.ID]), len(a.domains[pick.ID])
		switch {
		case dl != pl:
			if dl < pl {
				pick = d
			}
		case d.Priority != pick.Priority:
			if d.Priority > pick.Priority {
				pick = d
			}
		case d.ID < pick.ID:
			pick = d
		}
	}
	return pick
}

// apply assigns d to dr on the node, advances the drone's state, and
// forward-checks: the new state is rechecked against every open delivery
// still listing dr, dropping entries that no longer fit. It reports a
// domain wipeout, which dead-ends the branch immediately.
func (s *cspSearch) apply(a *assignment, dr *core.Drone, d *core.Delivery) (wiped bool) {
	st := a.flight[dr.ID]
	leg := s.ev.ExtendLeg(dr, st.pos, d, st.load, st.energy, st.clock)
	st.pos = d.Pos
	st.load = leg.Load
	st.energy = leg.Energy
	st.clock = leg.Arrival

	a.byDelivery[d.ID] = dr.ID
	a.order[dr.ID] = append(a.order[dr.ID], d.ID)
	a.wsum += d.Weight
	delete(a.domains, d.ID)

	for _, other := range s.serveable {
		if _, done := a.byDelivery[other.ID]; done {
			continue
		}
		dom := a.domains[other.ID]
		kept := dom[:0]
		for _, id := range dom {
			if id == dr.ID && !s.legOK(a, dr, other) {
				continue
			}
			kept = append(kept, id)
		}
		a.domains[other.ID] = kept
		if len(kept) == 0 {
			return true
		}
	}
	return false
}

// observe keeps the deepest partial seen: most deliveries assigned, with
// equal counts broken by the heavier assigned total, which leaves the
// lightest weight unserved.
func (s *cspSearch) observe(a *assignment) {
	if s.best == nil || len(a.byDelivery) > len(s.best.byDelivery) {
		s.best = a.clone()
		return
	}
	if len(a.byDelivery) == len(s.best.byDelivery) && a.wsum > s.best.wsum {
		s.best = a.clone()
	}
}
