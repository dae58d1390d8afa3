// Package state manages the visualizer's model: one scenario, the solution
// each solver produced for it, and the shared playback clock.
package state

import (
	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

// SolverRun pairs a solver name with the solution it produced.
type SolverRun struct {
	Name     string
	Solution *core.Solution
}

// State holds everything the widgets render.
type State struct {
	Scenario *core.Scenario
	Runs     []SolverRun
	Playback *Playback

	active int
}

// New builds visualization state over solver runs on one scenario. The
// timeline spans the longest route across all runs.
func New(sc *core.Scenario, runs []SolverRun) *State {
	maxTime := 0.0
	for _, run := range runs {
		for _, r := range run.Solution.Routes {
			if t := r.EndTime(); t > maxTime {
				maxTime = t
			}
		}
	}
	return &State{
		Scenario: sc,
		Runs:     runs,
		Playback: NewPlayback(maxTime),
	}
}

// Active returns the currently displayed run, nil when no solver ran.
func (s *State) Active() *SolverRun {
	if len(s.Runs) == 0 {
		return nil
	}
	return &s.Runs[s.active]
}

// CycleSolver switches to the next solver's solution. The playback position
// is kept so solutions can be compared at the same moment.
func (s *State) CycleSolver() {
	if len(s.Runs) == 0 {
		return
	}
	s.active = (s.active + 1) % len(s.Runs)
}

// SetActive selects a run by index.
func (s *State) SetActive(i int) {
	if i >= 0 && i < len(s.Runs) {
		s.active = i
	}
}

// route returns the active solution's route for a drone, nil when idle.
func (s *State) route(id core.DroneID) *core.Route {
	run := s.Active()
	if run == nil {
		return nil
	}
	return run.Solution.Routes[id]
}

// DronePositions returns each drone's interpolated position at the current
// playback time.
func (s *State) DronePositions() map[core.DroneID]core.Pos {
	positions := make(map[core.DroneID]core.Pos, len(s.Scenario.Drones))
	for _, d := range s.Scenario.Drones {
		positions[d.ID] = s.positionAt(d, s.Playback.CurrentTime)
	}
	return positions
}

// positionAt interpolates one drone along its route. The drone leaves its
// start at time zero and parks at its last stop once the route is done.
func (s *State) positionAt(d *core.Drone, t float64) core.Pos {
	r := s.route(d.ID)
	if r == nil || r.Empty() {
		return d.Start
	}

	prevPos := d.Start
	prevTime := 0.0
	for i, stop := range r.Stops {
		target := s.Scenario.DeliveryByID(stop)
		if target == nil {
			continue
		}
		arrival := r.ArrivalTimes[i]
		if t < arrival {
			dt := arrival - prevTime
			if dt <= 0 {
				return target.Pos
			}
			alpha := (t - prevTime) / dt
			return core.Pos{
				X: prevPos.X + alpha*(target.Pos.X-prevPos.X),
				Y: prevPos.Y + alpha*(target.Pos.Y-prevPos.Y),
			}
		}
		prevPos = target.Pos
		prevTime = arrival
	}
	return prevPos
}

// Trail returns the positions a drone has passed by the current time,
// ending at its interpolated position. Used for route trails.
func (s *State) Trail(id core.DroneID) []core.Pos {
	r := s.route(id)
	if r == nil || r.Empty() {
		return nil
	}
	d := s.Scenario.DroneByID(id)
	if d == nil {
		return nil
	}

	trail := []core.Pos{d.Start}
	for i, stop := range r.Stops {
		if r.ArrivalTimes[i] > s.Playback.CurrentTime {
			break
		}
		if target := s.Scenario.DeliveryByID(stop); target != nil {
			trail = append(trail, target.Pos)
		}
	}
	trail = append(trail, s.positionAt(d, s.Playback.CurrentTime))
	return trail
}

// Remaining returns the stops still ahead of the playback cursor, prefixed
// by the drone's current position. Used for planned route previews.
func (s *State) Remaining(id core.DroneID) []core.Pos {
	r := s.route(id)
	if r == nil || r.Empty() {
		return nil
	}
	d := s.Scenario.DroneByID(id)
	if d == nil {
		return nil
	}

	ahead := []core.Pos{s.positionAt(d, s.Playback.CurrentTime)}
	for i, stop := range r.Stops {
		if r.ArrivalTimes[i] <= s.Playback.CurrentTime {
			continue
		}
		if target := s.Scenario.DeliveryByID(stop); target != nil {
			ahead = append(ahead, target.Pos)
		}
	}
	if len(ahead) < 2 {
		return nil
	}
	return ahead
}

// ServedBy reports whether the active solution has delivered the given
// delivery by the current playback time.
func (s *State) ServedBy(id core.DeliveryID) bool {
	run := s.Active()
	if run == nil {
		return false
	}
	for _, r := range run.Solution.Routes {
		for i, stop := range r.Stops {
			if stop == id {
				return r.ArrivalTimes[i] <= s.Playback.CurrentTime
			}
		}
	}
	return false
}
