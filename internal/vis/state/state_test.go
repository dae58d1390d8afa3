package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
)

func playbackFixture() *State {
	sc := core.NewScenario()
	sc.Drones = append(sc.Drones, core.NewDrone(0, 5, 1000, 1, core.Pos{}))
	sc.Deliveries = append(sc.Deliveries,
		core.NewDeliveryAnytime(1, core.Pos{X: 10, Y: 0}, 1, 1),
		core.NewDeliveryAnytime(2, core.Pos{X: 10, Y: 10}, 1, 1),
	)

	sol := core.NewSolution("A*", 2)
	sol.Routes[0] = &core.Route{
		Drone:        0,
		Stops:        []core.DeliveryID{1, 2},
		ArrivalTimes: []float64{10, 20},
	}

	return New(sc, []SolverRun{{Name: "A*", Solution: sol}})
}

func TestNew_TimelineSpansLongestRoute(t *testing.T) {
	st := playbackFixture()
	assert.Equal(t, 20.0, st.Playback.MaxTime)
}

func TestDronePositions_InterpolatesAlongRoute(t *testing.T) {
	st := playbackFixture()

	st.Playback.SetTime(5)
	assert.Equal(t, core.Pos{X: 5, Y: 0}, st.DronePositions()[0])

	st.Playback.SetTime(15)
	assert.Equal(t, core.Pos{X: 10, Y: 5}, st.DronePositions()[0])

	st.Playback.SetTime(20)
	assert.Equal(t, core.Pos{X: 10, Y: 10}, st.DronePositions()[0])
}

func TestTrailAndRemaining_SplitAtCursor(t *testing.T) {
	st := playbackFixture()
	st.Playback.SetTime(15)

	trail := st.Trail(0)
	require.Len(t, trail, 3)
	assert.Equal(t, core.Pos{}, trail[0])
	assert.Equal(t, core.Pos{X: 10, Y: 0}, trail[1])
	assert.Equal(t, core.Pos{X: 10, Y: 5}, trail[2])

	ahead := st.Remaining(0)
	require.Len(t, ahead, 2)
	assert.Equal(t, core.Pos{X: 10, Y: 5}, ahead[0])
	assert.Equal(t, core.Pos{X: 10, Y: 10}, ahead[1])

	st.Playback.SetTime(20)
	assert.Nil(t, st.Remaining(0))
}

func TestServedBy_FollowsArrivals(t *testing.T) {
	st := playbackFixture()

	st.Playback.SetTime(15)
	assert.True(t, st.ServedBy(1))
	assert.False(t, st.ServedBy(2))

	st.Playback.SetTime(20)
	assert.True(t, st.ServedBy(2))
}

func TestCycleSolver_WrapsAndKeepsTime(t *testing.T) {
	st := playbackFixture()
	other := core.NewSolution("GA", 2)
	st.Runs = append(st.Runs, SolverRun{Name: "GA", Solution: other})

	st.Playback.SetTime(7)
	require.Equal(t, "A*", st.Active().Name)

	st.CycleSolver()
	assert.Equal(t, "GA", st.Active().Name)
	assert.Equal(t, 7.0, st.Playback.CurrentTime)

	st.CycleSolver()
	assert.Equal(t, "A*", st.Active().Name)
}
