// Package widgets provides the Gio widgets composing the visualizer.
package widgets

import (
	"image"
	"image/color"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/draw"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/interact"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/state"
)

// MapView is the main scenario rendering area: zones, deliveries, routes,
// and drone glyphs at the current playback time.
type MapView struct {
	state  *state.State
	camera *interact.Camera
	fitted bool
}

// NewMapView creates the map view over shared state and camera.
func NewMapView(st *state.State, camera *interact.Camera) *MapView {
	return &MapView{state: st, camera: camera}
}

// Layout renders the map.
func (m *MapView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	if !m.fitted {
		m.fitScenario(bounds)
		m.fitted = true
	}

	m.handlePointerEvents(gtx)

	t := m.state.Playback.CurrentTime
	draw.DrawGrid(gtx, m.camera, 10)
	draw.DrawZones(gtx, m.state.Scenario.Zones, t, m.camera)
	draw.DrawDeliveries(gtx, m.state.Scenario.Deliveries, m.state.ServedBy, m.camera)

	for _, d := range m.state.Scenario.Drones {
		col := draw.DroneColor(d.ID)
		draw.DrawTrail(gtx, m.state.Trail(d.ID), m.camera, col)
		draw.DrawPlanned(gtx, m.state.Remaining(d.ID), m.camera, col)
	}

	if run := m.state.Active(); run != nil {
		draw.DrawViolations(gtx, run.Solution, m.state.Scenario, m.camera)
	}

	draw.DrawDrones(gtx, m.state.Scenario.Drones, m.state.DronePositions(), m.camera)

	return layout.Dimensions{Size: bounds}
}

// ResetCamera reframes the whole scenario on the next frame.
func (m *MapView) ResetCamera() {
	m.fitted = false
}

// fitScenario frames every drone start, delivery, and zone.
func (m *MapView) fitScenario(bounds image.Point) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	for _, d := range m.state.Scenario.Drones {
		grow(d.Start.X, d.Start.Y)
	}
	for _, d := range m.state.Scenario.Deliveries {
		grow(d.Pos.X, d.Pos.Y)
	}
	for _, z := range m.state.Scenario.Zones {
		lo, hi := z.Bounds()
		grow(lo.X, lo.Y)
		grow(hi.X, hi.Y)
	}

	if math.IsInf(minX, 1) {
		return
	}
	m.camera.Fit(minX, minY, maxX, maxY, float32(bounds.X), float32(bounds.Y), 40)
}

func (m *MapView) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, m)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: m,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			m.camera.HandleEvent(gtx, pe)
		}
	}
}
