package draw

import (
	"image/color"
	"math"

	"gioui.org/layout"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/interact"
)

// dronePalette cycles across the fleet so neighbouring ids stay distinct.
var dronePalette = [...]color.NRGBA{
	{R: 100, G: 200, B: 255, A: 255},
	{R: 255, G: 160, B: 90, A: 255},
	{R: 170, G: 230, B: 110, A: 255},
	{R: 220, G: 120, B: 255, A: 255},
	{R: 255, G: 220, B: 100, A: 255},
	{R: 120, G: 230, B: 210, A: 255},
	{R: 250, G: 120, B: 150, A: 255},
	{R: 160, G: 160, B: 255, A: 255},
}

// DroneColor returns the route and glyph color for a drone.
func DroneColor(id core.DroneID) color.NRGBA {
	i := int(id) % len(dronePalette)
	if i < 0 {
		i += len(dronePalette)
	}
	return dronePalette[i]
}

// DrawDrones renders a quadcopter glyph for every drone at its interpolated
// position.
func DrawDrones(gtx layout.Context, drones []*core.Drone, positions map[core.DroneID]core.Pos, camera *interact.Camera) {
	for _, d := range drones {
		pos, ok := positions[d.ID]
		if !ok {
			continue
		}
		x, y := camera.WorldToScreen(pos.X, pos.Y)
		drawQuadcopter(gtx, x, y, float32(1.6)*camera.Zoom, DroneColor(d.ID))
	}
}

// drawQuadcopter draws the X-frame drone glyph: four arms with rotor discs
// around a center body.
func drawQuadcopter(gtx layout.Context, cx, cy, size float32, col color.NRGBA) {
	armLen := size * 0.7
	rotorR := size * 0.3

	for _, angle := range []float64{45, 135, 225, 315} {
		rad := angle * math.Pi / 180
		dx := float32(math.Cos(rad)) * armLen
		dy := float32(math.Sin(rad)) * armLen

		Line(gtx, cx, cy, cx+dx, cy+dy, size*0.12, col)
		FillCircle(gtx, cx+dx, cy+dy, rotorR, col)
	}

	FillCircle(gtx, cx, cy, size*0.25, col)
}
