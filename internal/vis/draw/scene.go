// Package draw provides rendering helpers for the route visualizer. Sizes
// are map units scaled by the camera zoom, so glyphs grow when zooming in.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/interact"
)

// Colors for the scenario layers.
var (
	ColorZoneActive   = color.NRGBA{R: 200, G: 70, B: 70, A: 90}
	ColorZoneInactive = color.NRGBA{R: 130, G: 95, B: 95, A: 35}
	ColorZoneOutline  = color.NRGBA{R: 225, G: 95, B: 95, A: 170}
	ColorServed       = color.NRGBA{R: 95, G: 105, B: 115, A: 170}
	ColorGrid         = color.NRGBA{R: 40, G: 45, B: 50, A: 255}
)

// priorityColors ramps from routine (1) to urgent (5).
var priorityColors = [...]color.NRGBA{
	{R: 110, G: 140, B: 160, A: 255},
	{R: 100, G: 170, B: 120, A: 255},
	{R: 220, G: 190, B: 90, A: 255},
	{R: 230, G: 140, B: 70, A: 255},
	{R: 235, G: 80, B: 80, A: 255},
}

// PriorityColor returns the marker color for a delivery priority.
func PriorityColor(p int) color.NRGBA {
	if p < 1 {
		p = 1
	}
	if p > len(priorityColors) {
		p = len(priorityColors)
	}
	return priorityColors[p-1]
}

// DrawGrid draws background grid lines every gridSize map units.
func DrawGrid(gtx layout.Context, camera *interact.Camera, gridSize float64) {
	bounds := gtx.Constraints.Max

	minWorldX, minWorldY := camera.ScreenToWorld(0, 0)
	maxWorldX, maxWorldY := camera.ScreenToWorld(float32(bounds.X), float32(bounds.Y))

	startX := math.Floor(minWorldX/gridSize) * gridSize
	startY := math.Floor(minWorldY/gridSize) * gridSize

	for x := startX; x <= maxWorldX; x += gridSize {
		sx, _ := camera.WorldToScreen(x, minWorldY)
		if sx >= 0 && sx <= float32(bounds.X) {
			rect := image.Rect(int(sx), 0, int(sx)+1, bounds.Y)
			paint.FillShape(gtx.Ops, ColorGrid, clip.Rect(rect).Op())
		}
	}
	for y := startY; y <= maxWorldY; y += gridSize {
		_, sy := camera.WorldToScreen(minWorldX, y)
		if sy >= 0 && sy <= float32(bounds.Y) {
			rect := image.Rect(0, int(sy), bounds.X, int(sy)+1)
			paint.FillShape(gtx.Ops, ColorGrid, clip.Rect(rect).Op())
		}
	}
}

// DrawZones renders no-fly polygons. Zones active at time t are filled and
// outlined; inactive ones stay faint so upcoming airspace closures show.
func DrawZones(gtx layout.Context, zones []*core.NoFlyZone, t float64, camera *interact.Camera) {
	for _, z := range zones {
		if len(z.Polygon) < 3 {
			continue
		}
		if !z.ActiveAt(t) {
			FillPolygon(gtx, z.Polygon, camera, ColorZoneInactive)
			continue
		}
		FillPolygon(gtx, z.Polygon, camera, ColorZoneActive)
		OutlinePolygon(gtx, z.Polygon, camera, ColorZoneOutline, 0.3)
	}
}

// DrawDeliveries renders delivery markers colored by priority. The served
// callback dims deliveries already completed at the playback time.
func DrawDeliveries(gtx layout.Context, deliveries []*core.Delivery, served func(core.DeliveryID) bool, camera *interact.Camera) {
	for _, d := range deliveries {
		col := PriorityColor(d.Priority)
		radius := float32(1.2)
		if served != nil && served(d.ID) {
			col = ColorServed
			radius = 0.9
		}
		x, y := camera.WorldToScreen(d.Pos.X, d.Pos.Y)
		FillCircle(gtx, x, y, radius*camera.Zoom, col)
	}
}

// FillPolygon fills a closed map-space polygon.
func FillPolygon(gtx layout.Context, polygon []core.Pos, camera *interact.Camera, col color.NRGBA) {
	if len(polygon) < 3 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	x, y := camera.WorldToScreen(polygon[0].X, polygon[0].Y)
	path.MoveTo(f32.Pt(x, y))
	for _, p := range polygon[1:] {
		x, y = camera.WorldToScreen(p.X, p.Y)
		path.LineTo(f32.Pt(x, y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// OutlinePolygon strokes a polygon boundary. Width is in map units.
func OutlinePolygon(gtx layout.Context, polygon []core.Pos, camera *interact.Camera, col color.NRGBA, width float64) {
	n := len(polygon)
	if n < 2 {
		return
	}
	w := float32(width) * camera.Zoom
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		x1, y1 := camera.WorldToScreen(a.X, a.Y)
		x2, y2 := camera.WorldToScreen(b.X, b.Y)
		Line(gtx, x1, y1, x2, y2, w, col)
	}
}

// Line draws a straight segment of the given screen-space width.
func Line(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// FillCircle draws a filled circle with the given screen-space radius.
func FillCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	if radius <= 0 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// CircleOutline draws a ring with the given screen-space radius and stroke.
func CircleOutline(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, stroke float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	inner := radius - stroke
	if inner < 0 {
		inner = 0
	}
	path.Move(f32.Pt(cx+inner-path.Pos().X, cy-path.Pos().Y))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + inner*float32(math.Cos(angle))
		y := cy + inner*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
