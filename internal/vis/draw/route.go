package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/interact"
)

// DrawTrail draws the flown part of a route as a trail that fades in
// toward the drone's current position.
func DrawTrail(gtx layout.Context, trail []core.Pos, camera *interact.Camera, baseColor color.NRGBA) {
	if len(trail) < 2 {
		return
	}

	n := len(trail)
	for i := 0; i < n-1; i++ {
		col := baseColor
		col.A = uint8(60 + float64(i)/float64(n)*160)
		w := float32(0.4) * camera.Zoom * (0.4 + 0.6*float32(i)/float32(n))

		x1, y1 := camera.WorldToScreen(trail[i].X, trail[i].Y)
		x2, y2 := camera.WorldToScreen(trail[i+1].X, trail[i+1].Y)
		Line(gtx, x1, y1, x2, y2, w, col)
	}
}

// DrawPlanned draws the part of a route still ahead of the playback cursor
// as a dim preview line.
func DrawPlanned(gtx layout.Context, ahead []core.Pos, camera *interact.Camera, baseColor color.NRGBA) {
	if len(ahead) < 2 {
		return
	}

	col := baseColor
	col.A = 70
	w := float32(0.2) * camera.Zoom

	for i := 0; i < len(ahead)-1; i++ {
		x1, y1 := camera.WorldToScreen(ahead[i].X, ahead[i].Y)
		x2, y2 := camera.WorldToScreen(ahead[i+1].X, ahead[i+1].Y)
		Line(gtx, x1, y1, x2, y2, w, col)
	}
}
