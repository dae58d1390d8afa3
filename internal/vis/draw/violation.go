package draw

import (
	"image/color"
	"math"
	"time"

	"gioui.org/layout"

	"github.com/elektrokombinacija/drone-delivery-research/internal/core"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/interact"
)

// violationColors distinguish constraint breach kinds on the map.
var violationColors = map[core.ViolationKind]color.NRGBA{
	core.CapacityExceeded:    {R: 255, G: 160, B: 70, A: 210},
	core.EnergyExceeded:      {R: 255, G: 220, B: 80, A: 210},
	core.TimeWindowViolation: {R: 110, G: 200, B: 255, A: 210},
	core.ZoneViolation:       {R: 255, G: 80, B: 80, A: 210},
}

// ViolationColor returns the ring color for a violation kind.
func ViolationColor(kind core.ViolationKind) color.NRGBA {
	if col, ok := violationColors[kind]; ok {
		return col
	}
	return color.NRGBA{R: 255, G: 80, B: 80, A: 210}
}

// DrawViolations rings every delivery a solution recorded a violation
// against. The rings pulse so breaches stand out over the route layer.
func DrawViolations(gtx layout.Context, sol *core.Solution, sc *core.Scenario, camera *interact.Camera) {
	if sol == nil {
		return
	}

	pulse := float32(math.Sin(float64(time.Now().UnixMilli())/200.0)*0.3 + 0.7)

	for _, r := range sol.Routes {
		for _, v := range r.Violations {
			d := sc.DeliveryByID(v.Delivery)
			if d == nil {
				continue
			}
			x, y := camera.WorldToScreen(d.Pos.X, d.Pos.Y)
			radius := float32(2.2) * camera.Zoom * pulse
			CircleOutline(gtx, x, y, radius, ViolationColor(v.Kind), 0.35*camera.Zoom)
		}
	}
}
