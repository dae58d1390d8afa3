package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/draw"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/state"
)

// FitnessPanel plots the best fitness per generation for evolutionary runs.
// It collapses to nothing when the active solution has no history.
type FitnessPanel struct {
	state *state.State
}

// NewFitnessPanel creates the fitness curve panel.
func NewFitnessPanel(st *state.State) *FitnessPanel {
	return &FitnessPanel{state: st}
}

// Layout renders the curve.
func (f *FitnessPanel) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	run := f.state.Active()
	if run == nil || len(run.Solution.FitnessHistory) == 0 {
		return layout.Dimensions{}
	}
	history := run.Solution.FitnessHistory

	width := 280
	height := gtx.Constraints.Max.Y
	rect := image.Rect(0, 0, width, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 32, G: 35, B: 40, A: 255}, clip.Rect(rect).Op())

	lo, hi := history[0], history[0]
	for _, v := range history {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	left, right := 12, 12
	top, bottom := 34, 26
	plotW := float32(width - left - right)
	plotH := float32(height - top - bottom)

	col := color.NRGBA{R: 120, G: 220, B: 140, A: 255}
	n := len(history)
	if n > 1 && plotW > 0 && plotH > 0 {
		for i := 0; i < n-1; i++ {
			x1 := float32(left) + plotW*float32(i)/float32(n-1)
			y1 := float32(top) + plotH*float32((hi-history[i])/span)
			x2 := float32(left) + plotW*float32(i+1)/float32(n-1)
			y2 := float32(top) + plotH*float32((hi-history[i+1])/span)
			draw.Line(gtx, x1, y1, x2, y2, 1.5, col)
		}
	}

	f.drawLabels(gtx, th, hi, lo, n)

	return layout.Dimensions{Size: image.Point{X: width, Y: height}}
}

func (f *FitnessPanel) drawLabels(gtx layout.Context, th *material.Theme, hi, lo float64, generations int) {
	dim := color.NRGBA{R: 150, G: 155, B: 160, A: 255}

	title := material.Label(th, 13, "Fitness per generation")
	title.Color = color.NRGBA{R: 210, G: 215, B: 220, A: 255}

	hiLabel := material.Label(th, 11, fmt.Sprintf("%.0f", hi))
	hiLabel.Color = dim
	loLabel := material.Label(th, 11, fmt.Sprintf("%.0f", lo))
	loLabel.Color = dim
	genLabel := material.Label(th, 11, fmt.Sprintf("gen %d", generations))
	genLabel.Color = dim

	layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(10), Right: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Max.X = 260
		return layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
					layout.Rigid(title.Layout),
					layout.Rigid(hiLabel.Layout),
				)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
					layout.Rigid(loLabel.Layout),
					layout.Rigid(genLabel.Layout),
				)
			}),
		)
	})
}
