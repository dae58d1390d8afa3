// Package vis implements a Gio-based visualization of drone delivery routes.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/interact"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/state"
	"github.com/elektrokombinacija/drone-delivery-research/internal/vis/widgets"
)

// App is the main visualization application.
type App struct {
	state    *state.State
	theme    *material.Theme
	mapview  *widgets.MapView
	timeline *widgets.Timeline
	toolbar  *widgets.Toolbar
	fitness  *widgets.FitnessPanel
	camera   *interact.Camera
}

// NewApp wraps an already-solved state. Solvers run before the window
// opens, so the app only replays and compares their solutions.
func NewApp(st *state.State) *App {
	camera := interact.NewCamera()

	return &App{
		state:    st,
		theme:    material.NewTheme(),
		mapview:  widgets.NewMapView(st, camera),
		timeline: widgets.NewTimeline(st),
		toolbar:  widgets.NewToolbar(st),
		fitness:  widgets.NewFitnessPanel(st),
		camera:   camera,
	}
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	// Event filters for keyboard input
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			// Handle keyboard events
			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}

			// Request focus for keyboard input
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			// Request continuous redraws during playback
			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.StepBack()
	case key.NameRightArrow:
		a.state.Playback.StepForward()
	case key.NameHome:
		a.state.Playback.Reset()
	case key.NameTab, "S":
		a.state.CycleSolver()
	case "R":
		a.mapview.ResetCamera()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	// Fill background
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		// Toolbar at top
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		// Main content area
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				// Map with routes and drones
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return a.mapview.Layout(gtx, a.theme)
				}),
				// Fitness curve for evolutionary runs
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.fitness.Layout(gtx, a.theme)
				}),
			)
		}),
		// Timeline at bottom
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
