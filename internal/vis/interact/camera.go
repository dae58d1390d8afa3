// Package interact handles map interactions: panning, zooming, scrubbing.
package interact

import (
	"gioui.org/io/pointer"
	"gioui.org/layout"
)

const (
	minZoom = 0.1
	maxZoom = 50
)

// Camera maps scenario coordinates to screen pixels with pan and zoom.
type Camera struct {
	OffsetX float32 // Pan offset in screen pixels
	OffsetY float32
	Zoom    float32

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera at the origin. Call Fit once the viewport size
// is known to frame the whole map.
func NewCamera() *Camera {
	return &Camera{Zoom: 1.0}
}

// WorldToScreen converts map coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to map coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// HandleEvent processes pointer events for pan and zoom. Dragging with the
// secondary or middle button pans; scrolling zooms around the pointer.
func (c *Camera) HandleEvent(gtx layout.Context, ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release, pointer.Cancel:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return
		}
		worldX, worldY := c.ScreenToWorld(ev.Position.X, ev.Position.Y)

		factor := float32(1.1)
		if ev.Scroll.Y > 0 {
			c.Zoom /= factor
		} else {
			c.Zoom *= factor
		}
		c.Zoom = clampZoom(c.Zoom)

		// Keep the map point under the pointer fixed while zooming.
		newX, newY := c.WorldToScreen(worldX, worldY)
		c.OffsetX += ev.Position.X - newX
		c.OffsetY += ev.Position.Y - newY
	}
}

// Fit frames the given map bounds inside the viewport with a margin.
func (c *Camera) Fit(minX, minY, maxX, maxY float64, screenW, screenH, margin float32) {
	worldW := maxX - minX
	worldH := maxY - minY
	if worldW <= 0 || worldH <= 0 {
		return
	}

	zoomX := (screenW - 2*margin) / float32(worldW)
	zoomY := (screenH - 2*margin) / float32(worldH)
	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	c.Zoom = clampZoom(c.Zoom)

	centerX := (minX + maxX) / 2
	centerY := (minY + maxY) / 2
	c.OffsetX = screenW/2 - float32(centerX)*c.Zoom
	c.OffsetY = screenH/2 - float32(centerY)*c.Zoom
}

func clampZoom(z float32) float32 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}
