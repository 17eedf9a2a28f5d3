// Package view owns the interactive state of one rendering session: zoom
// scale, pan offset, drag tracking, and node selection. It is a pure state
// machine driven by pointer and button events; it performs no drawing.
package view

import (
	"math"

	"github.com/matsen/chronos/internal/graph"
)

// Zoom limits and step factor. Zoom is button-driven only.
const (
	MinScale   = 0.3
	MaxScale   = 3.0
	ZoomFactor = 1.2
)

// Controller tracks viewport and selection state for a graph. All methods
// are called from a single logical thread of control between discrete
// input events; no locking is needed.
type Controller struct {
	g *graph.Graph

	scale  float64
	offset graph.Point

	dragging    bool
	dragStart   graph.Point // Pointer position when the drag began
	offsetStart graph.Point // Pan offset when the drag began

	selected string // Selected node ID, "" for none
}

// NewController returns a controller in the canonical identity state.
func NewController(g *graph.Graph) *Controller {
	return &Controller{g: g, scale: 1}
}

// SetGraph replaces the graph wholesale, clearing any selection. Viewport
// state is kept so a rebuild does not jump the view.
func (c *Controller) SetGraph(g *graph.Graph) {
	c.g = g
	c.selected = ""
}

// Scale returns the current zoom scale.
func (c *Controller) Scale() float64 { return c.scale }

// Offset returns the current pan offset.
func (c *Controller) Offset() graph.Point { return c.offset }

// SelectedID returns the selected node's ID, or "" when nothing is selected.
func (c *Controller) SelectedID() string { return c.selected }

// SelectedData returns the originating data of the selected node for an
// inspection panel, or nil when nothing is selected.
func (c *Controller) SelectedData() graph.Payload {
	if c.selected == "" || c.g == nil {
		return nil
	}
	if n := c.g.NodeByID(c.selected); n != nil {
		return n.Data
	}
	return nil
}

// ZoomIn multiplies the scale by the zoom factor, clamped to the maximum.
func (c *Controller) ZoomIn() {
	c.scale = clampScale(c.scale * ZoomFactor)
}

// ZoomOut divides the scale by the zoom factor, clamped to the minimum.
func (c *Controller) ZoomOut() {
	c.scale = clampScale(c.scale / ZoomFactor)
}

// Reset restores scale 1, zero offset, and no selection, synchronously.
func (c *Controller) Reset() {
	c.scale = 1
	c.offset = graph.Point{}
	c.selected = ""
	c.dragging = false
}

// PointerDown begins a drag at the given canvas position.
func (c *Controller) PointerDown(x, y float64) {
	c.dragging = true
	c.dragStart = graph.Point{X: x, Y: y}
	c.offsetStart = c.offset
}

// PointerMove pans the viewport while a drag is active: the offset moves by
// the delta between the current pointer position and the drag start, with
// no clamping.
func (c *Controller) PointerMove(x, y float64) {
	if !c.dragging {
		return
	}
	c.offset = graph.Point{
		X: c.offsetStart.X + (x - c.dragStart.X),
		Y: c.offsetStart.Y + (y - c.dragStart.Y),
	}
}

// PointerUp ends any active drag.
func (c *Controller) PointerUp() {
	c.dragging = false
}

// PointerLeave ends any active drag when the pointer leaves the canvas.
func (c *Controller) PointerLeave() {
	c.dragging = false
}

// Click hit-tests a canvas position against the graph's nodes and updates
// the selection: the first node (in graph order) whose circular region
// contains the point becomes selected; a miss clears the selection.
// Returns the selected node ID, or "" on a miss.
func (c *Controller) Click(x, y float64) string {
	c.selected = ""
	if c.g == nil {
		return ""
	}

	gx, gy := c.ToGraph(x, y)
	for _, n := range c.g.Nodes {
		r := n.Kind.Radius()
		dx, dy := gx-n.Pos.X, gy-n.Pos.Y
		if math.Hypot(dx, dy) <= r {
			c.selected = n.ID
			break
		}
	}
	return c.selected
}

// ToGraph converts a canvas position to graph space by inverting the
// pan-then-scale transform applied by the renderer.
func (c *Controller) ToGraph(x, y float64) (float64, float64) {
	return (x - c.offset.X) / c.scale, (y - c.offset.Y) / c.scale
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
