package render

import (
	"strings"

	"github.com/matsen/chronos/internal/graph"
)

// Node fill colors by kind.
var nodeFill = map[graph.NodeKind]string{
	graph.KindSourceEarly: "#4A90D9",
	graph.KindSourceLate:  "#27AE60",
	graph.KindConcept:     "#E8923A",
	graph.KindConnection:  "#9B59B6",
}

const (
	edgeColor      = "#95A5A6"
	nodeStroke     = "#333333"
	labelColor     = "#333333"
	labelBackdrop  = "#FFFFFF"
	labelFontSize  = 11.0
	labelPadding   = 3.0
	lineHeight     = 1.2
	strengthScale  = 3.0 // Edge strength to stroke width
	normalStroke   = 1.5
	selectedStroke = 4.0
)

// Draw renders the graph onto the canvas under the given viewport. Edges are
// drawn first so nodes sit above edge lines; the selected node gets a heavier
// stroke. A nil or empty graph draws nothing and never fails.
func Draw(c Canvas, g *graph.Graph, scale float64, offset graph.Point, selected string) {
	if g == nil || g.IsEmpty() {
		return
	}
	if scale <= 0 {
		scale = 1
	}

	toScreen := func(p graph.Point) (float64, float64) {
		return p.X*scale + offset.X, p.Y*scale + offset.Y
	}

	for _, e := range g.Edges {
		from, to := g.NodeByID(e.From), g.NodeByID(e.To)
		if from == nil || to == nil {
			continue
		}
		x1, y1 := toScreen(from.Pos)
		x2, y2 := toScreen(to.Pos)

		width := e.Strength * strengthScale * scale
		if width < 1 {
			width = 1
		}
		c.Line(x1, y1, x2, y2, LineStyle{
			Width:  width,
			Color:  edgeColor,
			Dashed: e.Kind == graph.EdgeConnection,
		})

		if e.Label != "" {
			drawEdgeLabel(c, (x1+x2)/2, (y1+y2)/2, e.Label, scale)
		}
	}

	for _, n := range g.Nodes {
		x, y := toScreen(n.Pos)
		r := n.Kind.Radius() * scale

		style := DiscStyle{
			Fill:        nodeFill[n.Kind],
			Stroke:      nodeStroke,
			StrokeWidth: normalStroke,
		}
		if n.ID == selected {
			style.StrokeWidth = selectedStroke
		}
		c.Disc(x, y, r, style)

		drawNodeLabel(c, x, y+r, n.Label, 2*r, scale)
	}
}

// drawNodeLabel word-wraps the label beneath the disc, each line centered.
func drawNodeLabel(c Canvas, x, topY float64, label string, maxWidth, scale float64) {
	if label == "" {
		return
	}
	size := labelFontSize * scale
	style := TextStyle{Size: size, Color: labelColor}

	y := topY + size + 4*scale
	for _, line := range wrapLabel(c, label, maxWidth, size) {
		c.Text(x, y, line, style)
		y += size * lineHeight
	}
}

// drawEdgeLabel draws the label over an opaque backdrop sized to the text so
// it stays legible across edge lines and nearby nodes.
func drawEdgeLabel(c Canvas, x, y float64, label string, scale float64) {
	size := labelFontSize * scale
	w := c.MeasureText(label, size)
	pad := labelPadding * scale

	c.Rect(x-w/2-pad, y-size/2-pad, w+2*pad, size+2*pad, labelBackdrop)
	c.Text(x, y+size/2-pad, label, TextStyle{Size: size, Color: labelColor})
}

// wrapLabel splits text into lines at word boundaries, greedily: words
// accumulate on the current line until adding the next one would exceed
// maxWidth, then the line is flushed. A single word wider than maxWidth
// occupies a line of its own.
func wrapLabel(c Canvas, text string, maxWidth, size float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if c.MeasureText(candidate, size) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
