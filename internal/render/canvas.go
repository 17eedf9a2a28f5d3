// Package render draws a relationship graph onto an abstract drawing
// surface. The draw pass is a pure function of the graph plus the current
// viewport and selection; it keeps no state between calls.
package render

// LineStyle configures a stroked line.
type LineStyle struct {
	Width  float64
	Color  string
	Dashed bool
}

// DiscStyle configures a filled and stroked disc.
type DiscStyle struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// TextStyle configures a text run. Text is horizontally centered on the
// given x and drawn with its baseline at the given y.
type TextStyle struct {
	Size  float64
	Color string
	Bold  bool
}

// Canvas is the drawing surface contract. Implementations draw in screen
// coordinates; the renderer applies the viewport transform before calling.
type Canvas interface {
	Line(x1, y1, x2, y2 float64, style LineStyle)
	Disc(x, y, r float64, style DiscStyle)
	Rect(x, y, w, h float64, fill string)
	Text(x, y float64, s string, style TextStyle)

	// MeasureText returns the rendered width of s at the given font size.
	// Used for word wrapping and label background sizing.
	MeasureText(s string, size float64) float64
}
