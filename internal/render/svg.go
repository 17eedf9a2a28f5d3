package render

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// glyphWidthRatio approximates average glyph width as a fraction of the font
// size, matching typical sans-serif metrics. SVG output carries real fonts,
// so the approximation only affects wrap points and backdrop sizing.
const glyphWidthRatio = 0.6

// SVGCanvas is a Canvas that accumulates SVG markup. Zero value is not
// usable; construct with NewSVGCanvas.
type SVGCanvas struct {
	width, height float64
	body          strings.Builder
}

// NewSVGCanvas returns a canvas for an SVG document of the given size with a
// white background.
func NewSVGCanvas(width, height float64) *SVGCanvas {
	c := &SVGCanvas{width: width, height: height}
	fmt.Fprintf(&c.body, "  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#FFFFFF\"/>\n",
		width, height)
	return c
}

func (c *SVGCanvas) Line(x1, y1, x2, y2 float64, style LineStyle) {
	dash := ""
	if style.Dashed {
		dash = ` stroke-dasharray="6,4"`
	}
	fmt.Fprintf(&c.body,
		"  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"%g\"%s/>\n",
		x1, y1, x2, y2, style.Color, style.Width, dash)
}

func (c *SVGCanvas) Disc(x, y, r float64, style DiscStyle) {
	fmt.Fprintf(&c.body,
		"  <circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\"/>\n",
		x, y, r, style.Fill, style.Stroke, style.StrokeWidth)
}

func (c *SVGCanvas) Rect(x, y, w, h float64, fill string) {
	fmt.Fprintf(&c.body,
		"  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n",
		x, y, w, h, fill)
}

func (c *SVGCanvas) Text(x, y float64, s string, style TextStyle) {
	weight := ""
	if style.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(&c.body,
		"  <text x=\"%g\" y=\"%g\" font-family=\"sans-serif\" font-size=\"%g\" fill=\"%s\" text-anchor=\"middle\"%s>%s</text>\n",
		x, y, style.Size, style.Color, weight, escapeText(s))
}

// MeasureText approximates text width from the glyph ratio.
func (c *SVGCanvas) MeasureText(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * glyphWidthRatio
}

// String returns the complete SVG document.
func (c *SVGCanvas) String() string {
	var doc strings.Builder
	fmt.Fprintf(&doc,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n",
		c.width, c.height, c.width, c.height)
	doc.WriteString(c.body.String())
	doc.WriteString("</svg>\n")
	return doc.String()
}

func escapeText(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}
