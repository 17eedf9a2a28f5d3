package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/chronos/internal/article"
	"github.com/matsen/chronos/internal/graph"
)

// recordingCanvas captures draw calls in order, with a fixed glyph width so
// wrap points are exact and independent of font metrics.
type recordingCanvas struct {
	ops   []string // "line", "disc", "rect", "text" in call order
	lines []LineStyle
	discs []DiscStyle
	texts []string
}

func (r *recordingCanvas) Line(x1, y1, x2, y2 float64, style LineStyle) {
	r.ops = append(r.ops, "line")
	r.lines = append(r.lines, style)
}

func (r *recordingCanvas) Disc(x, y, rad float64, style DiscStyle) {
	r.ops = append(r.ops, "disc")
	r.discs = append(r.discs, style)
}

func (r *recordingCanvas) Rect(x, y, w, h float64, fill string) {
	r.ops = append(r.ops, "rect")
}

func (r *recordingCanvas) Text(x, y float64, s string, style TextStyle) {
	r.ops = append(r.ops, "text")
	r.texts = append(r.texts, s)
}

func (r *recordingCanvas) MeasureText(s string, size float64) float64 {
	return float64(len(s)) * 10
}

func testGraph(withHyp bool) *graph.Graph {
	early := &article.Article{
		PMID:     "100",
		Title:    "Tuberculosis treatment outcomes",
		Keywords: []string{"tuberculosis", "therapy"},
	}
	late := &article.Article{
		PMID:     "200",
		Title:    "Deep vein thrombosis in HIV patients",
		Keywords: []string{"thrombosis", "hiv"},
	}
	var hyp *article.Hypothesis
	if withHyp {
		hyp = &article.Hypothesis{Text: "A connecting statement"}
	}
	return graph.Build(early, late, hyp, nil)
}

func TestDrawEmptyGraph(t *testing.T) {
	c := &recordingCanvas{}
	Draw(c, &graph.Graph{}, 1, graph.Point{}, "")
	if len(c.ops) != 0 {
		t.Errorf("empty graph produced %d draw calls, want 0", len(c.ops))
	}

	Draw(c, nil, 1, graph.Point{}, "")
	if len(c.ops) != 0 {
		t.Error("nil graph produced draw calls")
	}
}

func TestDrawEdgesBeforeNodes(t *testing.T) {
	c := &recordingCanvas{}
	Draw(c, testGraph(false), 1, graph.Point{}, "")

	lastLine, firstDisc := -1, -1
	for i, op := range c.ops {
		if op == "line" {
			lastLine = i
		}
		if op == "disc" && firstDisc == -1 {
			firstDisc = i
		}
	}
	if lastLine == -1 || firstDisc == -1 {
		t.Fatal("expected both lines and discs to be drawn")
	}
	if lastLine > firstDisc {
		t.Errorf("edge drawn at op %d after first node at op %d", lastLine, firstDisc)
	}
}

func TestDrawConnectionEdgesDashed(t *testing.T) {
	c := &recordingCanvas{}
	g := testGraph(true)
	Draw(c, g, 1, graph.Point{}, "")

	if len(c.lines) != len(g.Edges) {
		t.Fatalf("drew %d lines for %d edges", len(c.lines), len(g.Edges))
	}
	for i, e := range g.Edges {
		wantDashed := e.Kind == graph.EdgeConnection
		if c.lines[i].Dashed != wantDashed {
			t.Errorf("edge %d (%s) dashed = %v, want %v", i, e.Kind, c.lines[i].Dashed, wantDashed)
		}
	}
}

func TestDrawStrokeWidthFloor(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Kind: graph.KindConcept, Pos: graph.Point{X: 0, Y: 0}},
			{ID: "b", Kind: graph.KindConcept, Pos: graph.Point{X: 100, Y: 0}},
		},
		Edges: []graph.Edge{
			{From: "a", To: "b", Strength: 0.05, Kind: graph.EdgeCrossReference},
		},
	}

	c := &recordingCanvas{}
	Draw(c, g, 1, graph.Point{}, "")
	if len(c.lines) != 1 {
		t.Fatal("expected one line")
	}
	if c.lines[0].Width != 1 {
		t.Errorf("faint edge stroke width = %v, want floor of 1", c.lines[0].Width)
	}
}

func TestDrawSelectedNodeHeavierStroke(t *testing.T) {
	g := testGraph(false)
	selected := g.Nodes[0].ID

	plain := &recordingCanvas{}
	Draw(plain, g, 1, graph.Point{}, "")
	picked := &recordingCanvas{}
	Draw(picked, g, 1, graph.Point{}, selected)

	if picked.discs[0].StrokeWidth <= plain.discs[0].StrokeWidth {
		t.Errorf("selected stroke %v not heavier than normal %v",
			picked.discs[0].StrokeWidth, plain.discs[0].StrokeWidth)
	}
	for i := 1; i < len(picked.discs); i++ {
		if picked.discs[i].StrokeWidth != plain.discs[i].StrokeWidth {
			t.Errorf("unselected node %d stroke changed", i)
		}
	}
}

func TestDrawEdgeLabelsHaveBackdrop(t *testing.T) {
	c := &recordingCanvas{}
	g := testGraph(false)
	Draw(c, g, 1, graph.Point{}, "")

	labeled := 0
	for _, e := range g.Edges {
		if e.Label != "" {
			labeled++
		}
	}
	rects := 0
	for _, op := range c.ops {
		if op == "rect" {
			rects++
		}
	}
	if rects != labeled {
		t.Errorf("drew %d backdrop rects for %d labeled edges", rects, labeled)
	}
}

func TestWrapLabel(t *testing.T) {
	c := &recordingCanvas{} // 10 units per character

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{
			name:     "fits on one line",
			text:     "short label",
			maxWidth: 200,
			want:     []string{"short label"},
		},
		{
			name:     "greedy break at word boundary",
			text:     "deep vein thrombosis",
			maxWidth: 100, // "deep vein" is 90, adding " thrombosis" exceeds
			want:     []string{"deep vein", "thrombosis"},
		},
		{
			name:     "overlong single word on own line",
			text:     "immunodeficiency is rare",
			maxWidth: 80,
			want:     []string{"immunodeficiency", "is rare"},
		},
		{
			name:     "empty text",
			text:     "",
			maxWidth: 100,
			want:     nil,
		},
		{
			name:     "exact fit is not broken",
			text:     "ab cd",
			maxWidth: 50, // "ab cd" measures exactly 50
			want:     []string{"ab cd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLabel(c, tt.text, tt.maxWidth, 10)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapLabel(%q, %v) = %v, want %v", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestSVGCanvasDocument(t *testing.T) {
	c := NewSVGCanvas(900, 600)
	Draw(c, testGraph(true), 1, graph.Point{}, "")
	out := c.String()

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 900 600"`,
		"<circle",
		"<line",
		"stroke-dasharray",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}

func TestSVGCanvasEscapesText(t *testing.T) {
	c := NewSVGCanvas(100, 100)
	c.Text(50, 50, `<b> & "quotes"`, TextStyle{Size: 11, Color: "#333"})
	out := c.String()

	if strings.Contains(out, "<b>") {
		t.Error("SVG text not escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;") || !strings.Contains(out, "&amp;") {
		t.Errorf("escaped entities missing from output: %s", out)
	}
}

func TestDrawScaledTransform(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Kind: graph.KindConcept, Pos: graph.Point{X: 100, Y: 100}},
		},
	}

	c := NewSVGCanvas(400, 400)
	Draw(c, g, 2, graph.Point{X: 10, Y: -20}, "")
	out := c.String()

	// Graph (100, 100) under scale 2 offset (10, -20) lands at (210, 180),
	// with the concept radius scaled to 36.
	if !strings.Contains(out, `cx="210" cy="180" r="36"`) {
		t.Errorf("scaled node position missing from SVG: %s", out)
	}
}
