package view

import (
	"math"
	"testing"

	"github.com/matsen/chronos/internal/article"
	"github.com/matsen/chronos/internal/graph"
)

func testGraph() *graph.Graph {
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
	hyp := &article.Hypothesis{Text: "A connecting statement"}
	return graph.Build(early, late, hyp, nil)
}

func TestZoomClamping(t *testing.T) {
	c := NewController(nil)

	for i := 0; i < 50; i++ {
		c.ZoomIn()
	}
	if c.Scale() != MaxScale {
		t.Errorf("after repeated zoom in, scale = %v, want %v", c.Scale(), MaxScale)
	}

	for i := 0; i < 50; i++ {
		c.ZoomOut()
	}
	if c.Scale() != MinScale {
		t.Errorf("after repeated zoom out, scale = %v, want %v", c.Scale(), MinScale)
	}
}

func TestZoomStep(t *testing.T) {
	c := NewController(nil)
	c.ZoomIn()
	if math.Abs(c.Scale()-1.2) > 1e-9 {
		t.Errorf("single zoom in scale = %v, want 1.2", c.Scale())
	}
	c.ZoomOut()
	if math.Abs(c.Scale()-1.0) > 1e-9 {
		t.Errorf("zoom in then out scale = %v, want 1.0", c.Scale())
	}
}

func TestDragAccumulatesDelta(t *testing.T) {
	c := NewController(nil)

	c.PointerDown(100, 100)
	c.PointerMove(110, 95)
	if got := c.Offset(); got != (graph.Point{X: 10, Y: -5}) {
		t.Errorf("offset after move = %+v, want {10 -5}", got)
	}
	c.PointerMove(130, 120)
	if got := c.Offset(); got != (graph.Point{X: 30, Y: 20}) {
		t.Errorf("offset after second move = %+v, want {30 20}", got)
	}
	c.PointerUp()

	// A second drag continues from the accumulated offset.
	c.PointerDown(0, 0)
	c.PointerMove(-30, -20)
	if got := c.Offset(); got != (graph.Point{}) {
		t.Errorf("offset after reverse drag = %+v, want origin", got)
	}
}

func TestMoveWithoutDragIgnored(t *testing.T) {
	c := NewController(nil)
	c.PointerMove(500, 500)
	if got := c.Offset(); got != (graph.Point{}) {
		t.Errorf("move without drag changed offset to %+v", got)
	}

	c.PointerDown(0, 0)
	c.PointerLeave()
	c.PointerMove(500, 500)
	if got := c.Offset(); got != (graph.Point{}) {
		t.Errorf("move after pointer leave changed offset to %+v", got)
	}
}

func TestPanUnbounded(t *testing.T) {
	c := NewController(nil)
	c.PointerDown(0, 0)
	c.PointerMove(-1e6, 1e6)
	if got := c.Offset(); got != (graph.Point{X: -1e6, Y: 1e6}) {
		t.Errorf("large pan clamped: %+v", got)
	}
}

func TestResetFromAnyState(t *testing.T) {
	c := NewController(testGraph())
	for i := 0; i < 5; i++ {
		c.ZoomIn()
	}
	c.PointerDown(0, 0)
	c.PointerMove(250, -40)
	c.PointerUp()
	c.Click(250+150*c.Scale(), -40+300*c.Scale()) // Early source node

	if c.SelectedID() == "" {
		t.Fatal("setup click did not select a node")
	}

	c.Reset()
	if c.Scale() != 1 {
		t.Errorf("scale after reset = %v, want 1", c.Scale())
	}
	if c.Offset() != (graph.Point{}) {
		t.Errorf("offset after reset = %+v, want origin", c.Offset())
	}
	if c.SelectedID() != "" {
		t.Errorf("selection after reset = %q, want none", c.SelectedID())
	}
}

func TestClickSelectsNode(t *testing.T) {
	g := testGraph()
	c := NewController(g)

	// The early source node sits at (150, 300) in graph space; identity
	// transform means canvas coordinates coincide.
	if got := c.Click(150, 300); got != string(graph.KindSourceEarly) {
		t.Errorf("Click on early source selected %q", got)
	}
	if c.SelectedData() == nil {
		t.Error("SelectedData() = nil for selected node")
	}
	if _, ok := c.SelectedData().(graph.ArticlePayload); !ok {
		t.Errorf("selected payload is %T, want ArticlePayload", c.SelectedData())
	}
}

func TestClickMissClearsSelection(t *testing.T) {
	c := NewController(testGraph())
	c.Click(150, 300)
	if c.SelectedID() == "" {
		t.Fatal("setup click failed")
	}
	if got := c.Click(-500, -500); got != "" {
		t.Errorf("miss click selected %q", got)
	}
	if c.SelectedData() != nil {
		t.Error("SelectedData() non-nil after miss click")
	}
}

func TestClickHonorsTransform(t *testing.T) {
	c := NewController(testGraph())
	c.ZoomIn() // Scale 1.2
	c.PointerDown(0, 0)
	c.PointerMove(40, -25)
	c.PointerUp()

	// Canvas position of graph point (150, 300) under pan-then-scale.
	x := 150*c.Scale() + c.Offset().X
	y := 300*c.Scale() + c.Offset().Y
	if got := c.Click(x, y); got != string(graph.KindSourceEarly) {
		t.Errorf("transformed click selected %q, want early source", got)
	}

	// Just outside the 30-unit radius in graph space must miss.
	if got := c.Click(x+31*c.Scale(), y); got != "" {
		t.Errorf("click outside radius selected %q", got)
	}
}

func TestClickFirstMatchWins(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Kind: graph.KindSourceEarly, Pos: graph.Point{X: 100, Y: 100}},
			{ID: "b", Kind: graph.KindSourceLate, Pos: graph.Point{X: 110, Y: 100}},
		},
	}
	c := NewController(g)
	if got := c.Click(105, 100); got != "a" {
		t.Errorf("overlapping click selected %q, want first node in order", got)
	}
}

func TestSetGraphClearsSelection(t *testing.T) {
	c := NewController(testGraph())
	c.Click(150, 300)
	if c.SelectedID() == "" {
		t.Fatal("setup click failed")
	}

	c.ZoomIn()
	c.SetGraph(&graph.Graph{})
	if c.SelectedID() != "" {
		t.Error("selection survived graph replacement")
	}
	if c.Scale() == 1 {
		t.Error("viewport was reset on graph replacement")
	}
}

func TestClickNilGraph(t *testing.T) {
	c := NewController(nil)
	if got := c.Click(0, 0); got != "" {
		t.Errorf("Click on nil graph selected %q", got)
	}
	if c.SelectedData() != nil {
		t.Error("SelectedData() non-nil with nil graph")
	}
}
