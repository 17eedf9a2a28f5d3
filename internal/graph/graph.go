// Package graph builds the typed relationship graph connecting a historical
// record with a modern study, ready for layout-free rendering.
package graph

import (
	"github.com/matsen/chronos/internal/article"
)

// NodeKind identifies what a node represents.
type NodeKind string

// Node kinds.
const (
	KindSourceEarly NodeKind = "source-early"
	KindSourceLate  NodeKind = "source-late"
	KindConcept     NodeKind = "concept"
	KindConnection  NodeKind = "connection"
)

// EdgeKind identifies what a relationship represents.
type EdgeKind string

// Edge kinds.
const (
	EdgeContainment    EdgeKind = "containment"
	EdgeCrossReference EdgeKind = "cross-reference"
	EdgeConnection     EdgeKind = "connection"
)

// Point is a position in graph space, assigned once at construction.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Payload is the data a node originates from. Exactly one concrete type
// exists per node kind; consumers must switch exhaustively so a new kind
// cannot be silently mishandled.
type Payload interface {
	payload()
}

// ArticlePayload backs both source-document node kinds.
type ArticlePayload struct {
	Article *article.Article
}

// HypothesisPayload backs connection nodes.
type HypothesisPayload struct {
	Hypothesis *article.Hypothesis
}

// ConceptPayload backs concept nodes. Origin is always exactly one of the
// two source articles of the same graph instance.
type ConceptPayload struct {
	Term   string
	Origin *article.Article
}

func (ArticlePayload) payload()    {}
func (HypothesisPayload) payload() {}
func (ConceptPayload) payload()    {}

// Node is one element of the relationship graph.
type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Kind  NodeKind `json:"kind"`
	Pos   Point    `json:"pos"`
	Data  Payload  `json:"-"`
}

// Radius returns the circular bounding radius used for drawing and
// hit-testing nodes of this kind. Concept nodes are smaller than source
// and connection nodes.
func (k NodeKind) Radius() float64 {
	if k == KindConcept {
		return 18
	}
	return 30
}

// Edge is a weighted, typed relationship between two nodes of the same
// graph instance. Parallel edges of different kinds may connect the same
// pair of nodes.
type Edge struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Strength float64  `json:"strength"` // In (0, 1], scales stroke weight only
	Kind     EdgeKind `json:"kind"`
	Label    string   `json:"label,omitempty"`
}

// Graph holds the node and edge collections produced by one build.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// NodeByID returns the node with the given ID, or nil if absent.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// MaxLabelLen bounds node display labels; longer source labels are cut and
// marked with an ellipsis.
const MaxLabelLen = 32

// truncateLabel shortens a label to MaxLabelLen runes with an ellipsis.
func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxLabelLen {
		return s
	}
	return string(runes[:MaxLabelLen-1]) + "…"
}
